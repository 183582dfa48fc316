package kyc

import "time"

type Status string

const (
	StatusNotStarted   Status = "NOT_STARTED"
	StatusPending      Status = "PENDING"
	StatusApproved     Status = "APPROVED"
	StatusManualReview Status = "MANUAL_REVIEW"
)

// Sentinel field values carried over from the intake flow: an income proof
// of "Pending" and a bank statement of "Not uploaded" do not count toward
// completion.
const (
	IncomeProofPending       = "Pending"
	BankStatementNotUploaded = "Not uploaded"
)

type Document struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	FileName   string    `json:"file_name"`
	UploadedAt time.Time `json:"uploaded_at"`
	Status     string    `json:"status"`
	SizeKB     int       `json:"size"`
	Verified   bool      `json:"verified"`
}

type Record struct {
	CustomerID         string     `json:"customer_id"`
	AadhaarNumber      string     `json:"aadhaar_number,omitempty"`
	PANNumber          string     `json:"pan_number,omitempty"`
	AddressProof       string     `json:"address_proof,omitempty"`
	IncomeProof        string     `json:"income_proof,omitempty"`
	BankStatement      string     `json:"bank_statement,omitempty"`
	KYCScore           int        `json:"kyc_score"`
	VerificationStatus Status     `json:"verification_status"`
	LastVerified       *time.Time `json:"last_verified,omitempty"`
	Documents          []Document `json:"documents"`
}

// CompletionScore weighs the five document slots: Aadhaar and PAN 25 each,
// address and income proof 20 each, bank statement 10.
func (r *Record) CompletionScore() int {
	score := 0
	if r.AadhaarNumber != "" {
		score += 25
	}
	if r.PANNumber != "" {
		score += 25
	}
	if r.AddressProof != "" {
		score += 20
	}
	if r.IncomeProof != "" && r.IncomeProof != IncomeProofPending {
		score += 20
	}
	if r.BankStatement != "" && r.BankStatement != BankStatementNotUploaded {
		score += 10
	}
	return score
}

// StatusForScore maps a completion score to the record status: APPROVED at
// 80 and above, PENDING at 50 and above, NOT_STARTED below.
func StatusForScore(score int) Status {
	switch {
	case score >= 80:
		return StatusApproved
	case score >= 50:
		return StatusPending
	default:
		return StatusNotStarted
	}
}

// MissingDocuments lists what still blocks completion.
func (r *Record) MissingDocuments() []string {
	missing := []string{}
	if r.AadhaarNumber == "" {
		missing = append(missing, "Aadhaar Card")
	}
	if r.PANNumber == "" {
		missing = append(missing, "PAN Card")
	}
	if r.AddressProof == "" {
		missing = append(missing, "Address Proof")
	}
	if r.IncomeProof == "" || r.IncomeProof == IncomeProofPending {
		missing = append(missing, "Income Proof (Salary Slip/ITR)")
	}
	if r.BankStatement == "" || r.BankStatement == BankStatementNotUploaded {
		missing = append(missing, "Bank Statement (3 months)")
	}
	return missing
}
