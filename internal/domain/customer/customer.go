package customer

import (
	"strings"
	"time"
)

type Status string

const (
	StatusExisting    Status = "EXISTING"
	StatusNewInquiry  Status = "NEW_INQUIRY"
	StatusNewCustomer Status = "NEW_CUSTOMER"
)

// Profile is the directory record for one customer. CreditScore mirrors the
// bureau report's cibil_score for convenience; the bureau sync job keeps it
// aligned.
type Profile struct {
	CustomerID        string    `json:"customer_id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Email             string    `json:"email"`
	MonthlyIncome     float64   `json:"monthly_income"`
	CurrentMonthlyEMI float64   `json:"current_monthly_emi"`
	PreApprovedLimit  float64   `json:"pre_approved_limit"`
	CreditScore       int       `json:"credit_score"`
	LoanAmount        float64   `json:"loan_amount,omitempty"`
	Purpose           string    `json:"purpose,omitempty"`
	Status            Status    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

// NormalizePhone strips the +91 country prefix so lookups match regardless
// of how the caller formatted the number.
func NormalizePhone(phone string) string {
	return strings.TrimPrefix(strings.TrimSpace(phone), "+91")
}
