package kyc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletionScore(t *testing.T) {
	t.Run("should score a complete record at 100", func(t *testing.T) {
		record := &Record{
			AadhaarNumber: "VERIFIED_AADHAAR",
			PANNumber:     "VERIFIED_PAN",
			AddressProof:  "Verified: utility_bill.pdf",
			IncomeProof:   "Verified: salary_slip.pdf",
			BankStatement: "Verified: statement.pdf",
		}
		assert.Equal(t, 100, record.CompletionScore())
	})

	t.Run("should score an empty record at zero", func(t *testing.T) {
		assert.Equal(t, 0, (&Record{}).CompletionScore())
	})

	t.Run("should weigh each document slot individually", func(t *testing.T) {
		assert.Equal(t, 25, (&Record{AadhaarNumber: "VERIFIED_AADHAAR"}).CompletionScore())
		assert.Equal(t, 25, (&Record{PANNumber: "VERIFIED_PAN"}).CompletionScore())
		assert.Equal(t, 20, (&Record{AddressProof: "Verified: x"}).CompletionScore())
		assert.Equal(t, 20, (&Record{IncomeProof: "Verified: x"}).CompletionScore())
		assert.Equal(t, 10, (&Record{BankStatement: "Verified: x"}).CompletionScore())
	})

	t.Run("should not count placeholder values", func(t *testing.T) {
		record := &Record{
			IncomeProof:   IncomeProofPending,
			BankStatement: BankStatementNotUploaded,
		}
		assert.Equal(t, 0, record.CompletionScore())
	})
}

func TestStatusForScore(t *testing.T) {
	assert.Equal(t, StatusApproved, StatusForScore(100))
	assert.Equal(t, StatusApproved, StatusForScore(80))
	assert.Equal(t, StatusPending, StatusForScore(79))
	assert.Equal(t, StatusPending, StatusForScore(50))
	assert.Equal(t, StatusNotStarted, StatusForScore(49))
	assert.Equal(t, StatusNotStarted, StatusForScore(0))
}

func TestMissingDocuments(t *testing.T) {
	t.Run("should list everything for an empty record", func(t *testing.T) {
		missing := (&Record{}).MissingDocuments()
		assert.Len(t, missing, 5)
		assert.Contains(t, missing, "Aadhaar Card")
		assert.Contains(t, missing, "Bank Statement (3 months)")
	})

	t.Run("should treat placeholders as missing", func(t *testing.T) {
		record := &Record{
			AadhaarNumber: "VERIFIED_AADHAAR",
			PANNumber:     "VERIFIED_PAN",
			AddressProof:  "Verified: x",
			IncomeProof:   IncomeProofPending,
			BankStatement: BankStatementNotUploaded,
		}
		missing := record.MissingDocuments()
		assert.Equal(t, []string{"Income Proof (Salary Slip/ITR)", "Bank Statement (3 months)"}, missing)
	})

	t.Run("should be empty for a complete record", func(t *testing.T) {
		record := &Record{
			AadhaarNumber: "VERIFIED_AADHAAR",
			PANNumber:     "VERIFIED_PAN",
			AddressProof:  "Verified: x",
			IncomeProof:   "Verified: y",
			BankStatement: "Verified: z",
		}
		assert.Empty(t, record.MissingDocuments())
	})
}
