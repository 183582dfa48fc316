package credit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"origination-engine/internal/domain/customer"
	"origination-engine/internal/pkg/apperrors"
)

const testReferenceRate = 10.5

func baselineProfile() *customer.Profile {
	return &customer.Profile{
		CustomerID:        "C001",
		MonthlyIncome:     100000,
		CurrentMonthlyEMI: 10000,
		PreApprovedLimit:  500000,
	}
}

func baselineReport() *CreditReport {
	history := make([]string, 12)
	for i := range history {
		history[i] = "ontime"
	}
	return &CreditReport{
		CustomerID:       "C001",
		CibilScore:       780,
		UtilizationRatio: 20,
		InquiriesLast6M:  1,
		PaymentHistory:   history,
		DefaultsCount:    0,
	}
}

func baselineRequest() EvaluationRequest {
	return EvaluationRequest{
		RequestedAmount: 300000,
		TenureMonths:    36,
		Purpose:         "Home renovation",
	}
}

func TestEvaluate(t *testing.T) {
	t.Run("should error on invalid application inputs", func(t *testing.T) {
		_, err := Evaluate(EvaluationRequest{RequestedAmount: 0, TenureMonths: 36}, baselineReport(), baselineProfile(), testReferenceRate)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

		_, err = Evaluate(EvaluationRequest{RequestedAmount: 100000, TenureMonths: 0}, baselineReport(), baselineProfile(), testReferenceRate)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

		profile := baselineProfile()
		profile.MonthlyIncome = 0
		_, err = Evaluate(baselineRequest(), baselineReport(), profile, testReferenceRate)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("should approve a strong applicant in full", func(t *testing.T) {
		decision, err := Evaluate(baselineRequest(), baselineReport(), baselineProfile(), testReferenceRate)
		assert.NoError(t, err)

		assert.Equal(t, DecisionApproved, decision.Decision)
		assert.Equal(t, 300000.0, decision.ApprovedAmount)
		assert.Equal(t, 10.0, decision.CurrentDTI)
		assert.LessOrEqual(t, decision.ProjectedDTI, 40.0)
		assert.Equal(t, 500000.0, decision.MaxApprovedAmount)
		assert.Equal(t, []string{"Excellent credit score", "Low DTI ratio"}, decision.Reasons)
		assert.Empty(t, decision.Conditions)
		assert.Empty(t, decision.Alternatives)
	})

	t.Run("should include inclusive score boundary at 750", func(t *testing.T) {
		report := baselineReport()
		report.CibilScore = 750
		decision, err := Evaluate(baselineRequest(), report, baselineProfile(), testReferenceRate)
		assert.NoError(t, err)
		assert.Equal(t, DecisionApproved, decision.Decision)

		report.CibilScore = 749
		decision, err = Evaluate(baselineRequest(), report, baselineProfile(), testReferenceRate)
		assert.NoError(t, err)
		assert.Equal(t, DecisionApprovedConditional, decision.Decision)
	})

	t.Run("should approve conditionally at eighty percent", func(t *testing.T) {
		report := baselineReport()
		report.CibilScore = 720
		decision, err := Evaluate(baselineRequest(), report, baselineProfile(), testReferenceRate)
		assert.NoError(t, err)

		assert.Equal(t, DecisionApprovedConditional, decision.Decision)
		assert.Equal(t, 240000.0, decision.ApprovedAmount)
		assert.Equal(t, []string{"Additional income verification may be required"}, decision.Conditions)
	})

	t.Run("should route moderate profiles to manual review at sixty percent", func(t *testing.T) {
		report := baselineReport()
		report.CibilScore = 660
		decision, err := Evaluate(baselineRequest(), report, baselineProfile(), testReferenceRate)
		assert.NoError(t, err)

		assert.Equal(t, DecisionManualReview, decision.Decision)
		assert.Equal(t, 180000.0, decision.ApprovedAmount)
		assert.Len(t, decision.Conditions, 3)
	})

	t.Run("should decline weak applicants with alternatives", func(t *testing.T) {
		report := baselineReport()
		report.CibilScore = 600
		decision, err := Evaluate(baselineRequest(), report, baselineProfile(), testReferenceRate)
		assert.NoError(t, err)

		assert.Equal(t, DecisionDeclined, decision.Decision)
		assert.Equal(t, 0.0, decision.ApprovedAmount)
		assert.NotEmpty(t, decision.Alternatives)
		assert.NotEmpty(t, decision.Reasons)
	})

	t.Run("should decline an excellent score with an unaffordable request", func(t *testing.T) {
		req := baselineRequest()
		req.RequestedAmount = 3000000
		decision, err := Evaluate(req, baselineReport(), baselineProfile(), testReferenceRate)
		assert.NoError(t, err)

		assert.Greater(t, decision.ProjectedDTI, 60.0)
		assert.Equal(t, DecisionDeclined, decision.Decision)
	})

	t.Run("should clamp the affordability cap at zero", func(t *testing.T) {
		profile := baselineProfile()
		profile.CurrentMonthlyEMI = 60000
		decision, err := Evaluate(baselineRequest(), baselineReport(), profile, testReferenceRate)
		assert.NoError(t, err)

		assert.Equal(t, 0.0, decision.MaxApprovedAmount)
	})

	t.Run("should never exceed the pre-approved limit", func(t *testing.T) {
		for _, limit := range []float64{0, 100000, 500000, 2000000} {
			profile := baselineProfile()
			profile.PreApprovedLimit = limit
			decision, err := Evaluate(baselineRequest(), baselineReport(), profile, testReferenceRate)
			assert.NoError(t, err)
			assert.LessOrEqual(t, decision.MaxApprovedAmount, limit)
			assert.LessOrEqual(t, decision.ApprovedAmount, decision.MaxApprovedAmount)
		}
	})
}

func TestApplyBehaviorOverride(t *testing.T) {
	t.Run("should downgrade an approval on delayed payments", func(t *testing.T) {
		report := baselineReport()
		report.PaymentHistory[5] = PaymentDelayed
		decision, err := Evaluate(baselineRequest(), report, baselineProfile(), testReferenceRate)
		assert.NoError(t, err)

		assert.Equal(t, DecisionApprovedConditional, decision.Decision)
		assert.Contains(t, decision.Conditions, "Monitor payment behavior closely")
	})

	t.Run("should downgrade an approval on heavy recent inquiries", func(t *testing.T) {
		report := baselineReport()
		report.InquiriesLast6M = 5
		decision, err := Evaluate(baselineRequest(), report, baselineProfile(), testReferenceRate)
		assert.NoError(t, err)

		assert.Equal(t, DecisionApprovedConditional, decision.Decision)
		assert.Contains(t, decision.Conditions, "Monitor payment behavior closely")
	})

	t.Run("should leave four inquiries untouched", func(t *testing.T) {
		report := baselineReport()
		report.InquiriesLast6M = 4
		decision, err := Evaluate(baselineRequest(), report, baselineProfile(), testReferenceRate)
		assert.NoError(t, err)
		assert.Equal(t, DecisionApproved, decision.Decision)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		report := baselineReport()
		report.PaymentHistory[0] = PaymentDelayed
		decision, err := Evaluate(baselineRequest(), report, baselineProfile(), testReferenceRate)
		assert.NoError(t, err)

		before := len(decision.Conditions)
		ApplyBehaviorOverride(decision, report)
		ApplyBehaviorOverride(decision, report)

		assert.Equal(t, DecisionApprovedConditional, decision.Decision)
		assert.Len(t, decision.Conditions, before)

		count := 0
		for _, c := range decision.Conditions {
			if c == "Monitor payment behavior closely" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("should never fire below the approved tier", func(t *testing.T) {
		report := baselineReport()
		report.CibilScore = 720
		report.PaymentHistory[3] = PaymentDelayed
		decision, err := Evaluate(baselineRequest(), report, baselineProfile(), testReferenceRate)
		assert.NoError(t, err)

		assert.Equal(t, DecisionApprovedConditional, decision.Decision)
		assert.NotContains(t, decision.Conditions, "Monitor payment behavior closely")

		report.CibilScore = 600
		decision, err = Evaluate(baselineRequest(), report, baselineProfile(), testReferenceRate)
		assert.NoError(t, err)
		assert.Equal(t, DecisionDeclined, decision.Decision)
	})
}
