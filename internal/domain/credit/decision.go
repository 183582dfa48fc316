package credit

import (
	"fmt"
	"time"

	"origination-engine/internal/domain/customer"
	"origination-engine/internal/pkg/apperrors"
)

type DecisionStatus string

const (
	DecisionPending             DecisionStatus = "PENDING"
	DecisionApproved            DecisionStatus = "APPROVED"
	DecisionApprovedConditional DecisionStatus = "APPROVED_CONDITIONAL"
	DecisionManualReview        DecisionStatus = "MANUAL_REVIEW"
	DecisionDeclined            DecisionStatus = "DECLINED"
)

const conditionMonitorPayments = "Monitor payment behavior closely"

// EvaluationRequest is the transient per-application input.
type EvaluationRequest struct {
	RequestedAmount float64 `json:"requested_amount"`
	TenureMonths    int     `json:"tenure_months"`
	Purpose         string  `json:"purpose"`
}

type CreditDecision struct {
	CustomerID        string         `json:"customer_id"`
	RequestedAmount   float64        `json:"requested_amount"`
	TenureMonths      int            `json:"tenure_months"`
	Purpose           string         `json:"purpose"`
	CreditScore       int            `json:"credit_score"`
	CurrentDTI        float64        `json:"current_dti"`
	ProjectedDTI      float64        `json:"projected_dti"`
	MaxApprovedAmount float64        `json:"max_approved_amount"`
	ApprovedAmount    float64        `json:"approved_amount,omitempty"`
	Decision          DecisionStatus `json:"decision"`
	Reasons           []string       `json:"reasons"`
	Conditions        []string       `json:"conditions"`
	Alternatives      []string       `json:"alternatives,omitempty"`
	Timestamp         time.Time      `json:"timestamp"`
}

// Evaluate runs the underwriting decision tree against one application.
// referenceAnnualRate is the fixed rate used to project the new
// installment, 10.5 in production config.
func Evaluate(req EvaluationRequest, report *CreditReport, profile *customer.Profile, referenceAnnualRate float64) (*CreditDecision, error) {
	if req.RequestedAmount <= 0 {
		return nil, fmt.Errorf("%w: requested_amount must be positive", apperrors.ErrInvalidArgument)
	}
	if req.TenureMonths <= 0 {
		return nil, fmt.Errorf("%w: tenure_months must be positive", apperrors.ErrInvalidArgument)
	}
	if profile.MonthlyIncome <= 0 {
		return nil, fmt.Errorf("%w: customer has no recorded monthly income", apperrors.ErrInvalidArgument)
	}

	currentDTI, err := ComputeDTI(profile.CurrentMonthlyEMI, 0, profile.MonthlyIncome)
	if err != nil {
		return nil, err
	}

	projectedEMI, err := ComputeInstallment(req.RequestedAmount, referenceAnnualRate, req.TenureMonths)
	if err != nil {
		return nil, err
	}
	projectedDTI, err := ComputeDTI(profile.CurrentMonthlyEMI, projectedEMI, profile.MonthlyIncome)
	if err != nil {
		return nil, err
	}

	maxApproved := maxApprovedAmount(profile, referenceAnnualRate, req.TenureMonths)

	decision := &CreditDecision{
		CustomerID:        profile.CustomerID,
		RequestedAmount:   req.RequestedAmount,
		TenureMonths:      req.TenureMonths,
		Purpose:           req.Purpose,
		CreditScore:       report.CibilScore,
		CurrentDTI:        currentDTI,
		ProjectedDTI:      projectedDTI,
		MaxApprovedAmount: maxApproved,
		Decision:          DecisionPending,
		Reasons:           []string{},
		Conditions:        []string{},
		Timestamp:         time.Now().UTC(),
	}

	// Tier rules, strictly ordered: each tier is a more restrictive
	// superset of the one below it, so the first match must win.
	switch {
	case report.CibilScore >= 750 && projectedDTI <= 40:
		decision.Decision = DecisionApproved
		decision.ApprovedAmount = min(req.RequestedAmount, maxApproved)
		decision.Reasons = []string{"Excellent credit score", "Low DTI ratio"}
	case report.CibilScore >= 700 && projectedDTI <= 50:
		decision.Decision = DecisionApprovedConditional
		decision.ApprovedAmount = min(req.RequestedAmount*0.8, maxApproved)
		decision.Reasons = []string{"Good credit profile", "Acceptable DTI"}
		decision.Conditions = []string{"Additional income verification may be required"}
	case report.CibilScore >= 650 && projectedDTI <= 60:
		decision.Decision = DecisionManualReview
		decision.ApprovedAmount = min(req.RequestedAmount*0.6, maxApproved)
		decision.Reasons = []string{"Moderate credit profile", "Borderline DTI"}
		decision.Conditions = []string{
			"Manager approval required",
			"Additional collateral may be needed",
			"Higher interest rate applicable",
		}
	default:
		decision.Decision = DecisionDeclined
		decision.Reasons = []string{"Insufficient credit score", "High DTI ratio", "Payment history concerns"}
		decision.Alternatives = []string{
			"Consider smaller loan amount",
			"Improve credit score before reapplying",
			"Explore secured loan options",
		}
	}

	ApplyBehaviorOverride(decision, report)

	return decision, nil
}

// ApplyBehaviorOverride downgrades an APPROVED decision to
// APPROVED_CONDITIONAL when the bureau shows delayed payments or more than
// four recent inquiries. It never upgrades, never fires below APPROVED,
// and is idempotent: the monitoring condition is appended at most once.
func ApplyBehaviorOverride(decision *CreditDecision, report *CreditReport) {
	if decision.Decision != DecisionApproved {
		return
	}
	if !report.HasDelayedPayments() && report.InquiriesLast6M <= 4 {
		return
	}

	decision.Decision = DecisionApprovedConditional
	for _, c := range decision.Conditions {
		if c == conditionMonitorPayments {
			return
		}
	}
	decision.Conditions = append(decision.Conditions, conditionMonitorPayments)
}

// maxApprovedAmount expresses how much principal the residual
// 50%-of-income budget can sustain over the tenure, capped by the
// pre-approved limit and clamped at zero when existing obligations already
// exceed half the income.
func maxApprovedAmount(profile *customer.Profile, referenceAnnualRate float64, tenureMonths int) float64 {
	residualBudget := profile.MonthlyIncome*0.5 - profile.CurrentMonthlyEMI
	if residualBudget <= 0 {
		return 0
	}

	affordabilityCap := residualBudget * float64(tenureMonths)
	perUnit, err := ComputeInstallment(1, referenceAnnualRate, tenureMonths)
	if err == nil && perUnit > 0 {
		affordabilityCap = residualBudget * float64(tenureMonths) / perUnit
	}
	// On a degenerate per-unit installment the straight-line capacity
	// above stands in, instead of a division blowing up.

	return min(profile.PreApprovedLimit, affordabilityCap)
}
