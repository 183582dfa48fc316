package offer

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("offer not found")

type EligibilityCriteria struct {
	MinCreditScore   int     `json:"min_credit_score"`
	MinMonthlyIncome float64 `json:"min_monthly_income"`
}

type Offer struct {
	OfferID              string              `json:"offer_id"`
	Name                 string              `json:"name"`
	Type                 string              `json:"type"`
	MinAmount            float64             `json:"min_amount"`
	MaxAmount            float64             `json:"max_amount"`
	InterestRateRange    [2]float64          `json:"interest_rate_range"`
	TenureRangeMonths    [2]int              `json:"tenure_range_months"`
	ProcessingFeePercent float64             `json:"processing_fee_percent"`
	EligibilityCriteria  EligibilityCriteria `json:"eligibility_criteria"`
	Features             []string            `json:"features,omitempty"`
}

// PersonalizedOffer is a catalog entry priced for one customer.
type PersonalizedOffer struct {
	Offer
	PersonalizedInterestRate float64 `json:"personalized_interest_rate"`
	EligibleAmount           float64 `json:"eligible_amount"`
	ProcessingFee            float64 `json:"processing_fee"`
}

type Repository interface {
	FindAll(ctx context.Context) ([]*Offer, error)
}
