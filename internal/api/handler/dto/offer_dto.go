package dto

import (
	"fmt"
	"time"

	"origination-engine/internal/domain/offer"
)

type CalculateEMIRequest struct {
	Principal    float64 `json:"principal"`
	Rate         float64 `json:"rate"`
	TenureMonths int     `json:"tenure_months"`
}

func (r *CalculateEMIRequest) Validate() error {
	if r.Principal <= 0 {
		return fmt.Errorf("principal must be a positive number")
	}
	if r.Rate < 0 {
		return fmt.Errorf("rate cannot be negative")
	}
	if r.TenureMonths < 1 {
		return fmt.Errorf("tenure_months must be at least 1")
	}
	return nil
}

type OffersResponse struct {
	Success   bool           `json:"success"`
	Data      []*offer.Offer `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

func NewOffersResponse(offers []*offer.Offer) OffersResponse {
	if offers == nil {
		offers = []*offer.Offer{}
	}
	return OffersResponse{Success: true, Data: offers, Timestamp: time.Now().UTC()}
}

type PersonalizedOffersResponse struct {
	Success          bool                      `json:"success"`
	CustomerID       string                    `json:"customer_id"`
	EligibleOffers   []offer.PersonalizedOffer `json:"eligible_offers"`
	RecommendedOffer *offer.PersonalizedOffer  `json:"recommended_offer"`
}

func NewPersonalizedOffersResponse(bundle *offer.PersonalizedBundle) PersonalizedOffersResponse {
	return PersonalizedOffersResponse{
		Success:          true,
		CustomerID:       bundle.CustomerID,
		EligibleOffers:   bundle.EligibleOffers,
		RecommendedOffer: bundle.RecommendedOffer,
	}
}

type EMIQuoteResponse struct {
	Success             bool    `json:"success"`
	Principal           float64 `json:"principal"`
	MonthlyInterestRate float64 `json:"monthly_interest_rate"`
	TenureMonths        int     `json:"tenure_months"`
	MonthlyEMI          float64 `json:"monthly_emi"`
	TotalInterest       float64 `json:"total_interest"`
	TotalPayable        float64 `json:"total_payable"`
}

func NewEMIQuoteResponse(quote *offer.EMIQuote) EMIQuoteResponse {
	return EMIQuoteResponse{
		Success:             true,
		Principal:           quote.Principal,
		MonthlyInterestRate: quote.MonthlyInterestRate,
		TenureMonths:        quote.TenureMonths,
		MonthlyEMI:          quote.MonthlyEMI,
		TotalInterest:       quote.TotalInterest,
		TotalPayable:        quote.TotalPayable,
	}
}
