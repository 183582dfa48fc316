package dto

import (
	"fmt"

	"origination-engine/internal/domain/credit"
)

type EvaluateCreditRequest struct {
	RequestedAmount float64 `json:"requested_amount"`
	TenureMonths    int     `json:"tenure_months"`
	Purpose         string  `json:"purpose"`
}

func (r *EvaluateCreditRequest) Validate() error {
	if r.RequestedAmount <= 0 {
		return fmt.Errorf("requested_amount must be a positive number")
	}
	if r.TenureMonths <= 0 {
		return fmt.Errorf("tenure_months must be a positive integer")
	}
	return nil
}

func (r *EvaluateCreditRequest) ToDomain() credit.EvaluationRequest {
	return credit.EvaluationRequest{
		RequestedAmount: r.RequestedAmount,
		TenureMonths:    r.TenureMonths,
		Purpose:         r.Purpose,
	}
}

type CreditReportResponse struct {
	Success bool                   `json:"success"`
	Data    *credit.EnrichedReport `json:"data"`
}

func NewCreditReportResponse(report *credit.EnrichedReport) CreditReportResponse {
	return CreditReportResponse{Success: true, Data: report}
}

type EvaluationResponse struct {
	Success    bool                   `json:"success"`
	Evaluation *credit.CreditDecision `json:"evaluation"`
}

func NewEvaluationResponse(decision *credit.CreditDecision) EvaluationResponse {
	return EvaluationResponse{Success: true, Evaluation: decision}
}
