package dto

import (
	"fmt"
	"strings"

	"origination-engine/internal/domain/credit"
	"origination-engine/internal/domain/customer"
	"origination-engine/internal/domain/kyc"
)

type InquiryRequest struct {
	Phone      string  `json:"phone"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	LoanAmount float64 `json:"loan_amount"`
	Purpose    string  `json:"purpose"`
}

func (r *InquiryRequest) Validate() error {
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	return nil
}

func (r *InquiryRequest) ToDomain() customer.InquiryInput {
	return customer.InquiryInput{
		Phone:      r.Phone,
		Name:       r.Name,
		Email:      r.Email,
		LoanAmount: r.LoanAmount,
		Purpose:    r.Purpose,
	}
}

type CustomerListResponse struct {
	Success bool                `json:"success"`
	Data    []*customer.Profile `json:"data"`
}

func NewCustomerListResponse(profiles []*customer.Profile) CustomerListResponse {
	if profiles == nil {
		profiles = []*customer.Profile{}
	}
	return CustomerListResponse{Success: true, Data: profiles}
}

// EnrichedCustomer combines the profile with whatever KYC and bureau
// context exists; absent sections serialize as empty objects, matching the
// intake clients' expectations.
type EnrichedCustomer struct {
	*customer.Profile
	KYC    *kyc.Record          `json:"kyc"`
	Credit *credit.CreditReport `json:"credit"`
}

type EnrichedCustomerResponse struct {
	Success bool             `json:"success"`
	Data    EnrichedCustomer `json:"data"`
}

func NewEnrichedCustomerResponse(profile *customer.Profile, kycRecord *kyc.Record, report *credit.CreditReport) EnrichedCustomerResponse {
	if kycRecord == nil {
		kycRecord = &kyc.Record{}
	}
	if report == nil {
		report = &credit.CreditReport{}
	}
	return EnrichedCustomerResponse{
		Success: true,
		Data: EnrichedCustomer{
			Profile: profile,
			KYC:     kycRecord,
			Credit:  report,
		},
	}
}

type InquiryResponse struct {
	Success          bool    `json:"success"`
	CustomerExists   bool    `json:"customer_exists"`
	CustomerID       string  `json:"customer_id"`
	PreApprovedLimit float64 `json:"pre_approved_limit,omitempty"`
	CreditScore      int     `json:"credit_score,omitempty"`
	Status           string  `json:"status,omitempty"`
	NextStep         string  `json:"next_step,omitempty"`
}

func NewInquiryResponse(result *customer.InquiryResult) InquiryResponse {
	resp := InquiryResponse{
		Success:        true,
		CustomerExists: result.CustomerExists,
		CustomerID:     result.CustomerID,
	}
	if result.CustomerExists {
		resp.PreApprovedLimit = result.PreApprovedLimit
		resp.CreditScore = result.CreditScore
	} else {
		resp.Status = string(result.Status)
		resp.NextStep = result.NextStep
	}
	return resp
}
