package dto

import (
	"fmt"
	"strings"

	"origination-engine/internal/domain/kyc"
)

type SubmitDocumentRequest struct {
	DocumentType string `json:"document_type"`
	FileName     string `json:"file_name"`
	Status       string `json:"status"`
}

func (r *SubmitDocumentRequest) Validate() error {
	if strings.TrimSpace(r.DocumentType) == "" {
		return fmt.Errorf("document_type cannot be empty")
	}
	if strings.TrimSpace(r.FileName) == "" {
		return fmt.Errorf("file_name cannot be empty")
	}
	return nil
}

type KYCStatusResponse struct {
	Success bool            `json:"success"`
	Data    *kyc.StatusView `json:"data"`
}

func NewKYCStatusResponse(view *kyc.StatusView) KYCStatusResponse {
	return KYCStatusResponse{Success: true, Data: view}
}

type SubmitDocumentResponse struct {
	Success         bool         `json:"success"`
	CustomerID      string       `json:"customer_id"`
	DocumentUpload  kyc.Document `json:"document_uploaded"`
	UpdatedKYCScore int          `json:"updated_kyc_score"`
	NextSteps       []string     `json:"next_steps"`
}

func NewSubmitDocumentResponse(result *kyc.SubmitResult) SubmitDocumentResponse {
	return SubmitDocumentResponse{
		Success:         true,
		CustomerID:      result.CustomerID,
		DocumentUpload:  result.Document,
		UpdatedKYCScore: result.UpdatedKYCScore,
		NextSteps:       result.NextSteps,
	}
}

type VerificationResponse struct {
	Success bool                    `json:"success"`
	Data    *kyc.VerificationResult `json:"data"`
}

func NewVerificationResponse(result *kyc.VerificationResult) VerificationResponse {
	return VerificationResponse{Success: true, Data: result}
}
