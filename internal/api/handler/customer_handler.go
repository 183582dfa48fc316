package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"origination-engine/internal/api/handler/dto"
	"origination-engine/internal/domain/credit"
	"origination-engine/internal/domain/customer"
	"origination-engine/internal/domain/kyc"
	"origination-engine/internal/pkg/apperrors"
)

type CustomerHandler struct {
	service customer.CustomerService

	// Read-only lookups used to enrich the by-phone response. Missing
	// records are tolerated and serialize as empty sections.
	kycRecords kyc.Repository
	reports    credit.ReportRepository

	logger *slog.Logger
}

func NewCustomerHandler(service customer.CustomerService, kycRecords kyc.Repository, reports credit.ReportRepository, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service:    service,
		kycRecords: kycRecords,
		reports:    reports,
		logger:     logger.With(slog.String("handler", "customer")),
	}
}

// List handles GET /customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.ListAll(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCustomerListResponse(profiles), h.logger)
}

// GetByPhone handles GET /customers/{phone}.
func (h *CustomerHandler) GetByPhone(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")

	profile, err := h.service.GetByPhone(r.Context(), phone)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	var kycRecord *kyc.Record
	if record, err := h.kycRecords.FindByCustomerID(r.Context(), profile.CustomerID); err == nil {
		kycRecord = record
	} else if !errors.Is(err, kyc.ErrNotFound) {
		respondError(w, r, err, h.logger)
		return
	}

	var report *credit.CreditReport
	if found, err := h.reports.FindByCustomerID(r.Context(), profile.CustomerID); err == nil {
		report = found
	} else if !errors.Is(err, credit.ErrReportNotFound) {
		respondError(w, r, err, h.logger)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewEnrichedCustomerResponse(profile, kycRecord, report), h.logger)
}

// Inquire handles POST /customers/inquiry.
func (h *CustomerHandler) Inquire(w http.ResponseWriter, r *http.Request) {
	var req dto.InquiryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, apperrors.NewValidationError("phone", err.Error()), h.logger)
		return
	}

	result, err := h.service.Inquire(r.Context(), req.ToDomain())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewInquiryResponse(result), h.logger)
}
