package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"origination-engine/internal/api/handler/dto"
	"origination-engine/internal/domain/kyc"
	"origination-engine/internal/pkg/apperrors"
)

type KYCHandler struct {
	service kyc.KYCService
	logger  *slog.Logger
}

func NewKYCHandler(service kyc.KYCService, logger *slog.Logger) *KYCHandler {
	return &KYCHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "kyc")),
	}
}

// GetStatus handles GET /kyc/{customerId}.
func (h *KYCHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	view, err := h.service.GetStatus(r.Context(), customerID)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewKYCStatusResponse(view), h.logger)
}

// SubmitDocument handles POST /kyc/submit/{customerId}.
func (h *KYCHandler) SubmitDocument(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	var req dto.SubmitDocumentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, apperrors.NewValidationError("", err.Error()), h.logger)
		return
	}

	result, err := h.service.SubmitDocument(r.Context(), customerID, req.DocumentType, req.FileName, req.Status)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewSubmitDocumentResponse(result), h.logger)
}

// Verify handles POST /kyc/verify/{customerId}. The request context flows
// into the simulated verification window, so a client that disconnects
// cancels the run.
func (h *KYCHandler) Verify(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	result, err := h.service.Verify(r.Context(), customerID)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewVerificationResponse(result), h.logger)
}
