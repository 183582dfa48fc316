package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"origination-engine/internal/api/handler/dto"
	"origination-engine/internal/domain/credit"
	"origination-engine/internal/pkg/apperrors"
)

type CreditHandler struct {
	service credit.CreditService
	logger  *slog.Logger
}

func NewCreditHandler(service credit.CreditService, logger *slog.Logger) *CreditHandler {
	return &CreditHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "credit")),
	}
}

// GetReport handles GET /credit/{customerId}.
func (h *CreditHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	report, err := h.service.GetEnrichedReport(r.Context(), customerID)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewCreditReportResponse(report), h.logger)
}

// Evaluate handles POST /credit/evaluate/{customerId}.
func (h *CreditHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	var req dto.EvaluateCreditRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, apperrors.NewValidationError("", err.Error()), h.logger)
		return
	}

	decision, err := h.service.Evaluate(r.Context(), customerID, req.ToDomain())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewEvaluationResponse(decision), h.logger)
}
