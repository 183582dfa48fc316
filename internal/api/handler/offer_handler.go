package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"origination-engine/internal/api/handler/dto"
	"origination-engine/internal/domain/offer"
	"origination-engine/internal/pkg/apperrors"
)

type OfferHandler struct {
	service offer.OfferService
	logger  *slog.Logger
}

func NewOfferHandler(service offer.OfferService, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "offer")),
	}
}

// List handles GET /offers.
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.ListOffers(r.Context())
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewOffersResponse(offers), h.logger)
}

// Personalized handles GET /offers/personalized/{phone}.
func (h *OfferHandler) Personalized(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")

	bundle, err := h.service.PersonalizedOffers(r.Context(), phone)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewPersonalizedOffersResponse(bundle), h.logger)
}

// CalculateEMI handles POST /offers/calculate-emi.
func (h *OfferHandler) CalculateEMI(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateEMIRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, r, apperrors.NewValidationError("", err.Error()), h.logger)
		return
	}

	quote, err := h.service.QuoteEMI(r.Context(), req.Principal, req.Rate, req.TenureMonths)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewEMIQuoteResponse(quote), h.logger)
}
