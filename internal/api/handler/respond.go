package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"origination-engine/internal/api/handler/dto"
	"origination-engine/internal/pkg/apperrors"
)

func respondJSON(w http.ResponseWriter, statusCode int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode JSON response", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	statusCode := http.StatusInternalServerError
	message := "An unexpected internal server error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperrors.ErrVerificationPending), errors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperrors.ErrAlreadyExists):
		statusCode = http.StatusConflict
		message = err.Error()
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("Request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
	respondJSON(w, statusCode, dto.NewErrorResponse(message), logger)
}

// decodeJSON parses a request body strictly; unknown fields are rejected so
// client typos surface as 400s instead of silently defaulting.
func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", apperrors.ErrValidation, err)
	}
	return nil
}
