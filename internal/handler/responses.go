package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the bare acknowledgement used by reset
type SuccessResponse struct {
	Success bool `json:"success"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := getBuffer()
	defer putBuffer(buf)

	// encode first so a marshalling failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and answers with the mapped status and message.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "op", opName, "error", err)
	} else {
		log.Warn(LogMsgServiceError, "op", opName, "error", err)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgAuthFailedError
	case errors.Is(err, domain.ErrInvalidName):
		return http.StatusBadRequest, domain.ErrMsgInvalidName
	case errors.Is(err, domain.ErrNameTaken):
		return http.StatusConflict, domain.ErrMsgNameTaken
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusBadRequest, ErrMsgNotAnUpgradeError
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, ErrMsgBadQuantityError
	case errors.Is(err, domain.ErrInvalidDimension):
		return http.StatusBadRequest, ErrMsgInvalidDimensionError
	case errors.Is(err, domain.ErrInvalidActivity):
		return http.StatusBadRequest, ErrMsgInvalidActivityError
	case errors.Is(err, domain.ErrInvalidSnapshot),
		errors.Is(err, domain.ErrInvalidOre),
		errors.Is(err, domain.ErrUnknownTool),
		errors.Is(err, domain.ErrUnknownProducer),
		errors.Is(err, domain.ErrUnknownBiome):
		return http.StatusBadRequest, ErrMsgInvalidSnapshotError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
