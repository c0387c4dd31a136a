package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/identity"
	"github.com/osse101/TheDigger_Go/internal/logger"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON body into req and validates it.
// On failure the response has already been written and the handler should return.
//
//	var req SaveRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Save game"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// GetOptionalQueryParam returns the query parameter or defaultValue when absent.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

// parseLimit reads ?limit=. Absent means 0, which services treat as their default.
func parseLimit(r *http.Request, w http.ResponseWriter, maxLimit int) (int, bool) {
	raw := GetOptionalQueryParam(r, "limit", "")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 || limit > maxLimit {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return 0, false
	}
	return limit, true
}

// requireIdentity returns the caller set by the identity middleware.
func requireIdentity(r *http.Request, w http.ResponseWriter) (domain.Identity, bool) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, ErrMsgMissingIdentity)
		return domain.Identity{}, false
	}
	return id, true
}
