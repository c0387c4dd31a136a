package client

import (
	"fmt"
	"net/http"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

// APIError is a non-retryable response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf(ErrMsgAPIStatus, e.Status, e.Message)
}

// Unwrap maps well-known statuses back onto the domain sentinels so callers
// can use errors.Is across the wire.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusConflict:
		return domain.ErrNameTaken
	case http.StatusServiceUnavailable:
		return domain.ErrStoreUnavailable
	}
	return nil
}
