package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := SecurityHeadersMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leaderboard", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	expected := map[string]string{
		HeaderContentType:    HeaderValueNoSniff,
		HeaderFrameOptions:   HeaderValueSameOrigin,
		HeaderXSSProtection:  HeaderValueXSSBlock,
		HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
	}
	for header, want := range expected {
		if got := rr.Header().Get(header); got != want {
			t.Errorf("expected %s header to be %q, got %q", header, want, got)
		}
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	var readErr error
	handler := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789abcdef"))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var maxErr *http.MaxBytesError
	if !errors.As(readErr, &maxErr) {
		t.Fatalf("expected MaxBytesError, got %v", readErr)
	}
}
