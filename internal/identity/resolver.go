package identity

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/osse101/TheDigger_Go/internal/domain"
)

type ctxKey struct{}

// WithIdentity stores id on ctx.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(domain.Identity)
	return id, ok && id.PlayerID != ""
}

// Resolver turns request credentials into an Identity.
type Resolver struct {
	tokens       *TokenService
	apiKey       string
	trustHeaders bool
}

// NewResolver builds a resolver. tokens may be nil when no JWT secret is set;
// trustHeaders enables X-Player-Id / X-Player-Name behind a valid API key.
func NewResolver(tokens *TokenService, apiKey string, trustHeaders bool) *Resolver {
	return &Resolver{tokens: tokens, apiKey: apiKey, trustHeaders: trustHeaders}
}

// Resolve checks the bearer token first, then trusted headers.
func (r *Resolver) Resolve(req *http.Request) (domain.Identity, error) {
	if auth := req.Header.Get(HeaderAuthorization); auth != "" {
		token, ok := strings.CutPrefix(auth, BearerPrefix)
		if !ok || token == "" {
			return domain.Identity{}, fmt.Errorf(ErrMsgBadAuthScheme, domain.ErrUnauthorized)
		}
		if r.tokens == nil {
			return domain.Identity{}, fmt.Errorf(ErrMsgTokensDisabled, domain.ErrUnauthorized)
		}
		return r.tokens.Parse(token)
	}

	playerID := strings.TrimSpace(req.Header.Get(HeaderPlayerID))
	if !r.trustHeaders || playerID == "" {
		return domain.Identity{}, fmt.Errorf(ErrMsgNoCredentials, domain.ErrUnauthorized)
	}
	if !r.ValidAPIKey(req.Header.Get(HeaderAPIKey)) {
		return domain.Identity{}, fmt.Errorf(ErrMsgBadAPIKey, domain.ErrUnauthorized)
	}
	return domain.Identity{
		PlayerID: playerID,
		NameHint: clipHint(strings.TrimSpace(req.Header.Get(HeaderPlayerName))),
	}, nil
}

// ValidAPIKey compares in constant time. An unset key never matches.
func (r *Resolver) ValidAPIKey(provided string) bool {
	if r.apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(r.apiKey)) == 1
}
