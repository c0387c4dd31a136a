// Package identity establishes which player a request speaks for, either from
// a signed bearer token or from headers set by a trusted host proxy.
package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/domain"
)

// Claims are the player token claims. Subject is the player id.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 player tokens.
type TokenService struct {
	secret []byte
	issuer string
	clk    clock.Clock
}

// NewTokenService builds a token service. An empty secret is an error.
func NewTokenService(secret string, clk clock.Clock) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New(ErrMsgSecretRequired)
	}
	if clk == nil {
		clk = clock.NewReal()
	}
	return &TokenService{secret: []byte(secret), issuer: DefaultIssuer, clk: clk}, nil
}

// Mint signs a token for playerID. A ttl <= 0 produces a token without expiry.
func (s *TokenService) Mint(playerID, name string, ttl time.Duration) (string, error) {
	if playerID == "" {
		return "", errors.New(ErrMsgSubjectRequired)
	}
	now := s.clk.Now()
	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  playerID,
			Issuer:   s.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf(ErrMsgSignFailed, err)
	}
	return signed, nil
}

// Parse verifies a token and returns the identity it carries. Every failure
// wraps domain.ErrUnauthorized.
func (s *TokenService) Parse(token string) (domain.Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.clk.Now),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf(ErrMsgParseFailed, domain.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return domain.Identity{}, fmt.Errorf(ErrMsgMissingSubject, domain.ErrUnauthorized)
	}
	return domain.Identity{PlayerID: claims.Subject, NameHint: clipHint(claims.Name)}, nil
}

func clipHint(name string) string {
	r := []rune(name)
	if len(r) > MaxHintLength {
		return string(r[:MaxHintLength])
	}
	return name
}
