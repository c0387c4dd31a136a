package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/clock"
	"github.com/osse101/TheDigger_Go/internal/domain"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTokens(t *testing.T) (*TokenService, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(epoch)
	svc, err := NewTokenService("s3cret", clk)
	require.NoError(t, err)
	return svc, clk
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := NewTokenService("", nil)
	assert.EqualError(t, err, ErrMsgSecretRequired)
}

func TestMint_RoundTrip(t *testing.T) {
	svc, _ := newTokens(t)

	token, err := svc.Mint("player-1", "Core Crusher", time.Hour)
	require.NoError(t, err)

	id, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{PlayerID: "player-1", NameHint: "Core Crusher"}, id)
}

func TestMint_RequiresPlayerID(t *testing.T) {
	svc, _ := newTokens(t)
	_, err := svc.Mint("", "x", time.Hour)
	assert.EqualError(t, err, ErrMsgSubjectRequired)
}

func TestParse_Expired(t *testing.T) {
	svc, clk := newTokens(t)
	token, err := svc.Mint("player-1", "", time.Minute)
	require.NoError(t, err)

	clk.Advance(2 * time.Minute)
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParse_NoExpiryWhenTTLZero(t *testing.T) {
	svc, clk := newTokens(t)
	token, err := svc.Mint("bot-7", "", 0)
	require.NoError(t, err)

	clk.Advance(24 * 365 * time.Hour)
	id, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "bot-7", id.PlayerID)
}

func TestParse_WrongSecret(t *testing.T) {
	svc, _ := newTokens(t)
	other, err := NewTokenService("different", clock.NewManual(epoch))
	require.NoError(t, err)

	token, err := other.Mint("player-1", "", time.Hour)
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	svc, _ := newTokens(t)
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: "player-1",
		Issuer:  DefaultIssuer,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Parse(unsigned)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParse_MissingSubject(t *testing.T) {
	svc, _ := newTokens(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer: DefaultIssuer,
	}).SignedString([]byte("s3cret"))
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParse_ClipsLongHint(t *testing.T) {
	svc, _ := newTokens(t)
	long := make([]rune, MaxHintLength+10)
	for i := range long {
		long[i] = 'a'
	}
	token, err := svc.Mint("player-1", string(long), time.Hour)
	require.NoError(t, err)

	id, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Len(t, id.NameHint, MaxHintLength)
}
