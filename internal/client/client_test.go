package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/handler"
	"github.com/osse101/TheDigger_Go/internal/identity"
)

func newTestClient(t *testing.T, h http.HandlerFunc, mutate ...func(*Config)) *APIClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := Config{BaseURL: srv.URL, MaxRetries: 2, RetryDelay: time.Millisecond}
	for _, m := range mutate {
		m(&cfg)
	}
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.EqualError(t, err, ErrMsgBaseURLRequired)
}

func TestDoRequest_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, domain.GlobalStats{GlobalClicks: 42})
	})

	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.GlobalClicks)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoRequest_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusServiceUnavailable, handler.ErrorResponse{Error: "down"})
	})

	_, err := c.Goals(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.Equal(t, int32(3), calls.Load())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "down", apiErr.Message)
}

func TestDoRequest_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusConflict, handler.ErrorResponse{Error: domain.ErrMsgNameTaken})
	})

	_, err := c.Save(context.Background(), domain.PlayerSnapshot{PlayerName: "Taken"})
	assert.ErrorIs(t, err, domain.ErrNameTaken)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDoRequest_PlainTextError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})

	err := c.Reset(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Unauthorized", apiErr.Message)
}

func TestDoRequest_StopsOnContextCancel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, func(cfg *Config) {
		cfg.RetryDelay = time.Hour
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := c.Health(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWrites_AreNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.Error(t, c.ContributeGoals(context.Background(), domain.GoalContribution{Depth: 5}))
	assert.Error(t, c.PostActivity(context.Background(), domain.ActivityCustom, "hi"))
	assert.Equal(t, int32(2), calls.Load())
}

func TestAuthHeader(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want map[string]string
	}{
		{
			name: "token wins over player headers",
			cfg:  Config{APIKey: "k", Token: "tok", PlayerID: "p1"},
			want: map[string]string{
				identity.HeaderAPIKey:        "k",
				identity.HeaderAuthorization: identity.BearerPrefix + "tok",
				identity.HeaderPlayerID:      "",
			},
		},
		{
			name: "trusted player headers",
			cfg:  Config{APIKey: "k", PlayerID: "p1", PlayerName: "Digger"},
			want: map[string]string{
				identity.HeaderAPIKey:        "k",
				identity.HeaderPlayerID:      "p1",
				identity.HeaderPlayerName:    "Digger",
				identity.HeaderAuthorization: "",
			},
		},
		{
			name: "anonymous",
			cfg:  Config{},
			want: map[string]string{identity.HeaderAPIKey: "", identity.HeaderPlayerID: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.BaseURL = "http://example.invalid"
			c, err := New(tt.cfg)
			require.NoError(t, err)
			h := c.AuthHeader()
			for k, v := range tt.want {
				assert.Equal(t, v, h.Get(k), k)
			}
		})
	}
}

func TestRegister_SoftFailureMapsToSentinels(t *testing.T) {
	reply := handler.RegisterResponse{Success: false, Error: domain.ErrMsgNameTaken}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req handler.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.RequestedName == "ok" {
			writeJSON(w, http.StatusOK, handler.RegisterResponse{Success: true, Name: "ok"})
			return
		}
		writeJSON(w, http.StatusOK, reply)
	})

	name, err := c.Register(context.Background(), "ok")
	require.NoError(t, err)
	assert.Equal(t, "ok", name)

	_, err = c.Register(context.Background(), "Taken")
	assert.ErrorIs(t, err, domain.ErrNameTaken)

	reply.Error = domain.ErrMsgInvalidName
	_, err = c.Register(context.Background(), "!!")
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestWithLimit(t *testing.T) {
	assert.Equal(t, pathActivity, withLimit(pathActivity, 0))
	assert.Equal(t, pathActivity+"?limit=5", withLimit(pathActivity, 5))
}

func TestWithToken_DoesNotMutateOriginal(t *testing.T) {
	c, err := New(Config{BaseURL: "http://example.invalid", PlayerID: "p1"})
	require.NoError(t, err)

	tc := c.WithToken("tok")
	assert.Equal(t, identity.BearerPrefix+"tok", tc.AuthHeader().Get(identity.HeaderAuthorization))
	assert.Empty(t, c.AuthHeader().Get(identity.HeaderAuthorization))
}
