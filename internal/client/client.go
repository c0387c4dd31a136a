// Package client talks to the game server over its HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/TheDigger_Go/internal/domain"
	"github.com/osse101/TheDigger_Go/internal/handler"
	"github.com/osse101/TheDigger_Go/internal/identity"
	"github.com/osse101/TheDigger_Go/internal/logger"
	"github.com/osse101/TheDigger_Go/internal/session"
)

// Config holds connection and credential settings. Token wins over the
// PlayerID headers when both are set.
type Config struct {
	BaseURL    string
	APIKey     string
	Token      string
	PlayerID   string
	PlayerName string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// APIClient handles communication with the game server
type APIClient struct {
	baseURL string
	http    *http.Client
	cfg     Config
}

var _ session.Syncer = (*APIClient)(nil)

// New creates a new API client
func New(cfg Config) (*APIClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New(ErrMsgBaseURLRequired)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	return &APIClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		cfg:     cfg,
	}, nil
}

// BaseURL is the server root the client was built with.
func (c *APIClient) BaseURL() string { return c.baseURL }

// AuthHeader returns the credential headers sent with every request, for
// callers that open their own connections (the activity stream).
func (c *APIClient) AuthHeader() http.Header {
	h := http.Header{}
	if c.cfg.APIKey != "" {
		h.Set(identity.HeaderAPIKey, c.cfg.APIKey)
	}
	if c.cfg.Token != "" {
		h.Set(identity.HeaderAuthorization, identity.BearerPrefix+c.cfg.Token)
		return h
	}
	if c.cfg.PlayerID != "" {
		h.Set(identity.HeaderPlayerID, c.cfg.PlayerID)
	}
	if c.cfg.PlayerName != "" {
		h.Set(identity.HeaderPlayerName, c.cfg.PlayerName)
	}
	return h
}

// doRequest performs an HTTP request, retrying network failures and 5xx
// responses with exponential backoff and jitter. out may be nil.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, c.cfg.MaxRetries)
}

// doOnce is doRequest without retries, for writes that must not be applied
// twice.
func (c *APIClient) doOnce(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, 0)
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out any, maxRetries int) error {
	var reqBody []byte
	if body != nil {
		var err error
		if reqBody, err = json.Marshal(body); err != nil {
			return fmt.Errorf(ErrMsgMarshalBody, err)
		}
	}

	log := logger.FromContext(ctx)
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.backoff(attempt)
			log.Info(LogMsgRetrying, "attempt", attempt, "path", path, "delay", delay)
			if err := sleep(ctx, delay); err != nil {
				return err
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(reqBody))
		if err != nil {
			return fmt.Errorf(ErrMsgCreateRequest, err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range c.AuthHeader() {
			req.Header[k] = v
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			log.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt, "path", path)
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = readAPIError(resp)
			resp.Body.Close()
			log.Warn(LogMsgServerError, "status", resp.StatusCode, "attempt", attempt, "path", path)
			continue
		}
		return decodeResponse(resp, path, out)
	}
	return fmt.Errorf(ErrMsgMaxRetries, method, path, lastErr)
}

func (c *APIClient) backoff(attempt int) time.Duration {
	jitter := time.Duration(rand.Int64N(int64(maxJitter)))
	return c.cfg.RetryDelay*time.Duration(1<<uint(attempt-1)) + jitter
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func decodeResponse(resp *http.Response, path string, out any) error {
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return readAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf(ErrMsgDecodeResponse, path, err)
	}
	return nil
}

// readAPIError accepts both the JSON error body and the plain text that
// http.Error writes from middleware.
func readAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var body handler.ErrorResponse
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

func withLimit(path string, limit int) string {
	if limit <= 0 {
		return path
	}
	q := url.Values{}
	q.Set(queryParamLimit, strconv.Itoa(limit))
	return path + "?" + q.Encode()
}

// ============================================================================
// Health
// ============================================================================

// Health returns nil when the server answers its liveness probe.
func (c *APIClient) Health(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, pathHealthz, nil, nil)
}

// Version reports the server build.
func (c *APIClient) Version(ctx context.Context) (*handler.VersionInfo, error) {
	var info handler.VersionInfo
	if err := c.doRequest(ctx, http.MethodGet, pathVersion, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// ============================================================================
// Game
// ============================================================================

// Init loads or creates the caller's game.
func (c *APIClient) Init(ctx context.Context) (*domain.LoadResult, error) {
	var resp handler.InitResponse
	if err := c.doRequest(ctx, http.MethodGet, pathInit, nil, &resp); err != nil {
		return nil, err
	}
	if resp.LoadResult == nil {
		return &domain.LoadResult{}, nil
	}
	return resp.LoadResult, nil
}

// Save uploads the full snapshot.
func (c *APIClient) Save(ctx context.Context, s domain.PlayerSnapshot) (*domain.SaveResult, error) {
	var resp handler.SaveResponse
	if err := c.doRequest(ctx, http.MethodPost, pathSave, handler.SaveRequest{Snapshot: &s}, &resp); err != nil {
		return nil, err
	}
	return &domain.SaveResult{Leaderboard: resp.Leaderboard, PlayerStanding: resp.PlayerStanding}, nil
}

// Reset wipes the caller's progress on the server.
func (c *APIClient) Reset(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, pathReset, nil, nil)
}

// Register claims a display name. A refused name comes back as
// domain.ErrNameTaken or domain.ErrInvalidName.
func (c *APIClient) Register(ctx context.Context, name string) (string, error) {
	var resp handler.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, pathRegister, handler.RegisterRequest{RequestedName: name}, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		if resp.Error == domain.ErrMsgNameTaken {
			return "", fmt.Errorf(ErrMsgRegisterRejected, domain.ErrNameTaken)
		}
		return "", fmt.Errorf(ErrMsgRegisterRejected, domain.ErrInvalidName)
	}
	return resp.Name, nil
}

// Leaderboard fetches the merged ranking. limit <= 0 uses the server default.
func (c *APIClient) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	var resp handler.LeaderboardResponse
	if err := c.doRequest(ctx, http.MethodGet, withLimit(pathLeaderboard, limit), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Leaderboard, nil
}

// ============================================================================
// Community
// ============================================================================

func (c *APIClient) Stats(ctx context.Context) (*domain.GlobalStats, error) {
	var stats domain.GlobalStats
	if err := c.doRequest(ctx, http.MethodGet, pathStats, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *APIClient) Goals(ctx context.Context) ([]domain.DailyGoal, error) {
	var resp handler.GoalsResponse
	if err := c.doRequest(ctx, http.MethodGet, pathGoals, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Goals, nil
}

// ContributeGoals is sent once; a retried contribution could count twice.
func (c *APIClient) ContributeGoals(ctx context.Context, g domain.GoalContribution) error {
	req := handler.ContributeRequest{Depth: g.Depth, Ores: g.Ores, Money: g.Money}
	return c.doOnce(ctx, http.MethodPost, pathContribute, req, nil)
}

func (c *APIClient) PostActivity(ctx context.Context, activityType domain.ActivityType, details string) error {
	req := handler.PostActivityRequest{ActivityType: activityType, Details: details}
	return c.doOnce(ctx, http.MethodPost, pathActivity, req, nil)
}

// Activities lists the feed, newest first.
func (c *APIClient) Activities(ctx context.Context, limit int) ([]domain.Activity, error) {
	var resp handler.ActivitiesResponse
	if err := c.doRequest(ctx, http.MethodGet, withLimit(pathActivity, limit), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Activities, nil
}

// ============================================================================
// Admin
// ============================================================================

func (c *APIClient) AdminOverview(ctx context.Context) (*domain.AdminOverview, error) {
	var overview domain.AdminOverview
	if err := c.doRequest(ctx, http.MethodGet, pathAdminOverview, nil, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// AdminUpsertLeaderboard writes scores directly and returns how many rows
// changed.
func (c *APIClient) AdminUpsertLeaderboard(ctx context.Context, players []domain.PlayerScore) (int, error) {
	var resp handler.AdminLeaderboardResponse
	req := handler.AdminLeaderboardRequest{Players: players}
	if err := c.doRequest(ctx, http.MethodPost, pathAdminLeaderboard, req, &resp); err != nil {
		return 0, err
	}
	return resp.Updated, nil
}

// MintToken asks the server to sign a player token. ttl of zero means no
// expiry.
func (c *APIClient) MintToken(ctx context.Context, playerID, name string, ttl time.Duration) (*handler.MintTokenResponse, error) {
	var resp handler.MintTokenResponse
	req := handler.MintTokenRequest{PlayerID: playerID, Name: name, TTLSeconds: int64(ttl / time.Second)}
	if err := c.doRequest(ctx, http.MethodPost, pathAdminTokens, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// WithToken returns a copy of c that authenticates with token.
func (c *APIClient) WithToken(token string) *APIClient {
	cp := *c
	cp.cfg.Token = token
	return &cp
}
