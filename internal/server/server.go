package server

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/TheDigger_Go/internal/handler"
	"github.com/osse101/TheDigger_Go/internal/identity"
	"github.com/osse101/TheDigger_Go/internal/logger"
	"github.com/osse101/TheDigger_Go/internal/metrics"
	"github.com/osse101/TheDigger_Go/internal/sse"
)

// Service is everything the HTTP surface needs from the game backend.
type Service interface {
	handler.GameService
	handler.CommunityService
	handler.AdminService
	handler.Pinger
}

// Options carries the process-level settings the router depends on.
type Options struct {
	Port           int
	Version        string
	StoreDriver    string
	TrustedProxies []string
	SaveRate       float64
	SaveBurst      int
}

type Server struct {
	httpServer *http.Server
	hub        *sse.Hub
}

// NewServer creates a new Server instance. tokens may be nil when player
// token minting is disabled.
func NewServer(opts Options, svc Service, resolver *identity.Resolver, tokens handler.TokenMinter, hub *sse.Hub) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svc, resolver, tokens, hub),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		hub: hub,
	}
}

// NewRouter builds the full route tree.
func NewRouter(opts Options, svc Service, resolver *identity.Resolver, tokens handler.TokenMinter, hub *sse.Hub) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	requireIdentity := IdentityMiddleware(resolver, opts.TrustedProxies, detector)
	requireAPIKey := APIKeyMiddleware(resolver, opts.TrustedProxies, detector)
	saveLimiter := NewPlayerRateLimiter(opts.SaveRate, opts.SaveBurst)

	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion(opts.Version, opts.StoreDriver))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		gameHandlers := handler.NewGameHandlers(svc)
		r.Get("/leaderboard", gameHandlers.HandleLeaderboard())

		r.Route("/game", func(r chi.Router) {
			r.Use(requireIdentity)
			r.Get("/init", gameHandlers.HandleInit())
			r.With(saveLimiter.Middleware).Post("/save", gameHandlers.HandleSave())
			r.Post("/reset", gameHandlers.HandleReset())
			r.Post("/register", gameHandlers.HandleRegister())
		})

		// Reads are public; EventSource cannot send auth headers.
		communityHandlers := handler.NewCommunityHandlers(svc)
		streamHandlers := handler.NewStreamHandlers(hub)
		r.Route("/community", func(r chi.Router) {
			r.Get("/stats", communityHandlers.HandleStats())
			r.Get("/goals", communityHandlers.HandleGoals())
			r.Get("/activity", communityHandlers.HandleListActivity())
			r.Get("/activity/stream", sse.Handler(hub))
			r.Get("/activity/ws", streamHandlers.HandleWebSocket())

			r.Group(func(r chi.Router) {
				r.Use(requireIdentity)
				r.Post("/goals/contribute", communityHandlers.HandleContribute())
				r.Post("/activity", communityHandlers.HandlePostActivity())
			})
		})

		adminHandlers := handler.NewAdminHandlers(svc, tokens)
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAPIKey)
			r.Get("/overview", adminHandlers.HandleOverview())
			r.Post("/leaderboard", adminHandlers.HandleUpsertLeaderboard())
			r.Post("/tokens", adminHandlers.HandleMintToken())
		})
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	rw.written = true
	rw.statusCode = http.StatusSwitchingProtocols
	return http.NewResponseController(rw.ResponseWriter).Hijack()
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func redactHeaders(h http.Header) http.Header {
	sanitized := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, identity.HeaderAPIKey) || strings.EqualFold(k, identity.HeaderAuthorization) {
			sanitized[k] = []string{RedactedValue}
		} else {
			sanitized[k] = v
		}
	}
	return sanitized
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())
		log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully. Live streams are closed first so
// Shutdown does not wait on them.
func (s *Server) Stop(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
