package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	mdwerror "github.com/msto63/lox/foundation/core/error"
	mdwlog "github.com/msto63/lox/foundation/core/log"
	mdwlox "github.com/msto63/lox/foundation/lox"
	"github.com/msto63/lox/internal/health"
	"github.com/msto63/lox/internal/history/store"
)

// Server exposes lox sessions over WebSocket
type Server struct {
	httpServer *http.Server
	ws         *WebSocketHandler
	health     *health.Registry
	logger     *mdwlog.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration // Connection closes after this long without messages
	MaxSourceLength int
	StopOnError     bool
	Version         string
	Logger          *mdwlog.Logger
	History         store.Store // Optional persistent history
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Addr:         "127.0.0.1:8765",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		Version:      "dev",
	}
}

// New creates a new server
func New(cfg Config) (*Server, error) {
	def := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = def.IdleTimeout
	}
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.Logger == nil {
		cfg.Logger = mdwlog.GetDefault()
	}
	logger := cfg.Logger.WithField("component", "lox-server")

	ws := NewWebSocketHandler(HandlerConfig{
		IdleTimeout:     cfg.IdleTimeout,
		MaxSourceLength: cfg.MaxSourceLength,
		StopOnError:     cfg.StopOnError,
		Logger:          cfg.Logger,
		History:         cfg.History,
	})

	registry := health.NewRegistry("lox-server", cfg.Version)
	registry.Register(health.EngineCheck("engine", mdwlox.Options{
		Logger:          mdwlog.NewNop(),
		MaxSourceLength: cfg.MaxSourceLength,
	}))
	registry.Register(health.StoreCheck("history", cfg.History))

	s := &Server{
		ws:     ws,
		health: registry,
		logger: logger,
		config: cfg,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s, nil
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s.ws)
	mux.HandleFunc("/health", s.handleHealth)
	return loggingMiddleware(s.logger, mux)
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   health.Status        `json:"status"`
	Version  string               `json:"version"`
	Sessions int64                `json:"sessions"`
	Uptime   string               `json:"uptime"`
	Checks   []health.CheckResult `json:"checks"`
}

// handleHealth answers 503 only when a check is unhealthy; a degraded
// history store still serves sessions.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	report := s.health.Check(ctx)

	w.Header().Set("Content-Type", "application/json")
	if report.Status == health.StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(HealthResponse{
		Status:   report.Status,
		Version:  s.config.Version,
		Sessions: s.ws.ActiveSessions(),
		Uptime:   report.Uptime.Round(time.Second).String(),
		Checks:   report.Checks,
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return mdwerror.Wrap(err, "failed to listen").
			WithCode(mdwerror.CodeTransportError).
			WithOperation("server.Start").
			WithDetail("addr", s.config.Addr)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on an existing listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	s.logger.Info("Starting Lox server", mdwlog.Fields{"addr": listener.Addr().String()})

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return mdwerror.Wrap(err, "server failed").
			WithCode(mdwerror.CodeTransportError).
			WithOperation("server.Serve")
	}
}

// Shutdown stops accepting connections and waits for active requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping Lox server", mdwlog.Fields{"sessions": s.ws.ActiveSessions()})
	return s.httpServer.Shutdown(ctx)
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *mdwlog.Logger, next http.Handler) http.Handler {
	var requests atomic.Int64
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logger.Debug("HTTP request", mdwlog.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   wrapper.statusCode,
			"duration": time.Since(start).String(),
			"request":  requests.Add(1),
		})
	})
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWrapper) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack implements http.Hijacker for the WebSocket upgrade
func (w *responseWrapper) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	w.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}
