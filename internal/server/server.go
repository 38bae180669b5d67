// Package server provides the HTTP API around the recommendation chain.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/hh-advisor/internal/cache"
	"github.com/spigell/hh-advisor/internal/market"
	"github.com/spigell/hh-advisor/internal/profile"
)

const (
	defaultPort           = 8080
	defaultRequestTimeout = 60 * time.Second
	shutdownTimeout       = 30 * time.Second
	maxRequestBody        = 1 << 20
	readHeaderTimeout     = 10 * time.Second
)

// Recommender is the chain surface the server depends on.
type Recommender interface {
	Run(ctx context.Context, p *profile.Profile, opts market.Options) (*market.Result, error)
	Tiers() []string
}

// Config holds server configuration.
type Config struct {
	Port int `mapstructure:"port"`
	// RequestTimeout bounds one recommendation request end to end.
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
}

func (c Config) withDefaults() Config {
	if c.Port <= 0 {
		c.Port = defaultPort
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	return c
}

// Server serves recommendations over HTTP.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	chain      Recommender
	store      *cache.Cache
	limits     market.Config
	timeout    time.Duration
}

func New(logger *zap.Logger, chain Recommender, store *cache.Cache, limits market.Config, cfg Config) *Server {
	cfg = cfg.withDefaults()

	s := &Server{
		logger:  logger,
		chain:   chain,
		store:   store,
		limits:  limits,
		timeout: cfg.RequestTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /recommendations", s.handleRecommendations)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s
}

// Handler exposes the routing for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		s.logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

type recommendationRequest struct {
	Profile *profile.Profile `json:"profile"`
	market.Options
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	var req recommendationRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := decoder.Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %s", err))
		return
	}

	if req.Profile == nil {
		s.writeError(w, http.StatusBadRequest, "profile is required")
		return
	}

	result, err := s.chain.Run(ctx, req.Profile, req.Options)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.writeError(w, http.StatusGatewayTimeout, "request timed out")
			return
		}
		s.logger.Error("recommendation failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "recommendation failed")
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	payload := map[string]any{
		"status": "ok",
		"tiers":  s.chain.Tiers(),
		"limits": map[string]int{
			"maxPages":    s.limits.MaxPages,
			"perPage":     s.limits.PerPage,
			"sampleCap":   s.limits.SampleCap,
			"concurrency": s.limits.Concurrency,
		},
	}

	if s.store != nil {
		payload["cache"] = map[string]any{
			"entries": s.store.Len(),
			"ttl":     s.store.TTL().String(),
		}
	}

	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("writing response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
