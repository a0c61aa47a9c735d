// Package api exposes answer scoring over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nikogura/interview-coach/pkg/coach"
	"github.com/nikogura/interview-coach/pkg/config"
	"github.com/nikogura/interview-coach/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MaxBodyBytes caps request bodies at 1 MiB.
const MaxBodyBytes int64 = 1 << 20

const shutdownTimeout = 15 * time.Second

// Server serves the scoring API.
type Server struct {
	coach      *coach.Coach
	logger     *zap.Logger
	validator  *validator.Validate
	httpServer *http.Server
}

// New creates a server around c. A nil logger disables logging.
func New(c *coach.Coach, log *zap.Logger, cfg config.ServerConfig) (s *Server) {
	s = &Server{
		coach:     c,
		logger:    logger.WithFields(log, zap.String("component", "api")),
		validator: validator.New(),
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       cfg.ReadTimeoutDuration(),
		ReadHeaderTimeout: cfg.ReadTimeoutDuration(),
		WriteTimeout:      2 * cfg.ReadTimeoutDuration(),
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler returns the routed handler with request logging.
func (s *Server) Handler() (h http.Handler) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/score", s.handleScore)
	mux.HandleFunc("POST /v1/followups", s.handleFollowUps)
	mux.HandleFunc("POST /v1/summary", s.handleSummary)
	mux.HandleFunc("POST /v1/confidence", s.handleConfidence)
	mux.HandleFunc("GET /health", s.handleHealth)

	h = s.withLogging(mux)
	return h
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) (err error) {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
			return err
		}
		err = errors.Wrap(err, "server failed")
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = s.httpServer.Shutdown(shutdownCtx)
	if err != nil {
		err = errors.Wrap(err, "server shutdown failed")
		return err
	}

	s.logger.Info("server stopped")
	return err
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response with the status mapped from err.
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.jsonResponse(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
