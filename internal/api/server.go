// Package api exposes the planning engine over HTTP: one stateless
// request-response per engine call, trivially parallelizable because the
// engine mutates no shared state.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/kmeehan/nestegg/internal/calculation"
)

// Config holds server settings.
type Config struct {
	Port string
	// RateLimit is requests per second allowed per server; Burst is the
	// short-term allowance. Zero values disable limiting.
	RateLimit float64
	Burst     int
}

// Server wires the engine behind a mux router.
type Server struct {
	engine  *calculation.PlanEngine
	logger  *logrus.Logger
	limiter *rate.Limiter
	cfg     Config
}

// NewServer creates a server around the given engine.
func NewServer(engine *calculation.PlanEngine, logger *logrus.Logger, cfg Config) *Server {
	s := &Server{
		engine: engine,
		logger: logger,
		cfg:    cfg,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(cfg.RateLimit)
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return s
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)
	r.Use(s.rateLimitMiddleware)

	r.HandleFunc("/healthz", s.Health).Methods("GET")
	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/allocate", s.Allocate).Methods("POST")
	v1.HandleFunc("/waterfall", s.Waterfall).Methods("POST")
	v1.HandleFunc("/simulate", s.Simulate).Methods("POST")
	v1.HandleFunc("/plan", s.Plan).Methods("POST")

	return r
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	s.logger.Infof("Starting server on %s", addr)
	return server.ListenAndServe()
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request handled")
	})
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
