// Package httpadapter runs the optional side listener of a roster run. When
// METRICS_ADDR is set the eventmanager command serves liveness, readiness,
// live letter progress, and Prometheus metrics from it while letters are
// being written, and closes it once the run finishes.
package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RunStatus is implemented by the pipeline. CheckReadiness fails until the
// roster has been fully processed; Status returns the row and letter counters
// as a JSON-encodable value.
type RunStatus interface {
	sharedobs.ReadinessChecker
	Status() any
}

// Server is the status listener for a single roster run. It lives only as
// long as the run does.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer wires the listener for one run: /healthz always answers, /readyz
// reports whether every roster row has been handled, /status returns the live
// letter counters, and /metrics exposes the run's Prometheus collectors.
func NewServer(addr string, run RunStatus, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(run))
	mux.HandleFunc("GET /status", handleStatus(run))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start listens until Shutdown is called after the run, then returns
// http.ErrServerClosed.
func (s *Server) Start() error {
	s.logger.Info("status listener starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown lets in-flight scrapes of the final counters finish before the
// process exits, bounded by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP routes a request without opening the listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// handleStatus serves the counters uncached; they change with every row.
func handleStatus(run RunStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		sharedobs.WriteJSON(w, http.StatusOK, run.Status())
	}
}
