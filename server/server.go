// Package server exposes dashboard sessions over HTTP.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/padangco/seagreen/dashboard"
)

// Server routes the dashboard API.
type Server struct {
	dispatcher *dashboard.Dispatcher
	sessions   *dashboard.Registry
	gatherer   prometheus.Gatherer
	mux        *http.ServeMux
}

// New builds the API over d and r. Metrics are served from g; a nil g
// disables /metrics.
func New(d *dashboard.Dispatcher, r *dashboard.Registry, g prometheus.Gatherer) *Server {
	s := &Server{dispatcher: d, sessions: r, gatherer: g, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if s.gatherer != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	s.mux.HandleFunc("GET /api/reference", s.handleReference)
	s.mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	s.mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	s.mux.HandleFunc("GET /api/sessions/{id}/filter", s.withSession(s.handleGetFilter))
	s.mux.HandleFunc("PUT /api/sessions/{id}/countries", s.withSession(s.handleSetCountries))
	s.mux.HandleFunc("PUT /api/sessions/{id}/stage", s.withSession(s.handleSetStage))
	s.mux.HandleFunc("GET /api/sessions/{id}/views", s.withSession(s.handleSnapshot))
	s.mux.HandleFunc("GET /api/sessions/{id}/views/{view}", s.withSession(s.handleView))
	s.mux.HandleFunc("GET /api/sessions/{id}/table", s.withSession(s.handleTable))
	s.mux.HandleFunc("GET /api/sessions/{id}/charts/{file}", s.withSession(s.handleChart))
	s.mux.HandleFunc("GET /api/sessions/{id}/export.xlsx", s.withSession(s.handleExport))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🌐 Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
