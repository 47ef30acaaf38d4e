// Package api exposes the layout engine over HTTP.
//
// The service is intentionally small: one endpoint computes plans from a
// posted manifest, one reads previously archived plans back. Both share the
// pipeline and archive with the CLI, so a plan computed over HTTP is
// byte-identical to one computed locally.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/manwithacat/dazzle-sub005/pkg/pipeline"
	"github.com/manwithacat/dazzle-sub005/pkg/store"
)

// Server handles HTTP requests for the layout engine.
type Server struct {
	runner  *pipeline.Runner
	archive store.Store
	logger  *log.Logger
}

// NewServer creates a server around an existing runner and archive.
// A nil archive disables the read-back endpoints with 404s.
func NewServer(runner *pipeline.Runner, archive store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if archive == nil {
		archive = store.NewMemoryStore()
	}
	return &Server{
		runner:  runner,
		archive: archive,
		logger:  logger,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/plans", s.handleComputePlans)
		r.Get("/plans/{fingerprint}", s.handleGetPlan)
		r.Get("/workspaces/{workspaceID}/plans", s.handleListPlans)
	})

	return r
}

// requestLogger logs each request with its duration and status.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()))
	})
}
