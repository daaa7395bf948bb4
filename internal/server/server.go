package server

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/tacticalfit/internal/app"
	"github.com/meltforce/tacticalfit/internal/metrics"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	app      *app.App
	metrics  *metrics.Manager
	promHTTP http.Handler
	log      *slog.Logger
	router   chi.Router

	mu    sync.RWMutex
	whoIs whoIser
}

// New creates a new Server with all routes configured. promHTTP serves
// /metrics and may be nil.
func New(a *app.App, m *metrics.Manager, promHTTP http.Handler, log *slog.Logger) *Server {
	s := &Server{
		app:      a,
		metrics:  m,
		promHTTP: promHTTP,
		log:      log,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale switches request identity from the local dev user to the
// tailnet peer resolved through lc.
func (s *Server) SetTailscale(lc whoIser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.whoIs = lc
}

func (s *Server) routes() {
	s.router.Use(RequestID)
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	if s.metrics != nil {
		s.router.Use(Metrics(s.metrics))
	}
	s.router.Use(s.identity)

	s.router.Get("/healthz", s.handleHealth)
	if s.promHTTP != nil {
		s.router.Method(http.MethodGet, "/metrics", s.promHTTP)
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)

		r.Get("/today", s.handleToday)
		r.Get("/days/{date}", s.handleDay)
		r.Post("/days/{date}/toggle", s.handleToggle)

		r.Get("/schedule", s.handleSchedule)
		r.Get("/weeks/{week}", s.handleWeek)
		r.Get("/plans", s.handlePlans)

		r.Get("/progress", s.handleProgress)
		r.Post("/progress/reset", s.handleReset)

		r.Get("/settings", s.handleSettings)
		r.Put("/settings/start-date", s.handleSetStartDate)
		r.Post("/settings/shift", s.handleShift)

		r.Get("/view", s.handleView)
		r.Post("/view/{action}", s.handleViewAction)
	})
}

func (s *Server) identity(next http.Handler) http.Handler {
	dev := DevIdentity(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		lc := s.whoIs
		s.mu.RUnlock()
		if lc == nil {
			dev.ServeHTTP(w, r)
			return
		}
		TailscaleIdentity(lc, s.log)(next).ServeHTTP(w, r)
	})
}
