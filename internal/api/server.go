package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/bookclub/internal/api/handler"
	mw "github.com/edvin/bookclub/internal/api/middleware"
	"github.com/edvin/bookclub/internal/config"
	"github.com/edvin/bookclub/internal/core"
	"github.com/edvin/bookclub/internal/openlibrary"
)

type Server struct {
	router   chi.Router
	logger   zerolog.Logger
	services *core.Services
	pool     *pgxpool.Pool
	catalog  *openlibrary.Client
	cfg      *config.Config
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, verifier core.IdentityVerifier, cfg *config.Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		logger:   logger,
		services: core.NewServices(pool, logger, verifier, cfg),
		pool:     pool,
		catalog:  openlibrary.NewClient(),
		cfg:      cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// Login endpoints (no session required)
	auth := handler.NewAuth(
		s.services.Login,
		s.services.Session,
		s.cfg.BaseURL,
		strings.HasPrefix(s.cfg.BaseURL, "https://"),
	)
	s.router.Get("/auth/google/login", auth.Login)
	s.router.Get("/auth/google/callback", auth.Callback)
	s.router.Post("/auth/logout", auth.Logout)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.services.Session))

		// Current user
		user := handler.NewUser(s.services.User)
		r.Get("/me", user.Me)

		book := handler.NewBook(s.services.Book)
		r.Get("/me/books", book.ListRead)
		r.Post("/me/books", book.MarkRead)

		// Users
		r.Get("/users", user.List)
		r.Get("/users/search", user.Search)
		r.Get("/users/{id}", user.Get)
		r.Put("/users/{id}", user.Update)
		r.Delete("/users/{id}", user.Delete)

		membership := handler.NewMembership(s.services.Membership)
		r.Get("/users/{userID}/memberships", membership.ListByUser)

		// Books
		r.Get("/books", book.List)
		r.Post("/books", book.Create)
		r.Get("/books/search", book.Search)
		r.Get("/books/{id}", book.Get)

		// Clubs
		club := handler.NewClub(s.services.Club)
		r.Get("/clubs", club.List)
		r.Post("/clubs", club.Create)
		r.Get("/clubs/{id}", club.Get)
		r.Put("/clubs/{id}", club.Update)
		r.Delete("/clubs/{id}", club.Delete)

		// Memberships
		r.Get("/clubs/{clubID}/memberships", membership.ListByClub)
		r.Post("/memberships", membership.Create)
		r.Delete("/memberships/{id}", membership.Delete)

		// Meetings
		meeting := handler.NewMeeting(s.services.Meeting, s.services.Attendance)
		r.Get("/clubs/{clubID}/meetings", meeting.ListByClub)
		r.Post("/meetings", meeting.Create)
		r.Get("/meetings/{id}", meeting.Get)
		r.Put("/meetings/{id}", meeting.Update)
		r.Delete("/meetings/{id}", meeting.Delete)

		// Attendance
		r.Get("/meetings/{id}/attendance", meeting.ListAttendance)
		r.Post("/meetings/{id}/attendance", meeting.AddAttendance)
		r.Delete("/meetings/{id}/attendance/{attendanceID}", meeting.RemoveAttendance)

		// External catalog lookup
		catalog := handler.NewCatalog(s.catalog)
		r.Get("/catalog/search", catalog.Search)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
