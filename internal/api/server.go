// Package api provides the HTTP API server and handlers for the campus portal.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campushub/campus-server/internal/auth"
	"github.com/campushub/campus-server/internal/catalog"
	"github.com/campushub/campus-server/internal/http/response"
	"github.com/campushub/campus-server/internal/ratelimit"
	"github.com/campushub/campus-server/internal/service"
	"github.com/campushub/campus-server/internal/sse"
	"github.com/campushub/campus-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	authService        *service.AuthService
	catalogService     *service.CatalogService
	reservationService *service.ReservationService
	bookingService     *service.BookingService
	noticeService      *service.NoticeService
	messageService     *service.MessageService
	communityService   *service.CommunityService
	projectService     *service.ProjectService
	searchService      *service.SearchService
	tokens             *auth.TokenService
	metrics            *catalog.Metrics
	sseHandler         *sse.Handler
	validator          *validation.Validator
	loginLimiter       *ratelimit.KeyedRateLimiter
	router             *chi.Mux
	logger             *slog.Logger
}

// Services bundles the service layer the server fronts.
type Services struct {
	Auth         *service.AuthService
	Catalog      *service.CatalogService
	Reservations *service.ReservationService
	Bookings     *service.BookingService
	Notices      *service.NoticeService
	Messages     *service.MessageService
	Communities  *service.CommunityService
	Projects     *service.ProjectService
	Search       *service.SearchService
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(svcs Services, tokens *auth.TokenService, metrics *catalog.Metrics, events *sse.Manager, logger *slog.Logger) *Server {
	s := &Server{
		authService:        svcs.Auth,
		catalogService:     svcs.Catalog,
		reservationService: svcs.Reservations,
		bookingService:     svcs.Bookings,
		noticeService:      svcs.Notices,
		messageService:     svcs.Messages,
		communityService:   svcs.Communities,
		projectService:     svcs.Projects,
		searchService:      svcs.Search,
		tokens:             tokens,
		metrics:            metrics,
		validator:          validation.New(),
		// Login brute force protection: 10 attempts per minute per client IP.
		loginLimiter: ratelimit.New(10.0/60.0, 10),
		router:       chi.NewRouter(),
		logger:       logger,
	}
	s.sseHandler = sse.NewHandler(events, logger, func(r *http.Request) string {
		return getEmail(r.Context())
	})

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.loginLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealthCheck)
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public, rate limited).
		r.Route("/auth", func(r chi.Router) {
			r.With(s.rateLimitByIP(s.loginLimiter)).Post("/login", s.handleLogin)
			r.With(s.requireAuth).Get("/me", s.handleGetCurrentUser)
		})

		// Library catalog. Reading is public; favorites need an account.
		r.Route("/catalog", func(r chi.Router) {
			r.Use(s.optionalAuth)
			r.Get("/", s.handleQueryCatalog)
			r.Get("/areas", s.handleListAreas)
			r.Get("/{itemID}", s.handleGetCatalogItem)
		})
		r.Route("/favorites", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListFavorites)
			r.Post("/{itemID}", s.handleToggleFavorite)
		})

		// Item reservations.
		r.Route("/reservations", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListReservations)
			r.Post("/", s.handleCreateReservation)
			r.Delete("/{itemID}", s.handleCancelReservation)
		})

		// Room bookings.
		r.Route("/rooms/{roomID}/bookings", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListBookings)
			r.Post("/", s.handleCreateBooking)
		})
		r.Route("/bookings/{id}", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Patch("/", s.handleUpdateBooking)
			r.Delete("/", s.handleDeleteBooking)
		})

		// Notice board.
		r.Route("/notices", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListNotices)
			r.Post("/", s.handleCreateNotice)
			r.Get("/{id}", s.handleGetNotice)
			r.Patch("/{id}", s.handleUpdateNotice)
			r.Delete("/{id}", s.handleDeleteNotice)
			r.Post("/{id}/pin", s.handleToggleNoticePin)
		})

		// Direct messages.
		r.Route("/messages", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleSendMessage)
			r.Get("/inbox", s.handleInbox)
			r.Get("/sent", s.handleSent)
			r.Post("/{id}/read", s.handleMarkMessageRead)
			r.Delete("/{id}", s.handleDeleteMessage)
		})

		// Communities, clubs, and competitions.
		r.Route("/communities", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListCommunities)
			r.Post("/", s.handleCreateCommunity)
			r.Get("/{id}", s.handleGetCommunity)
			r.Patch("/{id}", s.handleUpdateCommunity)
			r.Delete("/{id}", s.handleDeleteCommunity)
			r.Post("/{id}/join", s.handleJoinCommunity)
			r.Post("/{id}/leave", s.handleLeaveCommunity)
		})

		// Project showcase.
		r.Route("/projects", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListProjects)
			r.Post("/", s.handleCreateProject)
			r.Get("/{id}", s.handleGetProject)
			r.Patch("/{id}", s.handleUpdateProject)
			r.Delete("/{id}", s.handleDeleteProject)
		})

		// Full-text search across portal content.
		r.With(s.requireAuth).Get("/search", s.handleSearch)

		// Live event stream.
		r.With(s.requireAuth).Get("/events", s.sseHandler.ServeHTTP)
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
