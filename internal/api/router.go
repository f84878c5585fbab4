package api

import (
	"net/http"
	"time"

	"mockmatch/internal/api/handler"
	"mockmatch/internal/api/middleware"
	"mockmatch/internal/app/service"
	"mockmatch/internal/common/security"
	"mockmatch/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/cors"
)

// ProtectedPagePrefixes lists the browser routes that require a session.
// Requests elsewhere pass through the gate untouched.
var ProtectedPagePrefixes = []string{"/profile", "/dashboard", "/matching", "/interviews"}

func NewRouter(
	cfg *config.Config,
	tokens *security.TokenService,
	authService *service.AuthService,
	profileService *service.ProfileService,
	matchService *service.MatchService,
	interviewService *service.InterviewService,
	notificationService *service.NotificationService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	// Verifies a token from the Authorization header or the session cookie
	// and puts claims in context; middleware.Authenticator enforces them.
	r.Use(jwtauth.Verify(tokens.Auth(), jwtauth.TokenFromHeader, middleware.TokenFromCookie))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService, tokens.TTL(), cfg.IsProduction())
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// Everything below requires a verified session
		v1.Group(func(protected chi.Router) {
			protected.Use(middleware.Authenticator)

			authHandler.RegisterProtectedRoutes(protected)

			profileHandler := handler.NewProfileHandler(profileService)
			profileHandler.RegisterRoutes(protected)

			matchHandler := handler.NewMatchHandler(matchService)
			protected.Route("/matching", matchHandler.RegisterRoutes)

			interviewHandler := handler.NewInterviewHandler(interviewService)
			protected.Route("/interviews", interviewHandler.RegisterRoutes)

			notificationHandler := handler.NewNotificationHandler(notificationService)
			protected.Route("/notifications", notificationHandler.RegisterRoutes)
		})
	})

	// Browser pages: static assets behind the session gate, which redirects
	// unauthenticated requests for protected prefixes to the login page.
	sessionGate := middleware.SessionGate(tokens, ProtectedPagePrefixes)
	r.With(sessionGate).Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))

	return r
}
