package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"growthlog/internal/middleware"
	"growthlog/internal/notify"
)

type RouterConfig struct {
	DB           *sqlx.DB
	JWTSecret    []byte
	TokenTTL     time.Duration
	SecureCookie bool
	Hub          *notify.Hub
	Jobs         ReflectionJobs
	AudioDir     string
	Logger       *zap.Logger
}

// NewRouter wires the full HTTP surface.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.ZapRequestLogger(cfg.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := NewAuthHandler(cfg.DB, cfg.JWTSecret, cfg.TokenTTL, cfg.SecureCookie)
	userHandler := NewUserHandler(cfg.DB)
	entryHandler := NewEntryHandler(cfg.DB)
	dashboardHandler := NewDashboardHandler(cfg.DB)
	weeklyHandler := NewWeeklyHandler(cfg.DB)
	feedbackHandler := NewFeedbackHandler(cfg.DB)
	integrationsHandler := NewIntegrationsHandler(cfg.DB)
	taskHandler := NewTaskHandler(cfg.DB, cfg.Jobs)
	wsHandler := NewWSHandler(cfg.Hub, cfg.Logger)

	authMW := middleware.NewAuthMiddleware(cfg.JWTSecret, middleware.NewUserDirectory(cfg.DB))

	r.Get("/healthz", taskHandler.Health)
	r.Handle("/static/audio/*", http.StripPrefix("/static/audio/", http.FileServer(http.Dir(cfg.AudioDir))))

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/", taskHandler.Welcome)
		api.Post("/auth/signup", authHandler.Signup)
		api.Post("/auth/login", authHandler.Login)
		api.Post("/auth/logout", authHandler.Logout)
		api.Post("/tasks/generate-reflections", taskHandler.GenerateReflections)

		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Get("/auth/me", authHandler.Me)
			pr.Get("/users/me/settings", userHandler.GetSettings)
			pr.Put("/users/me/settings", userHandler.UpdateSettings)
			pr.Post("/moments", entryHandler.CreateMoment)
			pr.Get("/moments", entryHandler.ListMoments)
			pr.Post("/reflections", entryHandler.CreateReflection)
			pr.Get("/reflections", entryHandler.ListReflections)
			pr.Get("/reflections/weekly", weeklyHandler.Get)
			pr.Get("/dashboard", dashboardHandler.Get)
			pr.Get("/articles", listArticles(cfg.DB))
			pr.Get("/peer-feedback", feedbackHandler.List)
			pr.Post("/peer-feedback", feedbackHandler.Create)
			pr.Get("/integrations", integrationsHandler.Get)
			pr.Put("/integrations", integrationsHandler.Update)
			pr.Get("/ws", wsHandler.Connect)
		})
	})

	return r
}
