package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"notehub-backend/application/services"
	"notehub-backend/infrastructure/config"
	"notehub-backend/infrastructure/observability"
	"notehub-backend/interfaces/http/rest/handlers"
	"notehub-backend/interfaces/http/rest/middleware"
	"notehub-backend/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg      *config.Config
	notes    *services.NoteService
	webhooks *services.WebhookService
	metrics  *observability.Collector
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	notes *services.NoteService,
	webhooks *services.WebhookService,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:      cfg,
		notes:    notes,
		webhooks: webhooks,
		metrics:  metrics,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key", handlers.WebhookTokenHeader, "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Operational endpoints
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	router.Method("GET", "/metrics", rt.metrics.Handler())

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/notes", func(r chi.Router) {
			noteHandler := handlers.NewNoteHandler(rt.notes, rt.cfg.DefaultPageLimit, rt.logger)
			r.Post("/", noteHandler.CreateNote)
			r.Get("/", noteHandler.ListNotes)
			r.Get("/{noteID}", noteHandler.GetNote)
			r.Put("/{noteID}", noteHandler.UpdateNote)
			r.Delete("/{noteID}", noteHandler.DeleteNote)
		})

		r.Route("/webhooks", func(r chi.Router) {
			webhookHandler := handlers.NewWebhookHandler(rt.webhooks, rt.logger)

			limiter := auth.NewTokenBucketLimiter(
				rt.cfg.WebhookRateLimit,
				time.Duration(rt.cfg.WebhookRateRefillMS)*time.Millisecond,
			)
			r.With(middleware.RateLimit(limiter)).Post("/note", webhookHandler.IngestNote)
			r.Get("/logs", webhookHandler.ListLogs)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	// The store is in-memory, so the process is ready as soon as it serves
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
