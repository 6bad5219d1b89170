package di

import (
	"go.uber.org/zap"

	"notehub-backend/application/services"
	"notehub-backend/infrastructure/config"
	"notehub-backend/infrastructure/observability"
	"notehub-backend/infrastructure/persistence/memory"
	"notehub-backend/interfaces/http/rest"
	"notehub-backend/pkg/auth"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	Metrics        *observability.Collector
	NoteStore      *memory.NoteStore
	EventLog       *memory.EventLog
	Gate           *auth.Gate
	NoteService    *services.NoteService
	WebhookService *services.WebhookService
	Router         *rest.Router
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideMetrics creates the application metrics collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("notehub")
}

// ProvideNoteStore creates the in-memory note store
func ProvideNoteStore() *memory.NoteStore {
	return memory.NewNoteStore()
}

// ProvideEventLog creates the bounded webhook event log
func ProvideEventLog(cfg *config.Config) *memory.EventLog {
	return memory.NewEventLog(cfg.EventLogCapacity)
}

// ProvideGate creates the webhook auth gate
func ProvideGate(cfg *config.Config) *auth.Gate {
	return auth.NewGate(cfg.WebhookSecret)
}

// ProvideNoteService creates the note service
func ProvideNoteService(store *memory.NoteStore, metrics *observability.Collector, logger *zap.Logger) *services.NoteService {
	return services.NewNoteService(store, metrics, logger)
}

// ProvideWebhookService creates the webhook ingestion service
func ProvideWebhookService(
	store *memory.NoteStore,
	log *memory.EventLog,
	gate *auth.Gate,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.WebhookService {
	return services.NewWebhookService(store, log, gate, metrics, logger)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	notes *services.NoteService,
	webhooks *services.WebhookService,
	metrics *observability.Collector,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(cfg, notes, webhooks, metrics, logger)
}
