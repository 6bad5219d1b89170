package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"notehub-backend/domain/note"
	"notehub-backend/domain/webhook"
	"notehub-backend/infrastructure/observability"
	"notehub-backend/infrastructure/persistence/memory"
	"notehub-backend/pkg/auth"
	appErrors "notehub-backend/pkg/errors"
	"notehub-backend/pkg/utils"
)

// titleRunes is how many characters of the message become the note title
const titleRunes = 40

// WebhookService turns inbound automation payloads into notes and records
// every accepted call in the event log, whether or not note creation
// succeeded.
type WebhookService struct {
	store   *memory.NoteStore
	log     *memory.EventLog
	gate    *auth.Gate
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(
	store *memory.NoteStore,
	log *memory.EventLog,
	gate *auth.Gate,
	metrics *observability.Collector,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		store:   store,
		log:     log,
		gate:    gate,
		metrics: metrics,
		logger:  logger,
	}
}

// Ingest validates the call, derives a note from the payload and logs the
// event. The token is checked before any other processing; a missing or
// wrong token when a secret is configured rejects the call without logging.
func (s *WebhookService) Ingest(ctx context.Context, token string, payload webhook.Payload) (*note.Note, error) {
	if !s.gate.Check(token) {
		s.metrics.WebhookRejected.WithLabelValues("unauthorized").Inc()
		s.logger.Warn("webhook rejected: bad token", zap.String("source", payload.Source))
		return nil, appErrors.NewUnauthorizedError("invalid webhook token")
	}

	if err := utils.ValidateStruct(payload); err != nil {
		s.metrics.WebhookRejected.WithLabelValues("invalid_payload").Inc()
		return nil, err
	}
	if strings.TrimSpace(payload.Message) == "" {
		s.metrics.WebhookRejected.WithLabelValues("invalid_payload").Inc()
		return nil, appErrors.NewValidationError("message", "must not be empty")
	}

	title := truncateRunes(payload.Message, titleRunes)
	tags := note.DedupeTags(payload.Tags)
	if payload.Source != "" {
		sourceTag := "source:" + payload.Source
		tags = note.DedupeTags(append(tags, sourceTag))
	}

	created, _, err := s.store.Create(ctx, title, payload.Message, tags, "")

	event := &webhook.Event{
		ID:         uuid.New().String(),
		ReceivedAt: time.Now().UTC(),
		Source:     payload.Source,
		Payload:    payload,
	}
	outcome := "created"
	if err != nil {
		outcome = "failed"
	} else {
		event.ResultingNoteID = &created.ID
	}
	s.log.Append(event)
	s.metrics.WebhookEvents.WithLabelValues(sourceLabel(payload.Source), outcome).Inc()

	if err != nil {
		s.logger.Error("webhook note creation failed",
			zap.String("source", payload.Source),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("webhook note created",
		zap.String("source", payload.Source),
		zap.Int64("noteID", created.ID),
	)
	return created, nil
}

// Logs returns the recorded webhook events newest-first
func (s *WebhookService) Logs(ctx context.Context) []*webhook.Event {
	return s.log.List()
}

// truncateRunes truncates s to at most n characters, counting runes rather
// than bytes so multi-byte messages are not cut mid-character.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// sourceLabel keeps the metric label small and non-empty
func sourceLabel(source string) string {
	if source == "" {
		return "unknown"
	}
	return source
}
