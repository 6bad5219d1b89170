package services

import (
	"context"

	"go.uber.org/zap"

	"notehub-backend/domain/note"
	"notehub-backend/infrastructure/observability"
	"notehub-backend/infrastructure/persistence/memory"
)

// NoteService exposes the note collection to the HTTP layer, adding
// logging and metrics around the store.
type NoteService struct {
	store   *memory.NoteStore
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewNoteService creates a new note service
func NewNoteService(store *memory.NoteStore, metrics *observability.Collector, logger *zap.Logger) *NoteService {
	return &NoteService{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// ListResult is the result of a List call: one page plus the total number
// of matches before pagination.
type ListResult struct {
	Notes  []*note.Note `json:"notes"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// Create stores a new note, honoring the idempotency key when supplied
func (s *NoteService) Create(ctx context.Context, title, content string, tags []string, idempotencyKey string) (*note.Note, error) {
	n, created, err := s.store.Create(ctx, title, content, tags, idempotencyKey)
	if err != nil {
		return nil, err
	}

	if created {
		s.metrics.NotesCreated.Inc()
		s.logger.Info("note created",
			zap.Int64("noteID", n.ID),
			zap.Int("tags", len(n.Tags)),
		)
	} else {
		s.logger.Info("idempotent create replayed",
			zap.Int64("noteID", n.ID),
			zap.String("idempotencyKey", idempotencyKey),
		)
	}

	return n, nil
}

// Get retrieves a note by id
func (s *NoteService) Get(ctx context.Context, id int64) (*note.Note, error) {
	return s.store.Get(ctx, id)
}

// List returns the notes matching the filters plus pagination metadata
func (s *NoteService) List(ctx context.Context, query, tag string, limit, offset int) *ListResult {
	notes, total := s.store.List(ctx, query, tag, limit, offset)
	return &ListResult{
		Notes:  notes,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}

// Update applies a partial update to a note
func (s *NoteService) Update(ctx context.Context, id int64, fields note.UpdateFields) (*note.Note, error) {
	n, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info("note updated", zap.Int64("noteID", id))
	return n, nil
}

// Delete removes a note permanently
func (s *NoteService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.metrics.NotesDeleted.Inc()
	s.logger.Info("note deleted", zap.Int64("noteID", id))
	return nil
}
