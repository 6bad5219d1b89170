package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"notehub-backend/domain/note"
	appErrors "notehub-backend/pkg/errors"
)

// NoteStore provides an in-memory implementation of the note collection.
// The id counter and the idempotency map are mutated only under the same
// write lock as the note map, so concurrent creates cannot mint duplicate
// ids or lose idempotency records.
type NoteStore struct {
	mu          sync.RWMutex
	notes       map[int64]*note.Note
	idempotency map[string]int64
	nextID      int64
}

// NewNoteStore creates an empty note store
func NewNoteStore() *NoteStore {
	return &NoteStore{
		notes:       make(map[int64]*note.Note),
		idempotency: make(map[string]int64),
	}
}

// Create validates and stores a new note. When idempotencyKey has been seen
// before and the recorded note still exists, the original note is returned
// unchanged with created=false and nothing is mutated. A key whose note has
// since been deleted is treated as stale: a fresh note is created and the
// key re-pointed.
func (s *NoteStore) Create(ctx context.Context, title, content string, tags []string, idempotencyKey string) (*note.Note, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idempotencyKey != "" {
		if id, seen := s.idempotency[idempotencyKey]; seen {
			if existing, ok := s.notes[id]; ok {
				return existing.Clone(), false, nil
			}
		}
	}

	created, err := note.New(s.nextID+1, title, content, tags, time.Now().UTC())
	if err != nil {
		return nil, false, err
	}

	s.nextID++
	s.notes[created.ID] = created
	if idempotencyKey != "" {
		s.idempotency[idempotencyKey] = created.ID
	}

	return created.Clone(), true, nil
}

// Get retrieves a note by id
func (s *NoteStore) Get(ctx context.Context, id int64) (*note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, appErrors.NewNotFoundError("note", id)
	}
	return n.Clone(), nil
}

// List returns the page of notes matching the filters plus the total match
// count before pagination. Query matches case-insensitively against title
// or content; tag matches exactly. Results are ordered by ascending id.
// A limit of 0 means no limit; an out-of-range offset yields an empty page.
func (s *NoteStore) List(ctx context.Context, query, tag string, limit, offset int) ([]*note.Note, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)

	matched := make([]*note.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if query != "" &&
			!strings.Contains(strings.ToLower(n.Title), query) &&
			!strings.Contains(strings.ToLower(n.Content), query) {
			continue
		}
		if tag != "" && !n.HasTag(tag) {
			continue
		}
		matched = append(matched, n)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	if offset >= total {
		return []*note.Note{}, total
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	page := make([]*note.Note, len(matched))
	for i, n := range matched {
		page[i] = n.Clone()
	}
	return page, total
}

// Update applies a partial update to an existing note
func (s *NoteStore) Update(ctx context.Context, id int64, fields note.UpdateFields) (*note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, appErrors.NewNotFoundError("note", id)
	}

	if err := n.ApplyUpdate(fields, time.Now().UTC()); err != nil {
		return nil, err
	}
	return n.Clone(), nil
}

// Delete removes a note permanently. Idempotency-key mappings pointing at
// the deleted note are left in place; Create detects and re-points them.
func (s *NoteStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return appErrors.NewNotFoundError("note", id)
	}
	delete(s.notes, id)
	return nil
}

// Count returns the number of stored notes
func (s *NoteStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}
