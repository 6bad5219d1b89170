package note

import (
	"time"
	"unicode/utf8"

	pkgerrors "notehub-backend/pkg/errors"
)

// MaxTitleLength is the maximum allowed title length in characters
const MaxTitleLength = 100

// Note is the primary record managed by the service. Instances are owned by
// the store; callers only ever see copies.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateFields carries a partial update. Nil fields are left untouched.
type UpdateFields struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// New creates a note with validated title and deduplicated tags.
// Both timestamps are stamped to now, so created_at == updated_at on a
// fresh note.
func New(id int64, title, content string, tags []string, now time.Time) (*Note, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}

	return &Note{
		ID:        id,
		Title:     title,
		Content:   content,
		Tags:      DedupeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidateTitle enforces the title rules shared by create and update
func ValidateTitle(title string) error {
	if title == "" {
		return pkgerrors.NewValidationError("title", "must not be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return pkgerrors.NewValidationError("title", "must be at most 100 characters")
	}
	return nil
}

// ApplyUpdate applies the supplied fields and refreshes updated_at.
// The title is re-validated when supplied; created_at never changes.
func (n *Note) ApplyUpdate(fields UpdateFields, now time.Time) error {
	if fields.Title != nil {
		if err := ValidateTitle(*fields.Title); err != nil {
			return err
		}
		n.Title = *fields.Title
	}
	if fields.Content != nil {
		n.Content = *fields.Content
	}
	if fields.Tags != nil {
		n.Tags = DedupeTags(*fields.Tags)
	}
	n.UpdatedAt = now
	return nil
}

// Clone returns a deep copy so store internals never escape
func (n *Note) Clone() *Note {
	copied := *n
	copied.Tags = append([]string(nil), n.Tags...)
	return &copied
}

// HasTag reports whether the note carries the exact tag (case-sensitive)
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DedupeTags removes duplicate tags, preserving the order of first
// occurrence. Matching is exact and case-sensitive.
func DedupeTags(tags []string) []string {
	deduped := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		deduped = append(deduped, tag)
	}
	return deduped
}
