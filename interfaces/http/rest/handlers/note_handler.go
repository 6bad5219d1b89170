package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"notehub-backend/application/services"
	"notehub-backend/domain/note"
	"notehub-backend/pkg/common"
	appErrors "notehub-backend/pkg/errors"
	"notehub-backend/pkg/utils"
)

// maxBodyBytes caps the size of accepted request bodies
const maxBodyBytes = 1 << 20

// NoteHandler handles note-related HTTP requests
type NoteHandler struct {
	notes            *services.NoteService
	defaultPageLimit int
	logger           *zap.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(notes *services.NoteService, defaultPageLimit int, logger *zap.Logger) *NoteHandler {
	return &NoteHandler{
		notes:            notes,
		defaultPageLimit: defaultPageLimit,
		logger:           logger,
	}
}

// CreateNoteRequest represents the request body for creating a note
type CreateNoteRequest struct {
	Title   string   `json:"title" validate:"required,max=100"`
	Content string   `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// UpdateNoteRequest represents the request body for a partial update
type UpdateNoteRequest struct {
	Title   *string   `json:"title,omitempty" validate:"omitempty,max=100"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

// CreateNote handles POST /notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, appErrors.NewValidationError("body", "must be valid JSON").WithCause(err))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	created, err := h.notes.Create(r.Context(), req.Title, req.Content, req.Tags, r.Header.Get("Idempotency-Key"))
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, created)
}

// GetNote handles GET /notes/{noteID}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	n, err := h.notes.Get(r.Context(), id)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, n)
}

// ListNotes handles GET /notes
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	page := common.ExtractPageParams(r, h.defaultPageLimit)

	result := h.notes.List(
		r.Context(),
		r.URL.Query().Get("q"),
		r.URL.Query().Get("tag"),
		page.Limit,
		page.Offset,
	)

	common.RespondJSON(w, http.StatusOK, result)
}

// UpdateNote handles PUT /notes/{noteID}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	var req UpdateNoteRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, appErrors.NewValidationError("body", "must be valid JSON").WithCause(err))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, err)
		return
	}

	updated, err := h.notes.Update(r.Context(), id, note.UpdateFields{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, updated)
}

// DeleteNote handles DELETE /notes/{noteID}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteID(r)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	if err := h.notes.Delete(r.Context(), id); err != nil {
		common.RespondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// noteID parses the path parameter. A non-numeric id cannot name any
// stored note, so it maps to not found rather than a bad request.
func noteID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "noteID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.NewNotFoundError("note", raw)
	}
	return id, nil
}
