package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"notehub-backend/application/services"
	"notehub-backend/domain/webhook"
	"notehub-backend/pkg/common"
	appErrors "notehub-backend/pkg/errors"
)

// WebhookTokenHeader carries the shared secret on webhook calls
const WebhookTokenHeader = "X-Webhook-Token"

// WebhookHandler handles webhook ingestion and log inspection requests
type WebhookHandler struct {
	webhooks *services.WebhookService
	logger   *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhooks *services.WebhookService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhooks: webhooks,
		logger:   logger,
	}
}

// IngestNote handles POST /webhooks/note
func (h *WebhookHandler) IngestNote(w http.ResponseWriter, r *http.Request) {
	var payload webhook.Payload
	if err := common.ParseJSONBody(w, r, &payload, maxBodyBytes); err != nil {
		common.RespondError(w, appErrors.NewValidationError("body", "must be valid JSON").WithCause(err))
		return
	}

	created, err := h.webhooks.Ingest(r.Context(), r.Header.Get(WebhookTokenHeader), payload)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, created)
}

// ListLogs handles GET /webhooks/logs
func (h *WebhookHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.webhooks.Logs(r.Context()))
}
