package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notehub-backend/application/services"
	"notehub-backend/infrastructure/config"
	"notehub-backend/infrastructure/observability"
	"notehub-backend/infrastructure/persistence/memory"
	"notehub-backend/interfaces/http/rest"
	"notehub-backend/pkg/auth"
)

func newTestServer(t *testing.T, secret string) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		ServerAddress:       ":0",
		Environment:         "test",
		WebhookSecret:       secret,
		EventLogCapacity:    20,
		WebhookRateLimit:    1000,
		WebhookRateRefillMS: 1000,
	}
	logger := zap.NewNop()
	metrics := observability.NewCollector("notehub_test")
	store := memory.NewNoteStore()
	eventLog := memory.NewEventLog(cfg.EventLogCapacity)

	notes := services.NewNoteService(store, metrics, logger)
	webhooks := services.NewWebhookService(store, eventLog, auth.NewGate(secret), metrics, logger)

	srv := httptest.NewServer(rest.NewRouter(cfg, notes, webhooks, metrics, logger).Setup())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestCreateNote(t *testing.T) {
	srv := newTestServer(t, "")

	resp, body := doJSON(t, "POST", srv.URL+"/api/v1/notes", map[string]interface{}{
		"title":   "Test Note",
		"content": "This is a test note.",
		"tags":    []string{"test", "note"},
	}, nil)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Test Note", body["title"])
	assert.Equal(t, "This is a test note.", body["content"])
	assert.Equal(t, []interface{}{"test", "note"}, body["tags"])
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, body["created_at"], body["updated_at"])
}

func TestCreateNote_ValidationFailures(t *testing.T) {
	srv := newTestServer(t, "")

	t.Run("missing title", func(t *testing.T) {
		resp, body := doJSON(t, "POST", srv.URL+"/api/v1/notes", map[string]interface{}{
			"content": "no title",
		}, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		errInfo := body["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION", errInfo["type"])
		assert.Equal(t, "title", errInfo["details"].(map[string]interface{})["field"])
	})

	t.Run("title too long", func(t *testing.T) {
		resp, _ := doJSON(t, "POST", srv.URL+"/api/v1/notes", map[string]interface{}{
			"title": strings.Repeat("a", 101),
		}, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		req, err := http.NewRequest("POST", srv.URL+"/api/v1/notes", strings.NewReader("{not json"))
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestCreateNote_IdempotencyKeyReplay(t *testing.T) {
	srv := newTestServer(t, "")
	headers := map[string]string{"Idempotency-Key": "req-abc"}

	resp1, body1 := doJSON(t, "POST", srv.URL+"/api/v1/notes", map[string]interface{}{"title": "first"}, headers)
	resp2, body2 := doJSON(t, "POST", srv.URL+"/api/v1/notes", map[string]interface{}{"title": "second"}, headers)

	assert.Equal(t, http.StatusCreated, resp1.StatusCode)
	assert.Equal(t, http.StatusCreated, resp2.StatusCode)
	assert.Equal(t, body1["id"], body2["id"])
	assert.Equal(t, "first", body2["title"])

	// Only one note exists
	_, list := doJSON(t, "GET", srv.URL+"/api/v1/notes", nil, nil)
	assert.Equal(t, float64(1), list["total"])
}

func TestListNotes_FilteringAndPagination(t *testing.T) {
	srv := newTestServer(t, "")

	for i, seed := range []struct {
		title string
		tags  []string
	}{
		{"Buy milk", []string{"shopping"}},
		{"Plan holiday", []string{"travel"}},
		{"Milk delivery schedule", []string{"shopping", "home"}},
	} {
		resp, _ := doJSON(t, "POST", srv.URL+"/api/v1/notes", map[string]interface{}{
			"title": seed.title,
			"tags":  seed.tags,
		}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode, "note %d", i)
	}

	t.Run("query filter", func(t *testing.T) {
		resp, body := doJSON(t, "GET", srv.URL+"/api/v1/notes?q=milk", nil, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(2), body["total"])
	})

	t.Run("tag filter", func(t *testing.T) {
		_, body := doJSON(t, "GET", srv.URL+"/api/v1/notes?tag=shopping", nil, nil)
		assert.Equal(t, float64(2), body["total"])
	})

	t.Run("combined filters", func(t *testing.T) {
		_, body := doJSON(t, "GET", srv.URL+"/api/v1/notes?q=delivery&tag=shopping", nil, nil)
		assert.Equal(t, float64(1), body["total"])
	})

	t.Run("pagination", func(t *testing.T) {
		_, body := doJSON(t, "GET", srv.URL+"/api/v1/notes?limit=1&offset=1", nil, nil)

		assert.Equal(t, float64(3), body["total"])
		notes := body["notes"].([]interface{})
		require.Len(t, notes, 1)
		assert.Equal(t, "Plan holiday", notes[0].(map[string]interface{})["title"])
	})

	t.Run("offset beyond range", func(t *testing.T) {
		_, body := doJSON(t, "GET", srv.URL+"/api/v1/notes?offset=50", nil, nil)

		assert.Equal(t, float64(3), body["total"])
		assert.Empty(t, body["notes"])
	})
}

func TestGetNote(t *testing.T) {
	srv := newTestServer(t, "")

	_, created := doJSON(t, "POST", srv.URL+"/api/v1/notes", map[string]interface{}{"title": "findme"}, nil)
	id := int64(created["id"].(float64))

	t.Run("found", func(t *testing.T) {
		resp, body := doJSON(t, "GET", fmt.Sprintf("%s/api/v1/notes/%d", srv.URL, id), nil, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "findme", body["title"])
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, body := doJSON(t, "GET", srv.URL+"/api/v1/notes/999", nil, nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", body["error"].(map[string]interface{})["type"])
	})

	t.Run("non-numeric id", func(t *testing.T) {
		resp, _ := doJSON(t, "GET", srv.URL+"/api/v1/notes/abc", nil, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateNote(t *testing.T) {
	srv := newTestServer(t, "")

	_, created := doJSON(t, "POST", srv.URL+"/api/v1/notes", map[string]interface{}{
		"title":   "original",
		"content": "body",
		"tags":    []string{"a"},
	}, nil)
	url := fmt.Sprintf("%s/api/v1/notes/%d", srv.URL, int64(created["id"].(float64)))

	t.Run("partial update keeps other fields", func(t *testing.T) {
		resp, body := doJSON(t, "PUT", url, map[string]interface{}{"title": "changed"}, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "changed", body["title"])
		assert.Equal(t, "body", body["content"])
		assert.Equal(t, []interface{}{"a"}, body["tags"])
	})

	t.Run("empty title rejected", func(t *testing.T) {
		resp, _ := doJSON(t, "PUT", url, map[string]interface{}{"title": ""}, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, _ := doJSON(t, "PUT", srv.URL+"/api/v1/notes/999", map[string]interface{}{"title": "x"}, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteNote(t *testing.T) {
	srv := newTestServer(t, "")

	_, created := doJSON(t, "POST", srv.URL+"/api/v1/notes", map[string]interface{}{"title": "doomed"}, nil)
	url := fmt.Sprintf("%s/api/v1/notes/%d", srv.URL, int64(created["id"].(float64)))

	resp, _ := doJSON(t, "DELETE", url, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, "GET", url, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, "DELETE", url, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebhookIngest(t *testing.T) {
	t.Run("open gate creates note", func(t *testing.T) {
		srv := newTestServer(t, "")

		resp, body := doJSON(t, "POST", srv.URL+"/api/v1/webhooks/note", map[string]interface{}{
			"source":  "n8n",
			"message": "Reminder: submit timesheet",
			"tags":    []string{"admin"},
		}, nil)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "Reminder: submit timesheet", body["title"])
		assert.Equal(t, []interface{}{"admin", "source:n8n"}, body["tags"])
	})

	t.Run("missing token rejected when secret configured", func(t *testing.T) {
		srv := newTestServer(t, "s3cret")

		resp, body := doJSON(t, "POST", srv.URL+"/api/v1/webhooks/note", map[string]interface{}{
			"message": "m",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", body["error"].(map[string]interface{})["type"])
	})

	t.Run("valid token accepted", func(t *testing.T) {
		srv := newTestServer(t, "s3cret")

		resp, _ := doJSON(t, "POST", srv.URL+"/api/v1/webhooks/note", map[string]interface{}{
			"message": "m",
		}, map[string]string{"X-Webhook-Token": "s3cret"})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("empty message rejected", func(t *testing.T) {
		srv := newTestServer(t, "")

		resp, _ := doJSON(t, "POST", srv.URL+"/api/v1/webhooks/note", map[string]interface{}{
			"source": "n8n",
		}, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestWebhookLogs(t *testing.T) {
	srv := newTestServer(t, "")

	for i := 0; i < 3; i++ {
		resp, _ := doJSON(t, "POST", srv.URL+"/api/v1/webhooks/note", map[string]interface{}{
			"message": fmt.Sprintf("event %d", i),
		}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	req, err := http.NewRequest("GET", srv.URL+"/api/v1/webhooks/logs", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var events []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	require.Len(t, events, 3)

	// Newest first
	assert.Equal(t, "event 2", events[0]["payload"].(map[string]interface{})["message"])
	assert.NotNil(t, events[0]["resulting_note_id"])
}

func TestOperationalEndpoints(t *testing.T) {
	srv := newTestServer(t, "")

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}
