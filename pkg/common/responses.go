package common

import (
	"encoding/json"
	"net/http"

	appErrors "notehub-backend/pkg/errors"
)

// ErrorInfo contains error details surfaced to API clients
type ErrorInfo struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the error envelope returned for non-2xx responses
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// RespondError maps an application error to its HTTP status and error body.
// Errors that are not AppErrors are surfaced as generic internal errors so
// no internal detail leaks to clients.
func RespondError(w http.ResponseWriter, err error) {
	appErr := appErrors.GetAppError(err)
	if appErr == nil {
		appErr = appErrors.NewInternalError("internal server error")
	}

	RespondJSON(w, appErr.HTTPStatus, ErrorResponse{
		Error: ErrorInfo{
			Type:    string(appErr.Type),
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

// ParseJSONBody parses a JSON request body with a size limit
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}
