package common

import (
	"net/http"
	"strconv"
)

// PageParams represents limit/offset pagination parameters.
// A Limit of 0 means no limit.
type PageParams struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ExtractPageParams extracts pagination parameters from the request query.
// Negative or malformed values fall back to the defaults.
func ExtractPageParams(r *http.Request, defaultLimit int) PageParams {
	params := PageParams{Limit: defaultLimit}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l >= 0 {
			params.Limit = l
		}
	}

	if offset := r.URL.Query().Get("offset"); offset != "" {
		if o, err := strconv.Atoi(offset); err == nil && o >= 0 {
			params.Offset = o
		}
	}

	return params
}
