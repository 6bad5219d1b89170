package common

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPageParams(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		defaultLimit int
		want         PageParams
	}{
		{"defaults", "/notes", 0, PageParams{Limit: 0, Offset: 0}},
		{"explicit values", "/notes?limit=10&offset=20", 0, PageParams{Limit: 10, Offset: 20}},
		{"default limit honored", "/notes", 25, PageParams{Limit: 25, Offset: 0}},
		{"negative values ignored", "/notes?limit=-1&offset=-5", 25, PageParams{Limit: 25, Offset: 0}},
		{"malformed values ignored", "/notes?limit=abc&offset=xyz", 0, PageParams{Limit: 0, Offset: 0}},
		{"zero limit means no limit", "/notes?limit=0", 25, PageParams{Limit: 0, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			assert.Equal(t, tt.want, ExtractPageParams(r, tt.defaultLimit))
		})
	}
}
