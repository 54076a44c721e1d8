package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripPathPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		path   string
		want   string
	}{
		{"prefixed path", "/sustainamine", "/sustainamine/api/v1/info", "/api/v1/info"},
		{"prefix without slashes", "sustainamine/", "/sustainamine/health", "/health"},
		{"prefix only", "/sustainamine", "/sustainamine", "/"},
		{"unprefixed path", "/sustainamine", "/api/v1/info", "/api/v1/info"},
		{"empty prefix", "", "/api/v1/info", "/api/v1/info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := StripPathPrefix(tt.prefix)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.URL.Path
			}))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, got)
		})
	}
}
