package util

import (
	"net/http"
	"strings"
)

// StripPathPrefix removes prefix from the request path so the API can be served
// behind a gateway that forwards /<prefix>/api/v1/... unchanged.
func StripPathPrefix(prefix string) func(http.Handler) http.Handler {
	prefix = "/" + strings.Trim(prefix, "/")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if prefix != "/" && strings.HasPrefix(r.URL.Path, prefix) {
				r.URL.Path = strings.TrimPrefix(r.URL.Path, prefix)
				r.URL.RawPath = ""
				if r.URL.Path == "" {
					r.URL.Path = "/"
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
