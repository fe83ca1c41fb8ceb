package middleware

import (
	"net/http"
)

// CORSHeaders stamps the allow-origin and allow-credentials headers on every
// response, including those answering requests without an Origin header.
func CORSHeaders(allowedOrigin string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			next.ServeHTTP(w, r)
		})
	}
}
