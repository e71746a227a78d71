package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows the gallery frontend, usually served from another origin, to
// call the API with the admin bearer token.
//
// With no allowed origins configured any origin is accepted and reflected
// back (never "*", since credentials are allowed).
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(allowedOrigins) == 0 {
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	} else {
		opts.AllowedOrigins = allowedOrigins
	}
	return cors.Handler(opts)
}
