package auth

import (
	"net/http"
	"strings"
)

// Validator checks an admin token. *TokenService implements it, as does the
// service layer's AuthService.
type Validator interface {
	Validate(token string) error
}

// RequireAdmin returns middleware that rejects requests without a valid admin
// token in the Authorization header.
//
// USAGE WITH CHI:
//
//	r.Route("/api/admin", func(r chi.Router) {
//	    r.Use(auth.RequireAdmin(tokens))
//	    r.Post("/photos", ...)
//	})
//
// Rejections never reach the handler and carry a JSON body so the admin page
// can show a message.
func RequireAdmin(tokens Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok || tokens.Validate(token) != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid admin token required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
