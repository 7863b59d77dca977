package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/linkhive/linkhive-server/internal/http/response"
)

// requireAuth is middleware that validates the static API token.
// Both "Token <t>" (linkding clients) and "Bearer <t>" schemes are
// accepted; the comparison is constant time.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Missing authorization header", s.logger)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || (parts[0] != "Token" && parts[0] != "Bearer") {
			response.Unauthorized(w, "Invalid authorization header format", s.logger)
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(s.authToken)) != 1 {
			response.Unauthorized(w, "Invalid token", s.logger)
			return
		}

		next.ServeHTTP(w, r)
	})
}
