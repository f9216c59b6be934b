package middleware

import (
	"net/http"
	"strings"

	"quill/internal/auth"
	"quill/internal/httputil"
)

// publicRoutes are reachable without a bearer token: registration, login,
// the health check and the public post listing.
var publicRoutes = map[string]string{
	"POST /api/users":       "",
	"POST /api/users/login": "",
	"GET /api/posts":        "",
	"GET /health":           "",
}

// Auth resolves the Authorization bearer token to an actor ID and stores it
// in the request context. Requests to non-public routes without a valid
// token are rejected before they reach a handler.
func Auth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicRoutes[r.Method+" "+r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			userID, err := tokens.Verify(tokenString)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}
