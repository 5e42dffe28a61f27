package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/learnovatex/platform/internal/domain"
	"github.com/learnovatex/platform/internal/usecase"
)

// BearerAuth authenticates requests carrying "Authorization: Bearer <token>"
// and stores the verified user id in the request context.
func BearerAuth(auth usecase.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeError(w, r, fmt.Errorf("missing bearer token: %w", domain.ErrUnauthorized), nil)
				return
			}
			claims, err := auth.VerifyToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, r, err, nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), claims.UserID)))
		})
	}
}
