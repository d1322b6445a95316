package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/task-api/internal/api/shared"
	"github.com/phrazzld/task-api/internal/service/auth"
)

// DefaultPublicPaths are reachable without a token.
var DefaultPublicPaths = []string{"/auth/register", "/auth/login", "/health"}

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService  auth.JWTService
	publicPaths map[string]struct{}
}

// NewAuthMiddleware creates a new AuthMiddleware. Requests for publicPaths
// skip authentication; with no paths given, DefaultPublicPaths is used.
func NewAuthMiddleware(jwtService auth.JWTService, publicPaths ...string) *AuthMiddleware {
	if len(publicPaths) == 0 {
		publicPaths = DefaultPublicPaths
	}
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}
	return &AuthMiddleware{
		jwtService:  jwtService,
		publicPaths: public,
	}
}

// Authenticate validates the bearer token in the Authorization header and
// binds the token subject to the request context as a shared.Identity.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := m.publicPaths[r.URL.Path]; ok {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || token == "" || strings.ContainsRune(token, ' ') {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			var opts []shared.ResponseOption
			if !errors.Is(err, auth.ErrInvalidToken) {
				opts = append(opts, shared.WithElevatedLogLevel())
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid or expired token", err, opts...)
			return
		}

		ctx := shared.WithIdentity(r.Context(), shared.Identity{Email: claims.Subject})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
