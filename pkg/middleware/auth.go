package middleware

import (
	"errors"
	"net/http"
	"strings"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/pkg/token"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

// Authenticate validates the bearer credential and resolves the identity
// behind it. The legacy x-auth-token header is checked before the standard
// Authorization header. On success the trimmed identity is attached to the
// request context and the request is forwarded unmodified.
func Authenticate(users repository.UserRepository, secret []byte, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractToken(r)
			if tokenStr == "" {
				utils.ResponseUnauthorized(w, "Access denied. No token provided.")
				return
			}

			claims, err := token.Verify(tokenStr, secret)
			if err != nil {
				logger.Warn("Token verification failed",
					zap.Error(err),
					zap.String("path", r.URL.Path))

				switch {
				case errors.Is(err, token.ErrExpired):
					utils.ResponseUnauthorized(w, "Token expired. Please log in again.")
				case errors.Is(err, token.ErrMalformed):
					utils.ResponseUnauthorized(w, "Invalid token format.")
				default:
					utils.ResponseUnauthorized(w, "Invalid token.")
				}
				return
			}

			// Resolve the identity; covers accounts deleted after issuance.
			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				logger.Error("Failed to resolve token subject",
					zap.Error(err),
					zap.String("user_id", claims.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				logger.Warn("Token subject not found", zap.String("user_id", claims.UserID.String()))
				utils.ResponseUnauthorized(w, "User not found.")
				return
			}

			ctx := utils.SetAuthUser(r.Context(), utils.AuthUser{
				ID:    user.ID,
				Email: user.Email,
				Role:  string(user.Role),
			})

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly rejects authenticated callers whose role is not admin. Role check
// is strict equality; there is no role hierarchy. Runs after Authenticate.
func AdminOnly(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetAuthUser(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if user.Role != string(entity.RoleAdmin) {
				logger.Warn("Non-admin access attempt",
					zap.String("user_id", user.ID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Forbidden: You do not have admin privileges.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractToken(r *http.Request) string {
	if legacy := r.Header.Get("x-auth-token"); legacy != "" {
		return legacy
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
