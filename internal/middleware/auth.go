package middleware

import (
	"context"
	"net/http"

	"github.com/pandalens/pandalens-api/internal/pkg/jwt"
	"github.com/pandalens/pandalens-api/internal/pkg/logger"
	"github.com/pandalens/pandalens-api/internal/pkg/response"
	"github.com/pandalens/pandalens-api/internal/pkg/session"
)

// Auth returns middleware that requires a valid access token.
func Auth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.AuthRequired(w)
				return
			}

			token, ok := jwt.BearerToken(header)
			if !ok {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				if err == jwt.ErrExpiredToken {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r, claims)))
		})
	}
}

// OptionalAuth attaches a session when a valid token is present and lets
// guests through otherwise. A present but invalid token is still rejected so
// clients notice an expired session instead of silently acting as a guest.
func OptionalAuth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := jwt.BearerToken(header)
			if !ok {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r, claims)))
		})
	}
}

func withClaims(r *http.Request, claims *jwt.Claims) context.Context {
	ctx := session.WithSession(r.Context(), &session.Session{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	})
	l := logger.FromContext(ctx).With().Str("user_id", claims.UserID.String()).Logger()
	return logger.WithContext(ctx, l)
}

// RequireRole returns middleware that checks user role
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := session.FromContext(r.Context())
			if s.IsGuest() {
				response.AuthRequired(w)
				return
			}
			for _, role := range roles {
				if s.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "Insufficient permissions")
		})
	}
}
