package server

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/users"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUser stores the resolved caller
	ContextKeyUser ContextKey = "user"
)

// RequireAuth is middleware that resolves the Bearer access token to a user.
// Handlers behind it can rely on callerFromContext returning a user.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, apperrors.ErrUnauthorized)
				return
			}

			caller, err := s.auth.ResolveCaller(r.Context(), token)
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, caller)
			next(w, r.WithContext(ctx))
		}
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>". The
// scheme is case-insensitive.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func callerFromContext(ctx context.Context) (*users.User, bool) {
	caller, ok := ctx.Value(ContextKeyUser).(*users.User)
	return caller, ok && caller != nil
}
