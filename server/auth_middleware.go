package server

import (
	"context"
	"net/http"
	"strings"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyAccountID stores the authenticated account ID
	ContextKeyAccountID ContextKey = "account_id"
	// ContextKeyToken stores the raw bearer token for logout
	ContextKeyToken ContextKey = "token"
)

// RequireAuth validates the bearer token and injects the account id into the
// request context. The legacy x-auth-token header is honored for the existing
// client, with Authorization: Bearer taking precedence.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respondError(w, http.StatusUnauthorized, "missing token")
				return
			}

			accountID, err := s.issuer.Validate(r.Context(), token)
			if err != nil {
				respondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAccountID, accountID)
			ctx = context.WithValue(ctx, ContextKeyToken, token)
			next(w, r.WithContext(ctx))
		}
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return strings.TrimSpace(r.Header.Get("x-auth-token"))
}

func accountIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyAccountID).(string)
	return id
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(ContextKeyToken).(string)
	return token
}
