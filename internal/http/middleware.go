package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ishiply/storefront/internal/session"
)

// SessionCookie names the browser cookie carrying the session token.
const SessionCookie = "storefront_session"

type contextKey string

const (
	sessionIDKey contextKey = "sessionID"
	userIDKey    contextKey = "userID"
)

// RequireSession resolves the session cookie and rejects anything without a
// live session before a handler touches storage.
func RequireSession(sessions session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			userID, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					writeError(w, http.StatusUnauthorized, "authentication required")
					return
				}
				writeError(w, http.StatusInternalServerError, "failed to resolve session")
				return
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, cookie.Value)
			ctx = context.WithValue(ctx, userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionFromContext(ctx context.Context) (sessionID, userID string) {
	sessionID, _ = ctx.Value(sessionIDKey).(string)
	userID, _ = ctx.Value(userIDKey).(string)
	return sessionID, userID
}
