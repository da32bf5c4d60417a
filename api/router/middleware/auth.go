package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"parley/database"
	"parley/logger"
	"parley/models"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const currentUserKey contextKey = "currentUser"

// SessionCookieName is the cookie the auth callbacks set and RequireSession reads.
const SessionCookieName = "parley_session"

// RequireSession resolves the session token from the Authorization header
// (Bearer scheme) or the session cookie, loads the user, and stores it in the
// request context. Requests without a live session get a 401 ErrorResponse.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			writeJSONError(w, http.StatusUnauthorized, models.NewErrorResponse("Authentication required"))
			return
		}

		session, err := database.GetSessionByToken(token)
		if err != nil {
			if err != sql.ErrNoRows {
				logger.Error("RequireSession: Error looking up session: %v", err)
			}
			writeJSONError(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired session"))
			return
		}

		user, err := database.GetUserByID(session.UserID)
		if err != nil {
			logger.Error("RequireSession: Session %s points at missing user %d: %v", session.Token, session.UserID, err)
			writeJSONError(w, http.StatusUnauthorized, models.NewErrorResponse("Invalid or expired session"))
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromRequest extracts the session token from the Authorization header
// or, failing that, the session cookie. Returns "" when neither is present.
func TokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return parts[1]
		}
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// GetUserFromContext returns the authenticated user stored by RequireSession.
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(currentUserKey).(models.User)
	return user, ok
}

// WithUser returns a context carrying the given user. Exposed for handler tests.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}
