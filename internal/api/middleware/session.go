package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const (
	SessionIDKey contextKey = "sessionID"

	// SessionCookieName is the cookie that identifies an anonymous session.
	SessionCookieName = "sessionId"
)

// RequireSession rejects requests without a non-empty sessionId cookie.
// The cookie value is trusted as-is: it is neither signed nor looked up.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := SessionFromRequest(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized."})
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromRequest reads the session id straight from the cookie.
func SessionFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func GetSessionID(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)
	return sessionID, ok && sessionID != ""
}

// IssueSessionCookie mints a new random session id and sets it on the
// response for the whole site.
func IssueSessionCookie(w http.ResponseWriter, ttl time.Duration) string {
	sessionID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sessionID
}
