package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type sessionIdKey string

const SessionIDKey sessionIdKey = "sessionId"

const (
	sessionCookieName = "scid"
	sessionCookieAge  = 7 * 24 * time.Hour
)

// WithSession attaches a stable session id to every request. The auth layer
// (out of scope here) writes member identity under the same id in the
// session store; requests without a cookie get a fresh id, which the
// identity resolver will later back with a guest identity.
func WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    sessionID,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Path:     "/",
				Expires:  time.Now().Add(sessionCookieAge),
			})
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
