package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"socialhub_backend/internal/auth"
	"socialhub_backend/internal/httputil"
	"socialhub_backend/internal/metrics"
	"socialhub_backend/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// SessionKey is the context key for the resolved session
	SessionKey contextKey = "session"
)

// SessionMiddleware resolves the caller's session on every request and stores
// it in the context. Lookup failures are logged and the request continues
// anonymously; it never grants access on error.
func SessionMiddleware(provider auth.Provider) func(http.Handler) http.Handler {
	log := logrus.WithField("component", "SessionMiddleware")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := provider.GetSession(r.Context(), r.Header)
			if err != nil {
				metrics.SessionLookups.WithLabelValues("error").Inc()
				log.WithFields(logrus.Fields{
					"request_id": middleware.GetReqID(r.Context()),
					"path":       r.URL.Path,
				}).WithError(err).Warn("Session lookup failed, treating request as anonymous")
				session = nil
			}

			if session != nil {
				r = r.WithContext(WithSession(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects requests that carry no session with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserIDFromContext(r.Context()); !ok {
			httputil.WriteUnauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// SessionFromContext returns the session stored by SessionMiddleware, or nil.
func SessionFromContext(ctx context.Context) *model.Session {
	session, _ := ctx.Value(SessionKey).(*model.Session)
	return session
}

// UserIDFromContext extracts the authenticated user's ID from the request context
// Returns the user ID and true if found, or "" and false if not found
func UserIDFromContext(ctx context.Context) (string, bool) {
	session := SessionFromContext(ctx)
	if session == nil || session.User.ID == "" {
		return "", false
	}
	return session.User.ID, true
}
