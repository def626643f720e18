package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"clozedrill/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const LearnerContextKey ContextKey = "learner"

const learnerCookieName = "learner_session"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	issuer   *security.TokenIssuer
	duration time.Duration
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(issuer *security.TokenIssuer, duration time.Duration) *Middleware {
	return &Middleware{issuer: issuer, duration: duration}
}

// WithLearner attaches a learner identity to the request. A valid session
// cookie keeps its learner ID; a missing or invalid cookie gets a fresh
// anonymous identity issued on the spot, so every request carries one.
func (m *Middleware) WithLearner(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(learnerCookieName); err == nil {
			if learnerID, err := m.issuer.Verify(cookie.Value); err == nil {
				ctx := context.WithValue(r.Context(), LearnerContextKey, learnerID)
				next(w, r.WithContext(ctx))
				return
			}
			http.SetCookie(w, security.CreateDeleteCookie(r, learnerCookieName))
		}

		token, learnerID, err := m.issuer.Issue()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Internal server error", "Failed to issue learner token", err)
			return
		}
		http.SetCookie(w, security.CreateSessionCookie(r, learnerCookieName, token, time.Now().Add(m.duration)))

		ctx := context.WithValue(r.Context(), LearnerContextKey, learnerID)
		next(w, r.WithContext(ctx))
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// LearnerFromContext retrieves the learner ID from the request context
func LearnerFromContext(ctx context.Context) string {
	learnerID, _ := ctx.Value(LearnerContextKey).(string)
	return learnerID
}
