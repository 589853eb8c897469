package middleware

import (
	"context"
	"net/http"

	"github.com/mhdreza10/quizauth/internal/session"
)

type ctxKey string

const usernameKey ctxKey = "username"

// UsernameFrom returns the authenticated username stored by RequireSession.
func UsernameFrom(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok
}

// RequireSession gates protected routes. A request with an absent, invalid, or
// destroyed session token is redirected to the login page before any protected
// content is written.
func RequireSession(sessions *session.Manager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/login.php", http.StatusFound)
				return
			}
			username, err := sessions.RequireActive(cookie.Value)
			if err != nil {
				http.Redirect(w, r, "/login.php", http.StatusFound)
				return
			}
			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectIfAuthenticated sends callers that already hold an active session
// straight to the landing page instead of showing the login or register form
// again. Cookie presence alone is not enough; the token must resolve.
func RedirectIfAuthenticated(sessions *session.Manager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(cookieName); err == nil {
				if _, ok := sessions.Resolve(cookie.Value); ok {
					http.Redirect(w, r, "/index.php", http.StatusFound)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
