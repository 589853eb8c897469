package handlers

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mhdreza10/quizauth/internal/middleware"
	"github.com/mhdreza10/quizauth/internal/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed static
var staticFS embed.FS

// ==========================
// Router
// ==========================
// Router assembles the full HTTP surface. The same wiring serves production
// (cmd/web) and the handler tests.
func Router(authH *AuthHandler, quizH *QuizHandler, sessions *session.Manager, hsts bool) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders(hsts))
	r.Use(middleware.Prometheus)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	// Public: login and registration. Holders of an active session are sent
	// straight to the landing page instead of the forms.
	r.Group(func(r chi.Router) {
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.With(middleware.RedirectIfAuthenticated(sessions, CookieName)).
			Get("/login.php", authH.LoginForm)
		r.Post("/login.php", authH.Login)
		r.With(middleware.RedirectIfAuthenticated(sessions, CookieName)).
			Get("/register.php", authH.RegisterForm)
		r.Post("/register.php", authH.Register)
		r.Get("/logout.php", authH.Logout)
	})

	// Protected: everything behind RequireSession redirects to /login.php
	// when no active session is presented.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions, CookieName))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/index.php", http.StatusFound)
		})
		r.Get("/index.php", quizH.Index)
	})

	return r
}
