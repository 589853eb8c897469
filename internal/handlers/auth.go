package handlers

import (
	"errors"
	"net/http"

	"github.com/mhdreza10/quizauth/internal/auth"
	"github.com/mhdreza10/quizauth/internal/forms"
	"github.com/mhdreza10/quizauth/internal/session"
)

// CookieName carries the session token. Deleting the cookie has the same
// effect as destroying the session: RequireActive fails either way.
const CookieName = "quiz_session"

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Auth     *auth.Service
	Sessions *session.Manager
}

type loginPage struct {
	Error    string
	Username string
}

type registerPage struct {
	Error    string
	Name     string
	Email    string
	Username string
}

// ==========================
// Login Form (GET /login.php)
// ==========================
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, "login.html", loginPage{})
}

// ==========================
// Login (POST /login.php)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, http.StatusBadRequest, "login.html", loginPage{Error: "Invalid form submission"})
		return
	}

	f := forms.BindLogin(r)

	token, err := h.Auth.Login(r.Context(), f)
	if err != nil {
		msg, ok := userMessage(err)
		if !ok {
			renderServerError(w, err)
			return
		}
		// Failed attempts re-render the form; the username is echoed back
		// (escaped by the template), the password never is.
		render(w, http.StatusOK, "login.html", loginPage{Error: msg, Username: f.Username})
		return
	}

	setSessionCookie(w, r, token)
	http.Redirect(w, r, "/index.php", http.StatusSeeOther)
}

// ==========================
// Register Form (GET /register.php)
// ==========================
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, "register.html", registerPage{})
}

// ==========================
// Register (POST /register.php)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		render(w, http.StatusBadRequest, "register.html", registerPage{Error: "Invalid form submission"})
		return
	}

	f := forms.BindRegister(r)

	if _, err := h.Auth.Register(r.Context(), f); err != nil {
		msg, ok := userMessage(err)
		if !ok {
			renderServerError(w, err)
			return
		}
		render(w, http.StatusOK, "register.html", registerPage{
			Error:    msg,
			Name:     f.Name,
			Email:    f.Email,
			Username: f.Username,
		})
		return
	}

	// Registration never auto-authenticates; the new account logs in itself.
	http.Redirect(w, r, "/login.php", http.StatusSeeOther)
}

// ==========================
// Logout (GET /logout.php)
// ==========================
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(CookieName); err == nil {
		h.Auth.Logout(cookie.Value)
	}
	clearSessionCookie(w, r)
	http.Redirect(w, r, "/login.php", http.StatusFound)
}

// userMessage maps the service error taxonomy to a user-facing message.
// Unknown errors are faults and must not leak to the page.
func userMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, auth.ErrEmptyField),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, auth.ErrUsernameTaken),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrPasswordTooLong),
		errors.Is(err, auth.ErrTooManyAttempts):
		return capitalize(err.Error()), true
	}
	return "", false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
