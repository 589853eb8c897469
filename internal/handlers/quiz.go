package handlers

import (
	"net/http"

	"github.com/mhdreza10/quizauth/internal/middleware"
)

// ==========================
// Quiz Handler
// ==========================
// QuizHandler serves the protected landing page. The session middleware has
// already resolved the token; an unauthenticated request never reaches here.
type QuizHandler struct{}

type indexPage struct {
	Username string
}

// Index (GET /index.php)
func (h *QuizHandler) Index(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFrom(r.Context())
	if !ok {
		// Middleware misconfiguration, not a user error.
		http.Redirect(w, r, "/login.php", http.StatusFound)
		return
	}
	render(w, http.StatusOK, "index.html", indexPage{Username: username})
}
