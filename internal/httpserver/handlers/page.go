package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
)

// Index renders the login screen or the library, depending on the session.
func Index(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(d, w, r, "")
	}
}
