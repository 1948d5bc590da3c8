package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
)

func ToggleChat(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := d.Vault.ToggleChat(r.Context()); err != nil {
			fail(d, w, r, "toggle_chat", err)
			return
		}
		redirectHome(w, r)
	}
}

// PostMessage appends to the chat. Blank text is ignored without a toast.
func PostMessage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := d.Vault.PostMessage(r.Context(), formValue(w, r, "text")); err != nil {
			fail(d, w, r, "post_message", err)
			return
		}
		redirectHome(w, r)
	}
}
