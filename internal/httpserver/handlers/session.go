package handlers

import (
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
)

// Login starts a session. A save failure still logs the user in, but the
// toast reports the error instead of the welcome message.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, err := d.Vault.Login(r.Context(), formValue(w, r, "email"))
		if err != nil {
			fail(d, w, r, "login", err)
			return
		}

		d.Board.Success(fmt.Sprintf("Welcome, %s!", email))
		redirectHome(w, r)
	}
}

func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Vault.Logout(r.Context()); err != nil {
			fail(d, w, r, "logout", err)
			return
		}

		d.Board.Success("Logged out successfully")
		redirectHome(w, r)
	}
}
