package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/handlers"
)

func init() { Register(registerSession) }

func registerSession(r chi.Router, d deps.Deps) {
	r.With(d.MutationLimit).Post("/login", handlers.Login(d))
	r.With(d.MutationLimit).Post("/logout", handlers.Logout(d))
}
