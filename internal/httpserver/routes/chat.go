package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/handlers"
)

func init() { Register(registerChat) }

func registerChat(r chi.Router, d deps.Deps) {
	r.With(d.MutationLimit).Post("/chat", handlers.PostMessage(d))
	r.With(d.MutationLimit).Post("/chat/toggle", handlers.ToggleChat(d))
}
