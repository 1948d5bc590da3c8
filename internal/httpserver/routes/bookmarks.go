package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.With(d.MutationLimit).Post("/bookmarks", handlers.AddBookmark(d))
	r.With(d.MutationLimit).Post("/bookmarks/{id}/delete", handlers.DeleteBookmark(d))
	r.Get("/api/bookmarks", handlers.Bookmarks(d))
}
