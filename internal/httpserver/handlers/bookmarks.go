package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
)

func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawURL := formValue(w, r, "url")
		title := r.PostFormValue("title")

		if _, err := d.Vault.AddBookmark(r.Context(), rawURL, title); err != nil {
			fail(d, w, r, "add_bookmark", err)
			return
		}

		d.Board.Success("Link added successfully!")
		redirectHome(w, r)
	}
}

// DeleteBookmark asks for confirmation first: without confirm=yes the page is
// rendered with a confirmation prompt and nothing changes.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if formValue(w, r, "confirm") != "yes" {
			renderPage(d, w, r, id)
			return
		}

		if _, err := d.Vault.DeleteBookmark(r.Context(), id); err != nil {
			fail(d, w, r, "delete_bookmark", err)
			return
		}

		d.Board.Success("Link deleted")
		redirectHome(w, r)
	}
}

type bookmarksResponse struct {
	Count     int                `json:"count"`
	Bookmarks []*domain.Bookmark `json:"bookmarks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Bookmarks returns the active user's bookmarks as JSON, newest first.
func Bookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		list, err := d.Vault.Bookmarks(r.Context())
		if errors.Is(err, domain.ErrNoSession) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
			return
		}
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(errorResponse{Error: err.Error()})
			return
		}

		_ = json.NewEncoder(w).Encode(bookmarksResponse{
			Count:     len(list),
			Bookmarks: list,
		})
	}
}
