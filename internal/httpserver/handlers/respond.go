package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/export"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/store"
	"github.com/MrSnakeDoc/linkvault/internal/view"
)

// maxFormBytes caps every form body.
const maxFormBytes = 64 << 10

// toastMessage maps an operation error to the text shown to the user.
func toastMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyEmail):
		return "Please enter an email"
	case errors.Is(err, domain.ErrEmptyURL):
		return "Please enter a URL"
	case errors.Is(err, domain.ErrInvalidURL):
		return "Please enter a valid URL"
	case errors.Is(err, domain.ErrNoSession):
		return "Please login first"
	case errors.Is(err, export.ErrNothingToExport):
		return "No links to download"
	case errors.Is(err, store.ErrSaveFailed):
		return "Error saving data"
	default:
		return "Something went wrong"
	}
}

// formValue parses a bounded form body and returns key.
func formValue(w http.ResponseWriter, r *http.Request, key string) string {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	return r.PostFormValue(key)
}

// redirectHome ends every mutating route.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// fail shows err as a toast and redirects home.
func fail(d deps.Deps, w http.ResponseWriter, r *http.Request, op string, err error) {
	d.Logger.Debug("operation failed",
		logger.String("op", op),
		logger.Error(err))
	d.Board.Error(toastMessage(err))
	redirectHome(w, r)
}

// renderPage renders the current state. confirmID asks for a delete confirmation.
func renderPage(d deps.Deps, w http.ResponseWriter, r *http.Request, confirmID string) {
	state, err := d.Vault.View(r.Context())
	if err != nil {
		d.Logger.Error("failed to read state", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	in := view.Input{
		User:      state.User,
		ChatOpen:  state.ChatOpen,
		Thread:    state.Thread,
		ConfirmID: confirmID,
		Now:       d.Now(),
		Location:  d.Location,
	}
	if toast, remaining, ok := d.Board.Current(); ok {
		in.Toast = &toast
		in.ToastRemaining = remaining
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := d.Renderer.Page(w, view.Render(in)); err != nil {
		d.Logger.Error("template error", logger.Error(err))
	}
}
