package handlers

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/linkvault/internal/export"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
)

// ExportUser downloads the active user's bookmarks.
func ExportUser(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := d.Vault.View(r.Context())
		if err != nil {
			fail(d, w, r, "export_user", err)
			return
		}
		if state.User == nil {
			d.Board.Error("Please login first")
			redirectHome(w, r)
			return
		}

		doc, err := export.User(state.User, d.Now().UTC())
		if err != nil {
			fail(d, w, r, "export_user", err)
			return
		}

		metrics.Exports.WithLabelValues("user").Inc()
		d.Board.Success("Library downloaded!")
		writeDocument(d, w, doc)
	}
}

// ExportAll downloads every user and the whole chat log.
func ExportAll(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := d.Vault.Snapshot(r.Context())
		if err != nil {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		doc, err := export.All(snap.Users, snap.Chat, d.Now().UTC())
		if err != nil {
			d.Logger.Error("full export failed", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		metrics.Exports.WithLabelValues("all").Inc()
		writeDocument(d, w, doc)
	}
}

func writeDocument(d deps.Deps, w http.ResponseWriter, doc export.Document) {
	d.Logger.Info("export served",
		logger.String("file", doc.Filename),
		logger.String("size", doc.Size()))

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(doc.Body); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}
