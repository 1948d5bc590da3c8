package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/linkvault/internal/httpserver/mw"
)

func init() { Register(registerExport) }

func registerExport(r chi.Router, d deps.Deps) {
	r.Get("/export", handlers.ExportUser(d))
	// unrestricted unless LINKVAULT_ALLOWED_CIDRS is set
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)).Get("/export/all", handlers.ExportAll(d))
}
