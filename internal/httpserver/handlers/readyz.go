package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Medium string `json:"medium"`
	Error  string `json:"error,omitempty"`
}

// Readyz reports whether the storage medium answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		resp := readyzResponse{Ready: true, Medium: d.Medium.Name()}
		if err := d.Medium.Ping(ctx); err != nil {
			d.Logger.Warn("readiness check failed", logger.Error(err))
			resp.Ready = false
			resp.Error = err.Error()
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}

		_ = json.NewEncoder(w).Encode(resp)
	}
}
