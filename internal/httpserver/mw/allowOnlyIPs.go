package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
	"github.com/MrSnakeDoc/linkvault/internal/utils"
)

// AllowOnlyCIDRS guards admin routes (metrics, readyz, reload, full export).
// An empty list does NOT filter (passthrough).
// trustProxy should be true when running behind a trusted reverse proxy/tunnel (e.g., cloudflared).
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				metrics.RequestsDenied.WithLabelValues("cidr").Inc()
				log.Warn("admin route rejected",
					logger.String("path", r.URL.Path),
					logger.String("client_ip", ip))
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
