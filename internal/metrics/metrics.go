// Package metrics exposes prometheus counters for vault mutations and storage health.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "linkvault"

var (
	Logins = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Successful logins.",
	})

	UsersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Users created on first login or by seed import.",
	})

	BookmarksAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookmarks_added_total",
		Help:      "Bookmarks added, including seed imports.",
	})

	BookmarksDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookmarks_deleted_total",
		Help:      "Bookmarks removed.",
	})

	ChatMessages = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_total",
		Help:      "Chat messages appended to the log.",
	})

	ValidationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_errors_total",
		Help:      "Rejected user input by operation.",
	}, []string{"op"})

	SaveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "save_failures_total",
		Help:      "Failed writes to the storage medium.",
	})

	SlotResets = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slot_resets_total",
		Help:      "Slots reset to their empty default on load.",
	}, []string{"slot"})

	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "JSON exports produced, by kind.",
	}, []string{"kind"})

	RequestsDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_denied_total",
		Help:      "Requests rejected by access middlewares, by reason.",
	}, []string{"reason"})

	SeedImports = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seed_imports_total",
		Help:      "Seed file import runs, by result.",
	}, []string{"result"})

	Backups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backups_total",
		Help:      "Backup runs, by result.",
	}, []string{"result"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
