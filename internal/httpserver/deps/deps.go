package deps

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/medium"
	"github.com/MrSnakeDoc/linkvault/internal/notify"
	"github.com/MrSnakeDoc/linkvault/internal/vault"
	"github.com/MrSnakeDoc/linkvault/internal/view"
)

type Deps struct {
	Logger            logger.Logger
	StartTime         time.Time
	Version           string
	Commit            string
	BuildDate         string
	GoVersion         string
	TimeNow           func() time.Time                // for testing, defaults to time.Now
	Location          *time.Location                  // time zone used to render dates and clocks
	AllowedHosts      []string                        // Host headers allowed to access the server
	AllowedCIDRS      []string                        // IPs allowed to access admin endpoints (metrics, reload, full export)
	TrustProxy        bool                            // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimitRPS      float64                         // per client IP, mutating routes only
	RateLimitBurst    int                             // per client IP, mutating routes only
	MutationLimit     func(http.Handler) http.Handler // shared rate limiter, set by the server
	Vault             *vault.Vault                    // state owner (session, bookmarks, chat)
	Medium            medium.Medium                   // storage backend, pinged by readyz
	Board             *notify.Board                   // toast shown on the next rendered page
	Renderer          *view.Renderer                  // HTML pages
	SeedReloadTrigger chan struct{}                   // Channel to trigger manual seed import (nil if seeding disabled)
}

// Now returns the current time, using TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
