package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
	"github.com/MrSnakeDoc/linkvault/internal/sources/homepage"
)

// Importer adds bookmarks to a user, skipping URLs the user already has.
type Importer interface {
	Import(ctx context.Context, email string, bookmarks []*domain.Bookmark) (int, error)
}

// SeedReloader imports a homepage bookmarks file into one user, at startup,
// periodically, and on manual trigger.
type SeedReloader struct {
	loader        *homepage.Loader
	importer      Importer
	email         string
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

func NewSeedReloader(
	seedFile string,
	email string,
	importer Importer,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedReloader {
	return &SeedReloader{
		loader:        homepage.NewLoader(seedFile),
		importer:      importer,
		email:         email,
		logger:        log.With(logger.String("seed_file", seedFile)),
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start imports once, then keeps importing in the background.
func (sr *SeedReloader) Start(ctx context.Context) error {
	if _, err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed import failed: %w", err)
	}

	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sr.reloadAndLog(ctx)
			case <-sr.manualTrigger:
				sr.logger.Info("manual seed reload triggered")
				sr.reloadAndLog(ctx)
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (sr *SeedReloader) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
}

func (sr *SeedReloader) reloadAndLog(ctx context.Context) {
	if _, err := sr.Reload(ctx); err != nil {
		sr.logger.Error("failed to import seed file", logger.Error(err))
	}
}

// Reload parses the seed file and imports the new links. It returns how many were added.
func (sr *SeedReloader) Reload(ctx context.Context) (int, error) {
	entries, err := sr.loader.Load()
	if err != nil {
		metrics.SeedImports.WithLabelValues("error").Inc()
		return 0, err
	}

	bookmarks, err := homepage.MapBookmarks(entries)
	if err != nil {
		metrics.SeedImports.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("failed to map seed entries: %w", err)
	}

	added, err := sr.importer.Import(ctx, sr.email, bookmarks)
	if err != nil {
		metrics.SeedImports.WithLabelValues("error").Inc()
		return added, fmt.Errorf("failed to import seed bookmarks: %w", err)
	}

	metrics.SeedImports.WithLabelValues("ok").Inc()
	sr.logger.Info("seed file imported",
		logger.String("email", sr.email),
		logger.Int("entries", len(bookmarks)),
		logger.Int("added", added))

	return added, nil
}
