package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

const (
	// DefaultGCThreshold is the age after which backups are deleted
	DefaultGCThreshold = 30 * 24 * time.Hour // 30 days

	backupPrefix = "linkvault-full-export-"
	backupSuffix = ".json"
)

// GarbageCollector deletes old backups from the backup directory.
// Only files named like full exports are considered.
type GarbageCollector struct {
	dir       string
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
}

func NewGarbageCollector(
	dir string,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}

	return &GarbageCollector{
		dir:       dir,
		logger:    log.With(logger.String("backup_dir", dir)),
		interval:  interval,
		threshold: threshold,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	if _, err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed", logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed", logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (gc *GarbageCollector) Stop() {
	gc.stopOnce.Do(func() { close(gc.stopCh) })
}

// Collect removes backups older than the threshold and returns how many were deleted.
func (gc *GarbageCollector) Collect(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(gc.dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to list backups: %w", err)
	}

	cutoff := gc.now().Add(-gc.threshold)
	deleted := 0
	var freed uint64

	for _, e := range entries {
		if ctx.Err() != nil {
			return deleted, ctx.Err()
		}
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}

		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(gc.dir, name)); err != nil {
			gc.logger.Warn("failed to delete backup",
				logger.String("file", name),
				logger.Error(err))
			continue
		}
		deleted++
		freed += uint64(info.Size())
	}

	if deleted > 0 {
		gc.logger.Info("garbage collection completed",
			logger.Int("deleted", deleted),
			logger.String("freed", humanize.Bytes(freed)),
			logger.Duration("threshold", gc.threshold))
	}

	return deleted, nil
}
