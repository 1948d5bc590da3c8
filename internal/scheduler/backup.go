package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/export"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
	"github.com/MrSnakeDoc/linkvault/internal/store"
)

// Snapshotter returns a consistent copy of the whole state.
type Snapshotter interface {
	Snapshot(ctx context.Context) (store.Snapshot, error)
}

// Backup periodically writes a full export into a directory.
type Backup struct {
	source   Snapshotter
	dir      string
	logger   logger.Logger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewBackup(source Snapshotter, dir string, log logger.Logger, interval time.Duration) *Backup {
	return &Backup{
		source:   source,
		dir:      dir,
		logger:   log.With(logger.String("backup_dir", dir)),
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
		stopCh:   make(chan struct{}),
	}
}

func (b *Backup) Start(ctx context.Context) error {
	ticker := time.NewTicker(b.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := b.Run(ctx); err != nil {
					b.logger.Error("backup failed", logger.Error(err))
				}
			case <-b.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Stop ends the periodic loop. It does not take a final backup.
func (b *Backup) Stop() {
	b.stopOnce.Do(func() { close(b.stopCh) })
}

// Run writes one backup and returns its path.
func (b *Backup) Run(ctx context.Context) (string, error) {
	snap, err := b.source.Snapshot(ctx)
	if err != nil {
		metrics.Backups.WithLabelValues("error").Inc()
		return "", fmt.Errorf("failed to snapshot state: %w", err)
	}

	doc, err := export.All(snap.Users, snap.Chat, b.now())
	if err != nil {
		metrics.Backups.WithLabelValues("error").Inc()
		return "", err
	}

	path, err := doc.WriteTo(b.dir)
	if err != nil {
		metrics.Backups.WithLabelValues("error").Inc()
		return "", err
	}

	metrics.Backups.WithLabelValues("ok").Inc()
	b.logger.Info("backup written",
		logger.String("path", path),
		logger.String("size", doc.Size()),
		logger.Int("users", len(snap.Users)),
		logger.Int("chat_messages", len(snap.Chat)))

	return path, nil
}
