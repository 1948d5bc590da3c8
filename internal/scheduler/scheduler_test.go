package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/store"
)

type fakeImporter struct {
	mu    sync.Mutex
	calls int
	email string
	urls  []string
	err   error
}

func (f *fakeImporter) Import(_ context.Context, email string, bookmarks []*domain.Bookmark) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.email = email
	f.urls = f.urls[:0]
	for _, b := range bookmarks {
		f.urls = append(f.urls, b.URL)
	}
	return len(bookmarks), f.err
}

func (f *fakeImporter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

const seedYAML = `---
- Developer:
    - Github:
        - abbr: GH
          href: https://github.com/
    - Go:
        - href: https://go.dev/
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write seed: %v", err)
	}
	return path
}

func TestSeedReloaderReload(t *testing.T) {
	imp := &fakeImporter{}
	sr := NewSeedReloader(writeSeed(t, seedYAML), "seed@x.com", imp, logger.NewNop(), time.Hour, nil)

	added, err := sr.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if added != 2 || imp.email != "seed@x.com" {
		t.Errorf("Reload() = %d into %q, want 2 into seed@x.com", added, imp.email)
	}
	if imp.urls[0] != "https://github.com/" || imp.urls[1] != "https://go.dev/" {
		t.Errorf("imported urls = %v", imp.urls)
	}
}

func TestSeedReloaderErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		err  error
	}{
		{name: "missing file", path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{name: "no links", path: func(t *testing.T) string { return writeSeed(t, "- Empty: []\n") }},
		{name: "import fails", path: func(t *testing.T) string { return writeSeed(t, seedYAML) }, err: store.ErrSaveFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imp := &fakeImporter{err: tt.err}
			sr := NewSeedReloader(tt.path(t), "seed@x.com", imp, logger.NewNop(), time.Hour, nil)
			if _, err := sr.Reload(context.Background()); err == nil {
				t.Error("Reload() error = nil, want an error")
			}
			if err := sr.Start(context.Background()); err == nil {
				sr.Stop()
				t.Error("Start() should fail when the initial import fails")
			}
		})
	}
}

func TestSeedReloaderManualTrigger(t *testing.T) {
	imp := &fakeImporter{}
	trigger := make(chan struct{}, 1)
	sr := NewSeedReloader(writeSeed(t, seedYAML), "seed@x.com", imp, logger.NewNop(), time.Hour, trigger)

	if err := sr.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer sr.Stop()

	trigger <- struct{}{}

	deadline := time.Now().Add(2 * time.Second)
	for imp.callCount() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("manual trigger not handled, calls = %d", imp.callCount())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

type fakeSnapshotter struct {
	snap store.Snapshot
	err  error
}

func (f fakeSnapshotter) Snapshot(context.Context) (store.Snapshot, error) {
	return f.snap, f.err
}

func TestBackupRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	snap := store.Empty()
	snap.Users["a@x.com"] = domain.NewUser("a@x.com", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	snap.Chat = append(snap.Chat, domain.ChatMessage{ID: "m1", Email: "a@x.com", Text: "hi"})

	b := NewBackup(fakeSnapshotter{snap: snap}, dir, logger.NewNop(), time.Hour)
	b.now = func() time.Time { return time.UnixMilli(1760800000000).UTC() }

	path, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if filepath.Base(path) != "linkvault-full-export-1760800000000.json" {
		t.Errorf("backup file = %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Users        map[string]json.RawMessage `json:"users"`
		ChatMessages []json.RawMessage          `json:"chatMessages"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("backup is not valid JSON: %v", err)
	}
	if len(doc.Users) != 1 || len(doc.ChatMessages) != 1 {
		t.Errorf("backup content = %d users, %d messages", len(doc.Users), len(doc.ChatMessages))
	}
}

func TestBackupRunSnapshotError(t *testing.T) {
	b := NewBackup(fakeSnapshotter{err: errors.New("vault stopped")}, t.TempDir(), logger.NewNop(), time.Hour)
	if _, err := b.Run(context.Background()); err == nil {
		t.Error("Run() should fail when the snapshot fails")
	}
}

func TestGarbageCollectorCollect(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	files := map[string]time.Duration{
		"linkvault-full-export-1.json": 35 * 24 * time.Hour, // old backup
		"linkvault-full-export-2.json": 10 * 24 * time.Hour, // recent backup
		"notes.txt":                    90 * 24 * time.Hour, // not a backup
	}
	for name, age := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
		mod := now.Add(-age)
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatal(err)
		}
	}

	gc := NewGarbageCollector(dir, logger.NewNop(), 24*time.Hour, 30*24*time.Hour)
	deleted, err := gc.Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("Collect() deleted %d files, want 1", deleted)
	}

	if _, err := os.Stat(filepath.Join(dir, "linkvault-full-export-1.json")); !os.IsNotExist(err) {
		t.Error("old backup should have been deleted")
	}
	for _, keep := range []string{"linkvault-full-export-2.json", "notes.txt"} {
		if _, err := os.Stat(filepath.Join(dir, keep)); err != nil {
			t.Errorf("%s should have been kept: %v", keep, err)
		}
	}
}

func TestGarbageCollectorMissingDir(t *testing.T) {
	gc := NewGarbageCollector(filepath.Join(t.TempDir(), "absent"), logger.NewNop(), time.Hour, 0)
	if deleted, err := gc.Collect(context.Background()); err != nil || deleted != 0 {
		t.Errorf("Collect() = %d, %v, want 0, nil", deleted, err)
	}
}
