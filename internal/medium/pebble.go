package medium

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"
)

// Pebble keeps items in an on-disk pebble database. Every write is synced.
type Pebble struct {
	mu   sync.RWMutex
	db   *pebble.DB
	path string
}

// OpenPebble opens (or creates) the database at path.
func OpenPebble(path string) (*Pebble, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", path, err)
	}
	return &Pebble{db: db, path: path}, nil
}

func (p *Pebble) GetItem(_ context.Context, key string) (string, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.db == nil {
		return "", false, ErrClosed
	}
	v, closer, err := p.db.Get([]byte(key))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	// v is only valid until closer is closed
	value := string(v)
	if err := closer.Close(); err != nil {
		return "", false, fmt.Errorf("failed to release %s: %w", key, err)
	}
	return value, true, nil
}

func (p *Pebble) SetItem(_ context.Context, key, value string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.db == nil {
		return ErrClosed
	}
	if err := p.db.Set([]byte(key), []byte(value), pebble.Sync); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (p *Pebble) RemoveItem(_ context.Context, key string) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.db == nil {
		return ErrClosed
	}
	if err := p.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (p *Pebble) Ping(_ context.Context) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.db == nil {
		return ErrClosed
	}
	return nil
}

func (p *Pebble) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil
	return err
}

func (p *Pebble) Name() string { return "pebble" }

// Path returns the database directory.
func (p *Pebble) Path() string { return p.path }
