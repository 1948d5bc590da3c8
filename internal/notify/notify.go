// Package notify holds the transient toast shown on the next rendered page.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL is how long a toast stays visible.
const DefaultTTL = 3 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Toast struct {
	Message string
	Kind    Kind
	ShownAt time.Time
}

// Board keeps at most one toast. A newer toast replaces the older one.
type Board struct {
	mu      sync.Mutex
	current *Toast
	ttl     time.Duration
	now     func() time.Time
}

// NewBoard creates a board. A zero ttl uses DefaultTTL and a nil now uses time.Now.
func NewBoard(ttl time.Duration, now func() time.Time) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Board{ttl: ttl, now: now}
}

func (b *Board) Show(kind Kind, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = &Toast{Message: message, Kind: kind, ShownAt: b.now()}
}

func (b *Board) Success(message string) { b.Show(KindSuccess, message) }
func (b *Board) Error(message string)   { b.Show(KindError, message) }

// Current returns the toast and its remaining lifetime, or false once it has expired.
func (b *Board) Current() (Toast, time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return Toast{}, 0, false
	}
	remaining := b.ttl - b.now().Sub(b.current.ShownAt)
	if remaining <= 0 {
		b.current = nil
		return Toast{}, 0, false
	}
	return *b.current, remaining, true
}
