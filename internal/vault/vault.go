// Package vault owns the in-memory state (users, session, chat log, chat panel)
// and mirrors every mutation into the store.
//
// All state is touched only by the event loop goroutine; exported methods submit
// closures to the loop and wait for them, so each mutation runs to completion
// (including its flush) before the next one starts.
package vault

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/store"
)

// Options tweak the clock and id generation. Zero values use the defaults.
type Options struct {
	Now   func() time.Time
	NewID func() string
}

type Vault struct {
	store  *store.Store
	logger logger.Logger
	now    func() time.Time
	newID  func() string

	cmds     chan func()
	stopCh   chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	// owned by the loop goroutine
	users    map[string]*domain.User
	current  *domain.User
	chat     []domain.ChatMessage
	chatOpen bool
}

// State is a copy of what the presentation layer needs.
type State struct {
	User     *domain.User // nil when logged out
	ChatOpen bool
	Thread   []domain.ChatMessage
}

func New(st *store.Store, log logger.Logger, opts Options) *Vault {
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Vault{
		store:  st,
		logger: log,
		now:    opts.Now,
		newID:  opts.NewID,
		cmds:   make(chan func()),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
		users:  make(map[string]*domain.User),
		chat:   []domain.ChatMessage{},
	}
}

// View returns a copy of the state for rendering.
func (v *Vault) View(ctx context.Context) (State, error) {
	var st State
	err := v.do(ctx, func() error {
		st.ChatOpen = v.chatOpen
		if v.current != nil {
			st.User = v.current.Clone()
			st.Thread = domain.Thread(v.chat, v.current.Email)
		}
		return nil
	})
	return st, err
}

// Snapshot returns a deep copy of the whole state, for full exports and backups.
func (v *Vault) Snapshot(ctx context.Context) (store.Snapshot, error) {
	var snap store.Snapshot
	err := v.do(ctx, func() error {
		snap.Users = make(map[string]*domain.User, len(v.users))
		for email, u := range v.users {
			snap.Users[email] = u.Clone()
		}
		if v.current != nil {
			snap.Session = snap.Users[v.current.Email]
		}
		snap.Chat = append([]domain.ChatMessage{}, v.chat...)
		return nil
	})
	return snap, err
}

// save flushes every slot. Callers keep their in-memory mutation on failure.
func (v *Vault) save(ctx context.Context) error {
	return v.store.Save(ctx, store.Snapshot{
		Users:   v.users,
		Session: v.current,
		Chat:    v.chat,
	})
}
