package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/medium"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
)

// ErrSaveFailed wraps every write failure. In-memory state is not rolled back.
var ErrSaveFailed = errors.New("error saving data")

// Snapshot is the full persisted state.
type Snapshot struct {
	Users   map[string]*domain.User
	Session *domain.User // nil when logged out
	Chat    []domain.ChatMessage
}

// Empty returns the default state used for missing or corrupt slots.
func Empty() Snapshot {
	return Snapshot{
		Users: make(map[string]*domain.User),
		Chat:  []domain.ChatMessage{},
	}
}

// Store loads and saves the three slots as independent JSON documents.
type Store struct {
	medium medium.Medium
	prefix string
	logger logger.Logger
}

func New(m medium.Medium, prefix string, log logger.Logger) *Store {
	return &Store{
		medium: m,
		prefix: prefix,
		logger: log,
	}
}

// Load reads every slot. A missing, unreadable or corrupt slot falls back to its
// default without affecting the others.
func (s *Store) Load(ctx context.Context) Snapshot {
	snap := Empty()

	var users map[string]*domain.User
	if s.readSlot(ctx, SlotUsers, &users) && users != nil {
		snap.Users = normalizeUsers(users)
	}

	var session *domain.User
	if s.readSlot(ctx, SlotSession, &session) && session != nil && session.Email != "" {
		snap.Session = s.bindSession(snap.Users, session)
	}

	var chat []domain.ChatMessage
	if s.readSlot(ctx, SlotChat, &chat) && chat != nil {
		snap.Chat = chat
	}

	s.logger.Info("store loaded",
		logger.String("medium", s.medium.Name()),
		logger.Int("users", len(snap.Users)),
		logger.Bool("session", snap.Session != nil),
		logger.Int("chat_messages", len(snap.Chat)))

	return snap
}

// Save writes users, session and chat in that order and stops at the first failure.
// A nil session removes the session slot.
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	users := snap.Users
	if users == nil {
		users = map[string]*domain.User{}
	}
	if err := s.writeSlot(ctx, SlotUsers, users); err != nil {
		return err
	}

	if snap.Session == nil {
		if err := s.ClearSession(ctx); err != nil {
			return err
		}
	} else if err := s.writeSlot(ctx, SlotSession, snap.Session); err != nil {
		return err
	}

	chat := snap.Chat
	if chat == nil {
		chat = []domain.ChatMessage{}
	}
	return s.writeSlot(ctx, SlotChat, chat)
}

// ClearSession removes only the session slot.
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.medium.RemoveItem(ctx, Key(s.prefix, SlotSession)); err != nil {
		metrics.SaveFailures.Inc()
		s.logger.Error("failed to clear session slot", logger.Error(err))
		return fmt.Errorf("%w: clear %s: %w", ErrSaveFailed, SlotSession, err)
	}
	return nil
}

func (s *Store) readSlot(ctx context.Context, slot string, dst any) bool {
	raw, ok, err := s.medium.GetItem(ctx, Key(s.prefix, slot))
	if err != nil {
		metrics.SlotResets.WithLabelValues(slot).Inc()
		s.logger.Warn("failed to read slot, using empty default",
			logger.String("slot", slot),
			logger.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		metrics.SlotResets.WithLabelValues(slot).Inc()
		s.logger.Warn("corrupt slot, using empty default",
			logger.String("slot", slot),
			logger.Error(err))
		return false
	}
	return true
}

func (s *Store) writeSlot(ctx context.Context, slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %w", ErrSaveFailed, slot, err)
	}
	if err := s.medium.SetItem(ctx, Key(s.prefix, slot), string(data)); err != nil {
		metrics.SaveFailures.Inc()
		s.logger.Error("failed to write slot",
			logger.String("slot", slot),
			logger.Error(err))
		return fmt.Errorf("%w: write %s: %w", ErrSaveFailed, slot, err)
	}
	return nil
}

// bindSession points the session at the users map entry. The users slot is written
// first, so it is never older than the session copy; the copy is only adopted when
// the users slot lacks the user entirely.
func (s *Store) bindSession(users map[string]*domain.User, session *domain.User) *domain.User {
	email := domain.NormalizeEmail(session.Email)
	if u, ok := users[email]; ok {
		return u
	}

	s.logger.Warn("session user missing from users slot, adopting session copy",
		logger.String("email", email))
	session.Email = email
	if session.URLs == nil {
		session.URLs = []*domain.Bookmark{}
	}
	users[email] = session
	return session
}

func normalizeUsers(users map[string]*domain.User) map[string]*domain.User {
	out := make(map[string]*domain.User, len(users))
	for key, u := range users {
		if u == nil {
			continue
		}
		if u.Email == "" {
			u.Email = key
		}
		u.Email = domain.NormalizeEmail(u.Email)
		urls := make([]*domain.Bookmark, 0, len(u.URLs))
		for _, b := range u.URLs {
			if b != nil && b.ID != "" {
				urls = append(urls, b)
			}
		}
		u.URLs = urls
		out[u.Email] = u
	}
	return out
}
