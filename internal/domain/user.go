package domain

import (
	"strings"
	"time"
)

// User is keyed by its normalized email. There is no credential.
type User struct {
	Email     string      `json:"email"`
	URLs      []*Bookmark `json:"urls"`
	CreatedAt time.Time   `json:"createdAt"`

	// Seeded lists the seed URLs already offered to this user, kept or deleted.
	Seeded []string `json:"seeded,omitempty"`
}

// NewUser creates a user with an empty bookmark list.
func NewUser(email string, now time.Time) *User {
	return &User{
		Email:     email,
		URLs:      []*Bookmark{},
		CreatedAt: now,
	}
}

// NormalizeEmail trims and lowercases an email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasBookmark reports whether id is already used in the user's list.
func (u *User) HasBookmark(id string) bool {
	for _, b := range u.URLs {
		if b.ID == id {
			return true
		}
	}
	return false
}

// HasURL reports whether rawURL is already saved.
func (u *User) HasURL(rawURL string) bool {
	for _, b := range u.URLs {
		if b.URL == rawURL {
			return true
		}
	}
	return false
}

// WasSeeded reports whether rawURL was already offered by a seed import.
func (u *User) WasSeeded(rawURL string) bool {
	for _, s := range u.Seeded {
		if s == rawURL {
			return true
		}
	}
	return false
}

// MarkSeeded records rawURL as offered by a seed import.
func (u *User) MarkSeeded(rawURL string) {
	if !u.WasSeeded(rawURL) {
		u.Seeded = append(u.Seeded, rawURL)
	}
}

// Clone returns a deep copy; bookmarks are immutable so pointers are shared.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.URLs = make([]*Bookmark, len(u.URLs))
	copy(c.URLs, u.URLs)
	if u.Seeded != nil {
		c.Seeded = make([]string, len(u.Seeded))
		copy(c.Seeded, u.Seeded)
	}
	return &c
}
