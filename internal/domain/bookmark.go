package domain

import (
	"strconv"
	"time"
)

// Bookmark is a single saved link owned by one user.
// Bookmarks are immutable once created; they are only inserted or removed.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is unique within the owning user's list.
	// Derived from the creation time in unix milliseconds.
	ID string `json:"id"`

	// URL is the absolute link as entered by the user.
	// Example: https://foo.com
	URL string `json:"url"`

	// Title is user supplied, or derived from the URL hostname.
	// Example: "Foo.com"
	Title string `json:"title"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is the time the bookmark was added.
	CreatedAt time.Time `json:"createdAt"`
}

// NewBookmarkID returns a time-derived id that is not yet taken.
// On collision the millisecond is bumped until a free id is found.
func NewBookmarkID(now time.Time, taken func(id string) bool) string {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if taken == nil || !taken(id) {
			return id
		}
		ms++
	}
}
