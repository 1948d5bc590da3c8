package homepage

import (
	"errors"
	"strings"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
)

// ErrNoBookmarks is returned when a seed file has no usable link.
var ErrNoBookmarks = errors.New("no valid bookmarks found in seed file")

// MapBookmarks converts entries into bookmarks ready for import.
// Entries without a valid href are skipped, and only the first entry per URL is kept.
// Ids and timestamps are assigned on import.
func MapBookmarks(entries []Entry) ([]*domain.Bookmark, error) {
	bookmarks := make([]*domain.Bookmark, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		href := strings.TrimSpace(e.Href)
		if domain.ValidateURL(href) != nil {
			continue
		}
		if _, dup := seen[href]; dup {
			continue
		}
		seen[href] = struct{}{}

		bookmarks = append(bookmarks, &domain.Bookmark{
			URL:   href,
			Title: title(e),
		})
	}

	if len(bookmarks) == 0 {
		return nil, ErrNoBookmarks
	}
	return bookmarks, nil
}

// title prefers the entry name, then its abbreviation. Empty means derive from the URL.
func title(e Entry) string {
	if name := strings.TrimSpace(e.Name); name != "" {
		return name
	}
	return strings.TrimSpace(e.Abbr)
}
