package vault

import (
	"context"
	"strings"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
)

// AddBookmark validates rawURL and inserts a new bookmark at the front of the
// active user's list. An empty title is derived from the URL hostname.
func (v *Vault) AddBookmark(ctx context.Context, rawURL, title string) (*domain.Bookmark, error) {
	rawURL = strings.TrimSpace(rawURL)
	title = strings.TrimSpace(title)

	if err := domain.ValidateURL(rawURL); err != nil {
		metrics.ValidationErrors.WithLabelValues("add_bookmark").Inc()
		return nil, err
	}
	if title == "" {
		title = domain.ExtractTitleFromURL(rawURL)
	}

	var added *domain.Bookmark
	err := v.do(ctx, func() error {
		if v.current == nil {
			return domain.ErrNoSession
		}

		now := v.now()
		added = &domain.Bookmark{
			ID:        domain.NewBookmarkID(now, v.current.HasBookmark),
			URL:       rawURL,
			Title:     title,
			CreatedAt: now,
		}
		v.current.URLs = append([]*domain.Bookmark{added}, v.current.URLs...)
		metrics.BookmarksAdded.Inc()

		v.logger.Debug("bookmark added",
			logger.String("email", v.current.Email),
			logger.String("id", added.ID),
			logger.String("url", rawURL))

		return v.save(ctx)
	})
	return added, err
}

// DeleteBookmark removes the bookmark with id. An unknown id is a no-op and
// reports false. Relative order of the remaining bookmarks is preserved.
func (v *Vault) DeleteBookmark(ctx context.Context, id string) (bool, error) {
	var removed bool
	err := v.do(ctx, func() error {
		if v.current == nil {
			return domain.ErrNoSession
		}

		kept := make([]*domain.Bookmark, 0, len(v.current.URLs))
		for _, b := range v.current.URLs {
			if b.ID == id {
				removed = true
				continue
			}
			kept = append(kept, b)
		}
		v.current.URLs = kept

		if removed {
			metrics.BookmarksDeleted.Inc()
			v.logger.Debug("bookmark deleted",
				logger.String("email", v.current.Email),
				logger.String("id", id))
		}
		return v.save(ctx)
	})
	return removed, err
}

// Bookmarks lists the active user's bookmarks, newest first.
func (v *Vault) Bookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	var list []*domain.Bookmark
	err := v.do(ctx, func() error {
		if v.current == nil {
			return domain.ErrNoSession
		}
		list = append([]*domain.Bookmark{}, v.current.URLs...)
		return nil
	})
	return list, err
}
