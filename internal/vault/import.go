package vault

import (
	"context"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
)

// Import adds bookmarks to the user identified by email, creating the user if needed.
// Bookmarks whose URL is invalid, already saved, or offered by an earlier import
// are skipped, so a seeded link the user deleted stays deleted.
// The imported entries end up at the front of the list, in the given order.
func (v *Vault) Import(ctx context.Context, email string, bookmarks []*domain.Bookmark) (int, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return 0, domain.ErrEmptyEmail
	}

	var added int
	err := v.do(ctx, func() error {
		u, created := v.users[email], false
		if u == nil {
			u = domain.NewUser(email, v.now())
			v.users[email] = u
			created = true
			metrics.UsersCreated.Inc()
		}

		now := v.now()
		marked := false
		fresh := make([]*domain.Bookmark, 0, len(bookmarks))
		for _, in := range bookmarks {
			if in == nil || domain.ValidateURL(in.URL) != nil || u.WasSeeded(in.URL) {
				continue
			}
			u.MarkSeeded(in.URL)
			marked = true
			if u.HasURL(in.URL) {
				continue
			}
			title := in.Title
			if title == "" {
				title = domain.ExtractTitleFromURL(in.URL)
			}
			b := &domain.Bookmark{
				ID: domain.NewBookmarkID(now, func(id string) bool {
					if u.HasBookmark(id) {
						return true
					}
					for _, f := range fresh {
						if f.ID == id {
							return true
						}
					}
					return false
				}),
				URL:       in.URL,
				Title:     title,
				CreatedAt: now,
			}
			fresh = append(fresh, b)
		}

		if len(fresh) == 0 && !created && !marked {
			return nil
		}

		u.URLs = append(fresh, u.URLs...)
		added = len(fresh)
		metrics.BookmarksAdded.Add(float64(added))

		v.logger.Info("bookmarks imported",
			logger.String("email", email),
			logger.Int("added", added),
			logger.Int("skipped", len(bookmarks)-added))

		return v.save(ctx)
	})
	return added, err
}
