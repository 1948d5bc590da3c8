package vault

import (
	"context"
	"strings"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
)

// PostMessage appends text to the global log as the active user.
// Blank text is ignored and returns (nil, nil).
func (v *Vault) PostMessage(ctx context.Context, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	var msg *domain.ChatMessage
	err := v.do(ctx, func() error {
		if v.current == nil {
			return domain.ErrNoSession
		}

		msg = &domain.ChatMessage{
			ID:        v.newID(),
			Email:     v.current.Email,
			Text:      text,
			Timestamp: v.now(),
		}
		v.chat = append(v.chat, *msg)
		metrics.ChatMessages.Inc()

		return v.save(ctx)
	})
	return msg, err
}

// ThreadFor returns the messages authored by email, oldest first.
func (v *Vault) ThreadFor(ctx context.Context, email string) ([]domain.ChatMessage, error) {
	email = domain.NormalizeEmail(email)

	var thread []domain.ChatMessage
	err := v.do(ctx, func() error {
		thread = domain.Thread(v.chat, email)
		return nil
	})
	return thread, err
}

// ToggleChat flips the chat panel and returns whether it is now open.
func (v *Vault) ToggleChat(ctx context.Context) (bool, error) {
	var open bool
	err := v.do(ctx, func() error {
		if v.current == nil {
			return domain.ErrNoSession
		}
		v.chatOpen = !v.chatOpen
		open = v.chatOpen
		return nil
	})
	return open, err
}
