package vault

import (
	"context"

	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
)

// Login makes email the active session, creating the user on first use.
// There is no credential check. The returned error may wrap store.ErrSaveFailed,
// in which case the login still took effect in memory.
func (v *Vault) Login(ctx context.Context, email string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		metrics.ValidationErrors.WithLabelValues("login").Inc()
		return "", domain.ErrEmptyEmail
	}

	err := v.do(ctx, func() error {
		u, ok := v.users[email]
		if !ok {
			u = domain.NewUser(email, v.now())
			v.users[email] = u
			metrics.UsersCreated.Inc()
			v.logger.Info("user created", logger.String("email", email))
		}

		v.current = u
		v.chatOpen = false
		metrics.Logins.Inc()

		return v.save(ctx)
	})
	return email, err
}

// Logout clears the session and persists only the session slot.
func (v *Vault) Logout(ctx context.Context) error {
	return v.do(ctx, func() error {
		if v.current != nil {
			v.logger.Info("logged out", logger.String("email", v.current.Email))
		}
		v.current = nil
		v.chatOpen = false
		return v.store.ClearSession(ctx)
	})
}

// CurrentEmail returns the session email, or "" when logged out.
func (v *Vault) CurrentEmail(ctx context.Context) (string, error) {
	var email string
	err := v.do(ctx, func() error {
		if v.current != nil {
			email = v.current.Email
		}
		return nil
	})
	return email, err
}
