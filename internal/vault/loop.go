package vault

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/linkvault/internal/logger"
)

// ErrStopped is returned once the loop has exited.
var ErrStopped = errors.New("vault stopped")

// Start loads the persisted state and starts the event loop.
func (v *Vault) Start(ctx context.Context) error {
	snap := v.store.Load(ctx)
	v.users = snap.Users
	v.current = snap.Session
	v.chat = snap.Chat

	if v.current != nil {
		v.logger.Info("restored session", logger.String("email", v.current.Email))
	}

	go v.run(ctx)
	return nil
}

// Stop ends the loop and waits for the running closure, if any, to finish.
func (v *Vault) Stop() {
	v.stopOnce.Do(func() { close(v.stopCh) })
	<-v.done
}

func (v *Vault) run(ctx context.Context) {
	defer close(v.done)
	for {
		select {
		case fn := <-v.cmds:
			fn()
		case <-v.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// do runs fn on the loop. Once accepted, fn always runs to completion.
func (v *Vault) do(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	select {
	case v.cmds <- func() { errCh <- fn() }:
	case <-ctx.Done():
		return ctx.Err()
	case <-v.done:
		return ErrStopped
	}
	return <-errCh
}
