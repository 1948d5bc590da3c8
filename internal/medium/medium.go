// Package medium provides the key/value media the store persists its slots into.
// A Medium behaves like browser local storage: string keys, string values, no transactions.
package medium

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a closed medium.
var ErrClosed = errors.New("medium closed")

type Medium interface {
	// GetItem returns the value stored under key, and false if the key is absent.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error

	Ping(ctx context.Context) error
	Close() error
	Name() string
}
