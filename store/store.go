package store

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("store is closed")

// KeyValueStore is the durable local storage behind the persistence gateway.
// Get reports found=false for a missing key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
