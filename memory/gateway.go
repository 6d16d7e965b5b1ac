package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/SaiNageswarS/edu-assist/schema"
	"github.com/SaiNageswarS/edu-assist/store"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

const DefaultNamespace = "eduassist"

var (
	ErrStoreUnavailable = errors.New("storage unavailable")
	ErrCorruptData      = errors.New("stored data is corrupt")
)

// Gateway maps sessions and student queries onto two JSON collections in a
// key/value store. It holds no state of its own.
//
// Reads fail open: an unreadable collection is reported as empty together
// with the error. A failed write returns the error and leaves the stored
// collection as it was. A corrupt collection is replaced on the next write.
// Each upsert is read-then-write without a lock, so concurrent writers from
// separate processes race and the last one wins.
type Gateway struct {
	kv       store.KeyValueStore
	chatsKey string
	queryKey string
}

// NewGateway creates a gateway over kv. An empty namespace falls back to
// DefaultNamespace.
func NewGateway(kv store.KeyValueStore, namespace string) *Gateway {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &Gateway{
		kv:       kv,
		chatsKey: namespace + "_chats",
		queryKey: namespace + "_queries",
	}
}

// SaveSession upserts session by id. New sessions go to the front.
func (g *Gateway) SaveSession(ctx context.Context, session *schema.ChatSession) error {
	return mutate(ctx, g.kv, g.chatsKey, func(items []schema.ChatSession) ([]schema.ChatSession, bool) {
		return upsert(items, *session.Clone()), true
	})
}

// ListSessions returns the sessions in stored order.
func (g *Gateway) ListSessions(ctx context.Context) ([]*schema.ChatSession, error) {
	items, err := load[schema.ChatSession](ctx, g.kv, g.chatsKey)
	if err != nil {
		logger.Error("Failed to load sessions", zap.Error(err))
	}
	return pointers(items), err
}

// DeleteSession removes the session with id. Missing ids are a no-op.
func (g *Gateway) DeleteSession(ctx context.Context, id string) error {
	return mutate(ctx, g.kv, g.chatsKey, func(items []schema.ChatSession) ([]schema.ChatSession, bool) {
		return removeByID(items, id)
	})
}

// SaveQuery upserts query by id. New queries go to the front.
func (g *Gateway) SaveQuery(ctx context.Context, query *schema.StudentQuery) error {
	return mutate(ctx, g.kv, g.queryKey, func(items []schema.StudentQuery) ([]schema.StudentQuery, bool) {
		return upsert(items, *query), true
	})
}

// ListQueries returns the queries in stored order, newest first.
func (g *Gateway) ListQueries(ctx context.Context) ([]*schema.StudentQuery, error) {
	items, err := load[schema.StudentQuery](ctx, g.kv, g.queryKey)
	if err != nil {
		logger.Error("Failed to load queries", zap.Error(err))
	}
	return pointers(items), err
}

// mutate reads the collection at key, applies fn and writes the result back
// when fn reports a change. A corrupt collection is replaced rather than
// blocking every later write.
func mutate[T any](ctx context.Context, kv store.KeyValueStore, key string, fn func([]T) ([]T, bool)) error {
	raw, _, err := kv.Get(ctx, key)
	if err != nil {
		logger.Error("Failed to read collection before write", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	items, decodeErr := decodeOrEmpty[T](raw)
	if decodeErr != nil {
		logger.Error("Discarding corrupt collection", zap.String("key", key), zap.Error(decodeErr))
	}

	items, changed := fn(items)
	if !changed && decodeErr == nil {
		return nil
	}

	encoded, err := encode(items)
	if err != nil {
		return err
	}

	if err := kv.Set(ctx, key, encoded); err != nil {
		logger.Error("Failed to write collection", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func load[T any](ctx context.Context, kv store.KeyValueStore, key string) ([]T, error) {
	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		return []T{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !found {
		return []T{}, nil
	}
	return decodeOrEmpty[T](raw)
}

func decodeOrEmpty[T any](raw string) ([]T, error) {
	if raw == "" {
		return []T{}, nil
	}
	items, err := decode[T](raw)
	if err != nil {
		return []T{}, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func pointers[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
