package memory

import (
	"encoding/json"
	"fmt"
)

type identifiable interface {
	Id() string
}

// upsert replaces the item with the same id in place, or inserts it at the
// front when no such item exists.
func upsert[T identifiable](items []T, item T) []T {
	for i := range items {
		if items[i].Id() == item.Id() {
			items[i] = item
			return items
		}
	}

	return append([]T{item}, items...)
}

func removeByID[T identifiable](items []T, id string) ([]T, bool) {
	kept := make([]T, 0, len(items))
	removed := false
	for _, item := range items {
		if item.Id() == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	return kept, removed
}

func encode[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("error marshaling collection: %w", err)
	}
	return string(data), nil
}

func decode[T any](raw string) ([]T, error) {
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return items, nil
}
