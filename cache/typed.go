package cache

import (
	"context"
	"encoding/json"
)

// GetTyped retrieves the cached value for key decoded as T. Values served
// from the remote store arrive as generic JSON shapes (map[string]interface{},
// float64 numbers); GetTyped re-encodes those into T so both tiers yield the
// same concrete type. Values that cannot be converted report a miss.
func GetTyped[T any](ctx context.Context, m *Manager, key string) (T, bool) {
	var zero T

	value, found := m.Get(ctx, key)
	if !found {
		return zero, false
	}

	if typed, ok := value.(T); ok {
		return typed, true
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return zero, false
	}

	var typed T
	if err := json.Unmarshal(payload, &typed); err != nil {
		return zero, false
	}

	return typed, true
}
