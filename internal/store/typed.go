// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package store

import (
	"context"
	"encoding/json"

	"github.com/pkalugin/ironlog/internal/logger"
)

// Get reads and decodes the value stored under key. A missing key, a failed
// read, or malformed persisted JSON all yield (zero, false) — never an error.
func Get[T any](ctx context.Context, rs RecordStore, key string) (T, bool) {
	var out T

	raw, ok := rs.GetRaw(ctx, key)
	if !ok {
		return out, false
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		logger.FromContext(ctx).Err(err).Str("key", key).
			Msg("malformed persisted value, degrading to miss")
		var zero T
		return zero, false
	}

	return out, true
}

// Set encodes value as JSON and durably stores it under key. Returns false
// when encoding or the underlying write fails.
func Set[T any](ctx context.Context, rs RecordStore, key string, value T) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("key", key).
			Msg("failed to encode value for record store")
		return false
	}

	return rs.SetRaw(ctx, key, raw)
}
