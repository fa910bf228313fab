package store

import (
	"context"

	"github.com/pkalugin/ironlog/internal/logger"
)

type watermarkRepository struct {
	rs     RecordStore
	logger *logger.Logger
}

// NewWatermarkRepository returns the [WatermarkRepository] persisted in rs
// under [KeyLastSyncedAt].
func NewWatermarkRepository(rs RecordStore, logger *logger.Logger) WatermarkRepository {
	return &watermarkRepository{rs: rs, logger: logger}
}

func (w *watermarkRepository) LastSyncedAt(ctx context.Context) int64 {
	ts, ok := Get[int64](ctx, w.rs, KeyLastSyncedAt)
	if !ok {
		return 0
	}
	return ts
}

func (w *watermarkRepository) SetLastSyncedAt(ctx context.Context, ts int64) bool {
	if !Set(ctx, w.rs, KeyLastSyncedAt, ts) {
		w.logger.Error().Str("func", "watermarkRepository.SetLastSyncedAt").
			Int64("ts", ts).
			Msg("failed to advance sync watermark")
		return false
	}
	return true
}
