package store

import (
	"context"
	"fmt"

	"github.com/pkalugin/ironlog/internal/config"
	"github.com/pkalugin/ironlog/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value passed around the service layer.
type ClientStorages struct {
	// Records is the durable local key-value space holding every domain
	// slot and the engine bookkeeping slots.
	Records RecordStore
	// Queue is the durable FIFO of pending replication operations.
	Queue QueueRepository
	// Watermark is the last-successful-sync timestamp accessor.
	Watermark WatermarkRepository
}

// NewClientStorages initialises the client storage layer: it opens the
// SQLite database named by cfg (creating the file when absent), runs pending
// schema migrations, and wires the record store with the queue and watermark
// repositories on top of it.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	records := NewRecordStore(db, logger)

	return &ClientStorages{
		Records:   records,
		Queue:     NewQueueRepository(records, logger),
		Watermark: NewWatermarkRepository(records, logger),
	}, nil
}
