// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/pkalugin/ironlog/internal/logger"
)

type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordStore returns the SQLite-backed [RecordStore].
func NewRecordStore(db *DB, logger *logger.Logger) RecordStore {
	return &recordRepository{DB: db, logger: logger}
}

func (r *recordRepository) GetRaw(ctx context.Context, key string) ([]byte, bool) {
	query, args, err := sq.Select("value").
		From("records").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "recordRepository.GetRaw").Str("key", key).
			Msg("failed to build select query")
		return nil, false
	}

	var value []byte
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		r.logger.Err(err).Str("func", "recordRepository.GetRaw").Str("key", key).
			Msg("failed to read record")
		return nil, false
	}

	return value, true
}

func (r *recordRepository) SetRaw(ctx context.Context, key string, value []byte) bool {
	query, args, err := sq.Insert("records").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "recordRepository.SetRaw").Str("key", key).
			Msg("failed to build upsert query")
		return false
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "recordRepository.SetRaw").Str("key", key).
			Msg("failed to write record")
		return false
	}

	return true
}

func (r *recordRepository) Remove(ctx context.Context, key string) bool {
	query, args, err := sq.Delete("records").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "recordRepository.Remove").Str("key", key).
			Msg("failed to build delete query")
		return false
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "recordRepository.Remove").Str("key", key).
			Msg("failed to delete record")
		return false
	}

	return true
}

func (r *recordRepository) ClearAll(ctx context.Context) bool {
	query, args, err := sq.Delete("records").
		Where(sq.Like{"key": KeyPrefix + "%"}).
		ToSql()
	if err != nil {
		r.logger.Err(err).Str("func", "recordRepository.ClearAll").
			Msg("failed to build clear query")
		return false
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).Str("func", "recordRepository.ClearAll").
			Msg("failed to clear records")
		return false
	}

	return true
}
