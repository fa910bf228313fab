// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilder_EarlierSourcesWin(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Storage: Storage{DB: DB{DSN: "env.db"}}},
		&StructuredConfig{
			Storage: Storage{DB: DB{DSN: "file.db"}},
			Workers: Workers{SyncInterval: time.Minute},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	// the first source set the DSN and keeps it; the second only fills gaps
	assert.Equal(t, "env.db", cfg.Storage.DB.DSN)
	assert.Equal(t, time.Minute, cfg.Workers.SyncInterval)
}

func TestConfigBuilder_EmptyBuild(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestConfigBuilder_ErrorShortCircuitsBuild(t *testing.T) {
	b := newConfigBuilder()
	b.err = errors.New("boom")

	_, err := b.build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestConfigBuilder_WithJSON(t *testing.T) {
	path := writeConfigFile(t, `{"storage": {"db": {"dsn": "file.db"}}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "file.db", cfg.Storage.DB.DSN)
}

func TestConfigBuilder_WithJSON_NoPathIsNoop(t *testing.T) {
	b := newConfigBuilder()
	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestConfigBuilder_WithJSON_BadFileFailsBuild(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})

	_, err := b.withJSON().build()
	assert.Error(t, err)
}
