// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package config

// validate checks that the client view satisfies its invariants.
//
// Remote settings are validated only when replication is configured at all:
// a partially configured remote (some but not all of API key, project id,
// app id) is treated the same as none, matching the local-only fallback.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Remote.Configured() {
		if cfg.Remote.BaseURL == "" || cfg.Remote.TokenEndpoint == "" {
			return ErrInvalidRemoteConfigs
		}
	}

	return nil
}

// validate checks server-side invariants for the dev backend binary.
func (cfg *ServerConfig) validate() error {
	if cfg.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}
	if cfg.TokenSignKey == "" {
		return ErrInvalidServerConfigs
	}
	return nil
}
