// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for ironlog.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Remote holds the remote replication backend settings. Replication is
	// enabled only when APIKey, ProjectID and AppID are all present; if any
	// is missing the client runs permanently in local-only mode.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds local persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds settings for the development remote backend binary.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// merged on top of env and flag values when non-empty.
	// Populated via the CONFIG environment variable or the -c/-config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Remote holds the remote document backend and auth-bridge settings consumed
// by the client.
type Remote struct {
	// BaseURL is the root URL of the remote document API.
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// TokenEndpoint is the auth-bridge URL that exchanges a session token
	// for a remote credential. Env: REMOTE_TOKEN_ENDPOINT
	TokenEndpoint string `env:"TOKEN_ENDPOINT"`

	// APIKey authenticates the application against the remote project.
	// Env: REMOTE_API_KEY
	APIKey string `env:"API_KEY"`

	// ProjectID identifies the remote project. Env: REMOTE_PROJECT_ID
	ProjectID string `env:"PROJECT_ID"`

	// AppID identifies this application within the project.
	// Env: REMOTE_APP_ID
	AppID string `env:"APP_ID"`

	// RequestTimeout bounds every outbound remote call.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Configured reports whether the minimal remote-store field set is present.
// A false result is not an error: it puts the sync engine into permanent
// local-only mode.
func (r Remote) Configured() bool {
	return r.APIKey != "" && r.ProjectID != "" && r.AppID != ""
}

// Storage groups local persistence backends.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB contains the local SQLite database settings.
type DB struct {
	// DSN is the SQLite file path (":memory:" for tests).
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Workers contains background worker settings.
type Workers struct {
	// SyncInterval defines how often the sync scheduler fires while the
	// application is foregrounded. Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Server contains settings for the development remote backend.
type Server struct {
	// HTTPAddress is the listen address in host:port form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// TokenSignKey verifies inbound session tokens at the token endpoint.
	// Env: SERVER_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of inbound session tokens.
	// Env: SERVER_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`
}
