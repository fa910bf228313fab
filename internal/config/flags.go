// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a dev server address in format [host]:[port]
//	-d local database path (SQLite DSN)
//	-remote-url remote document API base URL
//	-token-endpoint auth-bridge token exchange URL
//	-api-key remote project API key
//	-project-id remote project identifier
//	-app-id application identifier
//	-request-timeout remote request timeout (e.g., "15s")
//	-sync-interval background sync interval (e.g., "2m")
//	-token-sign-key dev server session-token signing key
//	-token-issuer dev server expected token issuer
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var remoteURL string
	var tokenEndpoint string
	var apiKey, projectID, appID string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var tokenSignKey, tokenIssuer string
	var jsonConfigPath string

	flag.StringVar(&serverAddress, "a", "", "Dev server address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Local database path")
	flag.StringVar(&remoteURL, "remote-url", "", "Remote document API base URL")
	flag.StringVar(&tokenEndpoint, "token-endpoint", "", "Auth bridge token endpoint URL")
	flag.StringVar(&apiKey, "api-key", "", "Remote API key")
	flag.StringVar(&projectID, "project-id", "", "Remote project identifier")
	flag.StringVar(&appID, "app-id", "", "Application identifier")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 15s)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 2m)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Session token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Session token issuer")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Remote: Remote{
			BaseURL:        remoteURL,
			TokenEndpoint:  tokenEndpoint,
			APIKey:         apiKey,
			ProjectID:      projectID,
			AppID:          appID,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Workers: Workers{SyncInterval: syncInterval},
		Server: Server{
			HTTPAddress:  serverAddress,
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
		},
		JSONFilePath: jsonConfigPath,
	}
}
