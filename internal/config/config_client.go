package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] when the merged configuration leaves
// a field unset.
const (
	DefaultSyncInterval   = 2 * time.Minute
	DefaultRequestTimeout = 15 * time.Second
	DefaultDBPath         = "ironlog.db"
)

// ClientRemote holds the remote replication settings used by the client
// transport layer.
type ClientRemote struct {
	// BaseURL is the root URL of the remote document API.
	BaseURL string
	// TokenEndpoint is the auth-bridge token exchange URL.
	TokenEndpoint string
	// APIKey authenticates the application against the remote project.
	APIKey string
	// ProjectID is the remote project identifier.
	ProjectID string
	// AppID is the application identifier within the project.
	AppID string
	// RequestTimeout is the default timeout for outbound remote requests.
	RequestTimeout time.Duration
}

// Configured reports whether replication can be enabled at all; see
// [Remote.Configured].
func (r ClientRemote) Configured() bool {
	return r.APIKey != "" && r.ProjectID != "" && r.AppID != ""
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file path used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the sync scheduler fires.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Remote  ClientRemote
	Storage ClientStorage
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from
// the merged structured configuration, applying client defaults for the
// sync interval, the request timeout, and the database path.
//
// A missing remote configuration is deliberately not an error: the client
// then runs in permanent local-only mode.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Remote: ClientRemote{
			BaseURL:        cfg.Remote.BaseURL,
			TokenEndpoint:  cfg.Remote.TokenEndpoint,
			APIKey:         cfg.Remote.APIKey,
			ProjectID:      cfg.Remote.ProjectID,
			AppID:          cfg.Remote.AppID,
			RequestTimeout: cfg.Remote.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}

	if clientCfg.Workers.SyncInterval <= 0 {
		clientCfg.Workers.SyncInterval = DefaultSyncInterval
	}
	if clientCfg.Remote.RequestTimeout <= 0 {
		clientCfg.Remote.RequestTimeout = DefaultRequestTimeout
	}
	if clientCfg.Storage.DB.DSN == "" {
		clientCfg.Storage.DB.DSN = DefaultDBPath
	}

	return clientCfg, clientCfg.validate()
}
