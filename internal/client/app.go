// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

// Package client wires the storage, adapter, and service layers into the
// runnable client application. The UI is out of scope here: the binary runs
// the replication engine for the process lifetime while domain code (or the
// embedding application) talks to the data service.
package client

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkalugin/ironlog/internal/adapter"
	"github.com/pkalugin/ironlog/internal/config"
	"github.com/pkalugin/ironlog/internal/logger"
	"github.com/pkalugin/ironlog/internal/service"
	"github.com/pkalugin/ironlog/internal/store"
	"github.com/pkalugin/ironlog/models"
)

type App struct {
	cfg      *config.ClientConfig
	services *service.ClientServices
	bridge   *adapter.AuthBridge
	logger   *logger.Logger
}

// NewApp builds the full client stack. When replication is unconfigured the
// engine is wired with permanently offline collaborators and every cycle
// no-ops at the preflight gate.
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	app := &App{cfg: cfg, logger: log}

	engineCfg := service.SyncEngineConfig{
		Documents:    nil,
		Credentials:  adapter.NoCredentials{},
		Connectivity: adapter.OfflineProbe{},
		Configured:   false,
	}

	if cfg.Remote.Configured() {
		bridge := adapter.NewAuthBridge(adapter.AuthBridgeConfig{
			TokenEndpoint: cfg.Remote.TokenEndpoint,
			AppID:         cfg.Remote.AppID,
			Timeout:       cfg.Remote.RequestTimeout,
		}, log)
		app.bridge = bridge

		engineCfg = service.SyncEngineConfig{
			Documents: adapter.NewHTTPDocumentClient(adapter.HTTPClientConfig{
				BaseURL:   cfg.Remote.BaseURL,
				APIKey:    cfg.Remote.APIKey,
				ProjectID: cfg.Remote.ProjectID,
				AppID:     cfg.Remote.AppID,
				Timeout:   cfg.Remote.RequestTimeout,
			}, bridge),
			Credentials:  bridge,
			Connectivity: adapter.NewNetProbe(cfg.Remote.BaseURL, 0),
			Configured:   true,
		}
	} else {
		log.Info().Msg("remote replication not configured, running local-only")
	}

	app.services = service.NewClientServices(storages, engineCfg, log)

	return app, nil
}

// Services exposes the service layer to the embedding application.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// RestoreIdentity reports the signed-in user persisted by a previous run, if
// any. The identity slot survives restarts, so the user stays signed in
// without repeating the auth flow.
func (a *App) RestoreIdentity(ctx context.Context) (models.UserProfile, bool) {
	return a.services.Data.GetUserProfile(ctx)
}

// SignIn installs the session token used for credential exchanges and seeds
// the identity slot when it is empty.
func (a *App) SignIn(ctx context.Context, userID, sessionToken string) {
	if a.bridge != nil {
		a.bridge.SetSessionToken(sessionToken)
	}

	if _, ok := a.services.Data.GetUserProfile(ctx); !ok && userID != "" {
		a.services.Data.SetUserProfile(ctx, models.UserProfile{UserID: userID})
	}
}

// Run starts the sync scheduler in the foreground state and blocks until a
// termination signal arrives.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	unsubscribe := a.services.Engine.Subscribe(func(s models.SyncStatus) {
		a.logger.Info().Str("status", string(s)).Msg("sync status changed")
	})
	defer unsubscribe()

	if profile, ok := a.RestoreIdentity(ctx); ok {
		a.logger.Info().Str("user_id", profile.UserID).Msg("restored signed-in user")
	}

	a.SignIn(ctx, os.Getenv("IRONLOG_USER_ID"), os.Getenv("IRONLOG_SESSION_TOKEN"))

	a.services.Scheduler.Start(ctx, a.cfg.Workers.SyncInterval)
	defer a.services.Scheduler.Stop()

	<-ctx.Done()
	a.logger.Info().Msg("client shutting down")

	return nil
}
