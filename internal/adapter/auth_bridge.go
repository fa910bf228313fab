// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pkalugin/ironlog/internal/logger"
	"github.com/pkalugin/ironlog/models"
)

// AuthBridgeConfig configures the credential-exchange client.
type AuthBridgeConfig struct {
	// TokenEndpoint is the full URL of the token exchange endpoint.
	TokenEndpoint string
	// AppID names the application requesting a credential.
	AppID string
	// Timeout bounds the exchange call.
	Timeout time.Duration
	// CredentialTTL is how long an exchanged credential is reused before a
	// fresh exchange. Defaults to 5 minutes.
	CredentialTTL time.Duration
}

// AuthBridge exchanges the locally held session token for a remote
// credential via the external token-issuing service. It implements
// [CredentialSource]: any non-200 from the endpoint, a missing session
// token, or a transport failure all degrade to "no credential".
type AuthBridge struct {
	client *resty.Client
	cfg    AuthBridgeConfig
	logger *logger.Logger

	mu           sync.Mutex
	sessionToken string
	credential   string
	fetchedAt    time.Time
}

// NewAuthBridge builds the [CredentialSource] backed by the token endpoint.
func NewAuthBridge(cfg AuthBridgeConfig, log *logger.Logger) *AuthBridge {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.CredentialTTL <= 0 {
		cfg.CredentialTTL = 5 * time.Minute
	}

	return &AuthBridge{
		client: resty.New().SetTimeout(cfg.Timeout),
		cfg:    cfg,
		logger: log,
	}
}

// SetSessionToken installs the session token used for exchanges and drops
// any cached credential. An empty token signs the user out.
func (b *AuthBridge) SetSessionToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sessionToken = strings.TrimSpace(token)
	b.credential = ""
	b.fetchedAt = time.Time{}
}

// Invalidate drops the cached credential so the next Credential call
// performs a fresh exchange. Called after the remote rejects a request.
func (b *AuthBridge) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.credential = ""
	b.fetchedAt = time.Time{}
}

// Credential implements [CredentialSource].
func (b *AuthBridge) Credential(ctx context.Context) (string, bool) {
	b.mu.Lock()
	token := b.sessionToken
	cached := b.credential
	fresh := b.credential != "" && time.Since(b.fetchedAt) < b.cfg.CredentialTTL
	b.mu.Unlock()

	if token == "" {
		return "", false
	}
	if fresh {
		return cached, true
	}

	cred, err := b.exchange(ctx, token)
	if err != nil {
		b.logger.Warn().Err(err).Str("func", "AuthBridge.Credential").
			Msg("token exchange failed, no credential available")
		return "", false
	}

	b.mu.Lock()
	b.credential = cred
	b.fetchedAt = time.Now()
	b.mu.Unlock()

	return cred, true
}

func (b *AuthBridge) exchange(ctx context.Context, sessionToken string) (string, error) {
	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+sessionToken).
		SetBody(models.TokenExchangeRequest{AppID: b.cfg.AppID}).
		Post(b.cfg.TokenEndpoint)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", ErrNoCredential
	}

	var out models.TokenExchangeResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return "", err
	}
	if out.RemoteCredential == "" {
		return "", ErrNoCredential
	}

	return out.RemoteCredential, nil
}
