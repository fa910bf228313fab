// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pavel Kalugin

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/pkalugin/ironlog/models"
)

// HTTPClientConfig configures the resty-backed remote document client.
type HTTPClientConfig struct {
	BaseURL   string
	APIKey    string
	ProjectID string
	AppID     string
	Timeout   time.Duration
}

type httpDocumentClient struct {
	client *resty.Client
	creds  CredentialSource
}

// NewHTTPDocumentClient builds the [DocumentClient] speaking the remote
// document HTTP API. Every call carries the project API key and, when the
// credential source can produce one, a bearer credential. The configured
// timeout bounds each call; the engine imposes no timeout of its own.
func NewHTTPDocumentClient(cfg HTTPClientConfig, creds CredentialSource) DocumentClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("X-Api-Key", cfg.APIKey).
		SetHeader("X-App-Id", cfg.AppID).
		SetHeader("X-Project-Id", cfg.ProjectID)

	return &httpDocumentClient{client: cli, creds: creds}
}

func (h *httpDocumentClient) Upsert(ctx context.Context, userID string, collection models.Collection, documentID string, doc models.Document) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(doc).
		Patch(documentPath(userID, collection, documentID))
	if err != nil {
		return fmt.Errorf("upsert request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpDocumentClient) Delete(ctx context.Context, userID string, collection models.Collection, documentID string) error {
	resp, err := h.authedRequest(ctx).
		Delete(documentPath(userID, collection, documentID))
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpDocumentClient) QueryNewer(ctx context.Context, userID string, collection models.Collection, since int64) ([]models.Document, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("since", fmt.Sprintf("%d", since)).
		Get(collectionPath(userID, collection))
	if err != nil {
		return nil, fmt.Errorf("query request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var docs []models.Document
	if err = json.Unmarshal(resp.Body(), &docs); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}

	return docs, nil
}

func (h *httpDocumentClient) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if cred, ok := h.creds.Credential(ctx); ok {
		req.SetHeader("Authorization", "Bearer "+cred)
	}
	return req
}

func collectionPath(userID string, collection models.Collection) string {
	return fmt.Sprintf("/api/v1/users/%s/%s", userID, collection)
}

func documentPath(userID string, collection models.Collection, documentID string) string {
	return fmt.Sprintf("%s/%s", collectionPath(userID, collection), documentID)
}
