/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubreconciler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"golang.org/x/oauth2"
)

// ClientOption customizes a ClientCache.
type ClientOption func(*ClientCache)

// WithBaseURL points clients at a GitHub Enterprise Server API, for example
// https://github.example.com/api/v3/.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *ClientCache) { c.baseURL = baseURL }
}

// WithTransport sets the base transport used under authentication.
func WithTransport(tr http.RoundTripper) ClientOption {
	return func(c *ClientCache) { c.transport = tr }
}

// ClientCache hands out one authenticated client per installation.
// It is safe for concurrent use.
type ClientCache struct {
	baseURL   string
	transport http.RoundTripper
	newClient func(ctx context.Context, installationID int64) (*http.Client, error)

	mu      sync.Mutex
	clients map[int64]*github.Client
}

func newClientCache(opts []ClientOption) *ClientCache {
	c := &ClientCache{
		transport: http.DefaultTransport,
		clients:   make(map[int64]*github.Client),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewAppClientCache returns a cache of clients authenticated as installations
// of the given GitHub App. privateKey is the PEM encoded App key.
func NewAppClientCache(appID int64, privateKey []byte, opts ...ClientOption) (*ClientCache, error) {
	if appID == 0 {
		return nil, errors.New("app id is required")
	}
	if len(privateKey) == 0 {
		return nil, errors.New("private key is required")
	}
	c := newClientCache(opts)
	c.newClient = func(ctx context.Context, installationID int64) (*http.Client, error) {
		tr, err := ghinstallation.New(c.transport, appID, installationID, privateKey)
		if err != nil {
			return nil, fmt.Errorf("creating installation transport: %w", err)
		}
		if c.baseURL != "" {
			tr.BaseURL = strings.TrimSuffix(c.baseURL, "/")
		}
		return &http.Client{Transport: tr}, nil
	}
	return c, nil
}

// NewTokenClientCache returns a cache whose clients all authenticate with the
// same static token, regardless of installation.
func NewTokenClientCache(token string, opts ...ClientOption) *ClientCache {
	c := newClientCache(opts)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	c.newClient = func(context.Context, int64) (*http.Client, error) {
		return &http.Client{Transport: &oauth2.Transport{Source: ts, Base: c.transport}}, nil
	}
	return c
}

// Get returns the client for the installation, creating it on first use.
func (c *ClientCache) Get(ctx context.Context, installationID int64) (*github.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gh, ok := c.clients[installationID]; ok {
		return gh, nil
	}

	clog.FromContext(ctx).With("installation_id", installationID).Debug("Creating GitHub client")
	hc, err := c.newClient(ctx, installationID)
	if err != nil {
		return nil, err
	}
	gh := github.NewClient(hc)
	if c.baseURL != "" {
		gh, err = gh.WithEnterpriseURLs(c.baseURL, c.baseURL)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise url: %w", err)
		}
	}
	c.clients[installationID] = gh
	return gh, nil
}
