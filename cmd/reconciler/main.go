/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs the pull request size labeler as a GitHub webhook receiver.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"chainguard.dev/prsize/reconcilers/githubreconciler"
	"chainguard.dev/prsize/reconcilers/sizereconciler"
	"chainguard.dev/prsize/webhook"
	"github.com/chainguard-dev/clog"
	_ "github.com/chainguard-dev/clog/gcp/init"
	"github.com/chainguard-dev/terraform-infra-common/pkg/httpmetrics"
	"github.com/chainguard-dev/terraform-infra-common/pkg/profiler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sethvargo/go-envconfig"
	"golang.org/x/sync/errgroup"
)

type config struct {
	Port        int `env:"PORT,default=8080"`
	MetricsPort int `env:"METRICS_PORT,default=2112"`

	WebhookSecret string `env:"WEBHOOK_SECRET,required"`

	// GitHub App credentials, or a static token for single-installation deployments.
	AppID          int64  `env:"GITHUB_APP_ID"`
	PrivateKeyPath string `env:"GITHUB_APP_PRIVATE_KEY_PATH"`
	Token          string `env:"GITHUB_TOKEN"`
	APIURL         string `env:"GITHUB_API_URL"`

	ConfigPath        string   `env:"CONFIG_PATH,default=.github/labels.yml"`
	ExcludePatterns   []string `env:"EXCLUDE_PATTERNS"`
	DefaultExclusions bool     `env:"DEFAULT_EXCLUSIONS,default=true"`
	IgnoreDeletions   bool     `env:"IGNORE_DELETIONS,default=false"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go httpmetrics.ScrapeDiskUsage(ctx)
	profiler.SetupProfiler()
	defer httpmetrics.SetupTracer(ctx)()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	clients, err := newClientCache(cfg)
	if err != nil {
		clog.FatalContextf(ctx, "creating github clients: %v", err)
	}

	rec := sizereconciler.New(
		sizereconciler.WithConfigPath(cfg.ConfigPath),
		sizereconciler.WithDefaultExclusions(cfg.DefaultExclusions),
		sizereconciler.WithExcludePatterns(cfg.ExcludePatterns...),
		sizereconciler.WithIgnoreDeletions(cfg.IgnoreDeletions),
	)

	h := newServeMux(webhook.NewHandler([]byte(cfg.WebhookSecret), clients, rec.Reconcile))

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())

	g, ctx := errgroup.WithContext(ctx)
	serve(ctx, g, "webhook", cfg.Port, h)
	serve(ctx, g, "metrics", cfg.MetricsPort, metricsMux)

	if err := g.Wait(); err != nil {
		clog.FatalContextf(ctx, "server failed: %v", err)
	}
}

// newServeMux routes webhook deliveries and health checks. Requests are traced
// and counted under the "webhook" handler name.
func newServeMux(wh http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /webhook", wh)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return httpmetrics.Handler("webhook", mux)
}

// newClientCache prefers GitHub App credentials and falls back to a static token.
func newClientCache(cfg config) (*githubreconciler.ClientCache, error) {
	var opts []githubreconciler.ClientOption
	if cfg.APIURL != "" {
		opts = append(opts, githubreconciler.WithBaseURL(cfg.APIURL))
	}

	switch {
	case cfg.AppID != 0:
		if cfg.PrivateKeyPath == "" {
			return nil, errors.New("GITHUB_APP_PRIVATE_KEY_PATH is required with GITHUB_APP_ID")
		}
		key, err := os.ReadFile(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("reading private key: %w", err)
		}
		return githubreconciler.NewAppClientCache(cfg.AppID, key, opts...)
	case strings.TrimSpace(cfg.Token) != "":
		return githubreconciler.NewTokenClientCache(cfg.Token, opts...), nil
	default:
		return nil, errors.New("one of GITHUB_APP_ID or GITHUB_TOKEN is required")
	}
}

// serve runs an HTTP server on port until ctx is cancelled.
func serve(ctx context.Context, g *errgroup.Group, name string, port int, h http.Handler) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		clog.InfoContextf(ctx, "Starting %s server on port %d", name, port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s server: %w", name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}
