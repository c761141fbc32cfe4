/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs a single size labeling pass for the pull request named
// by its URL, for backfills and debugging:
//
//	GITHUB_TOKEN=... sizelabel https://github.com/chainguard-dev/prsize/pull/42
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chainguard.dev/prsize/reconcilers/githubreconciler"
	"chainguard.dev/prsize/reconcilers/sizereconciler"
	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
)

type config struct {
	Token  string `env:"GITHUB_TOKEN,required"`
	APIURL string `env:"GITHUB_API_URL"`

	ConfigPath        string   `env:"CONFIG_PATH,default=.github/labels.yml"`
	ExcludePatterns   []string `env:"EXCLUDE_PATTERNS"`
	DefaultExclusions bool     `env:"DEFAULT_EXCLUSIONS,default=true"`
	IgnoreDeletions   bool     `env:"IGNORE_DELETIONS,default=false"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if len(os.Args) != 2 {
		clog.FatalContextf(ctx, "usage: %s <pull request url>", os.Args[0])
	}

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	if err := run(ctx, cfg, os.Args[1]); err != nil {
		clog.FatalContextf(ctx, "%v", err)
	}
}

func run(ctx context.Context, cfg config, rawURL string) error {
	res, err := githubreconciler.ParseURL(rawURL)
	if err != nil {
		return err
	}

	var opts []githubreconciler.ClientOption
	if cfg.APIURL != "" {
		opts = append(opts, githubreconciler.WithBaseURL(cfg.APIURL))
	}
	gh, err := githubreconciler.NewTokenClientCache(cfg.Token, opts...).Get(ctx, 0)
	if err != nil {
		return fmt.Errorf("creating github client: %w", err)
	}

	rec := sizereconciler.New(
		sizereconciler.WithConfigPath(cfg.ConfigPath),
		sizereconciler.WithDefaultExclusions(cfg.DefaultExclusions),
		sizereconciler.WithExcludePatterns(cfg.ExcludePatterns...),
		sizereconciler.WithIgnoreDeletions(cfg.IgnoreDeletions),
	)
	clog.InfoContextf(ctx, "Reconciling %s", res)
	return rec.Reconcile(ctx, res, gh)
}
