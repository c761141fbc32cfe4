/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sizereconciler

import (
	"context"
	"fmt"

	"chainguard.dev/prsize/reconcilers/githubreconciler"
	"chainguard.dev/prsize/reconcilers/sizereconciler/labels"
	"chainguard.dev/prsize/reconcilers/sizereconciler/plan"
	"chainguard.dev/prsize/reconcilers/sizereconciler/sizing"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultConfigPath is where repositories keep their label configuration.
	DefaultConfigPath = ".github/labels.yml"

	orgConfigRepo     = ".github"
	gitAttributesPath = ".gitattributes"
)

var tracer = otel.Tracer("chainguard.dev/prsize/reconcilers/sizereconciler")

// Reconciler keeps the size label of pull requests in sync with their diff.
type Reconciler struct {
	configPath        string
	defaultExclusions bool
	excludePatterns   []string
	exclusions        *sizing.Exclusions
	ignoreDeletions   bool
	defaults          labels.Config
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithConfigPath overrides the repository path of the label configuration.
func WithConfigPath(path string) Option {
	return func(r *Reconciler) { r.configPath = path }
}

// WithExcludePatterns excludes gitignore-style patterns in every repository.
// A repository's .gitattributes takes precedence over them.
func WithExcludePatterns(patterns ...string) Option {
	return func(r *Reconciler) { r.excludePatterns = append(r.excludePatterns, patterns...) }
}

// WithDefaultExclusions controls whether well-known lockfiles and build
// output are treated as generated. It is on by default.
func WithDefaultExclusions(enabled bool) Option {
	return func(r *Reconciler) { r.defaultExclusions = enabled }
}

// WithIgnoreDeletions makes files that only delete lines count as zero.
func WithIgnoreDeletions(ignore bool) Option {
	return func(r *Reconciler) { r.ignoreDeletions = ignore }
}

// WithDefaults replaces the built-in label configuration. A cfg that fails
// validation is ignored.
func WithDefaults(cfg labels.Config) Option {
	return func(r *Reconciler) { r.defaults = cfg }
}

// New creates a Reconciler.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{
		configPath:        DefaultConfigPath,
		defaultExclusions: true,
		defaults:          labels.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	var patterns []string
	if r.defaultExclusions {
		patterns = sizing.DefaultGeneratedPatterns()
	}
	r.exclusions = sizing.NewExclusions(patterns...).Merge(r.excludePatterns...)

	if err := r.defaults.Validate(); err != nil {
		r.defaults = labels.Default()
	}
	return r
}

// Reconcile runs one reconciliation pass for a pull request.
func (r *Reconciler) Reconcile(ctx context.Context, res *githubreconciler.Resource, gh *github.Client) (err error) {
	ctx, span := tracer.Start(ctx, "sizereconciler.Reconcile", trace.WithAttributes(
		attribute.String("github.owner", res.Owner),
		attribute.String("github.repo", res.Repo),
		attribute.Int("github.number", res.Number),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			reconcileCounter.WithLabelValues(outcomeFailed).Inc()
		}
		span.End()
	}()

	log := clog.FromContext(ctx).With("owner", res.Owner).With("repo", res.Repo).With("number", res.Number)
	ctx = clog.WithLogger(ctx, log)

	pr, _, err := gh.PullRequests.Get(ctx, res.Owner, res.Repo, res.Number)
	if err != nil {
		return lookupError("fetching pull request", err)
	}
	if pr.GetState() == "closed" {
		log.Info("Skipping closed pull request")
		reconcileCounter.WithLabelValues(outcomeSkipped).Inc()
		return nil
	}
	current := labelNames(pr.Labels)

	in, err := r.fetchInputs(ctx, gh, res)
	if err != nil {
		return err
	}

	attrs, err := sizing.ParseGitAttributes(in.attributes)
	if err != nil {
		log.With("error", err).Warn("Ignoring unreadable .gitattributes")
	}
	sopts := []sizing.Option{sizing.WithGitAttributes(attrs)}
	if r.ignoreDeletions {
		sopts = append(sopts, sizing.WithIgnoreDeletions())
	}
	total, err := sizing.ComputeSize(in.files, r.exclusions, sopts...)
	if err != nil {
		return fmt.Errorf("computing size: %w", err)
	}

	cfg := r.resolveConfig(ctx, in.config)
	desired := cfg.ResolveTier(total)

	log = log.With("lines", total).With("tier", desired.ID)
	ctx = clog.WithLogger(ctx, log)
	span.SetAttributes(
		attribute.Int("prsize.lines", total),
		attribute.String("prsize.tier", string(desired.ID)),
	)
	linesHistogram.WithLabelValues(string(desired.ID)).Observe(float64(total))

	p, err := plan.Compute(current, desired, cfg, func(name string) (bool, error) {
		return labelExists(ctx, gh, res.Owner, res.Repo, name)
	})
	if err != nil {
		return err
	}

	if p.Empty() {
		log.Info("Size label already up to date")
		reconcileCounter.WithLabelValues(outcomeUnchanged).Inc()
		return nil
	}

	if err := applyPlan(ctx, gh, res, p); err != nil {
		return err
	}
	log.With("label", desired.Name).Info("Reconciled size label")
	reconcileCounter.WithLabelValues(outcomeLabeled).Inc()
	return nil
}

type inputs struct {
	files      []sizing.FileChange
	config     []byte
	attributes []byte
}

// fetchInputs reads the changed files, label configuration and
// .gitattributes concurrently.
func (r *Reconciler) fetchInputs(ctx context.Context, gh *github.Client, res *githubreconciler.Resource) (*inputs, error) {
	var in inputs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.files, err = listFiles(gctx, gh, res)
		return err
	})
	g.Go(func() (err error) {
		in.config, err = r.lookupConfig(gctx, gh, res.Owner, res.Repo)
		return err
	})
	g.Go(func() (err error) {
		in.attributes, err = readFile(gctx, gh, res.Owner, res.Repo, gitAttributesPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &in, nil
}

// lookupConfig returns the first label configuration found in the repository
// or the owner's .github repository, or nil if neither has one.
func (r *Reconciler) lookupConfig(ctx context.Context, gh *github.Client, owner, repo string) ([]byte, error) {
	sources := []string{repo}
	if repo != orgConfigRepo {
		sources = append(sources, orgConfigRepo)
	}
	for _, src := range sources {
		raw, err := readFile(ctx, gh, owner, src, r.configPath)
		if err != nil {
			return nil, err
		}
		if raw != nil {
			clog.FromContext(ctx).With("source", owner+"/"+src).Debug("Found label configuration")
			return raw, nil
		}
	}
	return nil, nil
}

// resolveConfig merges raw onto the defaults, falling back to the defaults
// when raw is absent or unusable.
func (r *Reconciler) resolveConfig(ctx context.Context, raw []byte) labels.Config {
	log := clog.FromContext(ctx)
	if raw == nil {
		log.Debug("No label configuration found, using defaults")
		configFallbackCounter.WithLabelValues(fallbackMissing).Inc()
		return r.defaults
	}
	cfg, err := labels.Resolve(r.defaults, raw)
	if err != nil {
		log.With("error", err).Warn("Ignoring invalid label configuration, using defaults")
		configFallbackCounter.WithLabelValues(fallbackInvalid).Inc()
	}
	return cfg
}
