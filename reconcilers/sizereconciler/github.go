/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sizereconciler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"chainguard.dev/prsize/reconcilers/githubreconciler"
	"chainguard.dev/prsize/reconcilers/sizereconciler/plan"
	"chainguard.dev/prsize/reconcilers/sizereconciler/sizing"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
)

const filesPerPage = 100

// listFiles returns every changed file of the pull request, following pagination.
func listFiles(ctx context.Context, gh *github.Client, res *githubreconciler.Resource) ([]sizing.FileChange, error) {
	opts := &github.ListOptions{PerPage: filesPerPage}
	var out []sizing.FileChange
	for {
		files, resp, err := gh.PullRequests.ListFiles(ctx, res.Owner, res.Repo, res.Number, opts)
		if err != nil {
			return nil, lookupError("listing pull request files", err)
		}
		for _, f := range files {
			out = append(out, sizing.FileChange{
				Path:         f.GetFilename(),
				LinesAdded:   f.GetAdditions(),
				LinesDeleted: f.GetDeletions(),
				Status:       sizing.Status(f.GetStatus()),
				Patch:        f.GetPatch(),
			})
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// readFile returns the content of path on the default branch, or nil if the
// repository or the file does not exist.
func readFile(ctx context.Context, gh *github.Client, owner, repo, path string) ([]byte, error) {
	fc, _, _, err := gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	switch {
	case hasStatus(err, http.StatusNotFound):
		return nil, nil
	case err != nil:
		return nil, lookupError(fmt.Sprintf("reading %s/%s:%s", owner, repo, path), err)
	case fc == nil:
		// The path is a directory.
		return nil, nil
	case fc.GetEncoding() == "none":
		// Files over 1MB come without inline content.
		raw, _, err := gh.Git.GetBlobRaw(ctx, owner, repo, fc.GetSHA())
		if err != nil {
			return nil, lookupError(fmt.Sprintf("reading blob of %s/%s:%s", owner, repo, path), err)
		}
		return raw, nil
	}
	content, err := fc.GetContent()
	if err != nil {
		return nil, lookupError(fmt.Sprintf("decoding %s/%s:%s", owner, repo, path), err)
	}
	return []byte(content), nil
}

// labelExists reports whether the repository defines the label.
func labelExists(ctx context.Context, gh *github.Client, owner, repo, name string) (bool, error) {
	_, _, err := gh.Issues.GetLabel(ctx, owner, repo, name)
	switch {
	case err == nil:
		return true, nil
	case hasStatus(err, http.StatusNotFound):
		return false, nil
	default:
		return false, lookupError("getting label "+name, err)
	}
}

// applyPlan performs the plan's mutations in order: create, add, remove.
func applyPlan(ctx context.Context, gh *github.Client, res *githubreconciler.Resource, p *plan.Plan) error {
	log := clog.FromContext(ctx)

	if p.Create != nil {
		_, _, err := gh.Issues.CreateLabel(ctx, res.Owner, res.Repo, &github.Label{
			Name:  github.Ptr(p.Create.Name),
			Color: github.Ptr(p.Create.Color),
		})
		switch {
		case err == nil:
			log.With("label", p.Create.Name).Info("Created label")
			mutationCounter.WithLabelValues("create").Inc()
		case alreadyExists(err):
			log.With("label", p.Create.Name).Info("Label was created concurrently")
		default:
			return lookupError("creating label "+p.Create.Name, err)
		}
	}

	if p.Add != "" {
		if _, _, err := gh.Issues.AddLabelsToIssue(ctx, res.Owner, res.Repo, res.Number, []string{p.Add}); err != nil {
			return lookupError("adding label "+p.Add, err)
		}
		log.With("label", p.Add).Info("Added label")
		mutationCounter.WithLabelValues("add").Inc()
	}

	for _, name := range p.Remove {
		_, err := gh.Issues.RemoveLabelForIssue(ctx, res.Owner, res.Repo, res.Number, name)
		switch {
		case err == nil:
			log.With("label", name).Info("Removed label")
			mutationCounter.WithLabelValues("remove").Inc()
		case hasStatus(err, http.StatusNotFound):
			log.With("label", name).Debug("Label already removed")
		default:
			return lookupError("removing label "+name, err)
		}
	}
	return nil
}

func labelNames(ls []*github.Label) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.GetName())
	}
	return out
}

func hasStatus(err error, code int) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == code
}

func alreadyExists(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) || ghErr.Response == nil || ghErr.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}
	for _, e := range ghErr.Errors {
		if e.Code == "already_exists" {
			return true
		}
	}
	return false
}
