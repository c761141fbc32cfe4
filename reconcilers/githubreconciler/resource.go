/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubreconciler

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-github/v84/github"
)

// ResourceType is the kind of GitHub object a Resource refers to.
type ResourceType string

const ResourceTypePullRequest ResourceType = "pull"

// Resource identifies a numbered GitHub object.
type Resource struct {
	Owner  string
	Repo   string
	Number int
	Type   ResourceType
}

// String returns the HTML URL of the resource.
func (r *Resource) String() string {
	return fmt.Sprintf("https://github.com/%s/%s/%s/%d", r.Owner, r.Repo, r.Type, r.Number)
}

// ReconcilerFunc reconciles a single resource using an authenticated client.
type ReconcilerFunc func(ctx context.Context, res *Resource, gh *github.Client) error

// ParseURL parses a pull request URL of the form
// https://{host}/{owner}/{repo}/pull/{number}.
func ParseURL(raw string) (*Resource, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing url %q: %w", raw, err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 4 {
		return nil, fmt.Errorf("url %q: want /{owner}/{repo}/pull/{number}", raw)
	}
	if typ := ResourceType(parts[2]); typ != ResourceTypePullRequest {
		return nil, fmt.Errorf("url %q: unsupported resource type %q", raw, parts[2])
	}

	n, err := strconv.Atoi(parts[3])
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("url %q: invalid number %q", raw, parts[3])
	}

	return &Resource{Owner: parts[0], Repo: parts[1], Number: n, Type: ResourceTypePullRequest}, nil
}
