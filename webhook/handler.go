/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package webhook adapts GitHub pull_request webhook deliveries into
// reconciliation passes.
package webhook

import (
	"context"
	"net/http"
	"slices"

	"chainguard.dev/prsize/reconcilers/githubreconciler"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
)

// sizeActions are the pull_request actions that can change a pull request's size.
var sizeActions = []string{"opened", "synchronize", "reopened", "ready_for_review"}

// ClientSource returns a client authenticated for an installation.
type ClientSource interface {
	Get(ctx context.Context, installationID int64) (*github.Client, error)
}

// Handler verifies webhook deliveries and runs the reconciler for
// qualifying pull request events.
type Handler struct {
	secret    []byte
	clients   ClientSource
	reconcile githubreconciler.ReconcilerFunc
}

// NewHandler returns a Handler validating payloads with secret.
func NewHandler(secret []byte, clients ClientSource, reconcile githubreconciler.ReconcilerFunc) *Handler {
	return &Handler{secret: secret, clients: clients, reconcile: reconcile}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := clog.FromContext(ctx).With("delivery", github.DeliveryID(r))

	payload, err := github.ValidatePayload(r, h.secret)
	if err != nil {
		log.With("error", err).Warn("Rejecting webhook delivery")
		http.Error(w, "invalid payload", http.StatusUnauthorized)
		return
	}

	event, err := github.ParseWebHook(github.WebHookType(r), payload)
	if err != nil {
		log.With("error", err).Warn("Unparseable webhook delivery")
		http.Error(w, "unparseable payload", http.StatusBadRequest)
		return
	}

	switch event := event.(type) {
	case *github.PingEvent:
		log.With("hook_id", event.GetHookID()).Info("Received ping")
		w.WriteHeader(http.StatusOK)
	case *github.PullRequestEvent:
		if !slices.Contains(sizeActions, event.GetAction()) {
			log.With("action", event.GetAction()).Debug("Ignoring pull request action")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.handlePullRequest(clog.WithLogger(ctx, log), w, event)
	default:
		log.With("event", github.WebHookType(r)).Debug("Ignoring event")
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) handlePullRequest(ctx context.Context, w http.ResponseWriter, event *github.PullRequestEvent) {
	res := &githubreconciler.Resource{
		Owner:  event.GetRepo().GetOwner().GetLogin(),
		Repo:   event.GetRepo().GetName(),
		Number: event.GetNumber(),
		Type:   githubreconciler.ResourceTypePullRequest,
	}
	log := clog.FromContext(ctx).With("resource", res.String())

	gh, err := h.clients.Get(ctx, event.GetInstallation().GetID())
	if err != nil {
		log.With("error", err).Error("Failed to create GitHub client")
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	if err := h.reconcile(ctx, res, gh); err != nil {
		log.With("error", err).Error("Reconciliation failed")
		http.Error(w, "reconciliation failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
