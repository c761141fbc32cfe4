/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package githubreconciler holds the GitHub plumbing shared by reconcilers:
// the Resource a reconciler acts on and a cache of authenticated clients.
//
// # Basic Usage
//
//	clients, err := githubreconciler.NewAppClientCache(appID, privateKey)
//	if err != nil {
//	    return err
//	}
//
//	res, err := githubreconciler.ParseURL("https://github.com/chainguard-dev/prsize/pull/42")
//	if err != nil {
//	    return err
//	}
//
//	gh, err := clients.Get(ctx, installationID)
//	if err != nil {
//	    return err
//	}
//	return reconcile(ctx, res, gh)
//
// Deployments that act on a single installation can use NewTokenClientCache
// with a static token instead of GitHub App credentials.
package githubreconciler
