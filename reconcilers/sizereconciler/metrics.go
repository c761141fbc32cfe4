/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package sizereconciler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reconcileCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prsize_reconciliations_total",
			Help: "Total number of pull request size reconciliation passes",
		},
		[]string{"outcome"},
	)

	mutationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prsize_label_mutations_total",
			Help: "Total number of label mutations applied to repositories and pull requests",
		},
		[]string{"operation"},
	)

	configFallbackCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prsize_config_fallbacks_total",
			Help: "Total number of passes that fell back to the default label configuration",
		},
		[]string{"reason"},
	)

	linesHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prsize_pull_request_lines",
			Help:    "Changed line count of reconciled pull requests",
			Buckets: []float64{10, 30, 100, 500, 1000, 5000},
		},
		[]string{"tier"},
	)
)

const (
	outcomeLabeled   = "labeled"
	outcomeUnchanged = "unchanged"
	outcomeSkipped   = "skipped"
	outcomeFailed    = "failed"

	fallbackMissing = "missing"
	fallbackInvalid = "invalid"
)
