// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package spectrum

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for fault localization operations.
var (
	tracer = otel.Tracer("dynalyze.spectrum")
	meter  = otel.Meter("dynalyze.spectrum")
)

// Metrics for fault localization operations.
var (
	suiteLatency metric.Float64Histogram
	suitesTotal  metric.Int64Counter
	casesTotal   metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		suiteLatency, err = meter.Float64Histogram(
			"spectrum_suite_duration_seconds",
			metric.WithDescription("Duration of localization test suite runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		suitesTotal, err = meter.Int64Counter(
			"spectrum_suites_total",
			metric.WithDescription("Total number of localization test suite runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		casesTotal, err = meter.Int64Counter(
			"spectrum_cases_total",
			metric.WithDescription("Total test cases executed, by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// startSuiteSpan creates a span for a test suite run.
func startSuiteSpan(ctx context.Context, caseCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Localizer.RunTests",
		trace.WithAttributes(
			attribute.Int("spectrum.cases", caseCount),
		),
	)
}

// setSuiteSpanResult sets the outcome attributes on a suite span.
func setSuiteSpanResult(span trace.Span, failed, passed int) {
	span.SetAttributes(
		attribute.Int("spectrum.failed", failed),
		attribute.Int("spectrum.passed", passed),
	)
}

// recordSuiteMetrics records metrics for a test suite run.
func recordSuiteMetrics(ctx context.Context, duration time.Duration, failed, passed int) {
	if err := initMetrics(); err != nil {
		return
	}

	suiteLatency.Record(ctx, duration.Seconds())
	suitesTotal.Add(ctx, 1)
	casesTotal.Add(ctx, int64(failed), metric.WithAttributes(attribute.String("outcome", "failed")))
	casesTotal.Add(ctx, int64(passed), metric.WithAttributes(attribute.String("outcome", "passed")))
}
