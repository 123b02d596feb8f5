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
	"reflect"
	"sort"
	"time"

	"github.com/AleutianAI/dynalyze/pkg/logging"
	"github.com/AleutianAI/dynalyze/services/analysis/collector"
)

// Localizer runs a test suite against an instrumented routine and ranks
// the routine's lines by suspiciousness.
//
// # Description
//
// Each test case runs in a fresh tracing session, so execution indices
// and coverage never bleed between cases. A case passes when the
// routine returns a value deep-equal to the expected one; a panic
// counts as a failure and contributes its partial coverage.
//
// # Thread Safety
//
// Not safe for concurrent use.
type Localizer struct {
	target   collector.Routine
	cases    []TestCase
	results  []CaseResult
	spectrum *Spectrum
	logger   *logging.Logger
}

// LocalizerOption configures a Localizer.
type LocalizerOption func(*Localizer)

// WithLogger sets the localizer's structured logger.
func WithLogger(logger *logging.Logger) LocalizerOption {
	return func(l *Localizer) {
		l.logger = logger
	}
}

// NewLocalizer creates a localizer for the given instrumented routine.
func NewLocalizer(target collector.Routine, opts ...LocalizerOption) *Localizer {
	l := &Localizer{
		target: target,
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddTestCase appends one test case to the suite.
func (l *Localizer) AddTestCase(tc TestCase) {
	l.cases = append(l.cases, tc)
}

// AddTestCases appends several test cases to the suite.
func (l *Localizer) AddTestCases(cases ...TestCase) {
	l.cases = append(l.cases, cases...)
}

// RunTests executes every registered test case and builds the coverage
// spectrum.
//
// # Inputs
//
//   - ctx: Checked between cases; a cancelled context aborts the suite
//     with the context's error and discards partial results.
//
// # Outputs
//
//   - error: ErrNilTarget, ErrNoTestCases, or the context's error.
func (l *Localizer) RunTests(ctx context.Context) error {
	if l.target == nil {
		return ErrNilTarget
	}
	if len(l.cases) == 0 {
		return ErrNoTestCases
	}

	ctx, span := startSuiteSpan(ctx, len(l.cases))
	defer span.End()
	start := time.Now()

	results := make([]CaseResult, 0, len(l.cases))
	sp := NewSpectrum()
	for _, tc := range l.cases {
		if err := ctx.Err(); err != nil {
			return err
		}

		res := l.runCase(tc)
		results = append(results, res)
		if res.Trace != nil {
			sp.AddRun(res.Trace.ExecutedLines(), res.Passed)
		} else {
			sp.AddRun(nil, res.Passed)
		}

		l.logger.Debug("test case executed",
			"case", tc.Name,
			"passed", res.Passed,
			"panicked", res.Panicked,
		)
	}

	l.results = results
	l.spectrum = sp

	setSuiteSpanResult(span, sp.TotalFailed(), sp.TotalPassed())
	recordSuiteMetrics(ctx, time.Since(start), sp.TotalFailed(), sp.TotalPassed())
	l.logger.Info("test suite complete",
		"cases", len(results),
		"failed", sp.TotalFailed(),
		"passed", sp.TotalPassed(),
	)
	return nil
}

// runCase executes one test case in a fresh session, absorbing panics.
func (l *Localizer) runCase(tc TestCase) CaseResult {
	sess := collector.NewSession(collector.WithLogger(l.logger))
	res := CaseResult{Case: tc}

	func() {
		defer func() {
			if r := recover(); r != nil {
				res.Panicked = true
				res.PanicValue = r
			}
		}()
		_, actual, err := sess.TraceExecution(l.target, tc.Args...)
		if err != nil {
			return
		}
		res.Actual = actual
		res.Passed = reflect.DeepEqual(actual, tc.Expected)
	}()

	// The session seals its log on every exit path, so a panicking run
	// still yields the partial trace recorded up to the panic.
	res.Trace = sess.Log()
	return res
}

// Results returns the per-case outcomes of the last RunTests call.
func (l *Localizer) Results() []CaseResult {
	return l.results
}

// Spectrum returns the coverage spectrum of the last RunTests call, or
// nil if the suite has not run.
func (l *Localizer) Spectrum() *Spectrum {
	return l.spectrum
}

// Rankings scores every covered line with the formula and returns them
// in descending suspiciousness order, ties broken by ascending
// location.
func (l *Localizer) Rankings(formula Formula) ([]Ranking, error) {
	if l.spectrum == nil {
		return nil, ErrNoSpectrum
	}

	lines := l.spectrum.Lines()
	rankings := make([]Ranking, 0, len(lines))
	for _, loc := range lines {
		failed, passed := l.spectrum.Counts(loc)
		rankings = append(rankings, Ranking{
			Location: loc,
			Score:    formula.Score(failed, passed, l.spectrum.TotalFailed(), l.spectrum.TotalPassed()),
			Failed:   failed,
			Passed:   passed,
		})
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].Score != rankings[j].Score {
			return rankings[i].Score > rankings[j].Score
		}
		return rankings[i].Location.Compare(rankings[j].Location) < 0
	})
	return rankings, nil
}

// MostSuspicious returns the top-ranked line for the formula.
func (l *Localizer) MostSuspicious(formula Formula) (Ranking, error) {
	rankings, err := l.Rankings(formula)
	if err != nil {
		return Ranking{}, err
	}
	if len(rankings) == 0 {
		return Ranking{}, ErrNoSpectrum
	}
	return rankings[0], nil
}
