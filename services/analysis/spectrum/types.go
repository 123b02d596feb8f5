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
	"fmt"
	"sort"

	"github.com/AleutianAI/dynalyze/services/analysis/collector"
	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
)

// TestCase is one input/expected-output pair for the target routine.
type TestCase struct {
	// Name identifies the case in results and log output.
	Name string

	// Args are forwarded to the target routine.
	Args []any

	// Expected is compared against the routine's return value with
	// deep equality.
	Expected any
}

// String renders the case as "name(args...) => expected".
func (tc TestCase) String() string {
	return fmt.Sprintf("%s(%v) => %v", tc.Name, tc.Args, tc.Expected)
}

// CaseResult records one executed test case.
type CaseResult struct {
	Case TestCase

	// Actual is the routine's return value. Nil when the run panicked.
	Actual any

	// Passed is true when the run completed without panicking and the
	// actual value deep-equals the expected value.
	Passed bool

	// Panicked is true when the routine panicked. A panicking run
	// counts as failed and its partial trace still feeds the spectrum.
	Panicked bool

	// PanicValue holds the recovered panic value, if any.
	PanicValue any

	// Trace is the (possibly partial) trace log of the run.
	Trace *collector.TraceLog
}

// lineTally is the per-location coverage cell of a spectrum.
type lineTally struct {
	failed int
	passed int
}

// Spectrum aggregates per-line coverage across a test suite.
//
// # Thread Safety
//
// Not safe for concurrent mutation. The localizer builds it once in
// RunTests; afterwards it is read-only.
type Spectrum struct {
	tallies     map[execindex.Location]*lineTally
	totalFailed int
	totalPassed int
}

// NewSpectrum creates an empty spectrum.
func NewSpectrum() *Spectrum {
	return &Spectrum{tallies: make(map[execindex.Location]*lineTally)}
}

// AddRun folds one run's executed lines into the spectrum.
func (sp *Spectrum) AddRun(lines []execindex.Location, passed bool) {
	if passed {
		sp.totalPassed++
	} else {
		sp.totalFailed++
	}
	for _, loc := range lines {
		t := sp.tallies[loc]
		if t == nil {
			t = &lineTally{}
			sp.tallies[loc] = t
		}
		if passed {
			t.passed++
		} else {
			t.failed++
		}
	}
}

// Counts returns how many failing and passing runs executed the line.
func (sp *Spectrum) Counts(loc execindex.Location) (failed, passed int) {
	if t := sp.tallies[loc]; t != nil {
		return t.failed, t.passed
	}
	return 0, 0
}

// Lines returns every covered location in ascending location order.
func (sp *Spectrum) Lines() []execindex.Location {
	lines := make([]execindex.Location, 0, len(sp.tallies))
	for loc := range sp.tallies {
		lines = append(lines, loc)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Compare(lines[j]) < 0
	})
	return lines
}

// TotalFailed returns the number of failing runs in the suite.
func (sp *Spectrum) TotalFailed() int { return sp.totalFailed }

// TotalPassed returns the number of passing runs in the suite.
func (sp *Spectrum) TotalPassed() int { return sp.totalPassed }

// Ranking is one line of a suspiciousness ranking.
type Ranking struct {
	Location execindex.Location
	Score    float64

	// Failed and Passed are the line's coverage counts, carried along
	// so reports can show the evidence behind the score.
	Failed int
	Passed int
}

// String renders the ranking as "R:L5 score=1.000 (f=2 p=0)".
func (r Ranking) String() string {
	return fmt.Sprintf("%s score=%.3f (f=%d p=%d)", r.Location, r.Score, r.Failed, r.Passed)
}
