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
	"math"
	"testing"

	"github.com/AleutianAI/dynalyze/services/analysis/collector"
	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// maxOfThree returns the maximum of three ints, with a seeded defect:
// the second guarded assignment stores b where it should store c.
//
//	L1 maxVal = a
//	L2 if b > maxVal
//	L3   maxVal = b
//	L4 if c > maxVal
//	L5   maxVal = b   (defect, should be c)
//	L6 return maxVal
func maxOfThree(s *collector.Session, args ...any) any {
	a, b, c := args[0].(int), args[1].(int), args[2].(int)
	maxVal := 0
	fr := s.Enter("maxOfThree", func() collector.Bindings {
		return collector.Bindings{"a": a, "b": b, "c": c, "maxVal": maxVal}
	})
	defer fr.Exit()

	maxVal = a
	fr.Stmt(1, "a")
	fr.Stmt(2, "b", "maxVal")
	if b > maxVal {
		fr.EnterBlock(2, "b", "maxVal")
		maxVal = b
		fr.Stmt(3, "b")
		fr.ExitBlock()
	}
	fr.Stmt(4, "c", "maxVal")
	if c > maxVal {
		fr.EnterBlock(4, "c", "maxVal")
		maxVal = b
		fr.Stmt(5, "b")
		fr.ExitBlock()
	}
	fr.Stmt(6, "maxVal")
	return maxVal
}

// maxSuite is two failing and five passing cases. Only runs reaching
// the defective assignment with c as the true maximum fail.
func maxSuite() []TestCase {
	return []TestCase{
		{Name: "ascending", Args: []any{1, 2, 3}, Expected: 3},
		{Name: "c dominates", Args: []any{1, 1, 5}, Expected: 5},
		{Name: "descending", Args: []any{3, 2, 1}, Expected: 3},
		{Name: "b dominates", Args: []any{1, 3, 2}, Expected: 3},
		{Name: "middle peak", Args: []any{2, 3, 1}, Expected: 3},
		{Name: "a dominates", Args: []any{5, 4, 3}, Expected: 5},
		{Name: "all zero", Args: []any{0, 0, 0}, Expected: 0},
	}
}

func mloc(line int) execindex.Location {
	return execindex.Location{Routine: "maxOfThree", Line: line}
}

func TestRunTests_NoTarget(t *testing.T) {
	l := NewLocalizer(nil)
	l.AddTestCase(TestCase{Name: "x"})
	assert.ErrorIs(t, l.RunTests(context.Background()), ErrNilTarget)
}

func TestRunTests_NoTestCases(t *testing.T) {
	l := NewLocalizer(maxOfThree)
	assert.ErrorIs(t, l.RunTests(context.Background()), ErrNoTestCases)
}

func TestRunTests_Cancelled(t *testing.T) {
	l := NewLocalizer(maxOfThree)
	l.AddTestCases(maxSuite()...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.RunTests(ctx), context.Canceled)
}

func TestRankingsBeforeRun(t *testing.T) {
	l := NewLocalizer(maxOfThree)
	_, err := l.Rankings(FormulaOchiai)
	assert.ErrorIs(t, err, ErrNoSpectrum)
}

// The defective line is executed by both failing runs and no passing
// run, so both formulas must rank it first with score 1.
func TestLocalizeSeededDefect(t *testing.T) {
	l := NewLocalizer(maxOfThree)
	l.AddTestCases(maxSuite()...)
	require.NoError(t, l.RunTests(context.Background()))

	sp := l.Spectrum()
	require.NotNil(t, sp)
	assert.Equal(t, 2, sp.TotalFailed())
	assert.Equal(t, 5, sp.TotalPassed())

	failed, passed := sp.Counts(mloc(5))
	assert.Equal(t, 2, failed)
	assert.Equal(t, 0, passed)

	for _, formula := range []Formula{FormulaTarantula, FormulaOchiai} {
		top, err := l.MostSuspicious(formula)
		require.NoError(t, err)
		assert.Equal(t, mloc(5), top.Location, "formula %s", formula)
		assert.InDelta(t, 1.0, top.Score, 1e-9)
	}
}

func TestLocalizeRankingOrder(t *testing.T) {
	l := NewLocalizer(maxOfThree)
	l.AddTestCases(maxSuite()...)
	require.NoError(t, l.RunTests(context.Background()))

	rankings, err := l.Rankings(FormulaOchiai)
	require.NoError(t, err)
	require.NotEmpty(t, rankings)

	assert.Equal(t, mloc(5), rankings[0].Location)
	for i := 1; i < len(rankings); i++ {
		assert.LessOrEqual(t, rankings[i].Score, rankings[i-1].Score)
		if rankings[i].Score == rankings[i-1].Score {
			assert.Negative(t, rankings[i-1].Location.Compare(rankings[i].Location))
		}
	}

	// Lines executed by every run score 2/sqrt(2*7).
	for _, line := range []int{1, 2, 4, 6} {
		var got *Ranking
		for i := range rankings {
			if rankings[i].Location == mloc(line) {
				got = &rankings[i]
				break
			}
		}
		require.NotNil(t, got, "L%d missing from rankings", line)
		assert.InDelta(t, 2.0/math.Sqrt(14), got.Score, 1e-9)
	}
}

// A suite with no failing runs ranks every line zero instead of
// producing NaN scores.
func TestLocalizeAllPassing(t *testing.T) {
	l := NewLocalizer(maxOfThree)
	l.AddTestCases(
		TestCase{Name: "descending", Args: []any{3, 2, 1}, Expected: 3},
		TestCase{Name: "b dominates", Args: []any{1, 3, 2}, Expected: 3},
	)
	require.NoError(t, l.RunTests(context.Background()))

	rankings, err := l.Rankings(FormulaTarantula)
	require.NoError(t, err)
	for _, r := range rankings {
		assert.Zero(t, r.Score)
		assert.False(t, math.IsNaN(r.Score))
	}
}

func panickyRoutine(s *collector.Session, args ...any) any {
	fr := s.Enter("panicky", func() collector.Bindings {
		return collector.Bindings{}
	})
	defer fr.Exit()
	fr.Stmt(1)
	panic("boom")
}

// A panicking case counts as failed and its partial trace still feeds
// the spectrum.
func TestLocalizePanickingTarget(t *testing.T) {
	l := NewLocalizer(panickyRoutine)
	l.AddTestCase(TestCase{Name: "explodes", Args: nil, Expected: 42})
	require.NoError(t, l.RunTests(context.Background()))

	results := l.Results()
	require.Len(t, results, 1)
	assert.True(t, results[0].Panicked)
	assert.False(t, results[0].Passed)
	assert.Equal(t, "boom", results[0].PanicValue)

	sp := l.Spectrum()
	assert.Equal(t, 1, sp.TotalFailed())
	failed, _ := sp.Counts(execindex.Location{Routine: "panicky", Line: 1})
	assert.Equal(t, 1, failed)
}

func TestCaseResultActual(t *testing.T) {
	l := NewLocalizer(maxOfThree)
	l.AddTestCase(TestCase{Name: "ascending", Args: []any{1, 2, 3}, Expected: 3})
	require.NoError(t, l.RunTests(context.Background()))

	results := l.Results()
	require.Len(t, results, 1)
	assert.False(t, results[0].Passed)
	assert.Equal(t, 2, results[0].Actual, "defect returns b instead of c")
	require.NotNil(t, results[0].Trace)
	assert.Equal(t, "maxOfThree", results[0].Trace.Routine())
}
