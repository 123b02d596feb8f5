// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package slicer

import (
	"testing"

	"github.com/AleutianAI/dynalyze/services/analysis/collector"
	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sumRoutine accumulates 0..n-1 in a loop.
//
//	L1 total = 0
//	L2 loop header (i < n)
//	L3   total += i
//	L4 return total
func sumRoutine(s *collector.Session, args ...any) any {
	n := args[0].(int)
	total := 0
	i := 0
	fr := s.Enter("sum", func() collector.Bindings {
		return collector.Bindings{"n": n, "i": i, "total": total}
	})
	defer fr.Exit()

	total = 0
	fr.Stmt(1)
	for i = 0; i < n; i++ {
		fr.Stmt(2, "i", "n")
		fr.EnterBlock(2, "i", "n")
		total += i
		fr.Stmt(3, "total", "i")
		fr.ExitBlock()
	}
	fr.Stmt(2, "i", "n")
	fr.Stmt(4, "total")
	return total
}

// chainRoutine is a straight-line dependency chain.
//
//	L1 a = x + 1
//	L2 b = y * 2
//	L3 c = a + b
//	L4 d = c * 2
//	L5 return d
func chainRoutine(s *collector.Session, args ...any) any {
	x, y := args[0].(int), args[1].(int)
	a, b, c, d := 0, 0, 0, 0
	fr := s.Enter("chain", func() collector.Bindings {
		return collector.Bindings{"x": x, "y": y, "a": a, "b": b, "c": c, "d": d}
	})
	defer fr.Exit()

	a = x + 1
	fr.Stmt(1, "x")
	b = y * 2
	fr.Stmt(2, "y")
	c = a + b
	fr.Stmt(3, "a", "b")
	d = c * 2
	fr.Stmt(4, "c")
	fr.Stmt(5, "d")
	return d
}

func traceOf(t *testing.T, r collector.Routine, args ...any) *collector.TraceLog {
	t.Helper()
	log, _, err := collector.NewSession().TraceExecution(r, args...)
	require.NoError(t, err)
	return log
}

func loc(routine string, line int) execindex.Location {
	return execindex.Location{Routine: routine, Line: line}
}

func TestComputeDynamicSlice_EmptyTrace(t *testing.T) {
	_, err := ComputeDynamicSlice(nil, loc("sum", 4), "total")
	assert.ErrorIs(t, err, ErrEmptyTrace)
}

func TestComputeDynamicSlice_TargetNotReached(t *testing.T) {
	log := traceOf(t, sumRoutine, 3)
	_, err := ComputeDynamicSlice(log, loc("sum", 99), "total")
	assert.ErrorIs(t, err, ErrTargetNotReached)
}

func TestComputeDynamicSlice_MissingVariable(t *testing.T) {
	log := traceOf(t, sumRoutine, 3)
	_, err := ComputeSlice(log, Criterion{Location: loc("sum", 4)})
	assert.ErrorIs(t, err, ErrMissingVariable)
}

// Scenario: summing 0..4 in a loop, sliced on the final result at the
// return statement. The slice must include the accumulating assignment
// and the loop header, and the trace must contain exactly five
// index-distinct instances of the assignment.
func TestComputeDynamicSlice_LoopAccumulation(t *testing.T) {
	log := traceOf(t, sumRoutine, 5)

	res, err := ComputeDynamicSlice(log, loc("sum", 4), "total")
	require.NoError(t, err)

	assert.True(t, res.Contains(loc("sum", 3)), "accumulating assignment must be in the slice")
	assert.True(t, res.Contains(loc("sum", 2)), "loop header must be in the slice")

	assert.Contains(t, res.DataDeps, Edge{Source: loc("sum", 3), Sink: loc("sum", 4)})
	assert.Contains(t, res.ControlDeps, Edge{Source: loc("sum", 2), Sink: loc("sum", 3)})

	instances := 0
	for _, ev := range log.Events() {
		if ev.Kind == collector.KindStatement && ev.Location == loc("sum", 3) {
			instances++
		}
	}
	assert.Equal(t, 5, instances)
}

func TestComputeDynamicSlice_DependencyChain(t *testing.T) {
	log := traceOf(t, chainRoutine, 3, 4)

	res, err := ComputeDynamicSlice(log, loc("chain", 5), "d")
	require.NoError(t, err)

	assert.True(t, res.Contains(loc("chain", 4)))
	assert.True(t, res.Contains(loc("chain", 3)))
	assert.True(t, res.Contains(loc("chain", 2)))

	assert.Contains(t, res.DataDeps, Edge{Source: loc("chain", 4), Sink: loc("chain", 5)})
	assert.Contains(t, res.DataDeps, Edge{Source: loc("chain", 3), Sink: loc("chain", 4)})
	assert.Contains(t, res.DataDeps, Edge{Source: loc("chain", 2), Sink: loc("chain", 3)})
}

// A frame's first statement infers no writes, so a variable it assigned
// is treated as externally supplied: kept live with no further
// predecessor, included at its read site only.
func TestComputeDynamicSlice_ExternalInputAtReadSite(t *testing.T) {
	log := traceOf(t, chainRoutine, 3, 4)

	res, err := ComputeDynamicSlice(log, loc("chain", 5), "d")
	require.NoError(t, err)

	// "a" is demanded at L3 but its assignment (L1, the frame's first
	// statement) carries no inferred write. The read site is already in
	// the slice; L1 is not.
	assert.False(t, res.Contains(loc("chain", 1)))
	assert.True(t, res.Contains(loc("chain", 3)))

	// "y" is demanded at L2 and never written either.
	assert.True(t, res.Contains(loc("chain", 2)))
}

// Only the nearest preceding write per visited occurrence is followed:
// earlier loop iterations that wrote the accumulator do not re-enter
// the slice once the latest write resolved it.
func TestComputeDynamicSlice_NearestWriteOnly(t *testing.T) {
	log := traceOf(t, sumRoutine, 5)

	res, err := ComputeDynamicSlice(log, loc("sum", 4), "total")
	require.NoError(t, err)

	wantData := []Edge{
		{Source: loc("sum", 2), Sink: loc("sum", 3)},
		{Source: loc("sum", 3), Sink: loc("sum", 4)},
	}
	assert.Equal(t, wantData, res.DataDeps,
		"one resolving write per demanded variable, not a union over all writes")
}

func TestComputeDynamicSlice_Idempotent(t *testing.T) {
	log := traceOf(t, sumRoutine, 4)

	first, err := ComputeDynamicSlice(log, loc("sum", 4), "total")
	require.NoError(t, err)
	second, err := ComputeDynamicSlice(log, loc("sum", 4), "total")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeDynamicSlice_Soundness(t *testing.T) {
	log := traceOf(t, sumRoutine, 4)

	res, err := ComputeDynamicSlice(log, loc("sum", 4), "total")
	require.NoError(t, err)

	executed := make(map[execindex.Location]struct{})
	for _, l := range log.ExecutedLines() {
		executed[l] = struct{}{}
	}
	for _, l := range res.RelevantLines {
		_, ok := executed[l]
		assert.True(t, ok, "relevant line %s does not appear in the trace", l)
	}
}

func TestComputeSlice_OccurrenceAnchoring(t *testing.T) {
	log := traceOf(t, sumRoutine, 5)

	// Anchor at the sequence number of the second L3 execution: the
	// slice must start from that occurrence, not the last one.
	var anchor int
	count := 0
	for _, ev := range log.Events() {
		if ev.Kind == collector.KindStatement && ev.Location == loc("sum", 3) {
			count++
			if count == 2 {
				anchor = ev.Seq
				break
			}
		}
	}
	require.Equal(t, 2, count)

	res, err := ComputeSlice(log, Criterion{
		Location:   loc("sum", 3),
		Variable:   "total",
		Occurrence: anchor,
	})
	require.NoError(t, err)
	assert.True(t, res.Contains(loc("sum", 3)))
	assert.True(t, res.Contains(loc("sum", 2)))
}

func TestResult_String(t *testing.T) {
	log := traceOf(t, sumRoutine, 3)
	res, err := ComputeDynamicSlice(log, loc("sum", 4), "total")
	require.NoError(t, err)
	assert.Contains(t, res.String(), "total@sum:L4")
}
