// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package report

import (
	"context"
	"testing"

	"github.com/AleutianAI/dynalyze/services/analysis/collector"
	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
	"github.com/AleutianAI/dynalyze/services/analysis/heisenbug"
	"github.com/AleutianAI/dynalyze/services/analysis/slicer"
	"github.com/AleutianAI/dynalyze/services/analysis/spectrum"
	"github.com/AleutianAI/dynalyze/services/analysis/targets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionHeader(t *testing.T) {
	out := SectionHeader("Execution Tracing")
	assert.Contains(t, out, "Execution Tracing")
}

func TestTraceListing(t *testing.T) {
	log, _, err := collector.NewSession().TraceExecution(targets.LoopSum, 3)
	require.NoError(t, err)

	out := TraceListing(log)
	assert.Contains(t, out, targets.RoutineLoopSum)
	assert.Contains(t, out, log.RunID())
	assert.Contains(t, out, "enter")
	assert.Contains(t, out, "exit")
	assert.Contains(t, out, "<loop_sum, L3, #2>")
	assert.Contains(t, out, "writes result")
}

func TestIndexedListing(t *testing.T) {
	sess := collector.NewSession()
	_, _, err := sess.TraceExecution(targets.LoopSum, 3)
	require.NoError(t, err)

	a := sess.Assigner()
	out := IndexedListing(a.Points(), a.Stats())
	assert.Contains(t, out, "execution points")
	assert.Contains(t, out, "<loop_sum, L1, #1>")
	assert.Contains(t, out, "max instance")
}

func TestSliceReport(t *testing.T) {
	log, _, err := collector.NewSession().TraceExecution(targets.LoopSum, 4)
	require.NoError(t, err)

	res, err := slicer.ComputeDynamicSlice(log,
		execindex.Location{Routine: targets.RoutineLoopSum, Line: 4}, "result")
	require.NoError(t, err)

	out := SliceReport(res)
	assert.Contains(t, out, "result@loop_sum:L4")
	assert.Contains(t, out, "relevant lines")
	assert.Contains(t, out, "loop_sum:L3")
	assert.Contains(t, out, "data dependences")
	assert.Contains(t, out, "control dependences")
}

func TestRankingTable(t *testing.T) {
	l := spectrum.NewLocalizer(targets.BuggyMax)
	l.AddTestCases(targets.MaxTestCases()...)
	require.NoError(t, l.RunTests(context.Background()))

	rankings, err := l.Rankings(spectrum.FormulaOchiai)
	require.NoError(t, err)

	out := RankingTable(spectrum.FormulaOchiai, rankings, 3)
	assert.Contains(t, out, "ochiai")
	assert.Contains(t, out, "max_of_three:L5")
	assert.Contains(t, out, "failed 2, passed 0")
}

func TestTrialAndBatchSummary(t *testing.T) {
	batch, err := heisenbug.RunBatch(context.Background(), heisenbug.TrialConfig{
		Strategy: heisenbug.StrategyLockGuarded,
	}, 2)
	require.NoError(t, err)

	out := TrialSummary(batch.Trials[0])
	assert.Contains(t, out, "correct")
	assert.Contains(t, out, "worker-1")

	sum := BatchSummary("lock guarded", batch)
	assert.Contains(t, sum, "lock guarded")
	assert.Contains(t, sum, "0/2 trials anomalous")
}
