// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package slicer computes dynamic backward slices over trace logs.
//
// A dynamic slice is the minimal subset of executed statements that
// influenced a target variable's value at a target point, for one
// specific run. The slicer walks the trace log in strict reverse
// chronological order, following data dependence through inferred
// read/write sets and control dependence through the structural
// enclosing-block stacks the collector records at capture time. Control
// dependence is deliberately approximated by block nesting rather than
// post-dominator analysis.
package slicer

import (
	"github.com/AleutianAI/dynalyze/services/analysis/collector"
	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
)

// ComputeDynamicSlice slices the log for the variable's value at the
// target location, anchored at the last occurrence in the run.
//
// # Description
//
// Locates the last statement event at the target location, seeds a live
// set with the target variable, and walks the log backward. An event
// whose write set intersects the live set becomes relevant: its written
// variables leave the live set and its read set joins it (data
// dependence, nearest-preceding-write only). A newly relevant statement
// nested inside conditional or loop blocks also pulls in each block
// header and its controlling variables (control dependence), without
// decomposing the predicate. Variables still live when the walk reaches
// the log start are externally supplied inputs; they are included at
// their read site only.
//
// The walk always terminates: the traversal index strictly decreases.
// The computation is idempotent: identical (log, criterion) inputs
// produce identical results.
//
// # Inputs
//
//   - log: The trace log of one run. Must have at least one event.
//   - target: The target statement location.
//   - variable: The target variable name.
//
// # Outputs
//
//   - *Result: The slice. Nil on error.
//   - error: ErrEmptyTrace, ErrTargetNotReached, or ErrMissingVariable.
func ComputeDynamicSlice(log *collector.TraceLog, target execindex.Location, variable string) (*Result, error) {
	return ComputeSlice(log, Criterion{Location: target, Variable: variable})
}

// ComputeSlice is the full-criterion form of ComputeDynamicSlice,
// supporting occurrence anchoring.
func ComputeSlice(log *collector.TraceLog, crit Criterion) (*Result, error) {
	if log == nil || log.Len() == 0 {
		return nil, ErrEmptyTrace
	}
	if crit.Variable == "" {
		return nil, ErrMissingVariable
	}

	events := log.Events()
	limit := len(events) - 1
	if crit.Occurrence > 0 && crit.Occurrence < limit {
		limit = crit.Occurrence
	}

	start := -1
	for i := limit; i >= 0; i-- {
		if events[i].Kind == collector.KindStatement && events[i].Location == crit.Location {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, ErrTargetNotReached
	}

	w := &walker{
		// live maps each tracked variable to the statement that demanded
		// it; the demand site becomes the sink of the resolving edge.
		live:     map[string]execindex.Location{crit.Variable: crit.Location},
		relevant: make(map[execindex.Location]struct{}),
		dataDeps: make(map[Edge]struct{}),
		ctrlDeps: make(map[Edge]struct{}),
	}

	for i := start; i >= 0; i-- {
		w.visit(events[i])
		if len(w.live) == 0 {
			break
		}
	}

	// Whatever is still live was never written in the log: externally
	// supplied input, included at its read site only.
	for _, site := range w.live {
		w.relevant[site] = struct{}{}
	}

	return w.result(crit), nil
}

// walker holds the backward-traversal state.
type walker struct {
	live     map[string]execindex.Location
	relevant map[execindex.Location]struct{}
	dataDeps map[Edge]struct{}
	ctrlDeps map[Edge]struct{}
}

// visit processes one event in the backward walk.
func (w *walker) visit(ev collector.TraceEvent) {
	if ev.Kind != collector.KindStatement {
		return
	}

	resolved := false
	for _, written := range ev.WriteSet {
		sink, isLive := w.live[written]
		if !isLive {
			continue
		}
		resolved = true
		delete(w.live, written)
		if sink != ev.Location {
			w.dataDeps[Edge{Source: ev.Location, Sink: sink}] = struct{}{}
		}
	}
	if !resolved {
		return
	}

	w.relevant[ev.Location] = struct{}{}

	// Data dependence: the names this statement read become live, each
	// demanded at this statement. An already-live name keeps its
	// original demand site; only the nearest preceding write is followed
	// per visited occurrence.
	for _, read := range ev.ReadSet {
		if _, isLive := w.live[read]; !isLive {
			w.live[read] = ev.Location
		}
	}

	// Control dependence: every enclosing block header guards this
	// statement. The header joins the slice and its controlling
	// variables join the live set.
	for _, blk := range ev.Blocks {
		w.relevant[blk.Header] = struct{}{}
		w.ctrlDeps[Edge{Source: blk.Header, Sink: ev.Location}] = struct{}{}
		for _, control := range blk.Controls {
			if _, isLive := w.live[control]; !isLive {
				w.live[control] = blk.Header
			}
		}
	}
}

// result assembles the immutable, deterministically ordered Result.
func (w *walker) result(crit Criterion) *Result {
	res := &Result{Criterion: crit}

	for loc := range w.relevant {
		res.RelevantLines = append(res.RelevantLines, loc)
	}
	sortLocations(res.RelevantLines)

	for edge := range w.dataDeps {
		res.DataDeps = append(res.DataDeps, edge)
	}
	sortEdges(res.DataDeps)

	for edge := range w.ctrlDeps {
		res.ControlDeps = append(res.ControlDeps, edge)
	}
	sortEdges(res.ControlDeps)

	return res
}
