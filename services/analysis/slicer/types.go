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
	"fmt"
	"sort"

	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
)

// Criterion is a slicing criterion: which variable, at which statement,
// and optionally anchored to which point in the run.
type Criterion struct {
	// Location is the target statement.
	Location execindex.Location `json:"location"`

	// Variable is the target variable name.
	Variable string `json:"variable"`

	// Occurrence optionally anchors the slice to the nearest target
	// event at or before this event sequence number. Zero means the
	// last occurrence in the log.
	Occurrence int `json:"occurrence,omitempty"`
}

// Edge is a directed dependence edge from the statement that supplies a
// value (or guards execution) to the statement that consumes it.
type Edge struct {
	// Source is the supplying statement: the write site for data
	// dependence, the block header for control dependence.
	Source execindex.Location `json:"source"`

	// Sink is the dependent statement.
	Sink execindex.Location `json:"sink"`
}

// Result is a computed dynamic slice.
//
// Derived and recomputable; never mutated after construction. All
// slices are sorted for deterministic rendering and comparison.
type Result struct {
	// Criterion echoes the slicing criterion.
	Criterion Criterion `json:"criterion"`

	// RelevantLines is the minimal set of statement locations that
	// influenced the target variable's value, sorted ascending.
	RelevantLines []execindex.Location `json:"relevant_lines"`

	// DataDeps holds the data-dependence edges followed.
	DataDeps []Edge `json:"data_deps"`

	// ControlDeps holds the control-dependence edges followed.
	ControlDeps []Edge `json:"control_deps"`
}

// Contains reports whether loc is in the slice's relevant lines.
func (r *Result) Contains(loc execindex.Location) bool {
	for _, l := range r.RelevantLines {
		if l == loc {
			return true
		}
	}
	return false
}

// String renders a compact summary, e.g.
// "slice of result@LoopSum:L4: 2 lines, 1 data deps, 1 control deps".
func (r *Result) String() string {
	return fmt.Sprintf("slice of %s@%s: %d lines, %d data deps, %d control deps",
		r.Criterion.Variable, r.Criterion.Location,
		len(r.RelevantLines), len(r.DataDeps), len(r.ControlDeps))
}

// sortLocations orders locations by (routine, line).
func sortLocations(locs []execindex.Location) {
	sort.Slice(locs, func(i, j int) bool {
		return locs[i].Compare(locs[j]) < 0
	})
}

// sortEdges orders edges by source, then sink.
func sortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if c := edges[i].Source.Compare(edges[j].Source); c != 0 {
			return c < 0
		}
		return edges[i].Sink.Compare(edges[j].Sink) < 0
	})
}
