// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package execindex

import "strings"

// Assigner stamps execution points with unique indices.
//
// # Description
//
// The Assigner maintains a context stack of routine frames and an
// instance-count table keyed by (context path, statement location).
// Record snapshots the current context path, increments the counter for
// the (path, location) pair, and returns the resulting index.
//
// Recursive calls extend the context path on every entry, so textually
// identical statements at different recursion depths receive distinct
// indices. Loop iterations revisiting a statement at the same depth
// receive strictly increasing instance numbers.
//
// # Thread Safety
//
// Not safe for concurrent use. Each traced run owns its own Assigner;
// a multithreaded target activates one per logical thread of control.
type Assigner struct {
	stack  []string
	counts map[string]int
	points []ExecutionIndex
}

// NewAssigner creates an Assigner with an empty context stack.
func NewAssigner() *Assigner {
	return &Assigner{
		counts: make(map[string]int),
	}
}

// PushContext pushes a routine frame onto the calling context stack.
// Called when entering a routine.
func (a *Assigner) PushContext(name string) {
	a.stack = append(a.stack, name)
}

// PopContext pops the innermost frame from the calling context stack.
// Popping an empty stack is a no-op.
func (a *Assigner) PopContext() {
	if len(a.stack) > 0 {
		a.stack = a.stack[:len(a.stack)-1]
	}
}

// ContextPath returns a copy of the current calling context,
// outermost routine first.
func (a *Assigner) ContextPath() []string {
	path := make([]string, len(a.stack))
	copy(path, a.stack)
	return path
}

// Depth returns the current context stack depth.
func (a *Assigner) Depth() int {
	return len(a.stack)
}

// Record stamps an execution of the given statement location.
//
// # Description
//
// Reads the current context-path snapshot, increments the instance
// counter for (path, location), and returns the resulting index. Within
// one run no two calls return an equal index, and instance numbers for a
// fixed (path, location) pair form a gapless sequence starting at 1.
//
// # Inputs
//
//   - loc: The statement location being executed.
//
// # Outputs
//
//   - ExecutionIndex: The unique index for this execution point.
func (a *Assigner) Record(loc Location) ExecutionIndex {
	path := a.ContextPath()
	key := contextKey(path, loc)
	a.counts[key]++

	idx := ExecutionIndex{
		ContextPath: path,
		Location:    loc,
		Instance:    a.counts[key],
	}
	a.points = append(a.points, idx)
	return idx
}

// Points returns all indices recorded so far, in execution order.
// The returned slice is a copy.
func (a *Assigner) Points() []ExecutionIndex {
	points := make([]ExecutionIndex, len(a.points))
	copy(points, a.points)
	return points
}

// Reset clears the context stack, the instance counters, and the
// recorded points. The Assigner is ready for a fresh run.
func (a *Assigner) Reset() {
	a.stack = a.stack[:0]
	a.counts = make(map[string]int)
	a.points = a.points[:0]
}

// Stats summarizes a run's execution points.
type Stats struct {
	// TotalPoints is the number of recorded execution points.
	TotalPoints int `json:"total_points"`

	// UniqueContexts is the number of distinct context paths observed.
	UniqueContexts int `json:"unique_contexts"`

	// UniqueStatements is the number of distinct statement locations.
	UniqueStatements int `json:"unique_statements"`

	// MaxInstance is the highest instance number assigned.
	MaxInstance int `json:"max_instance"`

	// ContextDepth is the current depth of the context stack.
	ContextDepth int `json:"context_depth"`
}

// Stats computes summary statistics over the recorded points.
func (a *Assigner) Stats() Stats {
	contexts := make(map[string]struct{})
	statements := make(map[Location]struct{})
	maxInstance := 0

	for _, p := range a.points {
		contexts[strings.Join(p.ContextPath, "\x1f")] = struct{}{}
		statements[p.Location] = struct{}{}
		if p.Instance > maxInstance {
			maxInstance = p.Instance
		}
	}

	return Stats{
		TotalPoints:      len(a.points),
		UniqueContexts:   len(contexts),
		UniqueStatements: len(statements),
		MaxInstance:      maxInstance,
		ContextDepth:     len(a.stack),
	}
}
