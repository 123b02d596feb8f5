// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package collector

import (
	"sort"

	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
)

// Frame is the probe handle for one routine activation.
//
// The instrumented routine drives it: Stmt after every statement,
// EnterBlock/ExitBlock around conditional and loop bodies, Exit on
// return (usually deferred). Frames are not safe for concurrent use;
// they belong to the session's single thread of control.
type Frame struct {
	sess     *Session
	routine  string
	snapshot BindingFunc
	prev     Bindings
	blocks   []BlockRef
}

// Enter opens a routine frame: it pushes a context level on the index
// assigner and records the enter-routine event with the initial binding
// snapshot (the arguments, typically).
//
// The snapshot closure enumerates the routine's current bindings; it is
// called once per recorded statement. Nested calls open their own frames
// on the same session, extending the context path.
func (s *Session) Enter(routine string, snapshot BindingFunc) *Frame {
	s.assigner.PushContext(routine)
	if s.log.routine == "" {
		s.log.routine = routine
	}

	fr := &Frame{sess: s, routine: routine, snapshot: snapshot}
	s.record(TraceEvent{
		Kind:     KindEnter,
		Location: execindex.Location{Routine: routine, Line: 0},
		Bindings: snapshot().Clone(),
	})
	return fr
}

// Stmt records the execution of one statement.
//
// # Description
//
// Called by the instrumented routine immediately after the statement
// has executed. The frame snapshots the current bindings and diffs them
// against the previous snapshot for this frame: any binding whose value
// changed is classified WRITE; any name in refs that did not change is
// classified READ. The very first statement of a frame has no prior
// snapshot, so all referenced names are classified READ and no writes
// are inferred.
//
// # Inputs
//
//   - line: The statement number within the routine.
//   - refs: Names referenced by the statement's expression.
func (f *Frame) Stmt(line int, refs ...string) {
	cur := f.snapshot().Clone()
	loc := execindex.Location{Routine: f.routine, Line: line}

	var writes, reads []string
	if f.prev == nil {
		reads = dedupSorted(refs)
	} else {
		for name, value := range cur {
			prev, existed := f.prev[name]
			if !existed || !valuesEqual(prev, value) {
				writes = append(writes, name)
			}
		}
		sort.Strings(writes)
		for _, r := range refs {
			if !containsString(writes, r) {
				reads = append(reads, r)
			}
		}
		reads = dedupSorted(reads)
	}

	f.sess.record(TraceEvent{
		Kind:     KindStatement,
		Location: loc,
		Bindings: cur,
		ReadSet:  reads,
		WriteSet: writes,
		Blocks:   cloneBlocks(f.blocks),
	})
	f.prev = cur
}

// EnterBlock pushes a structural block onto the frame's nesting stack.
//
// Called after the header statement's own Stmt, before the first body
// statement. Statements recorded until the matching ExitBlock carry this
// block (and any outer ones) on their enclosing-block stack, which is
// what the slicer derives control dependence from.
func (f *Frame) EnterBlock(headerLine int, controls ...string) {
	f.blocks = append(f.blocks, BlockRef{
		Header:   execindex.Location{Routine: f.routine, Line: headerLine},
		Controls: dedupSorted(controls),
	})
}

// ExitBlock pops the innermost structural block. A no-op on an empty
// stack.
func (f *Frame) ExitBlock() {
	if len(f.blocks) > 0 {
		f.blocks = f.blocks[:len(f.blocks)-1]
	}
}

// Exit closes the frame: it records the exit-routine event with the
// final binding snapshot and pops the context level. Safe to defer.
func (f *Frame) Exit() {
	f.sess.record(TraceEvent{
		Kind:     KindExit,
		Location: execindex.Location{Routine: f.routine, Line: 0},
		Bindings: f.snapshot().Clone(),
	})
	f.sess.assigner.PopContext()
}

// cloneBlocks copies the block stack so recorded events stay immutable
// as the frame's nesting changes.
func cloneBlocks(blocks []BlockRef) []BlockRef {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]BlockRef, len(blocks))
	copy(out, blocks)
	return out
}

// dedupSorted returns the unique names sorted ascending.
func dedupSorted(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}
