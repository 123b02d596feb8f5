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

import (
	"fmt"
	"strings"
)

// Location identifies a statement by routine name and line number.
//
// Lines are the stable statement numbers assigned by the instrumented
// routine, not physical source lines. Line 0 is reserved for routine
// entry and exit events.
type Location struct {
	// Routine is the name of the routine containing the statement.
	Routine string `json:"routine"`

	// Line is the statement number within the routine.
	Line int `json:"line"`
}

// String renders the location as "Routine:L<line>".
func (l Location) String() string {
	return fmt.Sprintf("%s:L%d", l.Routine, l.Line)
}

// Compare orders locations by routine name, then line number.
//
// Returns -1, 0, or 1. Used for deterministic tie-breaking in slice
// results and suspiciousness rankings.
func (l Location) Compare(other Location) int {
	if c := strings.Compare(l.Routine, other.Routine); c != 0 {
		return c
	}
	switch {
	case l.Line < other.Line:
		return -1
	case l.Line > other.Line:
		return 1
	default:
		return 0
	}
}

// ExecutionIndex uniquely identifies one concrete execution of one
// statement within a traced run.
//
// # Description
//
// The index is the triple <calling context, statement, instance>. The
// context path is the stack of routine names from the outermost frame to
// the current one, captured at the moment the statement executed. The
// instance number counts how many times this (context, statement) pair
// has executed; it starts at 1 and is gapless.
//
// # Thread Safety
//
// ExecutionIndex is a value type and immutable once returned by the
// Assigner. Safe to share across goroutines.
type ExecutionIndex struct {
	// ContextPath is the calling context, outermost routine first.
	ContextPath []string `json:"context_path"`

	// Location is the statement this index stamps.
	Location Location `json:"location"`

	// Instance is the 1-based occurrence count for (ContextPath, Location).
	Instance int `json:"instance"`
}

// String renders the index in the canonical tuple form, for example
// "<LoopSum, L3, #2>" or "<Outer->Inner, L1, #1>". An empty context
// renders as "main".
func (ei ExecutionIndex) String() string {
	ctx := "main"
	if len(ei.ContextPath) > 0 {
		ctx = strings.Join(ei.ContextPath, "->")
	}
	return fmt.Sprintf("<%s, L%d, #%d>", ctx, ei.Location.Line, ei.Instance)
}

// Key returns a canonical string form usable as a map key.
//
// Two indices have the same key iff they are equal. The separator bytes
// cannot appear in routine names produced by the target catalogue.
func (ei ExecutionIndex) Key() string {
	var b strings.Builder
	for _, frame := range ei.ContextPath {
		b.WriteString(frame)
		b.WriteByte(0x1f)
	}
	fmt.Fprintf(&b, "\x1e%s\x1e%d\x1e%d", ei.Location.Routine, ei.Location.Line, ei.Instance)
	return b.String()
}

// Equal reports whether two indices identify the same execution point.
func (ei ExecutionIndex) Equal(other ExecutionIndex) bool {
	if ei.Location != other.Location || ei.Instance != other.Instance {
		return false
	}
	if len(ei.ContextPath) != len(other.ContextPath) {
		return false
	}
	for i, frame := range ei.ContextPath {
		if other.ContextPath[i] != frame {
			return false
		}
	}
	return true
}

// contextKey builds the instance-counter key for a context path and
// location. It mirrors Key but excludes the instance number.
func contextKey(path []string, loc Location) string {
	var b strings.Builder
	for _, frame := range path {
		b.WriteString(frame)
		b.WriteByte(0x1f)
	}
	fmt.Fprintf(&b, "\x1e%s\x1e%d", loc.Routine, loc.Line)
	return b.String()
}
