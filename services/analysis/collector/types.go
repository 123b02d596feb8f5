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
	"reflect"

	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
)

// EventKind classifies a trace event.
type EventKind string

const (
	// KindEnter marks entry into a routine frame.
	KindEnter EventKind = "enter-routine"

	// KindStatement marks the execution of one statement.
	KindStatement EventKind = "statement"

	// KindExit marks exit from a routine frame.
	KindExit EventKind = "exit-routine"
)

// Bindings maps variable names to their values at a point in time.
//
// Snapshots stored on trace events are copies; mutating the routine's
// locals after a statement does not alter previously recorded events.
type Bindings map[string]any

// Clone returns a copy of the bindings map.
func (b Bindings) Clone() Bindings {
	if b == nil {
		return nil
	}
	out := make(Bindings, len(b))
	for name, value := range b {
		out[name] = value
	}
	return out
}

// valuesEqual compares two binding values. Deep equality is required
// because bindings may hold slices.
func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// BindingFunc enumerates the routine's current bindings.
//
// The routine supplies it as a closure over its locals when entering a
// frame. It is invoked once per statement event, after the statement has
// executed, and must return a fresh map each call. Values that alias
// mutable state (slices, maps) should be copied by the closure if the
// routine mutates them in place.
type BindingFunc func() Bindings

// BlockRef identifies one enclosing structural block: a conditional or
// loop body and the header statement that guards it.
type BlockRef struct {
	// Header is the location of the guarding conditional or loop header.
	Header execindex.Location `json:"header"`

	// Controls are the variable names the header's predicate references.
	// The predicate is not decomposed further.
	Controls []string `json:"controls"`
}

// TraceEvent is a single observation in the execution trace.
//
// Events are created only by the collector and are immutable once
// appended to the log.
type TraceEvent struct {
	// Kind is the event classification.
	Kind EventKind `json:"kind"`

	// Location is the statement (or frame, for enter/exit) observed.
	Location execindex.Location `json:"location"`

	// Bindings is the immutable snapshot taken after the statement ran.
	Bindings Bindings `json:"bindings"`

	// ReadSet holds names referenced by the statement but unchanged,
	// sorted ascending.
	ReadSet []string `json:"read_set"`

	// WriteSet holds names whose values changed at this statement,
	// sorted ascending.
	WriteSet []string `json:"write_set"`

	// Blocks is the enclosing-block stack at capture time, outermost
	// block first. Empty for top-level statements and enter/exit events.
	Blocks []BlockRef `json:"blocks,omitempty"`

	// Index is the unique execution index stamped on this event.
	Index execindex.ExecutionIndex `json:"index"`

	// Seq is the event's position in the trace log, starting at 0.
	Seq int `json:"seq"`
}

// Reads reports whether the event's read set contains name.
func (ev TraceEvent) Reads(name string) bool {
	for _, r := range ev.ReadSet {
		if r == name {
			return true
		}
	}
	return false
}

// Writes reports whether the event's write set contains name.
func (ev TraceEvent) Writes(name string) bool {
	for _, w := range ev.WriteSet {
		if w == name {
			return true
		}
	}
	return false
}

// VariableSample is one observed value of a variable.
type VariableSample struct {
	// Location is the statement at which the value was observed.
	Location execindex.Location `json:"location"`

	// Value is the binding's value at that statement.
	Value any `json:"value"`
}

// TraceLog is the ordered event sequence for one traced run.
//
// Append-only while the run is active, read-only once it completes.
// Owned exclusively by the session that produced it.
type TraceLog struct {
	runID   string
	routine string
	events  []TraceEvent
	sealed  bool
}

// RunID returns the unique identifier of the run that produced the log.
func (l *TraceLog) RunID() string {
	return l.runID
}

// Routine returns the name of the outermost routine traced.
func (l *TraceLog) Routine() string {
	return l.routine
}

// Len returns the number of recorded events.
func (l *TraceLog) Len() int {
	return len(l.events)
}

// Events returns the recorded events in execution order.
//
// The returned slice must be treated as read-only; it is shared with
// the log to avoid copying large traces per query.
func (l *TraceLog) Events() []TraceEvent {
	return l.events
}

// ExecutedLines returns the distinct statement locations touched by the
// run, in first-execution order. Index granularity is discarded; this is
// the pure line-coverage reduction the fault localizer consumes.
func (l *TraceLog) ExecutedLines() []execindex.Location {
	seen := make(map[execindex.Location]struct{})
	var lines []execindex.Location
	for _, ev := range l.events {
		if ev.Kind != KindStatement {
			continue
		}
		if _, ok := seen[ev.Location]; ok {
			continue
		}
		seen[ev.Location] = struct{}{}
		lines = append(lines, ev.Location)
	}
	return lines
}

// VariableHistory returns every observed value of the named variable,
// in execution order.
func (l *TraceLog) VariableHistory(name string) []VariableSample {
	var history []VariableSample
	for _, ev := range l.events {
		if ev.Kind != KindStatement {
			continue
		}
		if value, ok := ev.Bindings[name]; ok {
			history = append(history, VariableSample{Location: ev.Location, Value: value})
		}
	}
	return history
}

// append adds an event. Panics if the log is sealed; the collector never
// appends after a run completes, so this guards against misuse.
func (l *TraceLog) append(ev TraceEvent) {
	if l.sealed {
		panic("collector: append to sealed trace log")
	}
	ev.Seq = len(l.events)
	l.events = append(l.events, ev)
}

// seal marks the log read-only.
func (l *TraceLog) seal() {
	l.sealed = true
}
