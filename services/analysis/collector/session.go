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
	"github.com/AleutianAI/dynalyze/pkg/logging"
	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
	"github.com/google/uuid"
)

// Routine is an instrumented routine run under a session.
//
// The routine receives the session so nested calls can open their own
// frames, plus the arguments passed to TraceExecution. Its return value
// becomes the traced result.
type Routine func(s *Session, args ...any) any

// EventHook observes stamped events.
//
// The hook runs cooperatively inside the instrumentation callback,
// after the event has been appended. It must not call back into the
// session. The perturbation layer uses this to inject delays at matched
// execution indices.
type EventHook func(TraceEvent)

// Session owns one logical thread of control's tracing state.
//
// # Description
//
// A session replaces the process-wide "currently tracing" flag of
// classic settrace-style tracers: the caller owns it and threads it
// through every instrumentation callback. It holds the index assigner,
// the in-progress trace log, and the active flag that enforces the
// single-trace-per-session constraint.
//
// # Thread Safety
//
// Not safe for concurrent use. Create one session per goroutine.
type Session struct {
	assigner *execindex.Assigner
	log      *TraceLog
	active   bool
	hook     EventHook
	logger   *logging.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithEventHook installs a hook invoked after every stamped event.
func WithEventHook(hook EventHook) Option {
	return func(s *Session) {
		s.hook = hook
	}
}

// WithLogger sets the session's structured logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates an idle tracing session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		assigner: execindex.NewAssigner(),
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TraceExecution runs the routine under instrumentation and returns the
// captured trace log alongside the routine's result.
//
// # Description
//
// Instrumentation does not alter the routine's observable result, only
// its wall-clock time. For a deterministic routine and identical
// arguments, repeated calls yield structurally identical logs.
//
// # Inputs
//
//   - routine: The instrumented routine. Must not be nil.
//   - args: Arguments forwarded to the routine.
//
// # Outputs
//
//   - *TraceLog: The sealed trace log for the run. Nil on error.
//   - any: The routine's return value.
//   - error: ErrAlreadyTracing if a trace is active on this session,
//     ErrNilRoutine for a nil routine.
func (s *Session) TraceExecution(routine Routine, args ...any) (*TraceLog, any, error) {
	if routine == nil {
		return nil, nil, ErrNilRoutine
	}
	if s.active {
		return nil, nil, ErrAlreadyTracing
	}

	s.active = true
	s.assigner.Reset()
	s.log = &TraceLog{runID: uuid.NewString()}

	// Scoped release: the session returns to idle and the log becomes
	// read-only on every exit path, including panics in the routine.
	defer func() {
		s.log.seal()
		s.active = false
	}()

	result := routine(s, args...)

	s.logger.Debug("trace captured",
		"run_id", s.log.runID,
		"routine", s.log.routine,
		"events", s.log.Len(),
	)
	return s.log, result, nil
}

// Log returns the most recently captured trace log, or nil if the
// session has not traced yet.
func (s *Session) Log() *TraceLog {
	return s.log
}

// Active reports whether a trace is currently running on this session.
func (s *Session) Active() bool {
	return s.active
}

// Assigner exposes the session's execution index assigner. Read-oriented
// helpers (Points, Stats) are the intended use; the collector drives the
// mutating operations itself.
func (s *Session) Assigner() *execindex.Assigner {
	return s.assigner
}

// record stamps and appends an event, then runs the hook.
func (s *Session) record(ev TraceEvent) TraceEvent {
	ev.Index = s.assigner.Record(ev.Location)
	s.log.append(ev)
	if s.hook != nil {
		s.hook(s.log.events[len(s.log.events)-1])
	}
	return ev
}
