// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package collector records lossless execution traces of instrumented
// routines.
//
// A routine is instrumented against an explicit probe API rather than a
// reflection mechanism: on entry it calls Session.Enter with a closure
// that enumerates its current bindings, after every statement it calls
// Frame.Stmt with the names the statement referenced, and on exit
// (usually via defer) Frame.Exit. The collector snapshots bindings at
// each statement, diffs against the previous snapshot to infer read and
// write sets, and asks the execution index assigner to stamp every event.
//
// One Session serves one logical thread of control and runs one trace at
// a time; a second TraceExecution while one is active fails with
// ErrAlreadyTracing. A multithreaded target activates one session per
// goroutine.
//
// Tracing a deterministic routine twice with identical arguments yields
// structurally identical trace logs: same event sequence, same indices.
// Only the run ID differs.
package collector
