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

import "errors"

// Sentinel errors for the trace collector.
var (
	// ErrAlreadyTracing indicates TraceExecution was called on a session
	// that already has an active trace. Recoverable: the caller decides
	// whether to finish or abandon the prior trace first.
	ErrAlreadyTracing = errors.New("session is already tracing")

	// ErrNilRoutine indicates TraceExecution was given a nil routine.
	ErrNilRoutine = errors.New("routine must not be nil")
)
