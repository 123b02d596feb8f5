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

import "errors"

// Sentinel errors for the dynamic slicer.
var (
	// ErrEmptyTrace indicates the trace log has zero events.
	ErrEmptyTrace = errors.New("trace log is empty")

	// ErrTargetNotReached indicates the criterion's target location never
	// executed in the traced run.
	ErrTargetNotReached = errors.New("target location not reached in trace")

	// ErrMissingVariable indicates the criterion has no target variable.
	ErrMissingVariable = errors.New("criterion requires a target variable")
)
