// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package heisenbug

import "errors"

var (
	// ErrUnknownStrategy indicates an unrecognized synchronization
	// strategy name.
	ErrUnknownStrategy = errors.New("heisenbug: unknown synchronization strategy")

	// ErrInvalidWorkers indicates a trial configured with fewer than
	// two workers, which cannot race.
	ErrInvalidWorkers = errors.New("heisenbug: trial needs at least two workers")

	// ErrInvalidTrials indicates a batch configured with no trials.
	ErrInvalidTrials = errors.New("heisenbug: batch needs at least one trial")
)
