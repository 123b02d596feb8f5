// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package heisenbug demonstrates a timing-dependent lost-update defect
// and uses execution indexing to make it reproducible.
//
// A bank account performs a deliberately non-atomic read-modify-write
// on its balance. Run by several workers at once, a withdrawal can be
// lost, but only when the scheduler interleaves two workers between
// one worker's read and its write. Left alone the window is narrow and
// the defect rarely fires; observing it with a debugger widens the
// window and changes the outcome, the classic heisenbug.
//
// The Perturbator turns that flakiness into a controlled experiment:
// it watches trace events for a specific execution index (by default
// the balance read inside the transfer routine) and injects a delay
// exactly there, forcing the interleaving that loses an update. The
// same trial run with lock guarding stays correct under any
// perturbation.
package heisenbug
