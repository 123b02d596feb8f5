// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package targets is a catalogue of small instrumented routines with
// seeded defects, plus correct counterparts and test suites.
//
// The routines exist to exercise the analysis engines: each one wraps a
// few lines of ordinary Go in collector probes, numbering statements
// the way a source listing would. The seeded defects are intentional
// and documented per routine; the fault localizer is expected to rank
// the defective line first, and the slicer to pull it into slices of
// the wrong output.
package targets
