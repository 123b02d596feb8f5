// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package spectrum implements spectrum-based fault localization.
//
// A Localizer runs an instrumented routine against a suite of test
// cases, records which statement locations each run executed, and
// aggregates the per-line pass/fail coverage into a Spectrum. Ranking
// the spectrum with a suspiciousness formula (Tarantula or Ochiai)
// orders lines by how strongly their execution correlates with test
// failure. A defective line executed by every failing run and no
// passing run ranks first.
package spectrum
