// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package spectrum

import "errors"

var (
	// ErrNilTarget indicates the localizer was built without a routine.
	ErrNilTarget = errors.New("spectrum: target routine is nil")

	// ErrNoTestCases indicates RunTests was called before any test case
	// was added.
	ErrNoTestCases = errors.New("spectrum: no test cases registered")

	// ErrNoSpectrum indicates rankings were requested before RunTests
	// populated the coverage spectrum.
	ErrNoSpectrum = errors.New("spectrum: no spectrum collected, run the test suite first")

	// ErrUnknownFormula indicates an unrecognized suspiciousness
	// formula name.
	ErrUnknownFormula = errors.New("spectrum: unknown suspiciousness formula")
)
