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

import (
	"fmt"
	"math"
	"strings"
)

// Formula selects a suspiciousness formula for ranking spectrum lines.
type Formula int

const (
	// FormulaTarantula is (f/F) / (f/F + p/P).
	FormulaTarantula Formula = iota

	// FormulaOchiai is f / sqrt(F * (f + p)).
	FormulaOchiai
)

// String returns the formula's canonical lowercase name.
func (f Formula) String() string {
	switch f {
	case FormulaTarantula:
		return "tarantula"
	case FormulaOchiai:
		return "ochiai"
	default:
		return fmt.Sprintf("formula(%d)", int(f))
	}
}

// ParseFormula resolves a formula by name, case-insensitively.
func ParseFormula(name string) (Formula, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tarantula":
		return FormulaTarantula, nil
	case "ochiai":
		return FormulaOchiai, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormula, name)
	}
}

// Score computes the suspiciousness of a single line.
//
// # Inputs
//
//   - failed: Failing runs that executed the line (f).
//   - passed: Passing runs that executed the line (p).
//   - totalFailed: Failing runs in the suite (F).
//   - totalPassed: Passing runs in the suite (P).
//
// # Outputs
//
//   - float64: Suspiciousness in [0, 1]. Any zero denominator yields 0
//     rather than NaN, so a suite with no failures ranks every line 0.
func (f Formula) Score(failed, passed, totalFailed, totalPassed int) float64 {
	switch f {
	case FormulaTarantula:
		if totalFailed == 0 {
			return 0
		}
		failRatio := float64(failed) / float64(totalFailed)
		passRatio := 0.0
		if totalPassed > 0 {
			passRatio = float64(passed) / float64(totalPassed)
		}
		if failRatio+passRatio == 0 {
			return 0
		}
		return failRatio / (failRatio + passRatio)

	case FormulaOchiai:
		denom := math.Sqrt(float64(totalFailed) * float64(failed+passed))
		if denom == 0 {
			return 0
		}
		return float64(failed) / denom

	default:
		return 0
	}
}
