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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarantulaScore(t *testing.T) {
	tests := []struct {
		name                       string
		failed, passed             int
		totalFailed, totalPassed   int
		want                       float64
	}{
		{"all failing none passing", 2, 0, 2, 5, 1.0},
		{"all runs execute line", 2, 5, 2, 5, 0.5},
		{"half of failing runs", 1, 2, 2, 4, 0.5},
		{"never executed", 0, 0, 2, 5, 0.0},
		{"no failing runs", 0, 3, 0, 5, 0.0},
		{"no passing runs", 2, 0, 2, 0, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormulaTarantula.Score(tt.failed, tt.passed, tt.totalFailed, tt.totalPassed)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestOchiaiScore(t *testing.T) {
	tests := []struct {
		name                     string
		failed, passed           int
		totalFailed, totalPassed int
		want                     float64
	}{
		{"all failing none passing", 2, 0, 2, 5, 1.0},
		{"all runs execute line", 2, 5, 2, 5, 2.0 / math.Sqrt(14)},
		{"never executed", 0, 0, 2, 5, 0.0},
		{"no failing runs", 0, 3, 0, 5, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormulaOchiai.Score(tt.failed, tt.passed, tt.totalFailed, tt.totalPassed)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScoreRange(t *testing.T) {
	for f := 0; f <= 3; f++ {
		for p := 0; p <= 4; p++ {
			for _, formula := range []Formula{FormulaTarantula, FormulaOchiai} {
				s := formula.Score(f, p, 3, 4)
				assert.False(t, math.IsNaN(s), "%s f=%d p=%d", formula, f, p)
				assert.GreaterOrEqual(t, s, 0.0)
				assert.LessOrEqual(t, s, 1.0)
			}
		}
	}
}

func TestParseFormula(t *testing.T) {
	f, err := ParseFormula("Tarantula")
	assert.NoError(t, err)
	assert.Equal(t, FormulaTarantula, f)

	f, err = ParseFormula(" ochiai ")
	assert.NoError(t, err)
	assert.Equal(t, FormulaOchiai, f)

	_, err = ParseFormula("dstar")
	assert.ErrorIs(t, err, ErrUnknownFormula)
}

func TestFormulaString(t *testing.T) {
	assert.Equal(t, "tarantula", FormulaTarantula.String())
	assert.Equal(t, "ochiai", FormulaOchiai.String())
}
