// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package targets

import (
	"fmt"

	"github.com/AleutianAI/dynalyze/services/analysis/spectrum"
)

// MaxTestCases is the localization suite for the three-way maximum.
// Against BuggyMax, exactly the two cases whose true maximum is c
// fail.
func MaxTestCases() []spectrum.TestCase {
	rows := []struct {
		a, b, c  int
		expected int
	}{
		{1, 2, 3, 3},
		{5, 3, 1, 5},
		{2, 8, 4, 8},
		{1, 1, 5, 5},
		{3, 3, 3, 3},
		{10, 5, 7, 10},
		{-1, -5, -3, -1},
	}
	cases := make([]spectrum.TestCase, 0, len(rows))
	for _, r := range rows {
		cases = append(cases, spectrum.TestCase{
			Name:     fmt.Sprintf("max(%d,%d,%d)", r.a, r.b, r.c),
			Args:     []any{r.a, r.b, r.c},
			Expected: r.expected,
		})
	}
	return cases
}

// FactorialTestCases is the localization suite for factorial. Against
// FactorialBuggy only the n = 0 case fails.
func FactorialTestCases() []spectrum.TestCase {
	rows := []struct {
		n, expected int
	}{
		{0, 1},
		{1, 1},
		{5, 120},
		{3, 6},
		{4, 24},
	}
	cases := make([]spectrum.TestCase, 0, len(rows))
	for _, r := range rows {
		cases = append(cases, spectrum.TestCase{
			Name:     fmt.Sprintf("factorial(%d)", r.n),
			Args:     []any{r.n},
			Expected: r.expected,
		})
	}
	return cases
}

// PrimeTestCases is the localization suite for the primality check.
// Against IsPrimeBuggy only the n = 1 case fails.
func PrimeTestCases() []spectrum.TestCase {
	rows := []struct {
		n        int
		expected bool
	}{
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{5, true},
		{9, false},
		{11, true},
	}
	cases := make([]spectrum.TestCase, 0, len(rows))
	for _, r := range rows {
		cases = append(cases, spectrum.TestCase{
			Name:     fmt.Sprintf("is_prime(%d)", r.n),
			Args:     []any{r.n},
			Expected: r.expected,
		})
	}
	return cases
}
