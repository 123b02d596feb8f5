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
	"sort"

	"github.com/AleutianAI/dynalyze/services/analysis/collector"
)

// Entry describes one catalogued routine.
type Entry struct {
	// Name is the lookup key, e.g. "buggy_max".
	Name string

	// Routine is the instrumented routine itself.
	Routine collector.Routine

	// Defect describes the seeded defect, empty for correct routines.
	Defect string

	// DemoArgs are reasonable default arguments for ad-hoc tracing.
	DemoArgs []any
}

var catalog = map[string]Entry{
	"buggy_max": {
		Name:     "buggy_max",
		Routine:  BuggyMax,
		Defect:   "L5 assigns b instead of c, wrong whenever c is the maximum",
		DemoArgs: []any{1, 2, 3},
	},
	"correct_max": {
		Name:     "correct_max",
		Routine:  CorrectMax,
		DemoArgs: []any{1, 2, 3},
	},
	"loop_sum": {
		Name:     "loop_sum",
		Routine:  LoopSum,
		DemoArgs: []any{5},
	},
	"factorial_buggy": {
		Name:     "factorial_buggy",
		Routine:  FactorialBuggy,
		Defect:   "L2 returns 0 for n <= 0, but 0! is 1",
		DemoArgs: []any{5},
	},
	"correct_factorial": {
		Name:     "correct_factorial",
		Routine:  CorrectFactorial,
		DemoArgs: []any{5},
	},
	"fibonacci_buggy": {
		Name:     "fibonacci_buggy",
		Routine:  FibonacciBuggy,
		Defect:   "L4 returns 0 for the n == 1 base case instead of 1",
		DemoArgs: []any{5},
	},
	"is_prime_buggy": {
		Name:     "is_prime_buggy",
		Routine:  IsPrimeBuggy,
		Defect:   "L2 returns true for n <= 1, but 1 is not prime",
		DemoArgs: []any{9},
	},
	"correct_is_prime": {
		Name:     "correct_is_prime",
		Routine:  CorrectIsPrime,
		DemoArgs: []any{9},
	},
	"binary_search": {
		Name:     "binary_search",
		Routine:  BinarySearch,
		DemoArgs: []any{[]int{1, 3, 5, 7, 9, 11}, 7},
	},
	"string_reverse_buggy": {
		Name:     "string_reverse_buggy",
		Routine:  StringReverseBuggy,
		Defect:   "loop stops before index 0, dropping the first byte",
		DemoArgs: []any{"hello"},
	},
	"find_min_index": {
		Name:     "find_min_index",
		Routine:  FindMinIndex,
		Defect:   "no empty-slice guard, panics on empty input",
		DemoArgs: []any{[]int{4, 2, 7, 1, 9}},
	},
}

// Lookup resolves a catalogued routine by name.
func Lookup(name string) (Entry, bool) {
	e, ok := catalog[name]
	return e, ok
}

// Catalog returns every entry sorted by name.
func Catalog() []Entry {
	entries := make([]Entry, 0, len(catalog))
	for _, e := range catalog {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
