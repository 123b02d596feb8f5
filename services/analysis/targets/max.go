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

import "github.com/AleutianAI/dynalyze/services/analysis/collector"

// RoutineMax is the routine name shared by the buggy and correct
// three-way maximum.
const RoutineMax = "max_of_three"

// BuggyMax returns the maximum of three ints (args: a, b, c).
//
// Seeded defect: line 5 assigns b where it should assign c, so any
// input whose true maximum is c comes back wrong.
//
//	L1 maxVal = a
//	L2 if b > maxVal
//	L3   maxVal = b
//	L4 if c > maxVal
//	L5   maxVal = b   (defect)
//	L6 return maxVal
func BuggyMax(s *collector.Session, args ...any) any {
	return maxOfThree(s, args[0].(int), args[1].(int), args[2].(int), true)
}

// CorrectMax is the defect-free counterpart of BuggyMax.
func CorrectMax(s *collector.Session, args ...any) any {
	return maxOfThree(s, args[0].(int), args[1].(int), args[2].(int), false)
}

func maxOfThree(s *collector.Session, a, b, c int, seeded bool) int {
	maxVal := 0
	fr := s.Enter(RoutineMax, func() collector.Bindings {
		return collector.Bindings{"a": a, "b": b, "c": c, "maxVal": maxVal}
	})
	defer fr.Exit()

	maxVal = a
	fr.Stmt(1, "a")
	fr.Stmt(2, "b", "maxVal")
	if b > maxVal {
		fr.EnterBlock(2, "b", "maxVal")
		maxVal = b
		fr.Stmt(3, "b")
		fr.ExitBlock()
	}
	fr.Stmt(4, "c", "maxVal")
	if c > maxVal {
		fr.EnterBlock(4, "c", "maxVal")
		if seeded {
			maxVal = b
			fr.Stmt(5, "b")
		} else {
			maxVal = c
			fr.Stmt(5, "c")
		}
		fr.ExitBlock()
	}
	fr.Stmt(6, "maxVal")
	return maxVal
}
