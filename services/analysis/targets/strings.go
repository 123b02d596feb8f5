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

// RoutineStringReverse is the routine name of the string reversal
// target.
const RoutineStringReverse = "string_reverse"

// StringReverseBuggy reverses a string (args: s string).
//
// Seeded defect: the loop stops before index 0, dropping the first
// byte of the input from the reversed result.
//
//	L1 result = ""
//	L2 loop header (i > 0, defect, should be i >= 0)
//	L3   result += s[i]
//	L4 return result
func StringReverseBuggy(s *collector.Session, args ...any) any {
	input := args[0].(string)
	result := ""
	i := 0
	fr := s.Enter(RoutineStringReverse, func() collector.Bindings {
		return collector.Bindings{"i": i, "result": result}
	})
	defer fr.Exit()

	result = ""
	fr.Stmt(1)
	for i = len(input) - 1; i > 0; i-- {
		fr.Stmt(2, "i")
		fr.EnterBlock(2, "i")
		result += string(input[i])
		fr.Stmt(3, "result", "i")
		fr.ExitBlock()
	}
	fr.Stmt(2, "i")
	fr.Stmt(4, "result")
	return result
}
