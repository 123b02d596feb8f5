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

// RoutinePrime is the routine name shared by the buggy and correct
// primality check.
const RoutinePrime = "is_prime"

// IsPrimeBuggy reports whether n is prime by trial division up to
// sqrt(n) (args: n).
//
// Seeded defect: the n <= 1 guard returns true, so 1 (and everything
// below it) is misclassified as prime.
//
//	L1 if n <= 1
//	L2   return true   (defect, should be false)
//	L3 loop header (i*i <= n)
//	L4   if n % i == 0
//	L5     return false
//	L6 return true
func IsPrimeBuggy(s *collector.Session, args ...any) any {
	return isPrime(s, args[0].(int), true)
}

// CorrectIsPrime is the defect-free counterpart of IsPrimeBuggy.
func CorrectIsPrime(s *collector.Session, args ...any) any {
	return isPrime(s, args[0].(int), false)
}

func isPrime(s *collector.Session, n int, seeded bool) bool {
	i := 0
	fr := s.Enter(RoutinePrime, func() collector.Bindings {
		return collector.Bindings{"n": n, "i": i}
	})
	defer fr.Exit()

	fr.Stmt(1, "n")
	if n <= 1 {
		fr.EnterBlock(1, "n")
		fr.Stmt(2, "n")
		fr.ExitBlock()
		return seeded
	}

	for i = 2; i*i <= n; i++ {
		fr.Stmt(3, "i", "n")
		fr.EnterBlock(3, "i", "n")
		if n%i == 0 {
			fr.Stmt(4, "n", "i")
			fr.EnterBlock(4, "n", "i")
			fr.Stmt(5)
			fr.ExitBlock()
			fr.ExitBlock()
			return false
		}
		fr.Stmt(4, "n", "i")
		fr.ExitBlock()
	}
	fr.Stmt(3, "i", "n")
	fr.Stmt(6)
	return true
}
