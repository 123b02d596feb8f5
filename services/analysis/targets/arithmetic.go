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

// Routine names for the arithmetic targets.
const (
	RoutineLoopSum   = "loop_sum"
	RoutineFactorial = "factorial"
	RoutineFibonacci = "fibonacci"
)

// LoopSum sums the integers 0..n-1 (args: n). It is defect-free and
// exists as the canonical slicing demo: the accumulator at L3 depends
// on the loop header at L2 and on itself across iterations.
//
//	L1 result = 0
//	L2 loop header (i < n)
//	L3   result += i
//	L4 return result
func LoopSum(s *collector.Session, args ...any) any {
	n := args[0].(int)
	result := 0
	i := 0
	fr := s.Enter(RoutineLoopSum, func() collector.Bindings {
		return collector.Bindings{"n": n, "i": i, "result": result}
	})
	defer fr.Exit()

	result = 0
	fr.Stmt(1)
	for i = 0; i < n; i++ {
		fr.Stmt(2, "i", "n")
		fr.EnterBlock(2, "i", "n")
		result += i
		fr.Stmt(3, "result", "i")
		fr.ExitBlock()
	}
	fr.Stmt(2, "i", "n")
	fr.Stmt(4, "result")
	return result
}

// FactorialBuggy computes n! (args: n).
//
// Seeded defect: the n <= 0 guard returns 0 where 0! is 1.
//
//	L1 if n <= 0
//	L2   return 0   (defect, should be 1)
//	L3 result = 1
//	L4 loop header (i <= n)
//	L5   result *= i
//	L6 return result
func FactorialBuggy(s *collector.Session, args ...any) any {
	return factorial(s, args[0].(int), true)
}

// CorrectFactorial is the defect-free counterpart of FactorialBuggy.
func CorrectFactorial(s *collector.Session, args ...any) any {
	return factorial(s, args[0].(int), false)
}

func factorial(s *collector.Session, n int, seeded bool) int {
	result := 0
	i := 0
	fr := s.Enter(RoutineFactorial, func() collector.Bindings {
		return collector.Bindings{"n": n, "i": i, "result": result}
	})
	defer fr.Exit()

	fr.Stmt(1, "n")
	if n <= 0 {
		fr.EnterBlock(1, "n")
		fr.Stmt(2, "n")
		fr.ExitBlock()
		if seeded {
			return 0
		}
		return 1
	}

	result = 1
	fr.Stmt(3)
	for i = 1; i <= n; i++ {
		fr.Stmt(4, "i", "n")
		fr.EnterBlock(4, "i", "n")
		result *= i
		fr.Stmt(5, "result", "i")
		fr.ExitBlock()
	}
	fr.Stmt(4, "i", "n")
	fr.Stmt(6, "result")
	return result
}

// FibonacciBuggy computes the nth Fibonacci number recursively
// (args: n). Each recursive call opens its own frame, so execution
// indices distinguish the two fib(1) computations inside fib(3) by
// calling context.
//
// Seeded defect: the n == 1 base case returns 0 where it should
// return 1, so every result above n = 0 collapses to 0.
//
//	L1 if n == 0
//	L2   return 0
//	L3 if n == 1
//	L4   return 0   (defect, should be 1)
//	L5 return fib(n-1) + fib(n-2)
func FibonacciBuggy(s *collector.Session, args ...any) any {
	return fibonacci(s, args[0].(int))
}

func fibonacci(s *collector.Session, n int) int {
	result := 0
	fr := s.Enter(RoutineFibonacci, func() collector.Bindings {
		return collector.Bindings{"n": n, "result": result}
	})
	defer fr.Exit()

	fr.Stmt(1, "n")
	if n == 0 {
		fr.EnterBlock(1, "n")
		fr.Stmt(2, "n")
		fr.ExitBlock()
		return 0
	}
	fr.Stmt(3, "n")
	if n == 1 {
		fr.EnterBlock(3, "n")
		fr.Stmt(4, "n")
		fr.ExitBlock()
		return 0
	}
	result = fibonacci(s, n-1) + fibonacci(s, n-2)
	fr.Stmt(5, "result", "n")
	return result
}
