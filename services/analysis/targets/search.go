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

// Routine names for the search targets.
const (
	RoutineBinarySearch = "binary_search"
	RoutineFindMinIndex = "find_min_index"
)

// BinarySearch finds target in a sorted slice and returns its index,
// or -1 (args: arr []int, target). It is defect-free; it exists to
// generate traces with data-dependent branching for the tracing and
// slicing demos.
//
//	L1 left = 0
//	L2 right = len(arr) - 1
//	L3 loop header (left <= right)
//	L4   mid = (left + right) / 2
//	L5   if arr[mid] == target
//	L6     return mid
//	L7   if arr[mid] < target
//	L8     left = mid + 1
//	L9   else right = mid - 1
//	L10 return -1
func BinarySearch(s *collector.Session, args ...any) any {
	arr := args[0].([]int)
	target := args[1].(int)
	left, right, mid := 0, 0, 0
	fr := s.Enter(RoutineBinarySearch, func() collector.Bindings {
		return collector.Bindings{"target": target, "left": left, "right": right, "mid": mid}
	})
	defer fr.Exit()

	left = 0
	fr.Stmt(1)
	right = len(arr) - 1
	fr.Stmt(2)
	for left <= right {
		fr.Stmt(3, "left", "right")
		fr.EnterBlock(3, "left", "right")
		mid = (left + right) / 2
		fr.Stmt(4, "left", "right")
		fr.Stmt(5, "mid", "target")
		if arr[mid] == target {
			fr.EnterBlock(5, "mid", "target")
			fr.Stmt(6, "mid")
			fr.ExitBlock()
			fr.ExitBlock()
			return mid
		}
		fr.Stmt(7, "mid", "target")
		if arr[mid] < target {
			fr.EnterBlock(7, "mid", "target")
			left = mid + 1
			fr.Stmt(8, "mid")
			fr.ExitBlock()
		} else {
			fr.EnterBlock(7, "mid", "target")
			right = mid - 1
			fr.Stmt(9, "mid")
			fr.ExitBlock()
		}
		fr.ExitBlock()
	}
	fr.Stmt(3, "left", "right")
	fr.Stmt(10)
	return -1
}

// FindMinIndex returns the index of the smallest element (args:
// nums []int).
//
// Seeded defect: no empty-slice guard, so an empty input panics at the
// first element access. The localizer counts the panicking run as a
// failure with a one-event trace.
//
//	L1 minVal = nums[0]   (panics on empty input)
//	L2 minIdx = 0
//	L3 loop header (i < len(nums))
//	L4   if nums[i] < minVal
//	L5     minVal = nums[i]
//	L6     minIdx = i
//	L7 return minIdx
func FindMinIndex(s *collector.Session, args ...any) any {
	nums := args[0].([]int)
	minVal, minIdx, i := 0, 0, 0
	fr := s.Enter(RoutineFindMinIndex, func() collector.Bindings {
		return collector.Bindings{"minVal": minVal, "minIdx": minIdx, "i": i}
	})
	defer fr.Exit()

	minVal = nums[0]
	fr.Stmt(1)
	minIdx = 0
	fr.Stmt(2)
	for i = 1; i < len(nums); i++ {
		fr.Stmt(3, "i")
		fr.EnterBlock(3, "i")
		fr.Stmt(4, "i", "minVal")
		if nums[i] < minVal {
			fr.EnterBlock(4, "i", "minVal")
			minVal = nums[i]
			fr.Stmt(5, "i")
			minIdx = i
			fr.Stmt(6, "i")
			fr.ExitBlock()
		}
		fr.ExitBlock()
	}
	fr.Stmt(3, "i")
	fr.Stmt(7, "minIdx")
	return minIdx
}
