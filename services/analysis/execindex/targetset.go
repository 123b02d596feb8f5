// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package execindex

// TargetSet is an immutable set of execution points.
//
// # Description
//
// Built once from a list of indices and never mutated afterward, so
// Matches is a plain read-only map probe: lock-free, reentrant, and safe
// to call from inside an instrumentation callback. This is the lookup
// the perturbation layer uses to decide where to inject delays.
//
// # Thread Safety
//
// Safe for concurrent use after construction.
type TargetSet struct {
	keys map[string]struct{}
}

// NewTargetSet builds an immutable set from the given execution points.
func NewTargetSet(points ...ExecutionIndex) *TargetSet {
	keys := make(map[string]struct{}, len(points))
	for _, p := range points {
		keys[p.Key()] = struct{}{}
	}
	return &TargetSet{keys: keys}
}

// Matches reports whether idx is a registered target.
//
// Safe to call on a nil receiver (always false). Never blocks.
func (s *TargetSet) Matches(idx ExecutionIndex) bool {
	if s == nil {
		return false
	}
	_, ok := s.keys[idx.Key()]
	return ok
}

// Size returns the number of registered target points.
func (s *TargetSet) Size() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}
