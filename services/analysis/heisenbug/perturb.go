// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package heisenbug

import (
	"time"

	"github.com/AleutianAI/dynalyze/services/analysis/collector"
	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
)

// DefaultDelay is the perturbation delay used when none is configured.
const DefaultDelay = 10 * time.Millisecond

// ReadBalanceIndex is the execution index of the balance read in a
// worker's first (and only) transfer: top-level call, LineReadBalance,
// first instance.
func ReadBalanceIndex() execindex.ExecutionIndex {
	return execindex.ExecutionIndex{
		ContextPath: []string{RoutineTransfer},
		Location:    execindex.Location{Routine: RoutineTransfer, Line: LineReadBalance},
		Instance:    1,
	}
}

// DefaultTargets is the target set holding only ReadBalanceIndex.
func DefaultTargets() *execindex.TargetSet {
	return execindex.NewTargetSet(ReadBalanceIndex())
}

// Perturbator injects a delay whenever a trace event's execution index
// is in its target set.
//
// # Thread Safety
//
// Immutable after construction; one perturbator may serve hooks on
// many concurrent sessions.
type Perturbator struct {
	targets *execindex.TargetSet
	delay   time.Duration
}

// NewPerturbator creates a perturbator. A nil target set falls back to
// DefaultTargets and a non-positive delay to DefaultDelay.
func NewPerturbator(targets *execindex.TargetSet, delay time.Duration) *Perturbator {
	if targets == nil {
		targets = DefaultTargets()
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Perturbator{targets: targets, delay: delay}
}

// Delay returns the configured perturbation delay.
func (p *Perturbator) Delay() time.Duration {
	return p.delay
}

// Hook returns an event hook that sleeps at matched indices. The sleep
// always runs to completion so a matched statement's timing shift is
// deterministic.
func (p *Perturbator) Hook() collector.EventHook {
	return func(ev collector.TraceEvent) {
		if p.targets.Matches(ev.Index) {
			time.Sleep(p.delay)
		}
	}
}
