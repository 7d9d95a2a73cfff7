// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sched

import (
	"fmt"
	"sync"
	"time"
)

// Scheduler holds every registered System, grouped by Phase, and runs one
// tick across all of them in phase order.
type Scheduler struct {
	systems map[Phase][]System
}

// New returns an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{systems: make(map[Phase][]System)}
}

// Register adds sys to phase, appended after any system already registered
// there. Registration order is the tie-break used both for conflict
// serialization within a phase and, indirectly, for which system claims a
// contested component batch first.
func (s *Scheduler) Register(phase Phase, sys System) {
	s.systems[phase] = append(s.systems[phase], sys)
}

// Tick runs every phase once, in fixed order, passing delta to every
// System.Run. Within a phase, systems whose declared component sets don't
// conflict run concurrently; conflicting systems serialize, in registration
// order. Tick returns the first error any system reports, after letting
// every system in that phase's batch finish, but does not run subsequent
// phases once a phase has failed.
func (s *Scheduler) Tick(delta time.Duration) error {
	for _, phase := range phaseOrder {
		if err := s.runPhase(phase, delta); err != nil {
			return fmt.Errorf("sched: phase %s: %w", phase, err)
		}
	}
	return nil
}

func (s *Scheduler) runPhase(phase Phase, delta time.Duration) error {
	batches := batch(s.systems[phase])

	for _, b := range batches {
		var wg sync.WaitGroup
		errs := make([]error, len(b))
		for i, sys := range b {
			wg.Add(1)
			go func(i int, sys System) {
				defer wg.Done()
				errs[i] = sys.Run(delta)
			}(i, sys)
		}
		wg.Wait()
		for i, err := range errs {
			if err != nil {
				return fmt.Errorf("system %q: %w", b[i].Name, err)
			}
		}
	}
	return nil
}

// batch greedily partitions systems into the fewest ordered groups such
// that no two systems in the same group conflict, preserving registration
// order within each group and between any two systems that conflict. Each
// group runs fully concurrently; a later group only starts once every system in the group before it
// finishes the phase it belongs to, which batch itself does not schedule —
// that's runPhase's job.
func batch(systems []System) [][]System {
	var batches [][]System
	for _, sys := range systems {
		// sys must run after every earlier system it conflicts with, so it
		// joins the first batch past the last one holding such a system.
		target := 0
		for i := range batches {
			if conflictsWithAny(sys, batches[i]) {
				target = i + 1
			}
		}
		if target == len(batches) {
			batches = append(batches, []System{sys})
		} else {
			batches[target] = append(batches[target], sys)
		}
	}
	return batches
}

func conflictsWithAny(sys System, group []System) bool {
	for _, other := range group {
		if sys.conflicts(other) {
			return true
		}
	}
	return false
}
