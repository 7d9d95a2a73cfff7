// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sched

import "time"

// Component names one slice of world state a System touches (for example
// "position", "attacking", "health"). Two systems that declare disjoint
// Reads/Writes sets are safe to run concurrently; any overlap touching a
// Write forces them into separate batches.
type Component string

// System is one unit of per-tick work. Reads and Writes declare which
// components it touches, purely for scheduling — nothing enforces them at
// runtime, the same trust-the-caller contract the rest of this module uses
// at its package boundaries.
type System struct {
	Name   string
	Reads  []Component
	Writes []Component
	Run    func(delta time.Duration) error
}

// conflicts reports whether a and b cannot safely run concurrently: true if
// either writes a component the other reads or writes.
func (a System) conflicts(b System) bool {
	for _, w := range a.Writes {
		if touches(b, w) {
			return true
		}
	}
	for _, w := range b.Writes {
		if touches(a, w) {
			return true
		}
	}
	return false
}

func touches(s System, c Component) bool {
	for _, r := range s.Reads {
		if r == c {
			return true
		}
	}
	for _, w := range s.Writes {
		if w == c {
			return true
		}
	}
	return false
}
