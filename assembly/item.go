// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package assembly implements per-building production queues: units enqueue
// in FIFO order, accumulate manufacturing time only while their line is
// actively running, and carry partial progress across a stop/restart so a
// power outage or a player-issued pause doesn't discard work already done.
package assembly

import (
	"time"

	"github.com/vanguard-rts/core/world"
)

// ManufacturingTime is how long a single unit takes to build once its
// production item is actively running, uninterrupted.
const ManufacturingTime = 2 * time.Second

// productionItem is a single unit queued or in progress in an AssemblyLine.
// now is always the caller's elapsed-time clock, not a delta: every method
// takes the current absolute tick time so progress can be computed without
// per-item bookkeeping of when the line itself last ticked.
type productionItem struct {
	// accumulated is the total production time banked across every
	// stop/restart cycle so far.
	accumulated time.Duration
	// restarted is the clock time production was last (re)started, or nil
	// if the item is currently stopped.
	restarted *time.Duration
	unit      world.UnitType
}

func newProductionItem(unit world.UnitType) productionItem {
	return productionItem{unit: unit}
}

func (p *productionItem) isActive() bool { return p.restarted != nil }

// restart stops (banking whatever progress accrued since the last start)
// and immediately starts the item again as of now.
func (p *productionItem) restart(now time.Duration) {
	p.stop(now)
	p.restarted = &now
}

// stop banks progress since the last restart, clipped to ManufacturingTime,
// and marks the item as not running. A no-op if already stopped.
func (p *productionItem) stop(now time.Duration) {
	if p.restarted != nil {
		p.accumulated += now - *p.restarted
		if p.accumulated > ManufacturingTime {
			p.accumulated = ManufacturingTime
		}
	}
	p.restarted = nil
}

// finished returns how long ago (relative to now) the item crossed
// ManufacturingTime, or false if it hasn't finished yet.
func (p *productionItem) finished(now time.Duration) (time.Duration, bool) {
	progress := p.progress(now)
	if progress < ManufacturingTime {
		return 0, false
	}
	return progress - ManufacturingTime, true
}

// progress returns the item's cumulative manufacturing time as of now.
func (p *productionItem) progress(now time.Duration) time.Duration {
	progress := p.accumulated
	if p.restarted != nil {
		progress += now - *p.restarted
	}
	return progress
}
