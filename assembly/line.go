// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package assembly

import (
	"time"

	"github.com/vanguard-rts/core/utils/linked"
	"github.com/vanguard-rts/core/world"
)

// Line is a single building's manufacturing queue. The zero Line is an
// empty, stopped queue ready to use. The queue is a linked list rather
// than a slice so popping the front item on every Produce doesn't
// repeatedly reslice and eventually reallocate a growing backing array.
type Line struct {
	queue *linked.List[productionItem]
}

func (l *Line) ensure() *linked.List[productionItem] {
	if l.queue == nil {
		l.queue = linked.NewList[productionItem]()
	}
	return l.queue
}

// Enqueue appends unit to the end of the production queue.
func (l *Line) Enqueue(unit world.UnitType) {
	l.ensure().PushBack(newProductionItem(unit))
}

// Restart starts the front item, if the queue is non-empty and currently
// stopped. A no-op otherwise.
func (l *Line) Restart(now time.Duration) {
	front := l.ensure().Front()
	if front == nil || front.Value.isActive() {
		return
	}
	front.Value.restart(now)
}

// Stop halts the front item, if it is currently running, banking its
// partial progress. A no-op otherwise.
func (l *Line) Stop(now time.Duration) {
	front := l.ensure().Front()
	if front == nil || !front.Value.isActive() {
		return
	}
	front.Value.stop(now)
}

// Produce should be called repeatedly until it reports false: each call
// that reports true pops one finished unit off the front of the queue and,
// if the line was actively running, restarts the new front item backdated
// by however long the popped item had already been sitting finished — so a
// burst of instantly-finished units doesn't lose time to the next one.
func (l *Line) Produce(now time.Duration) (world.UnitType, bool) {
	queue := l.ensure()
	front := queue.Front()
	if front == nil {
		return world.UnitType{}, false
	}
	timePast, ok := front.Value.finished(now)
	if !ok {
		return world.UnitType{}, false
	}

	item := front.Value
	queue.Remove(front)

	if item.isActive() {
		if next := queue.Front(); next != nil {
			next.Value.restart(now - timePast)
		}
	}
	return item.unit, true
}

// Len reports how many items (running and queued) remain on the line.
func (l *Line) Len() int {
	if l.queue == nil {
		return 0
	}
	return l.queue.Len()
}
