// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package combat

import (
	"container/heap"

	"github.com/vanguard-rts/core/spatial"
	"github.com/vanguard-rts/core/world"
)

// AimAndFire collects every attacker whose line of sight to its target
// still resolves to its enemy and whose cannon is charged, schedules their
// shots on a heap ordered by charge overage (ties broken by muzzle
// coordinates), and fires each in turn — re-pushing any cannon that still
// has charge left for another shot. An attacker whose sightline is broken
// has its charge held at one fire's worth instead, so it can't stockpile
// charge while it can't see its target.
func (a *Attackers) AimAndFire(sightline *spatial.ShapeIndex[world.Entity]) []LaserFireEvent {
	var queue fireHeap
	for attacker, st := range a.states {
		if st.attacking == nil {
			continue
		}
		origin, dir, ok := st.attacking.Ray()
		if !ok {
			st.cannon.Charge.Hold()
			continue
		}
		hit, found := sightline.CastRay(origin, dir, st.cannon.Range, &attacker)
		if !found || hit.Entity != st.attacking.Enemy {
			st.cannon.Charge.Hold()
			continue
		}
		if st.cannon.Charge.Charged() {
			heap.Push(&queue, &fireItem{attacker: attacker, origin: origin, dir: dir, st: st})
		}
	}

	var events []LaserFireEvent
	for queue.Len() > 0 {
		item := heap.Pop(&queue).(*fireItem)
		events = append(events, LaserFireEvent{
			Attacker: item.attacker,
			Origin:   item.origin,
			Dir:      item.dir,
			Range:    item.st.cannon.Range,
			Damage:   item.st.cannon.Damage,
		})
		if item.st.cannon.Charge.Fire() {
			heap.Push(&queue, item)
		}
	}
	return events
}

// fireItem is one attacker scheduled to fire this tick.
type fireItem struct {
	attacker world.Entity
	origin   spatial.Vec2
	dir      spatial.Vec2
	st       *attackerState
}

// fireHeap is a max-heap (by container/heap's min-heap Less inverted) on
// charge overage, so the cannon that has been ready to fire the longest is
// popped first; equal overage is broken by muzzle position, with smaller
// coordinates at a deterministic disadvantage (popped later).
type fireHeap []*fireItem

func (h fireHeap) Len() int { return len(h) }

func (h fireHeap) Less(i, j int) bool {
	oi, oj := h[i].st.cannon.Charge.Overage(), h[j].st.cannon.Charge.Overage()
	if oi != oj {
		return oi > oj
	}
	if h[i].origin.X != h[j].origin.X {
		return h[i].origin.X > h[j].origin.X
	}
	return h[i].origin.Y > h[j].origin.Y
}

func (h fireHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *fireHeap) Push(x any) {
	*h = append(*h, x.(*fireItem))
}

func (h *fireHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
