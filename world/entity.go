// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package world holds the cross-cutting state a game server's simulation
// packages all resolve against: entity handles, player/object taxonomy, and
// the spawn/despawn lifecycle. Individual components (Transform, Collider,
// Health, AssemblyLine, Attacking, Path, Kinematics, DraftAllowed) live in
// their owning packages (kinematics, navtask, assembly, combat, ...), each
// keyed by the Entity handles allocated here.
package world

// Entity is an opaque handle into a game's world state. Handles are
// allocated monotonically and never reused, so a stale handle read from an
// old component never aliases a newer entity occupying the same slot — the
// failure mode the upstream identity-hash quadtree keying was vulnerable to.
type Entity uint64

// Table tracks which entities are currently live, letting components that
// store a bare Entity handle (e.g. Attacking.Enemy) resolve it through a
// single place that can report non-existence atomically, rather than each
// component race-checking its own map.
type Table struct {
	next  Entity
	alive map[Entity]struct{}
}

// NewTable returns an empty entity table.
func NewTable() *Table {
	return &Table{alive: make(map[Entity]struct{})}
}

// Alloc reserves and returns a fresh, live entity handle.
func (t *Table) Alloc() Entity {
	t.next++
	e := t.next
	t.alive[e] = struct{}{}
	return e
}

// Remove marks e as no longer existing. Idempotent.
func (t *Table) Remove(e Entity) {
	delete(t.alive, e)
}

// Exists reports whether e is currently live.
func (t *Table) Exists(e Entity) bool {
	_, ok := t.alive[e]
	return ok
}

// Len returns the number of currently live entities.
func (t *Table) Len() int {
	return len(t.alive)
}

// Live returns every currently live entity. The order is unspecified.
func (t *Table) Live() []Entity {
	out := make([]Entity, 0, len(t.alive))
	for e := range t.alive {
		out = append(out, e)
	}
	return out
}
