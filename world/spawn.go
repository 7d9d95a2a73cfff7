// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package world

import "fmt"

// Health is the single component that makes an entity a despawn candidate:
// once Current drops to zero or below, the next Despawner.Sweep removes it.
type Health struct {
	Current float64
	Max     float64
}

// Destroyed reports whether h has run out of health.
func (h Health) Destroyed() bool {
	return h.Current <= 0
}

// CapError is returned by Spawner.Spawn when a player's unit or building
// count is already at its cap.
type CapError struct {
	Player Player
	Kind   ActiveKind
	Max    uint32
}

func (e *CapError) Error() string {
	what := "units"
	if e.Kind == ActiveBuilding {
		what = "buildings"
	}
	return fmt.Sprintf("world: player %d already has the maximum %d %s", e.Player, e.Max, what)
}

// Spawner allocates entity handles and enforces the per-player object caps
// at creation time, mirroring the cap check the map-content validator runs
// at load time for objects placed up front.
type Spawner struct {
	table   *Table
	counter *ObjectCounter
}

// NewSpawner returns a Spawner allocating from table and bookkeeping counts
// in counter.
func NewSpawner(table *Table, counter *ObjectCounter) *Spawner {
	return &Spawner{table: table, counter: counter}
}

// Spawn allocates a new entity owned by player with the given object type.
// Inactive objects (terrain decoration) carry no owner and are never capped.
func (s *Spawner) Spawn(player Player, objectType ObjectType) (Entity, error) {
	if objectType.Kind == ObjectActive {
		active := objectType.Active
		counts := s.counter.Player(player)
		switch active.Kind {
		case ActiveUnit:
			if counts.Units >= PlayerMaxUnits {
				return 0, &CapError{Player: player, Kind: ActiveUnit, Max: PlayerMaxUnits}
			}
		case ActiveBuilding:
			if counts.Buildings >= PlayerMaxBuildings {
				return 0, &CapError{Player: player, Kind: ActiveBuilding, Max: PlayerMaxBuildings}
			}
		}
		s.counter.Update(player, active.Kind, 1)
	}
	return s.table.Alloc(), nil
}

// DespawnCandidate is one entity a Despawner sweep considers: the union of
// the component fields find_dead reads from upstream (Entity, Player,
// ObjectType, Health).
type DespawnCandidate struct {
	Entity Entity
	Player Player
	Type   ObjectType
	Health Health
}

// Despawner removes entities whose health has run out. Sweep touches only
// the entity table and the ObjectCounter, and nothing in this module
// schedules it; the caller drops each returned handle from every other
// index (spatial.ShapeIndex, spatial.Quadtree, navtask.PathTable, combat's
// Attacking markers, ...).
type Despawner struct{}

// Sweep removes every destroyed candidate from table, decrements its
// player's ObjectCounter if it was an active (owned) object, and returns the
// despawned handles in the order given.
func (Despawner) Sweep(table *Table, counter *ObjectCounter, candidates []DespawnCandidate) []Entity {
	var despawned []Entity
	for _, c := range candidates {
		if !c.Health.Destroyed() {
			continue
		}
		if c.Type.Kind == ObjectActive {
			counter.Update(c.Player, c.Type.Active.Kind, -1)
		}
		table.Remove(c.Entity)
		despawned = append(despawned, c.Entity)
	}
	return despawned
}
