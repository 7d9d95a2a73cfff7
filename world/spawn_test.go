// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package world

import (
	"errors"
	"testing"
)

func TestSpawnerSpawnIncrementsCounterAndAllocates(t *testing.T) {
	table := NewTable()
	counter := NewObjectCounter()
	spawner := NewSpawner(table, counter)

	e, err := spawner.Spawn(1, ActiveObject(Unit(UnitAttacker)))
	if err != nil {
		t.Fatalf("Spawn returned error: %v", err)
	}
	if !table.Exists(e) {
		t.Fatal("spawned entity should exist in the table")
	}
	if counter.Player(1).Units != 1 {
		t.Fatalf("Units = %d, want 1", counter.Player(1).Units)
	}
}

func TestSpawnerSpawnRejectsAtUnitCap(t *testing.T) {
	table := NewTable()
	counter := NewObjectCounter()
	counter.Update(1, ActiveUnit, PlayerMaxUnits)
	spawner := NewSpawner(table, counter)

	_, err := spawner.Spawn(1, ActiveObject(Unit(UnitAttacker)))
	if err == nil {
		t.Fatal("expected a CapError at the unit cap")
	}
	var capErr *CapError
	if !errors.As(err, &capErr) {
		t.Fatalf("error = %v, want *CapError", err)
	}
}

func TestSpawnerSpawnInactiveObjectIsNeverCapped(t *testing.T) {
	table := NewTable()
	counter := NewObjectCounter()
	spawner := NewSpawner(table, counter)

	if _, err := spawner.Spawn(0, InactiveObject(InactiveTree)); err != nil {
		t.Fatalf("inactive object spawn returned error: %v", err)
	}
}

func TestDespawnerSweepRemovesDestroyedAndUpdatesCounter(t *testing.T) {
	table := NewTable()
	counter := NewObjectCounter()
	counter.Update(1, ActiveUnit, 1)
	e := table.Alloc()

	var despawner Despawner
	despawned := despawner.Sweep(table, counter, []DespawnCandidate{
		{Entity: e, Player: 1, Type: ActiveObject(Unit(UnitAttacker)), Health: Health{Current: 0, Max: 10}},
	})

	if len(despawned) != 1 || despawned[0] != e {
		t.Fatalf("Sweep = %v, want [%d]", despawned, e)
	}
	if table.Exists(e) {
		t.Fatal("destroyed entity should be removed from the table")
	}
	if counter.Player(1).Units != 0 {
		t.Fatalf("Units = %d, want 0 after despawn", counter.Player(1).Units)
	}
}

func TestDespawnerSweepSkipsHealthyEntities(t *testing.T) {
	table := NewTable()
	counter := NewObjectCounter()
	e := table.Alloc()

	var despawner Despawner
	despawned := despawner.Sweep(table, counter, []DespawnCandidate{
		{Entity: e, Player: 1, Type: ActiveObject(Unit(UnitAttacker)), Health: Health{Current: 5, Max: 10}},
	})

	if len(despawned) != 0 {
		t.Fatalf("Sweep despawned a healthy entity: %v", despawned)
	}
	if !table.Exists(e) {
		t.Fatal("healthy entity should remain in the table")
	}
}
