// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package world

import "testing"

func TestObjectCounterUpdateTracksUnitsAndBuildings(t *testing.T) {
	counter := NewObjectCounter()
	counter.Update(1, ActiveUnit, 1)
	counter.Update(1, ActiveUnit, 1)
	counter.Update(1, ActiveBuilding, 1)

	counts := counter.Player(1)
	if counts.Units != 2 {
		t.Fatalf("Units = %d, want 2", counts.Units)
	}
	if counts.Buildings != 1 {
		t.Fatalf("Buildings = %d, want 1", counts.Buildings)
	}
}

func TestObjectCounterUpdateNegativeDoesNotUnderflow(t *testing.T) {
	counter := NewObjectCounter()
	counter.Update(1, ActiveUnit, 1)
	counter.Update(1, ActiveUnit, -5)

	if counts := counter.Player(1); counts.Units != 0 {
		t.Fatalf("Units = %d, want 0 (clamped, not wrapped)", counts.Units)
	}
}

func TestObjectCounterIsPerPlayer(t *testing.T) {
	counter := NewObjectCounter()
	counter.Update(1, ActiveUnit, 3)
	counter.Update(2, ActiveUnit, 1)

	if counter.Player(1).Units != 3 {
		t.Fatalf("player 1 Units = %d, want 3", counter.Player(1).Units)
	}
	if counter.Player(2).Units != 1 {
		t.Fatalf("player 2 Units = %d, want 1", counter.Player(2).Units)
	}
	if counter.Player(3).Units != 0 {
		t.Fatalf("unseen player should read as zero counts")
	}
}

func TestActiveObjectTypeConstructors(t *testing.T) {
	unit := ActiveObject(Unit(UnitAttacker))
	if unit.Kind != ObjectActive || unit.Active.Kind != ActiveUnit || unit.Active.Unit != UnitAttacker {
		t.Fatalf("ActiveObject(Unit(...)) = %+v, want an active unit of kind UnitAttacker", unit)
	}

	building := ActiveObject(Building(BuildingFactory))
	if building.Active.Kind != ActiveBuilding || building.Active.Building != BuildingFactory {
		t.Fatalf("ActiveObject(Building(...)) = %+v, want an active building of kind BuildingFactory", building)
	}
}
