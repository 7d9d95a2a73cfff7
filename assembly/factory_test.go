// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package assembly

import (
	"testing"

	"github.com/vanguard-rts/core/spatial"
	"github.com/vanguard-rts/core/world"
)

func TestInitialDeliveryLocationSitsPastFootprintAlongLocalX(t *testing.T) {
	footprint := spatial.AABB{Min: spatial.Vec2{X: -2, Y: -3}, Max: spatial.Vec2{X: 2, Y: 3}}
	loc := InitialDeliveryLocation(footprint, spatial.Identity())
	want := spatial.Vec2{X: 2 + DefaultTargetDistance, Y: 0}
	if spatial.Vec2(loc) != want {
		t.Fatalf("InitialDeliveryLocation = %v, want %v", loc, want)
	}
}

func TestFactoriesProduceRespectsPerPlayerUnitCap(t *testing.T) {
	entities := world.NewTable()
	factoryA := entities.Alloc()
	factoryB := entities.Alloc()

	factories := NewFactories()
	player := world.Player(0)
	factories.Register(factoryA, player, DeliveryLocation{})
	factories.Register(factoryB, player, DeliveryLocation{})

	factories.Enqueue(EnqueueAssemblyEvent{Factory: factoryA, Unit: world.UnitAttacker})
	factories.Enqueue(EnqueueAssemblyEvent{Factory: factoryB, Unit: world.UnitAttacker})

	counter := world.NewObjectCounter()
	counter.Update(player, world.ActiveUnit, int32(world.PlayerMaxUnits-1))

	events := factories.Produce(sec(0), counter)
	if len(events) != 0 {
		t.Fatalf("Produce at tick 0 should not finish anything yet, got %d events", len(events))
	}

	events = factories.Produce(ManufacturingTime, counter)
	if len(events) != 1 {
		t.Fatalf("exactly one of the two factories should be allowed to deliver once the cap is nearly hit, got %d", len(events))
	}
	// factories are visited in ascending entity order, so the lower-id
	// factory wins the race against the cap.
	if events[0].Factory != factoryA {
		t.Fatalf("expected factoryA (lower entity id) to win the production race, got %d", events[0].Factory)
	}
	if counter.Player(player).Units != world.PlayerMaxUnits {
		t.Fatalf("player unit count = %d, want exactly PlayerMaxUnits", counter.Player(player).Units)
	}
}

func TestFactoriesChangeLocationAndUnregister(t *testing.T) {
	entities := world.NewTable()
	factory := entities.Alloc()

	factories := NewFactories()
	factories.Register(factory, world.Player(1), DeliveryLocation{})
	factories.ChangeLocation(ChangeDeliveryLocationEvent{Factory: factory, Position: spatial.Vec2{X: 9, Y: 9}})

	loc, ok := factories.Location(factory)
	if !ok || spatial.Vec2(loc) != (spatial.Vec2{X: 9, Y: 9}) {
		t.Fatalf("Location = %v, %v, want (9,9), true", loc, ok)
	}

	factories.Unregister(factory)
	if _, ok := factories.Location(factory); ok {
		t.Fatal("Location should report false once the factory is unregistered")
	}
}
