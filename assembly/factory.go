// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package assembly

import (
	"sort"
	"time"

	"github.com/vanguard-rts/core/spatial"
	"github.com/vanguard-rts/core/world"
)

// DefaultTargetDistance is how far, in world units, a freshly built unit's
// default delivery point sits past the factory's own footprint.
const DefaultTargetDistance = 20.0

// DeliveryLocation is the point a factory's finished units path to, unless
// overridden by a ChangeDeliveryLocationEvent.
type DeliveryLocation spatial.Vec2

// InitialDeliveryLocation places the delivery point DefaultTargetDistance
// past the factory footprint's far edge along its local X axis, centered on
// its local Y extent, then maps that local point into world space through
// placement.
func InitialDeliveryLocation(footprint spatial.AABB, placement spatial.Isometry) DeliveryLocation {
	local := spatial.Vec2{
		X: footprint.Max.X + DefaultTargetDistance,
		Y: 0.5 * (footprint.Min.Y + footprint.Max.Y),
	}
	return DeliveryLocation(placement.Apply(local))
}

// EnqueueAssemblyEvent orders factory to queue unit for production.
type EnqueueAssemblyEvent struct {
	Factory world.Entity
	Unit    world.UnitType
}

// ChangeDeliveryLocationEvent moves factory's delivery point to position.
type ChangeDeliveryLocationEvent struct {
	Factory  world.Entity
	Position spatial.Vec2
}

// DeliverEvent is one unit finishing manufacturing at factory.
type DeliverEvent struct {
	Factory world.Entity
	Unit    world.UnitType
}

// Factories tracks every production-capable building's assembly line,
// delivery point and owner, and runs the enqueue/produce tick phases over
// them.
type Factories struct {
	lines     map[world.Entity]*Line
	locations map[world.Entity]DeliveryLocation
	owners    map[world.Entity]world.Player
}

// NewFactories returns an empty Factories registry.
func NewFactories() *Factories {
	return &Factories{
		lines:     make(map[world.Entity]*Line),
		locations: make(map[world.Entity]DeliveryLocation),
		owners:    make(map[world.Entity]world.Player),
	}
}

// Register gives factory an empty assembly line, owned by player, with the
// given initial delivery location.
func (f *Factories) Register(factory world.Entity, player world.Player, location DeliveryLocation) {
	f.lines[factory] = &Line{}
	f.locations[factory] = location
	f.owners[factory] = player
}

// Unregister drops factory, for use when the despawner removes it.
func (f *Factories) Unregister(factory world.Entity) {
	delete(f.lines, factory)
	delete(f.locations, factory)
	delete(f.owners, factory)
}

// Location returns factory's current delivery point.
func (f *Factories) Location(factory world.Entity) (DeliveryLocation, bool) {
	loc, ok := f.locations[factory]
	return loc, ok
}

// ChangeLocation applies one ChangeDeliveryLocationEvent, if factory is
// registered.
func (f *Factories) ChangeLocation(event ChangeDeliveryLocationEvent) {
	if _, ok := f.lines[event.Factory]; !ok {
		return
	}
	f.locations[event.Factory] = DeliveryLocation(event.Position)
}

// Enqueue applies one EnqueueAssemblyEvent, if factory is registered.
func (f *Factories) Enqueue(event EnqueueAssemblyEvent) {
	line, ok := f.lines[event.Factory]
	if !ok {
		return
	}
	line.Enqueue(event.Unit)
}

// Produce advances every registered line by one tick, restarting lines
// whose owner is still under the live-unit cap and stopping (without
// discarding progress) any line whose owner has hit it. now is the elapsed
// simulation clock, matching the absolute-time convention productionItem
// expects, not a per-tick delta. counter reports each player's current live
// unit count, and is itself updated here as units complete, so the cap is
// enforced against a running total rather than a value snapshotted once
// per tick. Factories are visited in ascending entity order, so which
// factory wins a race against a player's unit cap is deterministic.
func (f *Factories) Produce(now time.Duration, counter *world.ObjectCounter) []DeliverEvent {
	factories := make([]world.Entity, 0, len(f.lines))
	for factory := range f.lines {
		factories = append(factories, factory)
	}
	sort.Slice(factories, func(i, j int) bool { return factories[i] < factories[j] })

	var events []DeliverEvent
	for _, factory := range factories {
		line := f.lines[factory]
		player := f.owners[factory]
		counts := counter.Player(player)

		if counts.Units < world.PlayerMaxUnits {
			line.Restart(now)
		}

		for {
			counts = counter.Player(player)
			if counts.Units >= world.PlayerMaxUnits {
				line.Stop(now)
				break
			}

			unit, ok := line.Produce(now)
			if !ok {
				break
			}
			counter.Update(player, world.ActiveUnit, 1)
			events = append(events, DeliverEvent{Factory: factory, Unit: unit})
		}
	}
	return events
}
