// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package world

import "github.com/vanguard-rts/core/lobby"

// Player identifies the owner of an entity. It is the same id space as the
// lobby's leased PlayerID: a unit's owner is the player who occupied that
// slot when the unit was spawned.
type Player = lobby.PlayerID

// PLAYER_MAX_UNITS and PLAYER_MAX_BUILDINGS are not present in the retrieved
// object-taxonomy crate; these values are picked to be generous enough for
// a full game without being unbounded, and are enforced identically at
// spawn (Spawner.Spawn) and at assembly-line production (assembly.Produce)
// per the carried-over cap note.
const (
	PlayerMaxUnits     = 200
	PlayerMaxBuildings = 40
)

// UnitType enumerates the mobile, attack-capable objects a faction can
// field. The retrieved pack's object-taxonomy crate (de_types::objects) was
// not included with the source pull; this is a minimal reconstruction
// covering the kinds exercised elsewhere in this module (manufacturing,
// combat).
type UnitType uint8

const (
	UnitAttacker UnitType = iota
	UnitHarvester
)

func (u UnitType) String() string {
	switch u {
	case UnitAttacker:
		return "attacker"
	case UnitHarvester:
		return "harvester"
	default:
		return "unit(?)"
	}
}

// BuildingType enumerates the stationary objects a faction can construct.
type BuildingType uint8

const (
	BuildingBase BuildingType = iota
	BuildingFactory
	BuildingPowerHub
)

func (b BuildingType) String() string {
	switch b {
	case BuildingBase:
		return "base"
	case BuildingFactory:
		return "factory"
	case BuildingPowerHub:
		return "power hub"
	default:
		return "building(?)"
	}
}

// ActiveKind distinguishes a unit from a building within ActiveObjectType,
// mirroring the source enum's two-armed tagged union without resorting to
// an interface{} payload.
type ActiveKind uint8

const (
	ActiveUnit ActiveKind = iota
	ActiveBuilding
)

// ActiveObjectType is an object owned by a player and tracked by
// ObjectCounter: either a unit or a building of a specific kind.
type ActiveObjectType struct {
	Kind     ActiveKind
	Unit     UnitType
	Building BuildingType
}

func Unit(u UnitType) ActiveObjectType {
	return ActiveObjectType{Kind: ActiveUnit, Unit: u}
}

func Building(b BuildingType) ActiveObjectType {
	return ActiveObjectType{Kind: ActiveBuilding, Building: b}
}

// InactiveObjectType covers map decoration and terrain features that carry
// no player ownership, health, or combat relevance.
type InactiveObjectType uint8

const (
	InactiveTree InactiveObjectType = iota
	InactiveRock
)

// ObjectKind distinguishes ObjectType's two arms.
type ObjectKind uint8

const (
	ObjectActive ObjectKind = iota
	ObjectInactive
)

// ObjectType is the tagged union {Active{Unit|Building(kind)}, Inactive(kind)}.
type ObjectType struct {
	Kind     ObjectKind
	Active   ActiveObjectType
	Inactive InactiveObjectType
}

func ActiveObject(a ActiveObjectType) ObjectType {
	return ObjectType{Kind: ObjectActive, Active: a}
}

func InactiveObject(i InactiveObjectType) ObjectType {
	return ObjectType{Kind: ObjectInactive, Inactive: i}
}

// ObjectCounts totals one player's live units and buildings.
type ObjectCounts struct {
	Units     uint32
	Buildings uint32
}

// Update applies delta (typically +1 on spawn, -1 on despawn) to the
// counter matching kind.
func (c *ObjectCounts) Update(kind ActiveKind, delta int32) {
	switch kind {
	case ActiveUnit:
		c.Units = addClamped(c.Units, delta)
	case ActiveBuilding:
		c.Buildings = addClamped(c.Buildings, delta)
	}
}

func addClamped(v uint32, delta int32) uint32 {
	if delta < 0 && uint32(-delta) > v {
		return 0
	}
	return uint32(int64(v) + int64(delta))
}

// ObjectCounter tracks, per player, how many live units and buildings they
// own — the bookkeeping the spawner/despawner and the assembly line's
// per-player production cap both read and update.
type ObjectCounter struct {
	counts map[Player]*ObjectCounts
}

// NewObjectCounter returns an ObjectCounter with every count at zero.
func NewObjectCounter() *ObjectCounter {
	return &ObjectCounter{counts: make(map[Player]*ObjectCounts)}
}

// Player returns player's current counts, as read-only as Go allows;
// callers must route mutation through Update.
func (c *ObjectCounter) Player(player Player) ObjectCounts {
	if counts, ok := c.counts[player]; ok {
		return *counts
	}
	return ObjectCounts{}
}

// Update adjusts player's counter for an object of the given active kind.
func (c *ObjectCounter) Update(player Player, kind ActiveKind, delta int32) {
	counts, ok := c.counts[player]
	if !ok {
		counts = &ObjectCounts{}
		c.counts[player] = counts
	}
	counts.Update(kind, delta)
}
