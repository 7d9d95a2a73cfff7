// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package combat

import (
	"time"

	"github.com/vanguard-rts/core/spatial"
	"github.com/vanguard-rts/core/world"
)

// MinChaseDistance and MaxChaseDistance are multiples of a cannon's range:
// an attacker tries to stay no closer than MinChaseDistance*range and no
// further than MaxChaseDistance*range from the entity it's attacking.
const (
	MinChaseDistance = 0.4
	MaxChaseDistance = 0.9
)

// AttackEvent orders attacker to start attacking enemy.
type AttackEvent struct {
	Attacker, Enemy world.Entity
}

// ChaseTargetEvent asks whatever steers entity to keep it within
// [Min, Max] of Entity. combat only emits these; following them is the
// movement layer's responsibility.
type ChaseTargetEvent struct {
	Entity   world.Entity
	Min, Max float64
}

// LaserFireEvent is one shot: a ray from Origin in direction Dir, dealing
// Damage to whatever it hits within Range.
type LaserFireEvent struct {
	Attacker world.Entity
	Origin   spatial.Vec2
	Dir      spatial.Vec2
	Range    float64
	Damage   float64
}

// Attacking tracks one attacker's current target: the entity being
// attacked, the attacker's current muzzle position, and the last
// line-of-sight hit point (if any) along the muzzle-to-target ray.
type Attacking struct {
	Enemy  world.Entity
	Muzzle spatial.Vec2
	target *spatial.Vec2
}

// NewAttacking returns a fresh Attacking marker aimed at enemy, with no
// target point until the next UpdatePositions pass computes one.
func NewAttacking(enemy world.Entity) *Attacking {
	return &Attacking{Enemy: enemy}
}

// Target returns the last computed line-of-sight hit point, if any.
func (a *Attacking) Target() (spatial.Vec2, bool) {
	if a.target == nil {
		return spatial.Vec2{}, false
	}
	return *a.target, true
}

func (a *Attacking) setTarget(p spatial.Vec2) { a.target = &p }
func (a *Attacking) clearTarget()             { a.target = nil }

// Distance returns the muzzle-to-target distance, or false if there is no
// target yet.
func (a *Attacking) Distance() (float64, bool) {
	t, ok := a.Target()
	if !ok {
		return 0, false
	}
	return t.Sub(a.Muzzle).Length(), true
}

// Ray returns the normalized muzzle-to-target direction, or false if there
// is no target, or the muzzle and target coincide.
func (a *Attacking) Ray() (origin, dir spatial.Vec2, ok bool) {
	t, has := a.Target()
	if !has {
		return spatial.Vec2{}, spatial.Vec2{}, false
	}
	diff := t.Sub(a.Muzzle)
	length := diff.Length()
	if length == 0 {
		return spatial.Vec2{}, spatial.Vec2{}, false
	}
	return a.Muzzle, diff.Scale(1 / length), true
}

// attackerState is the per-entity combat state Attackers tracks: the
// cannon it fires and, once under attack orders, its Attacking marker.
type attackerState struct {
	cannon    LaserCannon
	attacking *Attacking
}

// Attackers holds every combat-capable entity's cannon and current
// Attacking marker, and runs the four tick phases (attack, update
// positions, charge, aim and fire) over them.
type Attackers struct {
	states map[world.Entity]*attackerState
}

// NewAttackers returns an empty Attackers table.
func NewAttackers() *Attackers {
	return &Attackers{states: make(map[world.Entity]*attackerState)}
}

// Register attaches cannon to entity, replacing any cannon it already had.
func (a *Attackers) Register(entity world.Entity, cannon LaserCannon) {
	a.states[entity] = &attackerState{cannon: cannon}
}

// Unregister drops entity from the table entirely, for use when the
// despawner removes it.
func (a *Attackers) Unregister(entity world.Entity) {
	delete(a.states, entity)
}

// Cannon returns entity's registered cannon.
func (a *Attackers) Cannon(entity world.Entity) (LaserCannon, bool) {
	st, ok := a.states[entity]
	if !ok {
		return LaserCannon{}, false
	}
	return st.cannon, true
}

// Attacking returns entity's current Attacking marker, if it has been
// ordered to attack and hasn't lost its target yet.
func (a *Attackers) Attacking(entity world.Entity) (*Attacking, bool) {
	st, ok := a.states[entity]
	if !ok || st.attacking == nil {
		return nil, false
	}
	return st.attacking, true
}

// Attack processes one AttackEvent: attaches an Attacking marker to the
// attacker (if it has a registered cannon) and returns the ChaseTargetEvent
// that keeps it within cannon-range multiples of the enemy.
func (a *Attackers) Attack(event AttackEvent) (ChaseTargetEvent, bool) {
	st, ok := a.states[event.Attacker]
	if !ok {
		return ChaseTargetEvent{}, false
	}
	st.attacking = NewAttacking(event.Enemy)
	return ChaseTargetEvent{
		Entity: event.Enemy,
		Min:    MinChaseDistance * st.cannon.Range,
		Max:    MaxChaseDistance * st.cannon.Range,
	}, true
}

// UpdatePositions refreshes every attacker's muzzle position and
// recomputes its line-of-sight target. positions resolves an entity's
// world-space position; centroids resolves the world-space aim point
// (typically a collider's AABB center) of an attacker's enemy. sightline
// is cast from the fresh muzzle toward the enemy centroid, up to the
// cannon's range; the resulting target is the hit point, or none if the
// ray reaches maximum range unobstructed. An attacker whose enemy no
// longer exists in entities drops its Attacking marker.
func (a *Attackers) UpdatePositions(
	entities *world.Table,
	positions func(world.Entity) (spatial.Vec2, bool),
	centroids func(world.Entity) (spatial.Vec2, bool),
	sightline *spatial.ShapeIndex[world.Entity],
) {
	for attacker, st := range a.states {
		if st.attacking == nil {
			continue
		}
		enemy := st.attacking.Enemy
		if !entities.Exists(enemy) {
			st.attacking = nil
			continue
		}

		selfPos, ok := positions(attacker)
		if !ok {
			continue
		}
		st.attacking.Muzzle = selfPos.Add(st.cannon.MuzzleOffset)

		centroid, ok := centroids(enemy)
		if !ok {
			st.attacking.clearTarget()
			continue
		}
		diff := centroid.Sub(st.attacking.Muzzle)
		length := diff.Length()
		if length == 0 {
			st.attacking.clearTarget()
			continue
		}
		dir := diff.Scale(1 / length)

		hit, found := sightline.CastRay(st.attacking.Muzzle, dir, st.cannon.Range, &attacker)
		if !found {
			st.attacking.clearTarget()
			continue
		}
		st.attacking.setTarget(st.attacking.Muzzle.Add(dir.Scale(hit.Toi)))
	}
}

// Charge ticks every registered cannon's charge: charging while its
// attacker has a target within range, discharging otherwise.
func (a *Attackers) Charge(delta time.Duration) {
	for _, st := range a.states {
		charging := false
		if st.attacking != nil {
			if d, ok := st.attacking.Distance(); ok {
				charging = d <= st.cannon.Range
			}
		}
		st.cannon.Charge.Tick(delta, charging)
	}
}
