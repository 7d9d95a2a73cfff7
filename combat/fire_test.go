// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package combat

import (
	"testing"

	"github.com/vanguard-rts/core/spatial"
	"github.com/vanguard-rts/core/world"
)

// TestLaserSchedulingThreeAttackersTenHertzThreeSeconds mirrors the scenario
// of three attackers with range-10, 1s-charge cannons aimed at one target,
// ticked at 10 Hz for 3 seconds: exactly 9 LaserFireEvents, three per
// attacker, since every cannon reaches full charge every 10 ticks in lockstep.
func TestLaserSchedulingThreeAttackersTenHertzThreeSeconds(t *testing.T) {
	entities := world.NewTable()
	attackerIDs := []world.Entity{entities.Alloc(), entities.Alloc(), entities.Alloc()}
	enemy := entities.Alloc()

	attackerPos := map[world.Entity]spatial.Vec2{
		attackerIDs[0]: {X: -5, Y: 0},
		attackerIDs[1]: {X: 0, Y: -5},
		attackerIDs[2]: {X: 5, Y: 0},
	}
	enemyPos := spatial.Vec2{X: 0, Y: 0}

	attackers := NewAttackers()
	for _, id := range attackerIDs {
		attackers.Register(id, LaserCannon{Range: 10, Damage: 1, Charge: NewLaserCharge(sec(1), sec(1))})
		attackers.Attack(AttackEvent{Attacker: id, Enemy: enemy})
	}

	positions := func(e world.Entity) (spatial.Vec2, bool) {
		p, ok := attackerPos[e]
		return p, ok
	}
	centroids := func(e world.Entity) (spatial.Vec2, bool) {
		if e == enemy {
			return enemyPos, true
		}
		return spatial.Vec2{}, false
	}

	bounds := spatial.AABB{Min: spatial.Vec2{X: -100, Y: -100}, Max: spatial.Vec2{X: 100, Y: 100}}
	idx := spatial.NewShapeIndex[world.Entity](bounds, func(a, b world.Entity) bool { return a < b })
	idx.Insert(enemy, spatial.NewLocalCollider(spatial.Circle{Radius: 0.5}, spatial.Isometry{Translation: enemyPos, Cos: 1}))

	dt := sec(0.1)
	counts := map[world.Entity]int{}
	total := 0
	for tick := 0; tick < 30; tick++ {
		attackers.UpdatePositions(entities, positions, centroids, idx)
		attackers.Charge(dt)
		events := attackers.AimAndFire(idx)
		for _, ev := range events {
			counts[ev.Attacker]++
			total++
		}
	}

	if total != 9 {
		t.Fatalf("total fire events = %d, want 9", total)
	}
	for _, id := range attackerIDs {
		if counts[id] != 3 {
			t.Fatalf("attacker %d fired %d times, want 3", id, counts[id])
		}
	}
}

func TestAimAndFireHoldsChargeWhenSightlineBroken(t *testing.T) {
	entities := world.NewTable()
	attacker := entities.Alloc()
	enemy := entities.Alloc()
	blocker := entities.Alloc()

	attackers := NewAttackers()
	attackers.Register(attacker, LaserCannon{Range: 10, Damage: 1, Charge: NewLaserCharge(sec(1), sec(1))})
	attackers.Attack(AttackEvent{Attacker: attacker, Enemy: enemy})

	positions := func(e world.Entity) (spatial.Vec2, bool) {
		if e == attacker {
			return spatial.Vec2{}, true
		}
		return spatial.Vec2{}, false
	}
	enemyPos := spatial.Vec2{X: 8, Y: 0}
	centroids := func(e world.Entity) (spatial.Vec2, bool) {
		if e == enemy {
			return enemyPos, true
		}
		return spatial.Vec2{}, false
	}

	bounds := spatial.AABB{Min: spatial.Vec2{X: -100, Y: -100}, Max: spatial.Vec2{X: 100, Y: 100}}
	idx := spatial.NewShapeIndex[world.Entity](bounds, func(a, b world.Entity) bool { return a < b })
	idx.Insert(enemy, spatial.NewLocalCollider(spatial.Circle{Radius: 0.5}, spatial.Isometry{Translation: enemyPos, Cos: 1}))
	// a blocker placed directly between attacker and enemy, closer than the
	// enemy, shadows the line of sight so the ray's first hit is never enemy.
	idx.Insert(blocker, spatial.NewLocalCollider(spatial.Circle{Radius: 2}, spatial.Isometry{Translation: spatial.Vec2{X: 3, Y: 0}, Cos: 1}))

	attackers.UpdatePositions(entities, positions, centroids, idx)
	// force the cannon to full charge directly, as if it had been charging
	// before the blocker arrived.
	st := attackers.states[attacker]
	for i := 0; i < 20; i++ {
		st.cannon.Charge.Tick(sec(1), true)
	}

	events := attackers.AimAndFire(idx)
	if len(events) != 0 {
		t.Fatalf("expected no fire events with a broken sightline, got %d", len(events))
	}
	cannon, _ := attackers.Cannon(attacker)
	if cannon.Charge.charge != 1 {
		t.Fatalf("charge = %v, want exactly 1 (held) despite being charged far past the threshold", cannon.Charge.charge)
	}
}
