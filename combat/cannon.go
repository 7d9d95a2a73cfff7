// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package combat implements the attack/chase/charge/fire pipeline: an
// Attacking marker tracks one attacker's current target and line-of-sight
// hit point, a LaserCannon's charge accumulates while in range and drains
// otherwise, and a fire-scheduling heap orders simultaneous shots the same
// way a continuous-time simulation would, independent of tick rate.
package combat

import (
	"time"

	"github.com/vanguard-rts/core/spatial"
)

// LaserCharge is a saturating counter, in units of "fires worth", that
// accumulates at 1/chargeTime while charging and drains at
// 1/dischargeTime otherwise.
type LaserCharge struct {
	chargeTime    time.Duration
	dischargeTime time.Duration
	charge        float64
}

// NewLaserCharge returns an uncharged LaserCharge with the given charge and
// discharge durations. Panics if either spans zero time.
func NewLaserCharge(chargeTime, dischargeTime time.Duration) LaserCharge {
	if chargeTime <= 0 {
		panic("combat: charge time must be positive")
	}
	if dischargeTime <= 0 {
		panic("combat: discharge time must be positive")
	}
	return LaserCharge{chargeTime: chargeTime, dischargeTime: dischargeTime}
}

// Tick must be called once per frame. charging selects whether the charge
// accumulates or drains over delta.
func (c *LaserCharge) Tick(delta time.Duration, charging bool) {
	if charging {
		c.charge += delta.Seconds() / c.chargeTime.Seconds()
		return
	}
	c.charge -= delta.Seconds() / c.dischargeTime.Seconds()
	if c.charge < 0 {
		c.charge = 0
	}
}

// chargeTolerance absorbs the rounding error of summing per-tick charge
// increments, so that ten ticks of 0.1 fires each count as one full fire.
const chargeTolerance = 1e-9

// Charged reports whether there is charge for at least one fire.
func (c LaserCharge) Charged() bool {
	return c.charge >= 1-chargeTolerance
}

// Hold clamps the charge to at most one fire, preventing a cannon that has
// lost its sightline from stockpiling charge for a volley once it's
// reacquired.
func (c *LaserCharge) Hold() {
	if c.charge > 1 {
		c.charge = 1
	}
}

// Fire subtracts one fire's worth of charge and reports whether the cannon
// is still charged for another. Must only be called when Charged is true.
func (c *LaserCharge) Fire() bool {
	c.charge--
	return c.Charged()
}

// Overage orders charges by how far past the firing threshold they are,
// expressed in seconds of charge_time: the cannon that has been ready to
// fire the longest has the greatest overage, and AimAndFire's scheduling
// heap fires it first. This reproduces firing order and count exactly as
// a continuous-time simulation would, regardless of how often
// Charge/AimAndFire happen to run.
func (c LaserCharge) Overage() float64 {
	return (c.charge - 1) * c.chargeTime.Seconds()
}

// LaserCannon is a single-emitter weapon: a fixed muzzle offset, range,
// per-hit damage, and its own LaserCharge.
type LaserCannon struct {
	MuzzleOffset spatial.Vec2
	Range        float64
	Damage       float64
	Charge       LaserCharge
}
