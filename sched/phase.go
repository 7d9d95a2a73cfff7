// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sched runs the simulation's systems in a fixed sequence of named
// phases, each tick. Within a phase, systems that don't touch overlapping
// component sets run concurrently; systems that do are serialized in
// registration order.
package sched

// Phase names one stage of a tick. Phases always run in the order they're
// declared here, regardless of registration order.
type Phase int

const (
	// Input applies buffered player commands (move orders, attack orders,
	// build orders) to the world.
	Input Phase = iota
	// PreMovement resolves attack targeting, chase requests and anything
	// else that needs to run before movement but after input.
	PreMovement
	// Movement runs HRVO velocity solving, repulsion and integration.
	Movement
	// PostMovement updates spatial indices to the post-movement positions,
	// resolves combat (charge/fire), manufacturing, and despawns the dead.
	PostMovement
	// Network serializes and flushes the resulting world delta to every
	// connected player.
	Network
)

// phaseOrder is the fixed tick sequence.
var phaseOrder = [...]Phase{Input, PreMovement, Movement, PostMovement, Network}

func (p Phase) String() string {
	switch p {
	case Input:
		return "input"
	case PreMovement:
		return "pre-movement"
	case Movement:
		return "movement"
	case PostMovement:
		return "post-movement"
	case Network:
		return "network"
	default:
		return "phase(?)"
	}
}
