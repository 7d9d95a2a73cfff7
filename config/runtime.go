// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the tunables for the networking, spatial, pathing
// and movement systems. It mirrors the upstream pattern of a single
// Runtime struct built through a fluent Builder with sensible presets,
// rather than reading raw config values at each call site.
package config

import "time"

// NetworkType selects a runtime preset.
type NetworkType string

const (
	LocalNetwork NetworkType = "local"
	LANNetwork   NetworkType = "lan"
	WANNetwork   NetworkType = "wan"
)

// Runtime holds every tunable constant referenced by the networking,
// spatial and movement packages.
type Runtime struct {
	// Networking (package wire / netconn / nettask)
	MaxPackageSize        int           `json:"maxPackageSize"`
	StartBackoff          time.Duration `json:"startBackoff"`
	MaxTries              int           `json:"maxTries"`
	MaxBaseResendInterval time.Duration `json:"maxBaseResendInterval"`
	MaxConfirmBufferSize  int           `json:"maxConfirmBufferSize"`
	MaxConfirmBufferAge   time.Duration `json:"maxConfirmBufferAge"`
	MaxConnectionAge      time.Duration `json:"maxConnectionAge"`
	InboxCapacity         int           `json:"inboxCapacity"`

	// Game server plane (package lobby)
	MaxPlayersPerGame int    `json:"maxPlayersPerGame"`
	MainServerPort    int    `json:"mainServerPort"`
	GamePortRangeLow  int    `json:"gamePortRangeLow"`
	GamePortRangeHigh int    `json:"gamePortRangeHigh"`
	Network           string `json:"network"`

	// Spatial (package spatial)
	TileSize         float64 `json:"tileSize"`
	QuadtreeMaxLeafs int     `json:"quadtreeMaxLeafs"`
	QuadtreeMerge    int     `json:"quadtreeMerge"`
	QuadtreeMaxDepth int     `json:"quadtreeMaxDepth"`

	// Movement (packages hrvo / repulsion / kinematics)
	FixedPointScale       int           `json:"fixedPointScale"`
	MaxRepulsionDistance  float64       `json:"maxRepulsionDistance"`
	MinStaticObjDistance  float64       `json:"minStaticObjDistance"`
	MinMovableObjDistance float64       `json:"minMovableObjDistance"`
	RepulsionFactor       float64       `json:"repulsionFactor"`
	TickInterval          time.Duration `json:"tickInterval"`
}

// Local is the default preset used by the CLI and by tests: a single
// machine, short timeouts.
var Local = Runtime{
	MaxPackageSize:        512,
	StartBackoff:          220 * time.Millisecond,
	MaxTries:              6,
	MaxBaseResendInterval: 5 * time.Second,
	MaxConfirmBufferSize:  96,
	MaxConfirmBufferAge:   100 * time.Millisecond,
	MaxConnectionAge:      30 * time.Second,
	InboxCapacity:         1024,

	MaxPlayersPerGame: 4,
	MainServerPort:    8482,
	GamePortRangeLow:  8500,
	GamePortRangeHigh: 8600,
	Network:           string(LocalNetwork),

	TileSize:         8,
	QuadtreeMaxLeafs: 50,
	QuadtreeMerge:    40,
	QuadtreeMaxDepth: 16,

	FixedPointScale:       1024,
	MaxRepulsionDistance:  4.0,
	MinStaticObjDistance:  1.0,
	MinMovableObjDistance: 0.5,
	RepulsionFactor:       0.6,
	TickInterval:          50 * time.Millisecond,
}

// Builder constructs a Runtime, accumulating the first error encountered
// so call chains can be validated once at the end.
type Builder struct {
	runtime Runtime
	err     error
}

// NewBuilder starts from the Local preset.
func NewBuilder() *Builder {
	return &Builder{runtime: Local}
}

// FromPreset replaces the current runtime with a named preset.
func (b *Builder) FromPreset(preset NetworkType) *Builder {
	if b.err != nil {
		return b
	}
	switch preset {
	case LocalNetwork:
		b.runtime = Local
	case LANNetwork:
		r := Local
		r.MaxConnectionAge = 2 * time.Minute
		r.MaxPlayersPerGame = 8
		b.runtime = r
	case WANNetwork:
		r := Local
		r.MaxConnectionAge = 5 * time.Minute
		r.StartBackoff = 400 * time.Millisecond
		r.MaxTries = 10
		b.runtime = r
	default:
		b.err = ErrInvalidPortRange
	}
	return b
}

// WithTickRate sets the simulation tick interval from a rate in hertz.
func (b *Builder) WithTickRate(hz int) *Builder {
	if b.err != nil {
		return b
	}
	if hz < 1 {
		b.err = ErrInvalidTickRate
		return b
	}
	b.runtime.TickInterval = time.Second / time.Duration(hz)
	return b
}

// WithMaxPlayers overrides the per-game player cap.
func (b *Builder) WithMaxPlayers(n int) *Builder {
	if b.err != nil {
		return b
	}
	if n < 2 {
		b.err = ErrInvalidMaxPlayers
		return b
	}
	b.runtime.MaxPlayersPerGame = n
	return b
}

// WithPortRange overrides the per-game UDP port range.
func (b *Builder) WithPortRange(low, high int) *Builder {
	if b.err != nil {
		return b
	}
	if low > high {
		b.err = ErrInvalidPortRange
		return b
	}
	b.runtime.GamePortRangeLow = low
	b.runtime.GamePortRangeHigh = high
	return b
}

// Build validates and returns the assembled Runtime.
func (b *Builder) Build() (Runtime, error) {
	if b.err != nil {
		return Runtime{}, b.err
	}
	if b.runtime.TickInterval <= 0 {
		return Runtime{}, ErrInvalidTickRate
	}
	if b.runtime.MaxPlayersPerGame < 2 {
		return Runtime{}, ErrInvalidMaxPlayers
	}
	if b.runtime.GamePortRangeLow > b.runtime.GamePortRangeHigh {
		return Runtime{}, ErrInvalidPortRange
	}
	return b.runtime, nil
}
