// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package lobby

import "errors"

// JoinError is returned to the requesting peer when a join request cannot
// be satisfied; the session continues uninterrupted.
type JoinError struct {
	Reason JoinErrorReason
}

func (e *JoinError) Error() string { return "lobby: join rejected: " + string(e.Reason) }

// JoinErrorReason enumerates why a join was rejected.
type JoinErrorReason string

const (
	JoinAlreadyJoined JoinErrorReason = "already_joined"
	JoinGameFull      JoinErrorReason = "game_full"
	JoinGameNotOpened JoinErrorReason = "game_not_opened"
	JoinDifferentGame JoinErrorReason = "different_game"
)

// ReadinessUpdateError is returned when a readiness transition is
// rejected.
type ReadinessUpdateError struct {
	Reason ReadinessErrorReason
}

func (e *ReadinessUpdateError) Error() string {
	return "lobby: readiness update rejected: " + string(e.Reason)
}

// ReadinessErrorReason enumerates why a readiness update was rejected.
type ReadinessErrorReason string

const (
	ReadinessUnknownClient ReadinessErrorReason = "unknown_client"
	ReadinessDowngrade     ReadinessErrorReason = "downgrade"
	ReadinessSkip          ReadinessErrorReason = "skip"
	ReadinessDesync        ReadinessErrorReason = "desync"
)

// GameOpenError is returned when opening a game is rejected.
type GameOpenError struct {
	Reason GameOpenErrorReason
}

func (e *GameOpenError) Error() string { return "lobby: open game rejected: " + string(e.Reason) }

// GameOpenErrorReason enumerates why opening a game was rejected.
type GameOpenErrorReason string

const GameOpenDifferentGame GameOpenErrorReason = "different_game"

var (
	// ErrNoFreePlayerSlot is returned when a game's player freelist is
	// exhausted.
	ErrNoFreePlayerSlot = errors.New("lobby: no free player slot")
	// ErrNoPortAvailable is returned when every port in the configured
	// game-port range is already bound to an open game.
	ErrNoPortAvailable = errors.New("lobby: no port available in configured range")
	// ErrGameNotFound is returned when a listing or lookup references an
	// unknown game id.
	ErrGameNotFound = errors.New("lobby: game not found")
)
