// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrInvalidTickRate   = errors.New("tick rate must be >= 1")
	ErrInvalidMapBounds  = errors.New("map bounds must have positive width and height")
	ErrInvalidPortRange  = errors.New("port range must have low <= high")
	ErrInvalidMaxPlayers = errors.New("max players must be >= 2")
)
