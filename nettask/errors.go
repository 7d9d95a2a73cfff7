// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package nettask runs the cooperative network tasks — Receiver, Sender
// and Keeper — that read and write one net.PacketConn on behalf of a game
// or main server, communicating with the rest of the server through
// bounded channels.
package nettask

import "errors"

var (
	// ErrConnFailed describes a peer whose reliable-send retransmission
	// budget is exhausted. Keeper reports such peers by address on its
	// Failures channel rather than with this error.
	ErrConnFailed = errors.New("nettask: connection exhausted retransmission attempts")
	// ErrClosed describes a task group that has been stopped.
	ErrClosed = errors.New("nettask: task stopped")
)
