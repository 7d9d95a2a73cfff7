// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nettask

import (
	"context"
	"net"
	"time"

	"github.com/vanguard-rts/core/log"
	"github.com/vanguard-rts/core/wire"
)

// Receiver reads datagrams off a PacketConn, validates and decodes them,
// and publishes application messages on a bounded channel. Malformed
// datagrams are logged at warn and discarded, never propagated, per the
// protocol-error handling rule.
type Receiver struct {
	conn    net.PacketConn
	state   *ConnState
	inbox   chan Inbound
	logger  log.Logger
	maxSize int
}

// NewReceiver returns a Receiver reading from conn, publishing decoded
// messages on a channel of the given capacity.
func NewReceiver(conn net.PacketConn, state *ConnState, inboxCapacity int, logger log.Logger) *Receiver {
	return &Receiver{
		conn:    conn,
		state:   state,
		inbox:   make(chan Inbound, inboxCapacity),
		logger:  logger,
		maxSize: wire.MaxPackageSize,
	}
}

// Inbox returns the channel Receiver publishes decoded messages on.
func (r *Receiver) Inbox() <-chan Inbound {
	return r.inbox
}

// Run reads datagrams until ctx is cancelled or the connection errors.
func (r *Receiver) Run(ctx context.Context) error {
	defer close(r.inbox)
	buf := make([]byte, r.maxSize)

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		n, addr, err := r.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		r.handle(buf[:n], addr)
	}
}

func (r *Receiver) handle(data []byte, addr net.Addr) {
	if len(data) < wire.HeaderSize {
		r.logger.Warn("dropping undersized datagram", "addr", addr.String(), "size", len(data))
		return
	}

	header, err := wire.ReadHeader(data)
	if err != nil {
		r.logger.Warn("dropping malformed header", "addr", addr.String(), "error", err)
		return
	}

	now := time.Now()
	if header.Confirmation {
		r.state.registerConfirmed(now, addr, data[wire.HeaderSize:])
		return
	}

	pkg := header.Package
	window := r.state.window(addr)
	if !window.Accept(pkg.ID, pkg.Reliability) {
		return
	}
	if pkg.Reliability.IsReliable() {
		r.state.ack(now, addr, pkg.ID)
	}

	messages, err := wire.DecodeAll(data[wire.HeaderSize:])
	if err != nil {
		r.logger.Warn("dropping malformed package payload", "addr", addr.String(), "id", pkg.ID, "error", err)
		return
	}

	for _, msg := range messages {
		select {
		case r.inbox <- Inbound{Addr: addr, Peers: pkg.Peers, Message: msg}:
		default:
			r.logger.Warn("inbox full, dropping message", "addr", addr.String())
		}
	}
}
