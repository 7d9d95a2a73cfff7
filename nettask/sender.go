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

// Sender batches and writes outbound messages to a PacketConn, assigning
// each package a fresh id and registering reliable packages for
// retransmission tracking.
type Sender struct {
	conn   net.PacketConn
	state  *ConnState
	outbox chan Outbound
	logger log.Logger
}

// NewSender returns a Sender writing to conn, fed through a channel of
// the given capacity.
func NewSender(conn net.PacketConn, state *ConnState, outboxCapacity int, logger log.Logger) *Sender {
	return &Sender{
		conn:   conn,
		state:  state,
		outbox: make(chan Outbound, outboxCapacity),
		logger: logger,
	}
}

// Outbox returns the channel callers publish Outbound batches on.
func (s *Sender) Outbox() chan<- Outbound {
	return s.outbox
}

// Run drains the outbox and writes packages until ctx is cancelled or the
// channel is closed.
func (s *Sender) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out, ok := <-s.outbox:
			if !ok {
				return nil
			}
			if err := s.send(out); err != nil {
				s.logger.Warn("failed to send outbound batch", "addr", out.Addr.String(), "error", err)
			}
		}
	}
}

func (s *Sender) send(out Outbound) error {
	builder := wire.NewBuilder()
	for _, msg := range out.Messages {
		if err := builder.Push(msg); err != nil {
			return err
		}
	}

	now := time.Now()
	for _, payload := range builder.Build() {
		id := s.state.nextID(out.Addr)
		header := wire.NewPackageHeader(out.Reliability, out.Peers, id)

		buf := make([]byte, wire.HeaderSize+len(payload))
		header.Write(buf)
		copy(buf[wire.HeaderSize:], payload)

		if _, err := s.conn.WriteTo(buf, out.Addr); err != nil {
			return err
		}
		if out.Reliability.IsReliable() {
			s.state.registerSent(now, out.Addr, id, out.Reliability, out.Peers, buf[wire.HeaderSize:])
		}
	}
	return nil
}

// SendConfirmation writes a raw confirmation datagram (N*3 bytes of
// acknowledged ids) to addr.
func (s *Sender) SendConfirmation(addr net.Addr, acked []byte) error {
	buf := make([]byte, wire.HeaderSize+len(acked))
	wire.NewConfirmationHeader().Write(buf)
	copy(buf[wire.HeaderSize:], acked)
	_, err := s.conn.WriteTo(buf, addr)
	return err
}
