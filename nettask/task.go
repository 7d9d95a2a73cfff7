// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nettask

import (
	"context"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanguard-rts/core/log"
)

// Task wires a Receiver, Sender and Keeper around one PacketConn and runs
// them as a cooperative group: all three suspend only on socket I/O,
// channel operations or the keeper's ticker, and the first one to fail
// cancels the others.
type Task struct {
	Receiver *Receiver
	Sender   *Sender
	Keeper   *Keeper
}

// NewTask builds the three cooperative loops sharing one ConnState over
// conn.
func NewTask(conn net.PacketConn, inboxCapacity, outboxCapacity int, keeperInterval, maxConnAge time.Duration, logger log.Logger) *Task {
	state := NewConnState(maxConnAge)
	receiver := NewReceiver(conn, state, inboxCapacity, logger)
	sender := NewSender(conn, state, outboxCapacity, logger)
	keeper := NewKeeper(sender, state, keeperInterval, logger)
	return &Task{Receiver: receiver, Sender: sender, Keeper: keeper}
}

// Run starts all three loops and blocks until ctx is cancelled or one of
// them errors, at which point the others are cancelled too.
func (t *Task) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return t.Receiver.Run(ctx) })
	g.Go(func() error { return t.Sender.Run(ctx) })
	g.Go(func() error { return t.Keeper.Run(ctx) })
	g.Go(func() error {
		// ReadFrom does not watch ctx: an expired read deadline wakes the
		// Receiver once the group is cancelled.
		<-ctx.Done()
		return t.Receiver.conn.SetReadDeadline(time.Now())
	})
	return g.Wait()
}
