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

// Keeper periodically retransmits unconfirmed reliable packages, flushes
// batched confirmations, and expires idle connection state. It is the
// exclusive owner of connection cleanup: Receiver and Sender only ever add
// to ConnState, Keeper is the one that removes exhausted peers.
type Keeper struct {
	sender   *Sender
	state    *ConnState
	interval time.Duration
	errs     chan net.Addr
	logger   log.Logger
}

// NewKeeper returns a Keeper that ticks every interval, writing through
// sender and reporting connection failures on a channel.
func NewKeeper(sender *Sender, state *ConnState, interval time.Duration, logger log.Logger) *Keeper {
	return &Keeper{
		sender:   sender,
		state:    state,
		interval: interval,
		errs:     make(chan net.Addr, 16),
		logger:   logger,
	}
}

// Failures returns the channel on which addresses of connections that
// exhausted their retransmission budget are reported. GameServer drops
// the peer from its game as soon as its address arrives here.
func (k *Keeper) Failures() <-chan net.Addr {
	return k.errs
}

// Run ticks until ctx is cancelled.
func (k *Keeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()
	defer close(k.errs)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			k.tick(now)
		}
	}
}

func (k *Keeper) tick(now time.Time) {
	sends, failures := k.state.dueSends(now)
	for _, p := range sends {
		header := wire.NewPackageHeader(p.Reliability, p.Peers, p.ID)
		buf := make([]byte, wire.HeaderSize+len(p.Data))
		header.Write(buf)
		copy(buf[wire.HeaderSize:], p.Data)
		if _, err := k.sender.conn.WriteTo(buf, p.Addr); err != nil {
			k.logger.Warn("resend failed", "addr", p.Addr.String(), "id", p.ID, "error", err)
		}
	}

	for _, addr := range failures {
		k.logger.Warn("connection exhausted retransmission attempts", "addr", addr.String())
		select {
		case k.errs <- addr:
		default:
			k.logger.Warn("connection error channel full, dropping failure", "addr", addr.String())
		}
	}

	for addrKey, acked := range k.state.dueConfirms(now) {
		addr, err := net.ResolveUDPAddr("udp", addrKey)
		if err != nil {
			continue
		}
		if err := k.sender.SendConfirmation(addr, acked); err != nil {
			k.logger.Warn("confirmation send failed", "addr", addrKey, "error", err)
		}
	}

	k.state.clean(now)
}
