// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package lobby

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/vanguard-rts/core/log"
	"github.com/vanguard-rts/core/nettask"
	"github.com/vanguard-rts/core/wire"
)

// GameServer owns one opened game: its own UDP socket, its player
// freelist, and the readiness of each joined player. It runs as an
// independent nettask.Task so a slow or malicious peer on one game
// cannot starve another.
type GameServer struct {
	Port int

	task   *nettask.Task
	conn   net.PacketConn
	logger log.Logger
	metric *Metrics

	mu        sync.Mutex
	slots     *PlayerSlots
	playersBy map[string]PlayerID // addr string -> player
	addrsBy   map[PlayerID]net.Addr
	readiness map[PlayerID]Readiness
	closed    bool
}

// NewGameServer binds a UDP socket on port and returns a GameServer ready
// to run, with maxPlayers player slots available.
func NewGameServer(port, maxPlayers, inboxCapacity, outboxCapacity int, keeperInterval, maxConnAge time.Duration, logger log.Logger, metric *Metrics) (*GameServer, error) {
	conn, err := net.ListenPacket("udp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	task := nettask.NewTask(conn, inboxCapacity, outboxCapacity, keeperInterval, maxConnAge, logger)
	return &GameServer{
		Port:      port,
		task:      task,
		conn:      conn,
		logger:    logger,
		metric:    metric,
		slots:     NewPlayerSlots(maxPlayers),
		playersBy: make(map[string]PlayerID),
		addrsBy:   make(map[PlayerID]net.Addr),
		readiness: make(map[PlayerID]Readiness),
	}, nil
}

// Run drives the GameServer's network task and message loop until ctx is
// cancelled.
func (g *GameServer) Run(ctx context.Context) error {
	errs := make(chan error, 1)
	go func() { errs <- g.task.Run(ctx) }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errs:
			return err
		case in, ok := <-g.task.Receiver.Inbox():
			if !ok {
				return nil
			}
			g.handle(ctx, in)
		case addr := <-g.task.Keeper.Failures():
			g.drop(ctx, addr)
		}
	}
}

func (g *GameServer) handle(ctx context.Context, in nettask.Inbound) {
	msg, err := DecodeToGame(in.Message)
	if err != nil {
		g.logger.Warn("dropping malformed ToGame message", "addr", in.Addr.String(), "error", err)
		return
	}

	switch m := msg.(type) {
	case Join:
		g.join(ctx, in.Addr)
	default:
		g.logger.Warn("unhandled ToGame message", "addr", in.Addr.String(), "type", fmt.Sprintf("%T", m))
	}
}

func (g *GameServer) join(ctx context.Context, addr net.Addr) {
	g.mu.Lock()
	key := addr.String()
	if _, already := g.playersBy[key]; already {
		g.mu.Unlock()
		g.logger.Warn("join rejected: already joined", "addr", key)
		return
	}

	id, ok := g.slots.Lease()
	if !ok {
		g.mu.Unlock()
		g.logger.Warn("join rejected: game full", "addr", key)
		return
	}
	g.playersBy[key] = id
	g.addrsBy[id] = addr
	g.readiness[id] = NotReady
	peers := make([]net.Addr, 0, len(g.addrsBy)-1)
	for pid, paddr := range g.addrsBy {
		if pid != id {
			peers = append(peers, paddr)
		}
	}
	g.mu.Unlock()

	if g.metric != nil {
		g.metric.PlayersJoined.Inc()
	}

	g.reply(ctx, addr, wire.SemiOrdered, wire.Players, EncodeFromGame(Joined{Player: id}))
	for _, peer := range peers {
		g.reply(ctx, peer, wire.SemiOrdered, wire.Players, EncodeFromGame(PeerJoined{Player: id}))
	}
}

func (g *GameServer) drop(ctx context.Context, addr net.Addr) {
	g.mu.Lock()
	key := addr.String()
	id, ok := g.playersBy[key]
	if !ok {
		g.mu.Unlock()
		return
	}
	delete(g.playersBy, key)
	delete(g.addrsBy, id)
	delete(g.readiness, id)
	g.slots.Release(id)
	peers := make([]net.Addr, 0, len(g.addrsBy))
	for _, paddr := range g.addrsBy {
		peers = append(peers, paddr)
	}
	g.mu.Unlock()

	if g.metric != nil {
		g.metric.PlayersLeft.Inc()
	}

	for _, peer := range peers {
		g.reply(ctx, peer, wire.SemiOrdered, wire.Players, EncodeFromGame(PeerLeft{Player: id}))
	}
}

// SetReadiness applies a readiness update from the player at addr,
// rejecting non-monotonic transitions per Readiness.Accept.
func (g *GameServer) SetReadiness(addr net.Addr, next Readiness) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, ok := g.playersBy[addr.String()]
	if !ok {
		return &ReadinessUpdateError{Reason: ReadinessUnknownClient}
	}
	updated, err := g.readiness[id].Accept(next)
	if err != nil {
		return err
	}
	g.readiness[id] = updated
	return nil
}

// Readiness returns the game's current per-player-minimum readiness.
func (g *GameServer) Readiness() Readiness {
	g.mu.Lock()
	defer g.mu.Unlock()
	return GameReadiness(g.readiness)
}

// PlayerCount returns the number of currently joined players.
func (g *GameServer) PlayerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.slots.Len()
}

func (g *GameServer) reply(ctx context.Context, addr net.Addr, reliability wire.Reliability, peers wire.Peers, payload []byte) {
	if payload == nil {
		return
	}
	out := nettask.Outbound{Addr: addr, Reliability: reliability, Peers: peers, Messages: [][]byte{payload}}
	select {
	case g.task.Sender.Outbox() <- out:
	case <-ctx.Done():
	}
}

// Close shuts down the game's socket.
func (g *GameServer) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil
	}
	g.closed = true
	return g.conn.Close()
}
