// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lobby implements the game-server plane: the main server that
// accepts OpenGame/ListGames requests and hands out a dedicated UDP port
// per opened game, and the per-game server that tracks joined players and
// their readiness.
package lobby

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vanguard-rts/core/config"
	"github.com/vanguard-rts/core/log"
	"github.com/vanguard-rts/core/nettask"
	"github.com/vanguard-rts/core/utils/wrappers"
	"github.com/vanguard-rts/core/wire"
)

// MainServer listens on the configured main port, opens a GameServer per
// OpenGame request and answers ListGames queries.
type MainServer struct {
	cfg    config.Runtime
	logger log.Logger
	metric *Metrics

	task *nettask.Task

	mu     sync.Mutex
	games  map[int]*GameServer
	nextHi int // next port to try first, to spread load over the range
}

// NewMainServer binds the main server's UDP socket.
func NewMainServer(cfg config.Runtime, logger log.Logger, reg prometheus.Registerer) (*MainServer, error) {
	metric, err := NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenPacket("udp", fmt.Sprintf(":%d", cfg.MainServerPort))
	if err != nil {
		return nil, err
	}
	task := nettask.NewTask(conn, cfg.InboxCapacity, cfg.InboxCapacity, cfg.MaxBaseResendInterval, cfg.MaxConnectionAge, logger)
	return &MainServer{
		cfg:    cfg,
		logger: logger,
		metric: metric,
		task:   task,
		games:  make(map[int]*GameServer),
		nextHi: cfg.GamePortRangeLow,
	}, nil
}

// Run drives the main server's network task and request loop until ctx is
// cancelled, and shuts down every open game on exit.
func (m *MainServer) Run(ctx context.Context) error {
	errs := make(chan error, 1)
	go func() { errs <- m.task.Run(ctx) }()

	defer m.closeAll()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errs:
			return err
		case in, ok := <-m.task.Receiver.Inbox():
			if !ok {
				return nil
			}
			m.handle(ctx, in)
		}
	}
}

func (m *MainServer) handle(ctx context.Context, in nettask.Inbound) {
	msg, err := DecodeToServer(in.Message)
	if err != nil {
		m.logger.Warn("dropping malformed ToServer message", "addr", in.Addr.String(), "error", err)
		return
	}

	switch req := msg.(type) {
	case Heartbeat:
		m.reply(ctx, in.Addr, EncodeFromServer(HeartbeatAck{}))
	case OpenGame:
		m.openGame(ctx, in.Addr, req)
	case ListGames:
		m.listGames(ctx, in.Addr)
	default:
		m.logger.Warn("unhandled ToServer message", "addr", in.Addr.String(), "type", fmt.Sprintf("%T", req))
	}
}

func (m *MainServer) openGame(ctx context.Context, addr net.Addr, req OpenGame) {
	port, err := m.allocatePort()
	if err != nil {
		m.logger.Warn("open game rejected: no port available", "addr", addr.String())
		return
	}

	game, err := NewGameServer(port, int(req.MaxPlayers), m.cfg.InboxCapacity, m.cfg.InboxCapacity,
		m.cfg.MaxBaseResendInterval, m.cfg.MaxConnectionAge, m.logger, m.metric)
	if err != nil {
		m.logger.Warn("failed to open game", "port", port, "error", err)
		m.releasePort(port)
		return
	}

	m.mu.Lock()
	m.games[port] = game
	m.mu.Unlock()

	if m.metric != nil {
		m.metric.GamesOpened.Inc()
		m.metric.GamesOpen.Inc()
	}

	go func() {
		gctx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := game.Run(gctx); err != nil && gctx.Err() == nil {
			m.logger.Warn("game server exited", "port", port, "error", err)
		}
		m.mu.Lock()
		delete(m.games, port)
		m.mu.Unlock()
		if m.metric != nil {
			m.metric.GamesOpen.Dec()
		}
	}()

	m.reply(ctx, addr, EncodeFromServer(GameOpened{Port: port}))
}

func (m *MainServer) listGames(ctx context.Context, addr net.Addr) {
	m.mu.Lock()
	summaries := make([]GameSummary, 0, len(m.games))
	for port, g := range m.games {
		if g == nil {
			continue // port reserved, socket not bound yet
		}
		summaries = append(summaries, GameSummary{
			Port:       port,
			Players:    uint8(g.PlayerCount()),
			MaxPlayers: uint8(g.slots.Cap()),
		})
	}
	m.mu.Unlock()
	m.reply(ctx, addr, EncodeFromServer(GamesList{Games: summaries}))
}

// allocatePort reserves the next free port in the configured range by
// immediately registering a placeholder, then finalizing once the
// GameServer's socket is bound.
func (m *MainServer) allocatePort() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i <= m.cfg.GamePortRangeHigh-m.cfg.GamePortRangeLow; i++ {
		port := m.nextHi
		m.nextHi++
		if m.nextHi > m.cfg.GamePortRangeHigh {
			m.nextHi = m.cfg.GamePortRangeLow
		}
		if _, taken := m.games[port]; !taken {
			m.games[port] = nil // reserved
			return port, nil
		}
	}
	return 0, ErrNoPortAvailable
}

func (m *MainServer) releasePort(port int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, port)
}

func (m *MainServer) reply(ctx context.Context, addr net.Addr, payload []byte) {
	out := nettask.Outbound{Addr: addr, Reliability: wire.SemiOrdered, Peers: wire.Server, Messages: [][]byte{payload}}
	select {
	case m.task.Sender.Outbox() <- out:
	case <-ctx.Done():
	}
}

func (m *MainServer) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs wrappers.Errs
	for _, g := range m.games {
		if g != nil {
			errs.Add(g.Close())
		}
	}
	if errs.Errored() {
		m.logger.Warn("errors closing open games", "error", errs.Err())
	}
}
