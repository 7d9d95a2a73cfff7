// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package lobby

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/vanguard-rts/core/config"
	vlog "github.com/vanguard-rts/core/log"
)

// listenEphemeral returns a UDP socket bound to an OS-assigned port on the
// loopback interface, freeing it immediately so the returned port can be
// reused by the system under test.
func listenEphemeral(t *testing.T) int {
	t.Helper()
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	port := conn.LocalAddr().(*net.UDPAddr).Port
	require.NoError(t, conn.Close())
	return port
}

func newTestRuntime(t *testing.T) config.Runtime {
	r := config.Local
	r.MainServerPort = listenEphemeral(t)
	r.GamePortRangeLow = listenEphemeral(t)
	r.GamePortRangeHigh = r.GamePortRangeLow + 20
	r.MaxBaseResendInterval = 20 * time.Millisecond
	return r
}

// TestOpenAndJoin exercises a client opening a game, then joining the game
// server it was handed back.
func TestOpenAndJoin(t *testing.T) {
	r := newTestRuntime(t)
	logger := vlog.NewNoOpLogger()

	main, err := NewMainServer(r, logger, prometheus.NewRegistry())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = main.Run(ctx) }()

	client, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer client.Close()

	serverAddr, err := net.ResolveUDPAddr("udp", "127.0.0.1:"+strconv.Itoa(r.MainServerPort))
	require.NoError(t, err)

	send(t, client, serverAddr, wire50(0, 7, EncodeToServer(OpenGame{MaxPlayers: 3})))

	buf := make([]byte, 1500)
	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := client.ReadFrom(buf)
	require.NoError(t, err)
	reply := buf[:n]
	require.Equal(t, byte(0x50), reply[0])

	msg, err := DecodeFromServer(reply[4:])
	require.NoError(t, err)
	opened, ok := msg.(GameOpened)
	require.True(t, ok)
	require.NotZero(t, opened.Port)

	gameAddr, err := net.ResolveUDPAddr("udp", "127.0.0.1:"+strconv.Itoa(opened.Port))
	require.NoError(t, err)
	send(t, client, gameAddr, wire50(0, 3, EncodeToGame(Join{})))

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err = client.ReadFrom(buf)
	require.NoError(t, err)
	joinReply := buf[:n]
	require.Equal(t, byte(0x40), joinReply[0])

	joinMsg, err := DecodeFromGame(joinReply[4:])
	require.NoError(t, err)
	require.Equal(t, Joined{Player: 1}, joinMsg)
}

// TestTwoClientPeerJoined exercises: after A joins, B joins and both A and
// B receive the messages the game server broadcasts about it.
func TestTwoClientPeerJoined(t *testing.T) {
	r := newTestRuntime(t)
	logger := vlog.NewNoOpLogger()

	port := listenEphemeral(t)
	game, err := NewGameServer(port, r.MaxPlayersPerGame, r.InboxCapacity, r.InboxCapacity,
		r.MaxBaseResendInterval, r.MaxConnectionAge, logger, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = game.Run(ctx) }()

	a, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer a.Close()
	b, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer b.Close()

	gameAddr, err := net.ResolveUDPAddr("udp", "127.0.0.1:"+strconv.Itoa(port))
	require.NoError(t, err)

	send(t, a, gameAddr, wire50(0, 1, EncodeToGame(Join{})))
	requireFromGame(t, a, Joined{Player: 1})

	send(t, b, gameAddr, wire50(0, 2, EncodeToGame(Join{})))
	requireFromGame(t, b, Joined{Player: 2})
	requireFromGame(t, a, PeerJoined{Player: 2})
}

func requireFromGame(t *testing.T, conn net.PacketConn, want FromGame) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 1500)
	n, _, err := conn.ReadFrom(buf)
	require.NoError(t, err)
	msg, err := DecodeFromGame(buf[4:n])
	require.NoError(t, err)
	require.Equal(t, want, msg)
}

func send(t *testing.T, conn net.PacketConn, addr net.Addr, data []byte) {
	t.Helper()
	_, err := conn.WriteTo(data, addr)
	require.NoError(t, err)
}

// wire50 builds a semi-ordered, server-peer datagram header (0x50) with the
// given 24-bit package id, followed by payload.
func wire50(hi byte, id uint32, payload []byte) []byte {
	out := []byte{0x50, hi, byte(id >> 8), byte(id)}
	return append(out, payload...)
}
