// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package lobby

import (
	"fmt"
)

// portMarker signals that a port did not fit in one byte and the
// following two bytes (big-endian) carry its value instead.
const portMarker = 0xFB

func encodePort(port int, out []byte) []byte {
	if port <= 250 {
		return append(out, byte(port))
	}
	return append(out, portMarker, byte(port>>8), byte(port))
}

func decodePort(data []byte) (port int, n int, err error) {
	if len(data) < 1 {
		return 0, 0, fmt.Errorf("lobby: truncated port")
	}
	if data[0] != portMarker {
		return int(data[0]), 1, nil
	}
	if len(data) < 3 {
		return 0, 0, fmt.Errorf("lobby: truncated wide port")
	}
	return int(data[1])<<8 | int(data[2]), 3, nil
}

// ToServer is a message sent by a client to the main server.
type ToServer interface{ toServerTag() byte }

// ToServer tags, 0-based per the protocol's enum-position convention.
const (
	tagToServerHeartbeat byte = 0
	tagToServerOpenGame  byte = 1
	tagToServerListGames byte = 2
)

// Heartbeat keeps a client's main-server connection alive between games.
type Heartbeat struct{}

func (Heartbeat) toServerTag() byte { return tagToServerHeartbeat }

// OpenGame requests a new game be opened with the given player cap.
type OpenGame struct {
	MaxPlayers uint8
}

func (OpenGame) toServerTag() byte { return tagToServerOpenGame }

// ListGames requests the currently open games without opening a new one.
type ListGames struct{}

func (ListGames) toServerTag() byte { return tagToServerListGames }

// EncodeToServer serializes a ToServer message.
func EncodeToServer(msg ToServer) []byte {
	switch m := msg.(type) {
	case Heartbeat:
		return []byte{tagToServerHeartbeat}
	case OpenGame:
		return []byte{tagToServerOpenGame, m.MaxPlayers}
	case ListGames:
		return []byte{tagToServerListGames}
	default:
		panic(fmt.Sprintf("lobby: unknown ToServer message %T", msg))
	}
}

// DecodeToServer parses a ToServer message.
func DecodeToServer(data []byte) (ToServer, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("lobby: empty ToServer payload")
	}
	switch data[0] {
	case tagToServerHeartbeat:
		return Heartbeat{}, nil
	case tagToServerOpenGame:
		if len(data) < 2 {
			return nil, fmt.Errorf("lobby: truncated OpenGame")
		}
		return OpenGame{MaxPlayers: data[1]}, nil
	case tagToServerListGames:
		return ListGames{}, nil
	default:
		return nil, fmt.Errorf("lobby: unknown ToServer tag %d", data[0])
	}
}

// FromServer is a message sent by the main server to a client.
type FromServer interface{ fromServerTag() byte }

const (
	tagFromServerHeartbeatAck byte = 0
	tagFromServerGameOpened   byte = 1
	tagFromServerGamesList    byte = 2
)

// HeartbeatAck acknowledges a Heartbeat.
type HeartbeatAck struct{}

func (HeartbeatAck) fromServerTag() byte { return tagFromServerHeartbeatAck }

// GameOpened replies to OpenGame with the port of the newly opened game.
type GameOpened struct {
	Port int
}

func (GameOpened) fromServerTag() byte { return tagFromServerGameOpened }

// GameSummary is one entry of a GamesList reply.
type GameSummary struct {
	Port       int
	Players    uint8
	MaxPlayers uint8
}

// GamesList replies to ListGames.
type GamesList struct {
	Games []GameSummary
}

func (GamesList) fromServerTag() byte { return tagFromServerGamesList }

// EncodeFromServer serializes a FromServer message.
func EncodeFromServer(msg FromServer) []byte {
	switch m := msg.(type) {
	case HeartbeatAck:
		return []byte{tagFromServerHeartbeatAck}
	case GameOpened:
		out := []byte{tagFromServerGameOpened}
		return encodePort(m.Port, out)
	case GamesList:
		out := []byte{tagFromServerGamesList, byte(len(m.Games))}
		for _, g := range m.Games {
			out = encodePort(g.Port, out)
			out = append(out, g.Players, g.MaxPlayers)
		}
		return out
	default:
		panic(fmt.Sprintf("lobby: unknown FromServer message %T", msg))
	}
}

// DecodeFromServer parses a FromServer message.
func DecodeFromServer(data []byte) (FromServer, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("lobby: empty FromServer payload")
	}
	switch data[0] {
	case tagFromServerHeartbeatAck:
		return HeartbeatAck{}, nil
	case tagFromServerGameOpened:
		port, _, err := decodePort(data[1:])
		if err != nil {
			return nil, err
		}
		return GameOpened{Port: port}, nil
	case tagFromServerGamesList:
		if len(data) < 2 {
			return nil, fmt.Errorf("lobby: truncated GamesList")
		}
		count := int(data[1])
		rest := data[2:]
		games := make([]GameSummary, 0, count)
		for i := 0; i < count; i++ {
			port, n, err := decodePort(rest)
			if err != nil {
				return nil, err
			}
			rest = rest[n:]
			if len(rest) < 2 {
				return nil, fmt.Errorf("lobby: truncated GamesList entry")
			}
			games = append(games, GameSummary{Port: port, Players: rest[0], MaxPlayers: rest[1]})
			rest = rest[2:]
		}
		return GamesList{Games: games}, nil
	default:
		return nil, fmt.Errorf("lobby: unknown FromServer tag %d", data[0])
	}
}

// ToGame is a message sent by a client to a game server.
type ToGame interface{ toGameTag() byte }

const tagToGameJoin byte = 1

// Join requests the sender join the game it was directed to.
type Join struct{}

func (Join) toGameTag() byte { return tagToGameJoin }

// EncodeToGame serializes a ToGame message.
func EncodeToGame(msg ToGame) []byte {
	switch msg.(type) {
	case Join:
		return []byte{tagToGameJoin}
	default:
		panic(fmt.Sprintf("lobby: unknown ToGame message %T", msg))
	}
}

// DecodeToGame parses a ToGame message.
func DecodeToGame(data []byte) (ToGame, error) {
	if len(data) < 1 {
		return nil, fmt.Errorf("lobby: empty ToGame payload")
	}
	switch data[0] {
	case tagToGameJoin:
		return Join{}, nil
	default:
		return nil, fmt.Errorf("lobby: unknown ToGame tag %d", data[0])
	}
}

// FromGame is a message sent by a game server to a client.
type FromGame interface{ fromGameTag() byte }

const (
	tagFromGameJoined     byte = 2
	tagFromGamePeerJoined byte = 5
	tagFromGamePeerLeft   byte = 6
)

// Joined replies to Join with the sender's own assigned player id.
type Joined struct {
	Player PlayerID
}

func (Joined) fromGameTag() byte { return tagFromGameJoined }

// PeerJoined notifies existing players that another player joined.
type PeerJoined struct {
	Player PlayerID
}

func (PeerJoined) fromGameTag() byte { return tagFromGamePeerJoined }

// PeerLeft notifies remaining players that a player left or was dropped.
type PeerLeft struct {
	Player PlayerID
}

func (PeerLeft) fromGameTag() byte { return tagFromGamePeerLeft }

// EncodeFromGame serializes a FromGame message.
func EncodeFromGame(msg FromGame) []byte {
	switch m := msg.(type) {
	case Joined:
		return []byte{tagFromGameJoined, byte(m.Player)}
	case PeerJoined:
		return []byte{tagFromGamePeerJoined, byte(m.Player)}
	case PeerLeft:
		return []byte{tagFromGamePeerLeft, byte(m.Player)}
	default:
		panic(fmt.Sprintf("lobby: unknown FromGame message %T", msg))
	}
}

// DecodeFromGame parses a FromGame message.
func DecodeFromGame(data []byte) (FromGame, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("lobby: truncated FromGame payload")
	}
	switch data[0] {
	case tagFromGameJoined:
		return Joined{Player: PlayerID(data[1])}, nil
	case tagFromGamePeerJoined:
		return PeerJoined{Player: PlayerID(data[1])}, nil
	case tagFromGamePeerLeft:
		return PeerLeft{Player: PlayerID(data[1])}, nil
	default:
		return nil, fmt.Errorf("lobby: unknown FromGame tag %d", data[0])
	}
}
