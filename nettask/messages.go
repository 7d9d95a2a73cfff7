// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nettask

import (
	"net"

	"github.com/vanguard-rts/core/wire"
)

// Inbound is one decoded application message delivered to the consumer of
// a Receiver's channel.
type Inbound struct {
	Addr    net.Addr
	Peers   wire.Peers
	Message []byte
}

// Outbound is a batch of application messages to send to one peer with a
// single reliability class.
type Outbound struct {
	Addr        net.Addr
	Reliability wire.Reliability
	Peers       wire.Peers
	Messages    [][]byte
}
