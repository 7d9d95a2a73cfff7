// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package netconn

import (
	"net"
	"time"

	"github.com/vanguard-rts/core/wire"
)

// MaxConfirmBufferSize is the payload size (in acknowledged IDs * 3 bytes)
// at which a confirm buffer is flushed immediately.
const MaxConfirmBufferSize = 96

// MaxConfirmBufferAge is the longest a confirm buffer may hold unflushed
// acknowledgements before being flushed regardless of size.
const MaxConfirmBufferAge = 100 * time.Millisecond

// ConfirmBuffer accumulates delivered-datagram IDs per peer and flushes
// them as a single confirmation datagram, piggy-backing many
// acknowledgements onto one packet instead of one confirmation per
// datagram.
type ConfirmBuffer struct {
	book *Book[*confirmEntry]
}

type confirmEntry struct {
	ids      []wire.PackageID
	openedAt time.Time
}

// Pending implements Entry: a confirm buffer with queued IDs still has
// work to flush.
func (e *confirmEntry) Pending() bool {
	return len(e.ids) > 0
}

func newConfirmEntry() *confirmEntry {
	return &confirmEntry{}
}

// NewConfirmBuffer returns an empty ConfirmBuffer, expiring idle peers
// after maxConnAge.
func NewConfirmBuffer(maxConnAge time.Duration) *ConfirmBuffer {
	return &ConfirmBuffer{book: NewBook[*confirmEntry](maxConnAge)}
}

// Ack records a received datagram's ID as pending acknowledgement to addr.
func (c *ConfirmBuffer) Ack(now time.Time, addr net.Addr, id wire.PackageID) {
	e := c.book.Update(now, addr, newConfirmEntry)
	if len(e.ids) == 0 {
		e.openedAt = now
	}
	e.ids = append(e.ids, id)
}

// Due returns the confirmation payload for every peer whose buffer has
// reached MaxConfirmBufferSize or MaxConfirmBufferAge, clearing those
// buffers.
func (c *ConfirmBuffer) Due(now time.Time) map[string][]byte {
	out := make(map[string][]byte)
	for _, addr := range c.book.Peers() {
		e, _ := c.book.Get(addr)
		if len(e.ids) == 0 {
			continue
		}
		full := len(e.ids)*3 >= MaxConfirmBufferSize
		old := now.Sub(e.openedAt) >= MaxConfirmBufferAge
		if !full && !old {
			continue
		}
		out[addr.String()] = encodeAcks(e.ids)
		e.ids = nil
	}
	return out
}

func encodeAcks(ids []wire.PackageID) []byte {
	buf := make([]byte, 0, len(ids)*3)
	for _, id := range ids {
		b := [3]byte{}
		v := uint32(id)
		b[0] = byte(v >> 16)
		b[1] = byte(v >> 8)
		b[2] = byte(v)
		buf = append(buf, b[:]...)
	}
	return buf
}

// Clean removes idle, empty peer entries.
func (c *ConfirmBuffer) Clean(now time.Time) {
	c.book.Clean(now)
}
