// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"encoding/binary"
	"fmt"
)

// MaxPackageSize is the largest a single datagram payload (including the
// header) may be.
const MaxPackageSize = 512

// maxPayloadSize is MaxPackageSize minus the header.
const maxPayloadSize = MaxPackageSize - HeaderSize

// Builder batches length-prefixed messages into fixed-size packages: each
// Push appends a message with a varint length prefix, and once the next
// message would overflow MaxPackageSize the current buffer is closed off
// as a finished package and a new one is started.
type Builder struct {
	current  []byte
	finished [][]byte
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{current: make([]byte, 0, maxPayloadSize)}
}

// Push appends one message to the batch, rolling over to a new package if
// the message does not fit in the current one. A single message that does
// not fit into a fresh, empty package is an error: the wire format cannot
// represent it.
func (b *Builder) Push(msg []byte) error {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(msg)))
	need := n + len(msg)

	if need > maxPayloadSize {
		return fmt.Errorf("wire: message of %d bytes does not fit in a %d byte package", len(msg), maxPayloadSize)
	}

	if len(b.current)+need > maxPayloadSize {
		b.rollOver()
	}

	b.current = append(b.current, lenBuf[:n]...)
	b.current = append(b.current, msg...)
	return nil
}

func (b *Builder) rollOver() {
	if len(b.current) == 0 {
		return
	}
	finished := make([]byte, len(b.current))
	copy(finished, b.current)
	b.finished = append(b.finished, finished)
	b.current = b.current[:0]
}

// Build finalizes the batch and returns the list of package payloads
// (header not included).
func (b *Builder) Build() [][]byte {
	b.rollOver()
	return b.finished
}

// DecodeError is returned when a package payload cannot be parsed as a
// sequence of length-prefixed messages. The whole package is discarded on
// this error, per the protocol's error-handling design.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("wire: malformed package payload: %s", e.Reason)
}

// Decoder streams messages out of one package payload.
type Decoder struct {
	data []byte
	pos  int
}

// NewDecoder wraps a package payload for streaming decode.
func NewDecoder(payload []byte) *Decoder {
	return &Decoder{data: payload}
}

// Next returns the next message in the payload, or false once the payload
// is exhausted. A malformed payload (truncated varint, length past the end
// of the buffer) returns a DecodeError.
func (d *Decoder) Next() ([]byte, bool, error) {
	if d.pos >= len(d.data) {
		return nil, false, nil
	}

	length, n := binary.Uvarint(d.data[d.pos:])
	if n <= 0 {
		return nil, false, &DecodeError{Reason: "truncated length prefix"}
	}
	start := d.pos + n
	end := start + int(length)
	if end > len(d.data) {
		return nil, false, &DecodeError{Reason: "message length exceeds payload"}
	}

	d.pos = end
	return d.data[start:end], true, nil
}

// DecodeAll drains every message from the payload, discarding the whole
// result on the first malformed message.
func DecodeAll(payload []byte) ([][]byte, error) {
	dec := NewDecoder(payload)
	var out [][]byte
	for {
		msg, ok, err := dec.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, msg)
	}
}
