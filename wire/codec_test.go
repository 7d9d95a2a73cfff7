// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderDecodeRoundTrip(t *testing.T) {
	require := require.New(t)

	msgs := [][]byte{
		{0x01, 0x03},
		{0x05, 0x02},
		{0x02, 0x01},
	}

	b := NewBuilder()
	for _, m := range msgs {
		require.NoError(b.Push(m))
	}
	packages := b.Build()
	require.Len(packages, 1)

	decoded, err := DecodeAll(packages[0])
	require.NoError(err)
	require.Equal(msgs, decoded)
}

func TestBuilderRollsOverOnOverflow(t *testing.T) {
	require := require.New(t)

	b := NewBuilder()
	big := make([]byte, maxPayloadSize-2)
	require.NoError(b.Push(big))
	require.NoError(b.Push([]byte{0x01, 0x02}))

	packages := b.Build()
	require.Len(packages, 2)
}

func TestDecodeTruncatedFails(t *testing.T) {
	require := require.New(t)

	_, err := DecodeAll([]byte{0x05, 0x01})
	require.Error(err)
}

func TestOpenGameWireExample(t *testing.T) {
	require := require.New(t)

	id, err := NewPackageID(7)
	require.NoError(err)
	header := NewPackageHeader(SemiOrdered, Server, id)
	buf := make([]byte, HeaderSize)
	header.Write(buf)
	require.Equal([]byte{0b0101_0000, 0x00, 0x00, 0x07}, buf)

	b := NewBuilder()
	require.NoError(b.Push([]byte{0x01, 0x03}))
	packages := b.Build()
	require.Equal([][]byte{{0x01, 0x03}}, packages)
}
