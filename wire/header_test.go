// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteHeader(t *testing.T) {
	require := require.New(t)
	buf := make([]byte, 256)

	NewPackageHeader(SemiOrdered, Server, ZeroPackageID).Write(buf)
	require.Equal([]byte{0b0101_0000, 0, 0, 0}, buf[0:4])

	id, err := NewPackageID(256)
	require.NoError(err)
	NewPackageHeader(Unordered, Server, id).Write(buf)
	require.Equal([]byte{0b0011_0000, 0, 1, 0}, buf[0:4])

	id, err = NewPackageID(1033)
	require.NoError(err)
	NewPackageHeader(Unreliable, Players, id).Write(buf)
	require.Equal([]byte{0b0000_0000, 0, 4, 9}, buf[0:4])
}

func TestReadHeader(t *testing.T) {
	require := require.New(t)
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = 88
	}

	copy(buf[0:4], []byte{64, 0, 0, 0})
	h, err := ReadHeader(buf)
	require.NoError(err)
	require.Equal(NewPackageHeader(SemiOrdered, Players, ZeroPackageID), h)

	copy(buf[0:4], []byte{32, 1, 0, 3})
	h, err = ReadHeader(buf)
	require.NoError(err)
	id, err := NewPackageID(65539)
	require.NoError(err)
	require.Equal(NewPackageHeader(Unordered, Players, id), h)

	copy(buf[0:4], []byte{16, 0, 0, 2})
	h, err = ReadHeader(buf)
	require.NoError(err)
	id, err = NewPackageID(2)
	require.NoError(err)
	require.Equal(NewPackageHeader(Unreliable, Server, id), h)
}

func TestReadConfirmationHeader(t *testing.T) {
	require := require.New(t)
	buf := make([]byte, 4)
	NewConfirmationHeader().Write(buf)
	h, err := ReadHeader(buf)
	require.NoError(err)
	require.True(h.Confirmation)
}

func TestPackageIDIncremented(t *testing.T) {
	require := require.New(t)

	id := packageIDFromBytes([]byte{0, 1, 0})
	require.Equal([3]byte{0, 1, 1}, id.Incremented().toBytes())

	max, err := NewPackageID(0xffffff)
	require.NoError(err)
	require.Equal(ZeroPackageID, max.Incremented())
}

func TestPackageIDOrdering(t *testing.T) {
	require := require.New(t)

	require.Equal(-1, packageIDFromBytes([]byte{0, 1, 1}).Compare(packageIDFromBytes([]byte{0, 1, 2})))
	require.Equal(1, packageIDFromBytes([]byte{0, 1, 1}).Compare(packageIDFromBytes([]byte{0, 1, 0})))
	require.Equal(0, packageIDFromBytes([]byte{0, 1, 1}).Compare(packageIDFromBytes([]byte{0, 1, 1})))

	require.Equal(1, packageIDFromBytes([]byte{0, 1, 2}).Compare(packageIDFromBytes([]byte{255, 255, 1})))
	require.Equal(-1, packageIDFromBytes([]byte{255, 255, 1}).Compare(packageIDFromBytes([]byte{0, 1, 2})))
}

func TestIDRangeCounter(t *testing.T) {
	require := require.New(t)

	counter := Counter()
	id, ok := counter.Next()
	require.True(ok)
	require.Equal(ZeroPackageID, id)

	id, ok = counter.Next()
	require.True(ok)
	require.Equal(ZeroPackageID.Incremented(), id)

	id, ok = counter.Next()
	require.True(ok)
	require.Equal(ZeroPackageID.Incremented().Incremented(), id)

	id, ok = counter.Next()
	require.True(ok)
	require.Equal(packageIDFromBytes([]byte{0, 0, 3}), id)
}

func TestIDRangeBounded(t *testing.T) {
	require := require.New(t)

	r := IDRangeBetween(packageIDFromBytes([]byte{0, 1, 2}), packageIDFromBytes([]byte{0, 1, 4}))
	id, ok := r.Next()
	require.True(ok)
	require.Equal(packageIDFromBytes([]byte{0, 1, 2}), id)

	id, ok = r.Next()
	require.True(ok)
	require.Equal(packageIDFromBytes([]byte{0, 1, 3}), id)

	_, ok = r.Next()
	require.False(ok)
}
