// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package nettask

import (
	"net"
	"sync"
	"time"

	"github.com/vanguard-rts/core/netconn"
	"github.com/vanguard-rts/core/wire"
)

// ConnState is the mutable per-task-group connection bookkeeping shared by
// the Receiver, Sender and Keeper loops of one PacketConn: outgoing
// package ID counters, the resend queue, the confirm buffer and each
// peer's dedup window. Every field is guarded by mu; the keeper task is
// the only one that ever removes a peer outright, preserving the
// single-writer discipline the connection book is designed around even
// though all three loops may read and update it.
type ConnState struct {
	mu sync.Mutex

	resends  *netconn.Resends
	confirms *netconn.ConfirmBuffer
	counters map[string]*wire.IDRange
	windows  map[string]*netconn.ReceivedWindow
}

// NewConnState returns an empty ConnState whose idle per-peer entries
// expire after maxConnAge; retransmission timing uses netconn's constants.
func NewConnState(maxConnAge time.Duration) *ConnState {
	return &ConnState{
		resends:  netconn.NewResends(maxConnAge),
		confirms: netconn.NewConfirmBuffer(maxConnAge),
		counters: make(map[string]*wire.IDRange),
		windows:  make(map[string]*netconn.ReceivedWindow),
	}
}

func (s *ConnState) nextID(addr net.Addr) wire.PackageID {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := addr.String()
	c, ok := s.counters[key]
	if !ok {
		c = wire.Counter()
		s.counters[key] = c
	}
	id, _ := c.Next()
	return id
}

func (s *ConnState) window(addr net.Addr) *netconn.ReceivedWindow {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := addr.String()
	w, ok := s.windows[key]
	if !ok {
		w = netconn.NewReceivedWindow()
		s.windows[key] = w
	}
	return w
}

func (s *ConnState) registerSent(now time.Time, addr net.Addr, id wire.PackageID, reliability wire.Reliability, peers wire.Peers, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resends.Sent(now, addr, id, reliability, peers, data)
}

func (s *ConnState) registerConfirmed(now time.Time, addr net.Addr, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resends.Confirmed(now, addr, data)
}

func (s *ConnState) ack(now time.Time, addr net.Addr, id wire.PackageID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirms.Ack(now, addr, id)
}

func (s *ConnState) dueSends(now time.Time) ([]netconn.PendingSend, []net.Addr) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resends.Due(now)
}

func (s *ConnState) dueConfirms(now time.Time) map[string][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirms.Due(now)
}

func (s *ConnState) clean(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resends.Clean(now)
	s.confirms.Clean(now)
}
