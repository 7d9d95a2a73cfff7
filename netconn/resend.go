// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package netconn

import (
	"container/heap"
	"fmt"
	"math/rand"
	"net"
	"time"

	"github.com/vanguard-rts/core/wire"
)

// StartBackoff is the delay before the first retransmission attempt.
const StartBackoff = 220 * time.Millisecond

// MaxTries is the number of retransmission attempts before a reliable
// send is considered failed.
const MaxTries = 6

// RescheduleError is returned when a datagram exhausts its retransmission
// budget.
type RescheduleError struct {
	ID wire.PackageID
}

func (e *RescheduleError) Error() string {
	return fmt.Sprintf("netconn: datagram %s failed after %d attempts", e.ID, MaxTries)
}

// Resends tracks, per peer, every reliably-sent datagram still awaiting
// confirmation, and schedules retransmissions with randomized exponential
// backoff.
type Resends struct {
	book *Book[*Queue]
}

// NewResends returns an empty Resends tracker, expiring idle peers after
// maxConnAge.
func NewResends(maxConnAge time.Duration) *Resends {
	return &Resends{book: NewBook[*Queue](maxConnAge)}
}

// Sent registers a just-sent reliable datagram for retransmission
// tracking. reliability is preserved so retransmissions reuse the
// datagram's original reliability class.
func (r *Resends) Sent(now time.Time, addr net.Addr, id wire.PackageID, reliability wire.Reliability, peers wire.Peers, data []byte) {
	q := r.book.Update(now, addr, NewQueue)
	q.push(id, reliability, peers, data, now)
}

// Confirmed processes a confirmation datagram's payload (N*3 bytes of
// acknowledged package IDs) and stops retransmitting the confirmed
// datagrams.
func (r *Resends) Confirmed(now time.Time, addr net.Addr, data []byte) {
	q := r.book.Update(now, addr, NewQueue)
	for i := 0; i+3 <= len(data); i += 3 {
		q.resolve(packageIDFromAckBytes(data[i : i+3]))
	}
}

func packageIDFromAckBytes(b []byte) wire.PackageID {
	id, _ := wire.NewPackageID(uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]))
	return id
}

// PendingSend is one datagram due for retransmission.
type PendingSend struct {
	Addr        net.Addr
	ID          wire.PackageID
	Reliability wire.Reliability
	Peers       wire.Peers
	Data        []byte
}

// Due returns every datagram across every tracked peer that is due for
// retransmission at now. Peers whose retransmission budget is exhausted
// are dropped from the book and returned as failures.
func (r *Resends) Due(now time.Time) (sends []PendingSend, failures []net.Addr) {
	for _, addr := range r.book.Peers() {
		q, _ := r.book.Get(addr)
		for {
			data, id, reliability, peers, err := q.reschedule(now)
			if err != nil {
				failures = append(failures, addr)
				r.book.Remove(addr)
				break
			}
			if data == nil {
				break
			}
			sends = append(sends, PendingSend{Addr: addr, ID: id, Reliability: reliability, Peers: peers, Data: data})
		}
	}
	return sends, failures
}

// Clean removes idle, fully-acknowledged peers.
func (r *Resends) Clean(now time.Time) {
	r.book.Clean(now)
}

// Queue governs reliable retransmission for the datagrams sent to one
// peer: a min-heap of pending datagrams ordered by next retransmission
// time, with the datagram payloads kept alongside.
type Queue struct {
	items queueHeap
	index map[wire.PackageID]*queueItem
}

// NewQueue returns an empty retransmission queue, matching the signature
// Book.Update expects for lazy per-peer creation.
func NewQueue() *Queue {
	return &Queue{index: make(map[wire.PackageID]*queueItem)}
}

type queueItem struct {
	id          wire.PackageID
	reliability wire.Reliability
	peers       wire.Peers
	data        []byte
	timing      timing
	heapIx      int
}

func (q *Queue) push(id wire.PackageID, reliability wire.Reliability, peers wire.Peers, data []byte, now time.Time) {
	cp := make([]byte, len(data))
	copy(cp, data)
	item := &queueItem{id: id, reliability: reliability, peers: peers, data: cp, timing: newTiming(now)}
	q.index[id] = item
	heap.Push(&q.items, item)
}

func (q *Queue) resolve(id wire.PackageID) {
	item, ok := q.index[id]
	if !ok {
		return
	}
	heap.Remove(&q.items, item.heapIx)
	delete(q.index, id)
}

// reschedule returns the next datagram due for retransmission, or
// (nil, _, _, nil) if none are due yet. A RescheduleError is returned (and
// the datagram dropped) once its attempts are exhausted.
func (q *Queue) reschedule(now time.Time) ([]byte, wire.PackageID, wire.Reliability, wire.Peers, error) {
	if len(q.items) == 0 {
		return nil, 0, 0, 0, nil
	}
	top := q.items[0]
	if !top.timing.expired(now) {
		return nil, 0, 0, 0, nil
	}
	next, ok := top.timing.another(now)
	if !ok {
		delete(q.index, top.id)
		heap.Remove(&q.items, top.heapIx)
		return nil, top.id, top.reliability, top.peers, &RescheduleError{ID: top.id}
	}
	top.timing = next
	heap.Fix(&q.items, top.heapIx)
	return top.data, top.id, top.reliability, top.peers, nil
}

// Pending reports whether any datagram is still awaiting confirmation,
// satisfying the Entry interface used by Book's idle-cleanup pass.
func (q *Queue) Pending() bool {
	return len(q.items) > 0
}

type queueHeap []*queueItem

func (h queueHeap) Len() int { return len(h) }
func (h queueHeap) Less(i, j int) bool {
	if !h[i].timing.expiration.Equal(h[j].timing.expiration) {
		return h[i].timing.expiration.Before(h[j].timing.expiration)
	}
	return h[i].timing.attempt < h[j].timing.attempt
}
func (h queueHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIx = i
	h[j].heapIx = j
}
func (h *queueHeap) Push(x any) {
	item := x.(*queueItem)
	item.heapIx = len(*h)
	*h = append(*h, item)
}
func (h *queueHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// timing tracks the retransmission schedule of a single datagram:
// randomized exponential backoff starting at StartBackoff, capped at
// MaxTries attempts.
type timing struct {
	attempt    uint8
	expiration time.Time
}

func newTiming(now time.Time) timing {
	return timing{attempt: 0, expiration: schedule(0, now)}
}

func (t timing) expired(now time.Time) bool {
	return !t.expiration.After(now)
}

func (t timing) another(now time.Time) (timing, bool) {
	if t.attempt == MaxTries {
		return timing{}, false
	}
	attempt := t.attempt + 1
	return timing{attempt: attempt, expiration: schedule(attempt, now)}, true
}

func schedule(attempt uint8, now time.Time) time.Time {
	millis := jitter(backoffMillis(attempt))
	return now.Add(time.Duration(millis) * time.Millisecond)
}

func backoffMillis(attempt uint8) int64 {
	return int64(StartBackoff/time.Millisecond) << attempt
}

// jitter spreads the backoff over [millis*3/4, millis*5/4] to avoid
// synchronized retransmission storms across peers.
func jitter(millis int64) int64 {
	if millis <= 0 {
		return 0
	}
	half := millis / 2
	return millis + rand.Int63n(half+1) - millis/4
}
