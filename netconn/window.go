// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package netconn

import (
	"github.com/vanguard-rts/core/wire"
)

// ReceivedWindow deduplicates incoming reliable datagrams and, for
// SemiOrdered traffic, enforces monotonically non-decreasing delivery to
// the application.
//
// seen holds every reliable ID received until Forget drops it; an ID still
// in seen is rejected as a duplicate.
type ReceivedWindow struct {
	seen          map[wire.PackageID]struct{}
	lastDelivered wire.PackageID
	hasDelivered  bool
}

// NewReceivedWindow returns an empty dedup window.
func NewReceivedWindow() *ReceivedWindow {
	return &ReceivedWindow{seen: make(map[wire.PackageID]struct{})}
}

// Accept reports whether a reliable datagram with the given id and
// reliability should be delivered to the application now, updating window
// state as a side effect. Unreliable datagrams are never deduplicated and
// always accepted.
func (w *ReceivedWindow) Accept(id wire.PackageID, reliability wire.Reliability) bool {
	if !reliability.IsReliable() {
		return true
	}

	if _, dup := w.seen[id]; dup {
		return false
	}
	w.seen[id] = struct{}{}

	if !reliability.IsOrdered() {
		return true
	}

	if !w.hasDelivered || id.Compare(w.lastDelivered) > 0 {
		w.lastDelivered = id
		w.hasDelivered = true
		return true
	}
	// Older than the last delivered SemiOrdered id: already superseded.
	return false
}

// Forget drops dedup bookkeeping for ids outside the live retransmission
// window, bounding memory growth. Callers pass the set of ids still
// eligible to arrive (e.g. those not yet fully acknowledged upstream).
func (w *ReceivedWindow) Forget(keep map[wire.PackageID]struct{}) {
	for id := range w.seen {
		if _, ok := keep[id]; !ok {
			delete(w.seen, id)
		}
	}
}
