// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package navtask

import (
	"context"
	"sync"

	"github.com/vanguard-rts/core/nav"
	"github.com/vanguard-rts/core/spatial"
	"github.com/vanguard-rts/core/world"
)

// Result is the outcome of one path request: the waypoints from Entity's
// requested destination back to its source (destination first, matching
// nav.PathFinder.FindPath's convention), or Found false if no path exists.
type Result struct {
	Entity world.Entity
	Path   []spatial.Vec2
	Found  bool
}

// inflight identifies one outstanding request for an entity. Identity, not
// value, is what matters: it lets a completed goroutine tell whether it is
// still the entity's current request or has since been superseded, without
// racing on its own context's cancellation state.
type inflight struct {
	cancel context.CancelFunc
}

// PathTable runs one path-finding computation per entity at a time: a new
// Request for an entity already in flight cancels and replaces the old one,
// so a unit that changes its mind about where to go never has a stale
// result land after its newer request.
type PathTable struct {
	mu      sync.Mutex
	active  map[world.Entity]*inflight
	results chan Result
}

// NewPathTable returns a table whose completed results are delivered on a
// channel buffered to size resultBuffer.
func NewPathTable(resultBuffer int) *PathTable {
	return &PathTable{
		active:  make(map[world.Entity]*inflight),
		results: make(chan Result, resultBuffer),
	}
}

// Results is the channel a consumer drains once per tick (e.g. during
// PostMovement) to apply newly computed paths to their entities.
func (t *PathTable) Results() <-chan Result {
	return t.results
}

// Request supersedes any in-flight request for entity and starts a new one
// against finder, off the calling goroutine. ctx bounds the table's own
// lifetime (e.g. the server's run context), not the individual request.
func (t *PathTable) Request(ctx context.Context, finder *nav.PathFinder, entity world.Entity, from, to spatial.Vec2) {
	reqCtx, cancel := context.WithCancel(ctx)
	self := &inflight{cancel: cancel}

	t.mu.Lock()
	if prev, ok := t.active[entity]; ok {
		prev.cancel()
	}
	t.active[entity] = self
	t.mu.Unlock()

	go t.run(reqCtx, finder, entity, from, to, self)
}

func (t *PathTable) run(ctx context.Context, finder *nav.PathFinder, entity world.Entity, from, to spatial.Vec2, self *inflight) {
	defer self.cancel()

	path, found := finder.FindPath(from, to)

	t.mu.Lock()
	current, stillActive := t.active[entity]
	if stillActive && current == self {
		delete(t.active, entity)
	}
	t.mu.Unlock()
	if !stillActive || current != self {
		return
	}

	select {
	case t.results <- Result{Entity: entity, Path: path, Found: found}:
	case <-ctx.Done():
	}
}

// Cancel drops any in-flight request for entity without delivering a
// result, used when the entity is despawned or removed from the world.
func (t *PathTable) Cancel(entity world.Entity) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.active[entity]; ok {
		prev.cancel()
		delete(t.active, entity)
	}
}
