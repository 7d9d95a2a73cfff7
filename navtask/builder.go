// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package navtask runs the path finder's background maintenance: rebuilding
// the walkable triangulation whenever static obstacles change, and answering
// per-entity path requests without blocking the tick that issued them.
package navtask

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vanguard-rts/core/log"
	"github.com/vanguard-rts/core/nav"
	"github.com/vanguard-rts/core/spatial"
	"github.com/vanguard-rts/core/utils"
)

// ExclusionSource snapshots the current set of static-obstacle exclusion
// areas, read fresh every time the builder decides to rebuild.
type ExclusionSource func() []nav.ExclusionArea

// Builder owns the map's PathFinder and keeps it up to date in the
// background. Readers call Current at any time from any goroutine; Run
// drives the rebuild loop and must be started once, typically alongside the
// rest of the tick scheduler's background tasks.
type Builder struct {
	bounds  spatial.AABB
	source  ExclusionSource
	logger  log.Logger
	dirty   *utils.AtomicBool
	current *utils.Atomic[*nav.PathFinder]
	group   singleflight.Group
}

// NewBuilder returns a Builder with an initial obstacle-free triangulation
// already in place, marked dirty so the first Run tick rebuilds it against
// source's real exclusion areas.
func NewBuilder(bounds spatial.AABB, source ExclusionSource, logger log.Logger) *Builder {
	initial := nav.NewPathFinder(nav.Triangulate(bounds, nil))
	return &Builder{
		bounds:  bounds,
		source:  source,
		logger:  logger,
		dirty:   utils.NewAtomicBool(true),
		current: utils.NewAtomic[*nav.PathFinder](initial),
	}
}

// Invalidate marks the triangulation stale. It is safe to call from any
// goroutine, any number of times, while a rebuild is already in flight: the
// next Run tick after the in-flight rebuild completes will pick up a fresh
// obstacle snapshot.
func (b *Builder) Invalidate() {
	b.dirty.Set(true)
}

// Current returns the most recently completed PathFinder. Never nil.
func (b *Builder) Current() *nav.PathFinder {
	return b.current.Get()
}

// Run ticks every interval, rebuilding the triangulation in the background
// whenever Invalidate has fired since the last rebuild started. The dirty
// flag is cleared before the rebuild begins, not after, so an Invalidate
// call that lands mid-rebuild is never lost: it simply schedules another
// pass on the next tick.
func (b *Builder) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !b.dirty.Get() {
				continue
			}
			b.dirty.Set(false)
			go b.rebuild()
		}
	}
}

// rebuild recomputes the triangulation against a fresh exclusion-area
// snapshot. Concurrent calls (an Invalidate firing twice before the
// previous rebuild finishes its snapshot read) coalesce onto a single
// in-flight computation via singleflight, rather than racing two
// triangulations against each other. A call whose result was shared may
// have joined a rebuild that read its snapshot before the Invalidate that
// scheduled the call, so it marks the builder dirty again and the next Run
// tick rebuilds.
func (b *Builder) rebuild() {
	_, _, shared := b.group.Do("rebuild", func() (any, error) {
		exclusions := b.source()
		merged := nav.BuildExclusions(exclusions)
		triangles := nav.Triangulate(b.bounds, merged)
		b.current.Set(nav.NewPathFinder(triangles))
		b.logger.Info("path finder rebuilt", "exclusions", len(merged), "triangles", len(triangles))
		return nil, nil
	})
	if shared {
		b.dirty.Set(true)
	}
}
