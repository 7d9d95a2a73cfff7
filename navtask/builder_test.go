// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package navtask

import (
	"context"
	"testing"
	"time"

	"github.com/vanguard-rts/core/log"
	"github.com/vanguard-rts/core/nav"
	"github.com/vanguard-rts/core/spatial"
)

func bounds100() spatial.AABB {
	return spatial.AABB{Min: spatial.Vec2{X: 0, Y: 0}, Max: spatial.Vec2{X: 100, Y: 100}}
}

func TestBuilderCurrentNeverNil(t *testing.T) {
	b := NewBuilder(bounds100(), func() []nav.ExclusionArea { return nil }, log.NewNoOpLogger())
	if b.Current() == nil {
		t.Fatal("expected an initial path finder before Run ever ticks")
	}
}

func TestBuilderRebuildsOnInvalidate(t *testing.T) {
	var exclusions []nav.ExclusionArea
	b := NewBuilder(bounds100(), func() []nav.ExclusionArea { return exclusions }, log.NewNoOpLogger())
	initial := b.Current()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- b.Run(ctx, 5*time.Millisecond) }()

	exclusions = []nav.ExclusionArea{
		nav.NewExclusionArea([]spatial.Vec2{
			{X: 40, Y: 40}, {X: 60, Y: 40}, {X: 60, Y: 60}, {X: 40, Y: 60},
		}),
	}
	b.Invalidate()

	deadline := time.After(400 * time.Millisecond)
	for b.Current() == initial {
		select {
		case <-deadline:
			t.Fatal("expected Run to rebuild the path finder after Invalidate")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestBuilderSkipsRebuildWhenNotInvalidated(t *testing.T) {
	b := NewBuilder(bounds100(), func() []nav.ExclusionArea { return nil }, log.NewNoOpLogger())
	// Drain the initial dirty flag set by NewBuilder without running a real
	// rebuild, so the assertion below only observes ticks with nothing to do.
	b.dirty.Set(false)
	initial := b.Current()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = b.Run(ctx, 5*time.Millisecond)

	if b.Current() != initial {
		t.Fatal("expected no rebuild without an intervening Invalidate")
	}
}
