// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sched

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestBatchGroupsDisjointSystemsTogether(t *testing.T) {
	a := System{Name: "a", Writes: []Component{"position"}}
	b := System{Name: "b", Writes: []Component{"health"}}
	c := System{Name: "c", Reads: []Component{"position"}}

	batches := batch([]System{a, b, c})
	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2 (a disjoint from b, c conflicts with a)", len(batches))
	}
	if len(batches[0]) != 2 || batches[0][0].Name != "a" || batches[0][1].Name != "b" {
		t.Fatalf("first batch = %v, want [a, b]", names(batches[0]))
	}
	if len(batches[1]) != 1 || batches[1][0].Name != "c" {
		t.Fatalf("second batch = %v, want [c]", names(batches[1]))
	}
}

func names(systems []System) []string {
	out := make([]string, len(systems))
	for i, s := range systems {
		out[i] = s.Name
	}
	return out
}

func TestTickRunsPhasesInOrder(t *testing.T) {
	s := New()
	var mu sync.Mutex
	var order []string
	record := func(name string) func(time.Duration) error {
		return func(time.Duration) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}
	}

	s.Register(Network, System{Name: "flush", Run: record("flush")})
	s.Register(Input, System{Name: "apply-orders", Run: record("apply-orders")})
	s.Register(Movement, System{Name: "integrate", Run: record("integrate")})
	s.Register(PostMovement, System{Name: "despawn", Run: record("despawn")})
	s.Register(PreMovement, System{Name: "target", Run: record("target")})

	if err := s.Tick(50 * time.Millisecond); err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}

	want := []string{"apply-orders", "target", "integrate", "despawn", "flush"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestTickRunsDisjointSystemsConcurrently(t *testing.T) {
	s := New()
	release := make(chan struct{})
	started := make(chan struct{}, 2)

	s.Register(Movement, System{
		Name:   "hrvo",
		Writes: []Component{"velocity"},
		Run: func(time.Duration) error {
			started <- struct{}{}
			<-release
			return nil
		},
	})
	s.Register(Movement, System{
		Name:   "repulsion",
		Writes: []Component{"repulsion-bound"},
		Run: func(time.Duration) error {
			started <- struct{}{}
			<-release
			return nil
		},
	})

	done := make(chan error, 1)
	go func() { done <- s.Tick(time.Millisecond) }()

	// both disjoint systems must start before either can finish, proving
	// they ran concurrently rather than one blocking the other.
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("first system never started")
	}
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("second system never started; disjoint systems did not run concurrently")
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("Tick returned error: %v", err)
	}
}

func TestTickStopsAtFirstFailingPhase(t *testing.T) {
	s := New()
	ran := false
	s.Register(Input, System{Name: "bad", Run: func(time.Duration) error { return errors.New("boom") }})
	s.Register(Movement, System{Name: "later", Run: func(time.Duration) error { ran = true; return nil }})

	err := s.Tick(time.Millisecond)
	if err == nil {
		t.Fatal("expected an error from the failing Input system")
	}
	if ran {
		t.Fatal("Movement phase should not run once an earlier phase fails")
	}
}
