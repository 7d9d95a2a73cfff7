// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vanguard-rts/core/log"
)

func TestRunnerTicksUntilStopped(t *testing.T) {
	s := New()
	var ticks int32
	s.Register(Input, System{Name: "count", Run: func(time.Duration) error {
		atomic.AddInt32(&ticks, 1)
		return nil
	}})

	runner := NewRunner(s, 5*time.Millisecond, log.NewNoOpLogger())
	ctx := context.Background()
	runner.Start(ctx)
	time.Sleep(60 * time.Millisecond)
	runner.Stop()

	if atomic.LoadInt32(&ticks) < 3 {
		t.Fatalf("expected several ticks in 60ms at a 5ms interval, got %d", ticks)
	}
	if runner.LastError() != nil {
		t.Fatalf("LastError = %v, want nil", runner.LastError())
	}
}

func TestRunnerRecordsLastErrorButKeepsRunning(t *testing.T) {
	s := New()
	var ticks int32
	s.Register(Input, System{Name: "always-fails", Run: func(time.Duration) error {
		atomic.AddInt32(&ticks, 1)
		return errFailingSystem
	}})

	runner := NewRunner(s, 5*time.Millisecond, log.NewNoOpLogger())
	runner.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	runner.Stop()

	if atomic.LoadInt32(&ticks) < 2 {
		t.Fatalf("a failing tick should not stop the runner from ticking again, got %d ticks", ticks)
	}
	if runner.LastError() == nil {
		t.Fatal("LastError should report the most recent tick failure")
	}
}

var errFailingSystem = errTestSystem("always fails")

type errTestSystem string

func (e errTestSystem) Error() string { return string(e) }
