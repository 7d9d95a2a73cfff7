// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package sched

import (
	"context"
	"sync"
	"time"

	"github.com/vanguard-rts/core/log"
)

// Runner drives a Scheduler on a fixed-rate ticker until stopped.
type Runner struct {
	scheduler *Scheduler
	interval  time.Duration
	log       log.Logger

	mu       sync.Mutex
	running  bool
	shutdown chan struct{}
	stopped  chan struct{}
	lastErr  error
}

// NewRunner returns a Runner that ticks scheduler every interval, logging
// through logger.
func NewRunner(scheduler *Scheduler, interval time.Duration, logger log.Logger) *Runner {
	return &Runner{scheduler: scheduler, interval: interval, log: logger}
}

// Start begins the tick loop in a background goroutine. Calling Start on an
// already-running Runner is a no-op.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.shutdown = make(chan struct{})
	r.stopped = make(chan struct{})

	r.log.Info("tick scheduler started", "interval", r.interval)
	go r.loop(ctx)
}

// Stop halts the tick loop and blocks until the in-flight tick, if any,
// finishes. A no-op if the Runner isn't running.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	shutdown := r.shutdown
	stopped := r.stopped
	r.mu.Unlock()

	close(shutdown)
	<-stopped
	r.log.Info("tick scheduler stopped")
}

// LastError returns the error (if any) that stopped the most recent tick
// from completing cleanly. A failed tick does not stop the Runner: the next
// scheduled tick still fires.
func (r *Runner) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

func (r *Runner) loop(ctx context.Context) {
	defer close(r.stopped)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.shutdown:
			return
		case <-ticker.C:
			if err := r.scheduler.Tick(r.interval); err != nil {
				r.log.Error("tick failed", "error", err)
				r.mu.Lock()
				r.lastErr = err
				r.mu.Unlock()
			}
		}
	}
}
