// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides the fork-join primitive used to split the
// objective dimension of a statistic across threads.
//
// Work is always divided into contiguous, statically sized ranges, one per
// thread. Ranges never overlap, so each thread owns a disjoint slice of any
// shared output buffer and no locking is needed.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	// Reuse pool across many computations
//	for _, mat := range matrices {
//	    workerpool.Run(pool, mat.NRow(), 4, func(thread, start, length int) {
//	        processRows(start, length)
//	    })
//	}
package workerpool

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// ErrPoolClosed is returned by Submit once Close has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan func()
	mu         sync.RWMutex
	closed     atomic.Bool
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan func(), numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for fn := range p.workC {
		fn()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Submit queues fn for execution by one of the workers. It returns
// ErrPoolClosed if the pool has been closed.
func (p *Pool) Submit(fn func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed.Load() {
		return ErrPoolClosed
	}
	p.workC <- fn
	return nil
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed.Swap(true) {
		return
	}
	close(p.workC)
}

// ParallelFor executes fn over [0, n) split into one contiguous range per
// worker. Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
// A closed pool falls back to running fn sequentially.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	Run(p, n, p.numWorkers, func(_, start, length int) {
		fn(start, start+length)
	})
}
