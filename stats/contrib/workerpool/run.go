// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"fmt"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Executor runs submitted tasks asynchronously. Both *Pool and
// *ants.Pool satisfy it.
type Executor interface {
	Submit(task func()) error
}

// TaskPanic carries a panic raised inside a worker back to the caller of Run.
type TaskPanic struct {
	Thread int
	Value  any
	Stack  []byte
}

func (p *TaskPanic) Error() string {
	return fmt.Sprintf("workerpool: thread %d panicked: %v\n%s", p.Thread, p.Value, p.Stack)
}

// Unwrap returns the panic value if it was an error.
func (p *TaskPanic) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

// Run splits [0, n) with Partitions and invokes fn once per range with the
// range's thread id, start and length. All invocations have returned by the
// time Run returns.
//
// A single range runs on the calling goroutine. Otherwise ranges are handed
// to exec, or to freshly spawned goroutines when exec is nil. A range whose
// submission is rejected runs on the calling goroutine instead.
//
// If any invocation panics, Run waits for the others and then panics with a
// *TaskPanic describing the first failure.
func Run(exec Executor, n, threads int, fn func(thread, start, length int)) {
	ranges := Partitions(n, threads)
	if len(ranges) == 0 {
		return
	}
	if len(ranges) == 1 {
		fn(0, ranges[0].Start, ranges[0].Length)
		return
	}

	if exec == nil {
		var g errgroup.Group
		for _, r := range ranges {
			g.Go(func() error {
				if p := protect(r, fn); p != nil {
					return p
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			panic(err)
		}
		return
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr *TaskPanic
	)
	record := func(err *TaskPanic) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(len(ranges))
	for _, r := range ranges {
		task := func() {
			defer wg.Done()
			record(protect(r, fn))
		}
		if err := exec.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	if firstErr != nil {
		panic(firstErr)
	}
}

// protect runs fn over r and converts a panic into a *TaskPanic.
func protect(r Range, fn func(thread, start, length int)) (err *TaskPanic) {
	defer func() {
		if v := recover(); v != nil {
			err = &TaskPanic{Thread: r.Thread, Value: v, Stack: debug.Stack()}
		}
	}()
	fn(r.Thread, r.Start, r.Length)
	return nil
}
