// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package stats

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// cacheLineBytes is the size of the padding placed around private buffers.
const cacheLineBytes = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// LocalOutputBuffer is a thread-local view of output[start:start+length].
//
// Thread 0 writes straight into the shared output. Every other thread gets a
// private, cache-line padded buffer that is copied back by Transfer, so that
// threads accumulating into neighbouring ranges never share a cache line
// while they work.
type LocalOutputBuffer[O Number] struct {
	output []O
	data   []O
	owned  bool
}

// NewLocalOutputBuffer returns the buffer for thread covering
// output[start:start+length], with every element initialised to fill.
func NewLocalOutputBuffer[O Number](thread, start, length int, output []O, fill O) *LocalOutputBuffer[O] {
	b := &LocalOutputBuffer[O]{output: output[start : start+length]}
	if thread == 0 {
		b.data = b.output
	} else {
		b.data = paddedSlice[O](length)
		b.owned = true
	}
	for i := range b.data {
		b.data[i] = fill
	}
	return b
}

// Data returns the slice the thread should write into. Index 0 corresponds
// to output[start].
func (b *LocalOutputBuffer[O]) Data() []O {
	return b.data
}

// Transfer copies the private buffer into the shared output. It is a no-op
// for thread 0.
func (b *LocalOutputBuffer[O]) Transfer() {
	if b.owned {
		copy(b.output, b.data)
	}
}

// paddedSlice allocates length elements with at least one cache line of
// unused space on either side.
func paddedSlice[O Number](length int) []O {
	var zero O
	pad := cacheLineBytes / int(unsafe.Sizeof(zero))
	if pad < 1 {
		pad = 1
	}
	backing := make([]O, pad+length+pad)
	return backing[pad : pad+length : pad+length]
}

// LocalOutputBuffers is LocalOutputBuffer for a family of outputs sharing the
// same range, e.g. one output per group.
type LocalOutputBuffers[O Number] struct {
	buffers []*LocalOutputBuffer[O]
}

// NewLocalOutputBuffers creates num buffers for thread, where fetch(i)
// returns the i-th shared output.
func NewLocalOutputBuffers[O Number](thread, num, start, length int, fetch func(i int) []O, fill O) *LocalOutputBuffers[O] {
	b := &LocalOutputBuffers[O]{buffers: make([]*LocalOutputBuffer[O], num)}
	for i := range b.buffers {
		b.buffers[i] = NewLocalOutputBuffer(thread, start, length, fetch(i), fill)
	}
	return b
}

// Len returns the number of outputs.
func (b *LocalOutputBuffers[O]) Len() int {
	return len(b.buffers)
}

// Data returns the thread's view of the i-th output.
func (b *LocalOutputBuffers[O]) Data(i int) []O {
	return b.buffers[i].Data()
}

// Transfer copies every private buffer back.
func (b *LocalOutputBuffers[O]) Transfer() {
	for _, buf := range b.buffers {
		buf.Transfer()
	}
}
