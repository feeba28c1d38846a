// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalOutputBufferPrimary(t *testing.T) {
	out := make([]int, 10)
	buf := NewLocalOutputBuffer(0, 5, 3, out, 1)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 1, 1, 0, 0}, out)

	buf.Data()[0] = 3
	assert.Equal(t, 3, out[5], "thread 0 writes through")

	buf.Transfer()
	assert.Equal(t, []int{0, 0, 0, 0, 0, 3, 1, 1, 0, 0}, out)
}

func TestLocalOutputBufferPrivate(t *testing.T) {
	out := make([]int, 10)
	buf := NewLocalOutputBuffer(1, 5, 3, out, 2)
	assert.Len(t, buf.Data(), 3)

	buf.Data()[0] = 3
	assert.Equal(t, make([]int, 10), out, "private buffer not yet copied")

	buf.Transfer()
	assert.Equal(t, []int{0, 0, 0, 0, 0, 3, 2, 2, 0, 0}, out)
}

func TestLocalOutputBufferCapacity(t *testing.T) {
	out := make([]float64, 4)
	buf := NewLocalOutputBuffer(2, 1, 2, out, 0)
	// Appending must not spill into the padding.
	assert.Equal(t, 2, cap(buf.Data()))
}

func TestLocalOutputBuffers(t *testing.T) {
	for _, thread := range []int{0, 1} {
		outs := make([][]int, 10)
		for i := range outs {
			outs[i] = make([]int, 10)
		}
		bufs := NewLocalOutputBuffers(thread, len(outs), 5, 3, func(i int) []int { return outs[i] }, 1)
		assert.Equal(t, 10, bufs.Len())

		for i := range outs {
			bufs.Data(i)[0] = 3
		}
		bufs.Transfer()
		for i := range outs {
			assert.Equal(t, []int{0, 0, 0, 0, 0, 3, 1, 1, 0, 0}, outs[i], "thread %d output %d", thread, i)
		}
	}
}
