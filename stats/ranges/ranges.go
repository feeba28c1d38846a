// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package ranges computes row and column minima and maxima.
//
// A vector with no usable values (empty, or all NaN when skipping NaNs)
// reports a placeholder that never beats a real value: +Inf for minima and
// -Inf for maxima, or the largest and lowest representable values for
// integer types.
package ranges

import (
	"github.com/ajroetker/go-dimstats/matrix"
	"github.com/ajroetker/go-dimstats/stats"
)

// Placeholder returns the result reported for a vector without usable
// values.
func Placeholder[T stats.Number](minimum bool) T {
	if inf, ok := stats.Infinity[T](minimum); ok {
		return inf
	}
	if minimum {
		return stats.MaxValue[T]()
	}
	return stats.LowestValue[T]()
}

func isBetter[T stats.Number](minimum bool, candidate, current T) bool {
	if minimum {
		return candidate < current
	}
	return candidate > current
}

// Direct returns the minimum (or maximum) of values.
func Direct[T stats.Number](values []T, minimum, skipNaN bool) T {
	return stats.NanableIfElseWithValue[T](skipNaN, func() T {
		// NaN never compares better, so it never replaces the placeholder.
		best := Placeholder[T](minimum)
		for _, v := range values {
			if isBetter(minimum, v, best) {
				best = v
			}
		}
		return best
	}, func() T {
		if len(values) == 0 {
			return Placeholder[T](minimum)
		}
		best := values[0]
		for _, v := range values[1:] {
			if isBetter(minimum, v, best) {
				best = v
			}
		}
		return best
	})
}

// DirectSparse returns the minimum (or maximum) of a sparse vector of length
// numAll whose structural non-zeros are values.
func DirectSparse[T stats.Number](values []T, numAll int, minimum, skipNaN bool) T {
	if len(values) > 0 {
		best := Direct(values, minimum, skipNaN)
		if numAll > len(values) && isBetter(minimum, 0, best) {
			best = 0
		}
		return best
	}
	if numAll > 0 {
		return 0
	}
	return Placeholder[T](minimum)
}

// RunningDense tracks the minimum (or maximum) of each objective vector
// across a stream of dense observed vectors.
type RunningDense[O, T stats.Number] struct {
	store   []O
	minimum bool
	skipNaN bool
	init    bool
}

// NewRunningDense writes its results into store.
func NewRunningDense[O, T stats.Number](store []O, minimum, skipNaN bool) *RunningDense[O, T] {
	return &RunningDense[O, T]{store: store, minimum: minimum, skipNaN: skipNaN, init: true}
}

// Add folds in one observed vector.
func (r *RunningDense[O, T]) Add(values []T) {
	store := r.store[:len(values)]
	if r.init {
		r.init = false
		placeholder := O(Placeholder[T](r.minimum))
		stats.NanableIfElse[T](r.skipNaN, func() {
			for i, v := range values {
				if stats.IsNaN(v) {
					store[i] = placeholder
				} else {
					store[i] = O(v)
				}
			}
		}, func() {
			for i, v := range values {
				store[i] = O(v)
			}
		})
		return
	}

	for i, v := range values {
		if val := O(v); isBetter(r.minimum, val, store[i]) {
			store[i] = val
		}
	}
}

// Finish fills in the placeholder if no vector was added.
func (r *RunningDense[O, T]) Finish() {
	if r.init {
		fill(r.store, O(Placeholder[T](r.minimum)))
	}
}

// RunningSparse is RunningDense for sparse observed vectors, whose indices
// are offset by subtract.
type RunningSparse[O, T stats.Number] struct {
	store    []O
	nonzero  []int
	count    int
	minimum  bool
	subtract int
}

// NewRunningSparse writes its results into store. NaNs never beat the
// current extreme, so skipNaN needs no extra work here.
func NewRunningSparse[O, T stats.Number](store []O, minimum, skipNaN bool, subtract int) *RunningSparse[O, T] {
	return &RunningSparse[O, T]{store: store, minimum: minimum, subtract: subtract}
}

// Add folds in the non-zeros of one observed vector.
func (r *RunningSparse[O, T]) Add(values []T, indices []int) {
	if r.count == 0 {
		r.nonzero = make([]int, len(r.store))
		fill(r.store, O(Placeholder[T](r.minimum)))
	}
	for k, v := range values {
		i := indices[k] - r.subtract
		if val := O(v); isBetter(r.minimum, val, r.store[i]) {
			r.store[i] = val
		}
		r.nonzero[i]++
	}
	r.count++
}

// Finish folds in the structural zeros of objective vectors that were
// missing from at least one observed vector.
func (r *RunningSparse[O, T]) Finish() {
	if r.count == 0 {
		fill(r.store, O(Placeholder[T](r.minimum)))
		return
	}
	for i, nz := range r.nonzero {
		if r.count > nz && isBetter(r.minimum, 0, r.store[i]) {
			r.store[i] = 0
		}
	}
}

func fill[O stats.Number](s []O, v O) {
	for i := range s {
		s[i] = v
	}
}

// extreme pairs a requested destination with its direction.
type extreme[O stats.Number] struct {
	dest    []O
	minimum bool
}

// Apply writes the minimum and maximum of every row (if row is true) or
// column of mat into minOut and maxOut. Either may be nil to skip that
// extreme.
func Apply[O, T stats.Number](row bool, mat matrix.Matrix[T], minOut, maxOut []O, opt stats.Options) {
	dim := matrix.Extent(mat, row)
	otherdim := matrix.Extent(mat, !row)
	direct := mat.PreferRows() == row
	stats.LogDispatch(opt, "ranges", row, mat.Sparse(), direct)

	var outputs []extreme[O]
	if minOut != nil {
		outputs = append(outputs, extreme[O]{minOut, true})
	}
	if maxOut != nil {
		outputs = append(outputs, extreme[O]{maxOut, false})
	}
	if len(outputs) == 0 {
		return
	}

	switch {
	case mat.Sparse() && direct:
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveSparse(mat, row, start, length, matrix.ExtractOptions{OmitIndex: true})
			vbuffer := make([]T, otherdim)
			for x := range length {
				rng := ext.Fetch(vbuffer, nil)
				for _, out := range outputs {
					out.dest[start+x] = O(DirectSparse(rng.Value, otherdim, out.minimum, opt.SkipNaN))
				}
			}
		})

	case mat.Sparse():
		stats.Parallelize(opt, dim, func(thread, start, length int) {
			ext := mat.SparseExtractor(!row, 0, otherdim, start, length, matrix.ExtractOptions{UnorderedIndex: true})
			vbuffer := make([]T, length)
			ibuffer := make([]int, length)

			locals := stats.NewLocalOutputBuffers(thread, len(outputs), start, length, func(i int) []O { return outputs[i].dest }, 0)
			runners := make([]*RunningSparse[O, T], len(outputs))
			for i, out := range outputs {
				runners[i] = NewRunningSparse[O, T](locals.Data(i), out.minimum, opt.SkipNaN, start)
			}
			for range otherdim {
				rng := ext.Fetch(vbuffer, ibuffer)
				for _, r := range runners {
					r.Add(rng.Value, rng.Index)
				}
			}
			for _, r := range runners {
				r.Finish()
			}
			locals.Transfer()
		})

	case direct:
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveDense(mat, row, start, length)
			buffer := make([]T, otherdim)
			for x := range length {
				values := ext.Fetch(buffer)
				for _, out := range outputs {
					out.dest[start+x] = O(Direct(values, out.minimum, opt.SkipNaN))
				}
			}
		})

	default:
		stats.Parallelize(opt, dim, func(thread, start, length int) {
			ext := mat.DenseExtractor(!row, 0, otherdim, start, length)
			buffer := make([]T, length)

			locals := stats.NewLocalOutputBuffers(thread, len(outputs), start, length, func(i int) []O { return outputs[i].dest }, 0)
			runners := make([]*RunningDense[O, T], len(outputs))
			for i, out := range outputs {
				runners[i] = NewRunningDense[O, T](locals.Data(i), out.minimum, opt.SkipNaN)
			}
			for range otherdim {
				values := ext.Fetch(buffer)
				for _, r := range runners {
					r.Add(values)
				}
			}
			for _, r := range runners {
				r.Finish()
			}
			locals.Transfer()
		})
	}
}

// ByRow returns the minimum and maximum of each row.
func ByRow[T stats.Number](mat matrix.Matrix[T], opt stats.Options) (mins, maxs []T) {
	mins, maxs = make([]T, mat.NRow()), make([]T, mat.NRow())
	Apply(true, mat, mins, maxs, opt)
	return mins, maxs
}

// ByColumn returns the minimum and maximum of each column.
func ByColumn[T stats.Number](mat matrix.Matrix[T], opt stats.Options) (mins, maxs []T) {
	mins, maxs = make([]T, mat.NCol()), make([]T, mat.NCol())
	Apply(false, mat, mins, maxs, opt)
	return mins, maxs
}

// MinsByRow returns the minimum of each row.
func MinsByRow[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []T {
	mins := make([]T, mat.NRow())
	Apply(true, mat, mins, nil, opt)
	return mins
}

// MaxsByRow returns the maximum of each row.
func MaxsByRow[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []T {
	maxs := make([]T, mat.NRow())
	Apply(true, mat, nil, maxs, opt)
	return maxs
}

// MinsByColumn returns the minimum of each column.
func MinsByColumn[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []T {
	mins := make([]T, mat.NCol())
	Apply(false, mat, mins, nil, opt)
	return mins
}

// MaxsByColumn returns the maximum of each column.
func MaxsByColumn[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []T {
	maxs := make([]T, mat.NCol())
	Apply(false, mat, nil, maxs, opt)
	return maxs
}
