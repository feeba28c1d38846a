// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package sums computes row and column sums.
//
// Values are accumulated with plain (uncompensated) addition in the output
// type O, so O should be float64 unless the inputs are known to be small.
package sums

import (
	"github.com/ajroetker/go-dimstats/matrix"
	"github.com/ajroetker/go-dimstats/stats"
)

// Direct returns the sum of values. NaNs are ignored if skipNaN is set. An
// empty slice sums to zero.
func Direct[O, T stats.Number](values []T, skipNaN bool) O {
	return stats.NanableIfElseWithValue[T](skipNaN, func() O {
		var sum O
		for _, v := range values {
			if !stats.IsNaN(v) {
				sum += O(v)
			}
		}
		return sum
	}, func() O {
		var sum O
		for _, v := range values {
			sum += O(v)
		}
		return sum
	})
}

// RunningDense accumulates sums for many objective vectors from a stream of
// dense observed vectors. Element i of each observed vector is added to
// sum[i].
type RunningDense[O, T stats.Number] struct {
	sum     []O
	skipNaN bool
}

// NewRunningDense accumulates into sum, which should be zeroed by the
// caller.
func NewRunningDense[O, T stats.Number](sum []O, skipNaN bool) *RunningDense[O, T] {
	return &RunningDense[O, T]{sum: sum, skipNaN: skipNaN}
}

// Add folds in one observed vector of len(sum) values.
func (r *RunningDense[O, T]) Add(values []T) {
	sum := r.sum[:len(values)]
	stats.NanableIfElse[T](r.skipNaN, func() {
		for i, v := range values {
			if !stats.IsNaN(v) {
				sum[i] += O(v)
			}
		}
	}, func() {
		for i, v := range values {
			sum[i] += O(v)
		}
	})
}

// RunningSparse is RunningDense for sparse observed vectors. Indices are
// global; subtract is the global index of sum[0], so that a thread can own a
// sub-range of the objective vectors.
type RunningSparse[O, T stats.Number] struct {
	sum      []O
	skipNaN  bool
	subtract int
}

// NewRunningSparse accumulates into sum, which should be zeroed by the
// caller.
func NewRunningSparse[O, T stats.Number](sum []O, skipNaN bool, subtract int) *RunningSparse[O, T] {
	return &RunningSparse[O, T]{sum: sum, skipNaN: skipNaN, subtract: subtract}
}

// Add folds in the non-zeros of one observed vector, in any index order.
func (r *RunningSparse[O, T]) Add(values []T, indices []int) {
	stats.NanableIfElse[T](r.skipNaN, func() {
		for k, v := range values {
			if !stats.IsNaN(v) {
				r.sum[indices[k]-r.subtract] += O(v)
			}
		}
	}, func() {
		for k, v := range values {
			r.sum[indices[k]-r.subtract] += O(v)
		}
	})
}

// Apply writes the sum of every row (if row is true) or column of mat into
// output, which must have one element per objective vector. Prior contents
// of output are ignored.
func Apply[O, T stats.Number](row bool, mat matrix.Matrix[T], output []O, opt stats.Options) {
	dim := matrix.Extent(mat, row)
	otherdim := matrix.Extent(mat, !row)
	direct := mat.PreferRows() == row
	stats.LogDispatch(opt, "sums", row, mat.Sparse(), direct)

	switch {
	case mat.Sparse() && direct:
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveSparse(mat, row, start, length, matrix.ExtractOptions{OmitIndex: true})
			vbuffer := make([]T, otherdim)
			for x := range length {
				rng := ext.Fetch(vbuffer, nil)
				output[start+x] = Direct[O](rng.Value, opt.SkipNaN)
			}
		})

	case mat.Sparse():
		stats.Parallelize(opt, dim, func(thread, start, length int) {
			ext := mat.SparseExtractor(!row, 0, otherdim, start, length, matrix.ExtractOptions{UnorderedIndex: true})
			vbuffer := make([]T, length)
			ibuffer := make([]int, length)

			local := stats.NewLocalOutputBuffer(thread, start, length, output, 0)
			runner := NewRunningSparse[O, T](local.Data(), opt.SkipNaN, start)
			for range otherdim {
				rng := ext.Fetch(vbuffer, ibuffer)
				runner.Add(rng.Value, rng.Index)
			}
			local.Transfer()
		})

	case direct:
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveDense(mat, row, start, length)
			buffer := make([]T, otherdim)
			for x := range length {
				output[start+x] = Direct[O](ext.Fetch(buffer), opt.SkipNaN)
			}
		})

	default:
		stats.Parallelize(opt, dim, func(thread, start, length int) {
			ext := mat.DenseExtractor(!row, 0, otherdim, start, length)
			buffer := make([]T, length)

			local := stats.NewLocalOutputBuffer(thread, start, length, output, 0)
			runner := NewRunningDense[O, T](local.Data(), opt.SkipNaN)
			for range otherdim {
				runner.Add(ext.Fetch(buffer))
			}
			local.Transfer()
		})
	}
}

// ByRow returns the sum of each row.
func ByRow[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []float64 {
	output := make([]float64, mat.NRow())
	Apply(true, mat, output, opt)
	return output
}

// ByColumn returns the sum of each column.
func ByColumn[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []float64 {
	output := make([]float64, mat.NCol())
	Apply(false, mat, output, opt)
	return output
}
