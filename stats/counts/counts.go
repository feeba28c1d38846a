// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package counts counts the values in each row or column that satisfy a
// predicate, with zero and NaN counts as ready-made specializations.
package counts

import (
	"github.com/ajroetker/go-dimstats/matrix"
	"github.com/ajroetker/go-dimstats/stats"
)

// Apply writes into output the number of values in every row (if row is
// true) or column of mat for which condition returns true. For sparse
// matrices condition is evaluated once at zero and the result applied to
// all structural zeros.
func Apply[O, T stats.Number](row bool, mat matrix.Matrix[T], output []O, opt stats.Options, condition func(T) bool) {
	dim := matrix.Extent(mat, row)
	otherdim := matrix.Extent(mat, !row)
	direct := mat.PreferRows() == row
	stats.LogDispatch(opt, "counts", row, mat.Sparse(), direct)

	countZero := condition(0)

	switch {
	case mat.Sparse() && direct:
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveSparse(mat, row, start, length, matrix.ExtractOptions{OmitIndex: true})
			vbuffer := make([]T, otherdim)
			for x := range length {
				rng := ext.Fetch(vbuffer, nil)
				var target O
				for _, v := range rng.Value {
					if condition(v) {
						target++
					}
				}
				if countZero {
					target += O(otherdim - rng.Number())
				}
				output[start+x] = target
			}
		})

	case mat.Sparse():
		stats.Parallelize(opt, dim, func(thread, start, length int) {
			ext := mat.SparseExtractor(!row, 0, otherdim, start, length, matrix.ExtractOptions{UnorderedIndex: true})
			vbuffer := make([]T, length)
			ibuffer := make([]int, length)

			local := stats.NewLocalOutputBuffer(thread, start, length, output, 0)
			counts := local.Data()
			nonzero := make([]int, length)
			for range otherdim {
				rng := ext.Fetch(vbuffer, ibuffer)
				for k, v := range rng.Value {
					i := rng.Index[k] - start
					if condition(v) {
						counts[i]++
					}
					nonzero[i]++
				}
			}
			if countZero {
				for i, nz := range nonzero {
					counts[i] += O(otherdim - nz)
				}
			}
			local.Transfer()
		})

	case direct:
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveDense(mat, row, start, length)
			buffer := make([]T, otherdim)
			for x := range length {
				var target O
				for _, v := range ext.Fetch(buffer) {
					if condition(v) {
						target++
					}
				}
				output[start+x] = target
			}
		})

	default:
		stats.Parallelize(opt, dim, func(thread, start, length int) {
			ext := mat.DenseExtractor(!row, 0, otherdim, start, length)
			buffer := make([]T, length)

			local := stats.NewLocalOutputBuffer(thread, start, length, output, 0)
			counts := local.Data()
			for range otherdim {
				for i, v := range ext.Fetch(buffer) {
					if condition(v) {
						counts[i]++
					}
				}
			}
			local.Transfer()
		})
	}
}

func isZero[T stats.Number](v T) bool {
	return v == 0
}

// Zeros counts the zeros in each row or column.
func Zeros[O, T stats.Number](row bool, mat matrix.Matrix[T], output []O, opt stats.Options) {
	Apply(row, mat, output, opt, isZero[T])
}

// NaNs counts the NaNs in each row or column. Integer matrices always
// report zero.
func NaNs[O, T stats.Number](row bool, mat matrix.Matrix[T], output []O, opt stats.Options) {
	if !stats.SupportsNaN[T]() {
		clear(output[:matrix.Extent(mat, row)])
		return
	}
	Apply(row, mat, output, opt, stats.IsNaN[T])
}

// ZerosByRow returns the number of zeros in each row.
func ZerosByRow[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []int {
	output := make([]int, mat.NRow())
	Zeros(true, mat, output, opt)
	return output
}

// ZerosByColumn returns the number of zeros in each column.
func ZerosByColumn[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []int {
	output := make([]int, mat.NCol())
	Zeros(false, mat, output, opt)
	return output
}

// NaNsByRow returns the number of NaNs in each row.
func NaNsByRow[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []int {
	output := make([]int, mat.NRow())
	NaNs(true, mat, output, opt)
	return output
}

// NaNsByColumn returns the number of NaNs in each column.
func NaNsByColumn[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []int {
	output := make([]int, mat.NCol())
	NaNs(false, mat, output, opt)
	return output
}
