// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package variances computes row and column means and sample variances.
//
// Vectors extracted in their preferred direction use the two-pass
// algorithm. Otherwise each thread runs Welford's algorithm over its share of
// the objective vectors, folding structural zeros in at the end for sparse
// matrices.
//
// Summation is not compensated. Use float64 outputs.
package variances

import (
	"github.com/ajroetker/go-dimstats/matrix"
	"github.com/ajroetker/go-dimstats/stats"
)

// Direct returns the mean and sample variance of values. The mean is NaN if
// there are no usable values and the variance is NaN if there are fewer than
// two.
func Direct[O stats.Floats, T stats.Number](values []T, skipNaN bool) (mean, variance O) {
	return DirectSparse[O](values, len(values), skipNaN)
}

// DirectSparse returns the mean and sample variance of a sparse vector of
// length numAll whose structural non-zeros are values.
func DirectSparse[O stats.Floats, T stats.Number](values []T, numAll int, skipNaN bool) (mean, variance O) {
	lost := 0
	stats.NanableIfElse[T](skipNaN, func() {
		for _, v := range values {
			if stats.IsNaN(v) {
				lost++
				continue
			}
			mean += O(v)
		}
	}, func() {
		for _, v := range values {
			mean += O(v)
		}
	})
	count := numAll - lost
	mean /= O(count)

	stats.NanableIfElse[T](skipNaN, func() {
		for _, v := range values {
			if !stats.IsNaN(v) {
				d := O(v) - mean
				variance += d * d
			}
		}
	}, func() {
		for _, v := range values {
			d := O(v) - mean
			variance += d * d
		}
	})
	if zeros := numAll - len(values); zeros > 0 {
		variance += O(zeros) * mean * mean
	}

	return finalize(mean, variance, count)
}

// Apply writes the sample variance of every row (if row is true) or column
// of mat into output.
func Apply[O stats.Floats, T stats.Number](row bool, mat matrix.Matrix[T], output []O, opt stats.Options) {
	ApplyWithMeans(row, mat, nil, output, opt)
}

// ApplyWithMeans is Apply that also writes the means into means. Either
// output may be nil.
func ApplyWithMeans[O stats.Floats, T stats.Number](row bool, mat matrix.Matrix[T], means, variances []O, opt stats.Options) {
	dim := matrix.Extent(mat, row)
	otherdim := matrix.Extent(mat, !row)
	direct := mat.PreferRows() == row
	stats.LogDispatch(opt, "variances", row, mat.Sparse(), direct)

	if means == nil && variances == nil {
		return
	}
	store := func(i int, mean, variance O) {
		if means != nil {
			means[i] = mean
		}
		if variances != nil {
			variances[i] = variance
		}
	}

	switch {
	case mat.Sparse() && direct:
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveSparse(mat, row, start, length, matrix.ExtractOptions{OmitIndex: true})
			vbuffer := make([]T, otherdim)
			for x := range length {
				rng := ext.Fetch(vbuffer, nil)
				mean, variance := DirectSparse[O](rng.Value, otherdim, opt.SkipNaN)
				store(start+x, mean, variance)
			}
		})

	case direct:
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveDense(mat, row, start, length)
			buffer := make([]T, otherdim)
			for x := range length {
				mean, variance := Direct[O](ext.Fetch(buffer), opt.SkipNaN)
				store(start+x, mean, variance)
			}
		})

	default:
		stats.Parallelize(opt, dim, func(thread, start, length int) {
			meanOut, meanData := runningOutput(thread, start, length, means)
			varOut, varData := runningOutput(thread, start, length, variances)

			if mat.Sparse() {
				ext := mat.SparseExtractor(!row, 0, otherdim, start, length, matrix.ExtractOptions{UnorderedIndex: true})
				vbuffer := make([]T, length)
				ibuffer := make([]int, length)
				runner := NewRunningSparse[O, T](meanData, varData, opt.SkipNaN, start)
				for range otherdim {
					rng := ext.Fetch(vbuffer, ibuffer)
					runner.Add(rng.Value, rng.Index)
				}
				runner.Finish()
			} else {
				ext := mat.DenseExtractor(!row, 0, otherdim, start, length)
				buffer := make([]T, length)
				runner := NewRunningDense[O, T](meanData, varData, opt.SkipNaN)
				for range otherdim {
					runner.Add(ext.Fetch(buffer))
				}
				runner.Finish()
			}

			if meanOut != nil {
				meanOut.Transfer()
			}
			if varOut != nil {
				varOut.Transfer()
			}
		})
	}
}

// runningOutput returns the zeroed per-thread store for one running output,
// backed by a local output buffer when the caller asked for that output and
// by scratch space otherwise.
func runningOutput[O stats.Floats](thread, start, length int, output []O) (*stats.LocalOutputBuffer[O], []O) {
	if output == nil {
		return nil, make([]O, length)
	}
	local := stats.NewLocalOutputBuffer(thread, start, length, output, 0)
	return local, local.Data()
}

// ByRow returns the sample variance of each row.
func ByRow[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []float64 {
	output := make([]float64, mat.NRow())
	Apply(true, mat, output, opt)
	return output
}

// ByColumn returns the sample variance of each column.
func ByColumn[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []float64 {
	output := make([]float64, mat.NCol())
	Apply(false, mat, output, opt)
	return output
}

// MeansByRow returns the mean of each row.
func MeansByRow[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []float64 {
	output := make([]float64, mat.NRow())
	ApplyWithMeans(true, mat, output, nil, opt)
	return output
}

// MeansByColumn returns the mean of each column.
func MeansByColumn[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []float64 {
	output := make([]float64, mat.NCol())
	ApplyWithMeans(false, mat, output, nil, opt)
	return output
}
