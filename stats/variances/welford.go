// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package variances

import (
	"math"

	"github.com/ajroetker/go-dimstats/stats"
)

// AddWelford folds value into a running mean and sum of squared deviations,
// where count is the number of observations including value.
func AddWelford[O stats.Floats](mean, sumsq *O, value O, count int) {
	delta := value - *mean
	*mean += delta / O(count)
	*sumsq += delta * (value - *mean)
}

// AddWelfordZeros folds numAll-numNonzero zeros into a running mean and sum
// of squared deviations that so far cover numNonzero observations. It is
// equivalent to calling AddWelford once per zero.
func AddWelfordZeros[O stats.Floats](mean, sumsq *O, numNonzero, numAll int) {
	ratio := O(numNonzero) / O(numAll)
	*sumsq += *mean * *mean * ratio * O(numAll-numNonzero)
	*mean *= ratio
}

// finalize turns a mean and sum of squared deviations over count
// observations into the mean and sample variance.
func finalize[O stats.Floats](mean, sumsq O, count int) (O, O) {
	nan := O(math.NaN())
	switch count {
	case 0:
		return nan, nan
	case 1:
		return mean, nan
	default:
		return mean, sumsq / O(count-1)
	}
}

// RunningDense computes means and variances for many objective vectors with
// Welford's algorithm, from a stream of dense observed vectors.
type RunningDense[O stats.Floats, T stats.Number] struct {
	mean, variance []O
	skipNaN        bool
	count          int
	counts         []int
}

// NewRunningDense accumulates into mean and variance, which must be zeroed
// by the caller and have the same length.
func NewRunningDense[O stats.Floats, T stats.Number](mean, variance []O, skipNaN bool) *RunningDense[O, T] {
	r := &RunningDense[O, T]{mean: mean, variance: variance, skipNaN: skipNaN}
	if skipNaN && stats.SupportsNaN[T]() {
		r.counts = make([]int, len(mean))
	}
	return r
}

// Add folds in one observed vector.
func (r *RunningDense[O, T]) Add(values []T) {
	mean, variance := r.mean[:len(values)], r.variance[:len(values)]
	stats.NanableIfElse[T](r.skipNaN, func() {
		for i, v := range values {
			if !stats.IsNaN(v) {
				r.counts[i]++
				AddWelford(&mean[i], &variance[i], O(v), r.counts[i])
			}
		}
	}, func() {
		r.count++
		for i, v := range values {
			AddWelford(&mean[i], &variance[i], O(v), r.count)
		}
	})
}

// Finish converts the accumulated sums of squares into sample variances.
// Means are NaN for objective vectors without observations and variances
// are NaN with fewer than two.
func (r *RunningDense[O, T]) Finish() {
	for i := range r.mean {
		count := r.count
		if r.counts != nil {
			count = r.counts[i]
		}
		r.mean[i], r.variance[i] = finalize(r.mean[i], r.variance[i], count)
	}
}

// RunningSparse is RunningDense for sparse observed vectors. Structural
// zeros are folded in analytically by Finish.
type RunningSparse[O stats.Floats, T stats.Number] struct {
	mean, variance []O
	skipNaN        bool
	subtract       int
	count          int
	nonzero        []int
	nan            []int
}

// NewRunningSparse accumulates into mean and variance, which must be zeroed
// by the caller. Indices passed to Add are offset by subtract.
func NewRunningSparse[O stats.Floats, T stats.Number](mean, variance []O, skipNaN bool, subtract int) *RunningSparse[O, T] {
	r := &RunningSparse[O, T]{
		mean:     mean,
		variance: variance,
		skipNaN:  skipNaN,
		subtract: subtract,
		nonzero:  make([]int, len(mean)),
	}
	if skipNaN && stats.SupportsNaN[T]() {
		r.nan = make([]int, len(mean))
	}
	return r
}

// Add folds in the non-zeros of one observed vector, in any index order.
func (r *RunningSparse[O, T]) Add(values []T, indices []int) {
	r.count++
	stats.NanableIfElse[T](r.skipNaN, func() {
		for k, v := range values {
			i := indices[k] - r.subtract
			if stats.IsNaN(v) {
				r.nan[i]++
				continue
			}
			r.nonzero[i]++
			AddWelford(&r.mean[i], &r.variance[i], O(v), r.nonzero[i])
		}
	}, func() {
		for k, v := range values {
			i := indices[k] - r.subtract
			r.nonzero[i]++
			AddWelford(&r.mean[i], &r.variance[i], O(v), r.nonzero[i])
		}
	})
}

// Finish folds in the structural zeros and converts to sample variances.
func (r *RunningSparse[O, T]) Finish() {
	for i := range r.mean {
		count := r.count
		if r.nan != nil {
			count -= r.nan[i]
		}
		if count >= 2 {
			AddWelfordZeros(&r.mean[i], &r.variance[i], r.nonzero[i], count)
		}
		r.mean[i], r.variance[i] = finalize(r.mean[i], r.variance[i], count)
	}
}
