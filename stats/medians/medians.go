// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package medians computes row and column medians.
//
// There is no running median, so vectors are always extracted in the
// requested direction and reduced with partial selection. Sparse vectors are
// never expanded: the position of the median relative to the implicit zeros
// is worked out from the number of negative non-zeros.
package medians

import (
	"math"

	"github.com/ajroetker/go-dimstats/matrix"
	"github.com/ajroetker/go-dimstats/stats"
	"github.com/ajroetker/go-dimstats/stats/contrib/sort"
)

// average returns the midpoint of low and high without overflowing, and
// returns low unchanged when both are equal so that infinities survive.
func average[O stats.Floats](low, high O) O {
	if low == high {
		return low
	}
	return low + (high-low)/2
}

// Direct returns the median of values, reordering values in the process. The
// median of an empty vector, or of a vector of NaNs when skipNaN is set, is
// NaN.
func Direct[O stats.Floats, T stats.Number](values []T, skipNaN bool) O {
	stats.NanableIfElse[T](skipNaN, func() {
		values = values[sort.TranslocateNaNs(values):]
	}, func() {})

	n := len(values)
	if n == 0 {
		return O(math.NaN())
	}

	halfway := n / 2
	sort.NthElement(values, halfway)
	high := O(values[halfway])
	if n%2 == 1 {
		return high
	}
	low := O(sort.MaxOf(values[:halfway]))
	return average(low, high)
}

// DirectSparse returns the median of a sparse vector of length numAll whose
// structural non-zeros are values, reordering values in the process.
func DirectSparse[O stats.Floats, T stats.Number](values []T, numAll int, skipNaN bool) O {
	stats.NanableIfElse[T](skipNaN, func() {
		lost := sort.TranslocateNaNs(values)
		values = values[lost:]
		numAll -= lost
	}, func() {})

	numNonzero := len(values)
	if numNonzero == numAll {
		return Direct[O](values, false)
	}
	if numNonzero*2 < numAll {
		// More than half of the elements are zero.
		return 0
	}

	numNegative := 0
	for _, v := range values {
		if v < 0 {
			numNegative++
		}
	}
	numZero := numAll - numNonzero
	halfway := numAll / 2

	// Position p of the full sorted vector maps to p in values if it is
	// negative, to a zero, or to p-numZero in values if it is positive.
	if numAll%2 == 1 {
		switch {
		case halfway < numNegative:
			sort.NthElement(values, halfway)
			return O(values[halfway])
		case halfway >= numNegative+numZero:
			k := halfway - numZero
			sort.NthElement(values, k)
			return O(values[k])
		default:
			return 0
		}
	}

	switch {
	case halfway < numNegative:
		sort.NthElement(values, halfway)
		return average(O(sort.MaxOf(values[:halfway])), O(values[halfway]))

	case halfway == numNegative:
		// Upper point is the first zero, lower is the largest negative.
		sort.NthElement(values, halfway)
		return average(O(sort.MaxOf(values[:halfway])), 0)

	case halfway < numNegative+numZero:
		return 0

	case halfway == numNegative+numZero:
		// Lower point is the last zero, upper is the smallest positive.
		k := halfway - numZero
		sort.NthElement(values, k)
		return average(0, O(values[k]))

	default:
		k := halfway - numZero
		sort.NthElement(values, k)
		return average(O(sort.MaxOf(values[:k])), O(values[k]))
	}
}

// Apply writes the median of every row (if row is true) or column of mat
// into output.
func Apply[O stats.Floats, T stats.Number](row bool, mat matrix.Matrix[T], output []O, opt stats.Options) {
	dim := matrix.Extent(mat, row)
	otherdim := matrix.Extent(mat, !row)
	stats.LogDispatch(opt, "medians", row, mat.Sparse(), true)

	if mat.Sparse() {
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveSparse(mat, row, start, length, matrix.ExtractOptions{OmitIndex: true, UnorderedIndex: true})
			vbuffer := make([]T, otherdim)
			for x := range length {
				rng := ext.Fetch(vbuffer, nil)
				n := copy(vbuffer, rng.Value)
				output[start+x] = DirectSparse[O](vbuffer[:n], otherdim, opt.SkipNaN)
			}
		})
		return
	}

	stats.Parallelize(opt, dim, func(_, start, length int) {
		ext := matrix.ConsecutiveDense(mat, row, start, length)
		buffer := make([]T, otherdim)
		for x := range length {
			copy(buffer, ext.Fetch(buffer))
			output[start+x] = Direct[O](buffer, opt.SkipNaN)
		}
	})
}

// ByRow returns the median of each row.
func ByRow[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []float64 {
	output := make([]float64, mat.NRow())
	Apply(true, mat, output, opt)
	return output
}

// ByColumn returns the median of each column.
func ByColumn[T stats.Number](mat matrix.Matrix[T], opt stats.Options) []float64 {
	output := make([]float64, mat.NCol())
	Apply(false, mat, output, opt)
	return output
}
