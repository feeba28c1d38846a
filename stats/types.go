// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package stats computes dimension-wise summary statistics over dense and
// compressed-sparse matrices.
//
// Every statistic is available along rows or columns regardless of how the
// underlying matrix prefers to be traversed. When the requested direction
// matches the preferred one, each output is computed directly from its own
// extracted vector. Otherwise the engine switches to running accumulators that
// update every output slot from each observed vector.
//
// Basic usage:
//
//	import "github.com/ajroetker/go-dimstats/stats/sums"
//
//	mat, _ := matrix.NewDense(3, 4, values, true)
//	rowSums := sums.ByRow(mat, stats.Options{NumThreads: 4})
//
// The statistic families live in sub-packages: sums, ranges, variances,
// medians, counts and their grouped variants.
package stats

import (
	"math"
	"unsafe"
)

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Number is a constraint for all types that can be stored in a matrix.
type Number interface {
	Floats | Integers
}

// SupportsNaN reports whether T can represent NaN, i.e. whether it is a
// floating-point type.
func SupportsNaN[T Number]() bool {
	var one, two T = 1, 2
	return one/two != 0
}

// IsNaN reports whether v is NaN. It is always false for integer types.
func IsNaN[T Number](v T) bool {
	return v != v
}

// Infinity returns positive or negative infinity for T, and false if T has no
// infinity.
func Infinity[T Number](positive bool) (T, bool) {
	if !SupportsNaN[T]() {
		var zero T
		return zero, false
	}
	if positive {
		return T(math.Inf(1)), true
	}
	return T(math.Inf(-1)), true
}

func isSigned[T Number]() bool {
	var x T
	x--
	return x < 0
}

// MaxValue returns the largest finite value representable by T.
func MaxValue[T Number]() T {
	size := unsafe.Sizeof(T(0))
	if SupportsNaN[T]() {
		largest := math.MaxFloat64
		if size == 4 {
			largest = math.MaxFloat32
		}
		return T(largest)
	}
	if !isSigned[T]() {
		var x T
		x--
		return x
	}
	bits := size * 8
	return T(uint64(1)<<(bits-1) - 1)
}

// LowestValue returns the most negative finite value representable by T.
func LowestValue[T Number]() T {
	if SupportsNaN[T]() || isSigned[T]() {
		return -MaxValue[T]() - minusOneIfInteger[T]()
	}
	return 0
}

// minusOneIfInteger accounts for two's complement asymmetry.
func minusOneIfInteger[T Number]() T {
	if SupportsNaN[T]() {
		return 0
	}
	return 1
}
