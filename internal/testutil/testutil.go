// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package testutil builds matrices in every storage layout and compares
// floating-point results for the statistics tests.
package testutil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ajroetker/go-dimstats/matrix"
	"github.com/ajroetker/go-dimstats/stats"
	"github.com/ajroetker/go-dimstats/stats/contrib/workerpool"
)

// Tolerance used by AssertClose.
const Tolerance = 1e-8

// SimulateDense returns n uniform values in [lower, upper).
func SimulateDense(n int, seed int64, lower, upper float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = lower + rng.Float64()*(upper-lower)
	}
	return out
}

// SimulateSparse returns n values of which roughly a fraction density is
// non-zero, drawn uniformly from [lower, upper).
func SimulateSparse(n int, density float64, seed int64, lower, upper float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		if rng.Float64() < density {
			out[i] = lower + rng.Float64()*(upper-lower)
		}
	}
	return out
}

// SimulateSparseVector returns the non-zero values and their sorted indices
// for a sparse vector of the given length.
func SimulateSparseVector(length int, density float64, seed int64) ([]float64, []int) {
	dense := SimulateSparse(length, density, seed, -10, 10)
	var (
		values  []float64
		indices []int
	)
	for i, v := range dense {
		if v != 0 {
			values = append(values, v)
			indices = append(indices, i)
		}
	}
	return values, indices
}

// InjectNaN sets roughly one element per stride to NaN, starting at offset.
func InjectNaN(values []float64, offset, stride int) {
	for i := offset; i < len(values); i += stride {
		values[i] = math.NaN()
	}
}

// Layout is one storage variant of a matrix.
type Layout[T stats.Number] struct {
	Name   string
	Matrix matrix.Matrix[T]
}

// Layouts returns the same nrow x ncol row-major data as a row-major dense,
// column-major dense, CSR, CSC, and CSR/CSC with reversed sparse index
// order.
func Layouts[T stats.Number](t testing.TB, nrow, ncol int, rowMajor []T) []Layout[T] {
	t.Helper()
	dr, err := matrix.NewDense(nrow, ncol, rowMajor, true)
	if err != nil {
		t.Fatalf("NewDense: %v", err)
	}
	dc := matrix.ToDense[T](dr, false)
	csr := matrix.ToCompressedSparse[T](dr, true)
	csc := matrix.ToCompressedSparse[T](dr, false)
	return []Layout[T]{
		{"dense-row", dr},
		{"dense-col", dc},
		{"sparse-row", csr},
		{"sparse-col", csc},
		{"sparse-row-unsorted", Unsorted[T]{csr}},
		{"sparse-col-unsorted", Unsorted[T]{csc}},
	}
}

// Unsorted wraps a matrix so that every sparse extraction returns its
// non-zeros in reverse order.
type Unsorted[T stats.Number] struct {
	matrix.Matrix[T]
}

func (u Unsorted[T]) SparseExtractor(row bool, iterStart, iterLength, blockStart, blockLength int, opt matrix.ExtractOptions) matrix.SparseExtractor[T] {
	return &reversed[T]{
		inner:   u.Matrix.SparseExtractor(row, iterStart, iterLength, blockStart, blockLength, opt),
		vbuffer: make([]T, blockLength),
		ibuffer: make([]int, blockLength),
	}
}

type reversed[T stats.Number] struct {
	inner   matrix.SparseExtractor[T]
	vbuffer []T
	ibuffer []int
}

func (r *reversed[T]) Fetch(vbuffer []T, ibuffer []int) matrix.SparseRange[T] {
	rng := r.inner.Fetch(r.vbuffer, r.ibuffer)
	n := rng.Number()
	out := matrix.SparseRange[T]{Value: vbuffer[:n]}
	for k, v := range rng.Value {
		out.Value[n-1-k] = v
	}
	if rng.Index != nil {
		out.Index = ibuffer[:n]
		for k, idx := range rng.Index {
			out.Index[n-1-k] = idx
		}
	}
	return out
}

// Vectors splits row-major data into its rows (row true) or columns.
func Vectors[T any](nrow, ncol int, rowMajor []T, row bool) [][]T {
	if row {
		out := make([][]T, nrow)
		for r := range out {
			out[r] = rowMajor[r*ncol : (r+1)*ncol]
		}
		return out
	}
	out := make([][]T, ncol)
	for c := range out {
		out[c] = make([]T, nrow)
		for r := range nrow {
			out[c][r] = rowMajor[r*ncol+c]
		}
	}
	return out
}

// Config is a named threading configuration.
type Config struct {
	Name    string
	Options stats.Options
}

// Configs returns single-threaded, goroutine-per-range and pooled
// configurations. The pool is closed when the test finishes.
func Configs(t testing.TB, skipNaN bool) []Config {
	t.Helper()
	pool := workerpool.New(3)
	t.Cleanup(pool.Close)
	return []Config{
		{"serial", stats.Options{SkipNaN: skipNaN, NumThreads: 1}},
		{"goroutines", stats.Options{SkipNaN: skipNaN, NumThreads: 3}},
		{"pool", stats.Options{SkipNaN: skipNaN, NumThreads: 4, Executor: pool}},
	}
}

// Fill returns a slice of n copies of v, used to pre-dirty output buffers.
func Fill[T any](n int, v T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// AssertClose fails t unless got and want agree element-wise within
// Tolerance, treating NaNs as equal.
func AssertClose(t testing.TB, want, got []float64, msgAndArgs ...any) {
	t.Helper()
	opts := cmp.Options{cmpopts.EquateApprox(Tolerance, Tolerance), cmpopts.EquateNaNs(), cmpopts.EquateEmpty()}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		if len(msgAndArgs) > 0 {
			t.Errorf("%v: mismatch (-want +got):\n%s", msgAndArgs[0], diff)
			return
		}
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
