// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package sums

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajroetker/go-dimstats/internal/testutil"
	"github.com/ajroetker/go-dimstats/stats"
)

var nan = math.NaN()

func reference(vectors [][]float64, skipNaN bool) []float64 {
	out := make([]float64, len(vectors))
	for i, vec := range vectors {
		for _, v := range vec {
			if skipNaN && math.IsNaN(v) {
				continue
			}
			out[i] += v
		}
	}
	return out
}

func TestDirect(t *testing.T) {
	assert.Equal(t, 6.0, Direct[float64]([]float64{1, 2, 3}, false))
	assert.Equal(t, 0.0, Direct[float64]([]float64{}, false))
	assert.True(t, math.IsNaN(Direct[float64]([]float64{1, nan, 3}, false)))
	assert.Equal(t, 4.0, Direct[float64]([]float64{1, nan, 3}, true))
	assert.Equal(t, int64(300), Direct[int64]([]int8{100, 100, 100}, true))
}

func TestRunningSparseSubtract(t *testing.T) {
	sum := make([]float64, 3)
	r := NewRunningSparse[float64, float64](sum, true, 10)
	r.Add([]float64{1, 2}, []int{12, 10})
	r.Add([]float64{nan, 5, 7}, []int{10, 11, 12})
	assert.Equal(t, []float64{2, 5, 8}, sum)
}

func TestConcreteScenario(t *testing.T) {
	values := []float64{1, 2, 3, 4, nan, 6, 7, 8, 9, 0, 0, 0, -1, -2, -3}
	for _, layout := range testutil.Layouts(t, 5, 3, values) {
		for _, cfg := range testutil.Configs(t, true) {
			got := ByRow(layout.Matrix, cfg.Options)
			testutil.AssertClose(t, []float64{6, 10, 24, 0, -6}, got, layout.Name+"/"+cfg.Name)
		}
	}
}

func TestLayoutsAndThreads(t *testing.T) {
	const nrow, ncol = 57, 43
	values := testutil.SimulateSparse(nrow*ncol, 0.2, 42, -5, 5)

	for _, skipNaN := range []bool{false, true} {
		data := values
		if skipNaN {
			data = append([]float64(nil), values...)
			testutil.InjectNaN(data, 3, 17)
		}
		wantRows := reference(testutil.Vectors(nrow, ncol, data, true), skipNaN)
		wantCols := reference(testutil.Vectors(nrow, ncol, data, false), skipNaN)

		for _, layout := range testutil.Layouts(t, nrow, ncol, data) {
			for _, cfg := range testutil.Configs(t, skipNaN) {
				name := layout.Name + "/" + cfg.Name

				rows := testutil.Fill(nrow, -1.0)
				Apply(true, layout.Matrix, rows, cfg.Options)
				testutil.AssertClose(t, wantRows, rows, name+"/rows")

				cols := testutil.Fill(ncol, -1.0)
				Apply(false, layout.Matrix, cols, cfg.Options)
				testutil.AssertClose(t, wantCols, cols, name+"/cols")
			}
		}
	}
}

func TestIntegerMatrix(t *testing.T) {
	values := []int32{1, 2, 3, 4, 5, 6}
	for _, layout := range testutil.Layouts(t, 2, 3, values) {
		out := testutil.Fill(3, int64(99))
		Apply(false, layout.Matrix, out, stats.Options{NumThreads: 2})
		assert.Equal(t, []int64{5, 7, 9}, out, layout.Name)

		rows := ByRow(layout.Matrix, stats.Options{SkipNaN: true})
		assert.Equal(t, []float64{6, 15}, rows, layout.Name)
	}
}

func TestEmptyOtherDimension(t *testing.T) {
	for _, layout := range testutil.Layouts(t, 4, 0, []float64{}) {
		out := testutil.Fill(4, -1.0)
		Apply(true, layout.Matrix, out, stats.Options{NumThreads: 2})
		assert.Equal(t, []float64{0, 0, 0, 0}, out, layout.Name)
		assert.Empty(t, ByColumn(layout.Matrix, stats.Options{}))
	}
}

func BenchmarkByColumnSparseRows(b *testing.B) {
	const nrow, ncol = 1000, 500
	values := testutil.SimulateSparse(nrow*ncol, 0.1, 1, -5, 5)
	m := testutil.Layouts(b, nrow, ncol, values)[2].Matrix

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ByColumn(m, stats.Options{NumThreads: 4})
	}
}
