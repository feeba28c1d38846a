// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package groupedvariances

import (
	"math"
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/ajroetker/go-dimstats/internal/testutil"
	"github.com/ajroetker/go-dimstats/stats"
	"github.com/ajroetker/go-dimstats/stats/variances"
)

func reference(vectors [][]float64, group []int, numGroups int, skipNaN bool) (means, vars [][]float64) {
	means = stats.GroupedOutput(numGroups, len(vectors))
	vars = stats.GroupedOutput(numGroups, len(vectors))
	for i, vec := range vectors {
		for g := range numGroups {
			var subset []float64
			for j, v := range vec {
				if group[j] == g {
					subset = append(subset, v)
				}
			}
			means[g][i], vars[g][i] = variances.Direct[float64](subset, skipNaN)
		}
	}
	return means, vars
}

func TestDirect(t *testing.T) {
	values := []float64{1, 10, 3, 20, 5, math.NaN()}
	group := []int{0, 1, 0, 1, 0, 1}
	means, vars := make([]float64, 2), make([]float64, 2)

	Direct(values, group, []int{3, 3}, true, means, vars)
	assert.Equal(t, []float64{3, 15}, means)
	assert.Equal(t, []float64{4, 50}, vars)
}

func TestDirectSparse(t *testing.T) {
	// Dense equivalent: group 0 = {2, 0, 4, 0}, group 1 = {0, 6}.
	values := []float64{6, 4, 2}
	indices := []int{5, 2, 0}
	group := []int{0, 0, 0, 1, 0, 1}
	means, vars := make([]float64, 2), make([]float64, 2)

	DirectSparse(values, indices, group, []int{4, 2}, false, means, vars)
	assert.InDelta(t, 1.5, means[0], 1e-12)
	assert.InDelta(t, 11.0/3, vars[0], 1e-12)
	assert.InDelta(t, 3.0, means[1], 1e-12)
	assert.InDelta(t, 18.0, vars[1], 1e-12)
}

func TestLayoutsAndThreads(t *testing.T) {
	const nrow, ncol = 41, 36
	values := testutil.SimulateSparse(nrow*ncol, 0.3, 17, -6, 6)
	colGroups := lo.Times(ncol, func(i int) int { return i % 3 })
	// Group 3 of the rows has a single member, so its variance is NaN.
	rowGroups := lo.Times(nrow, func(i int) int { return i % 3 })
	rowGroups[nrow-1] = 3

	for _, skipNaN := range []bool{false, true} {
		data := values
		if skipNaN {
			data = slices.Clone(values)
			testutil.InjectNaN(data, 5, 31)
		}
		wantRowMeans, wantRowVars := reference(testutil.Vectors(nrow, ncol, data, true), colGroups, 3, skipNaN)
		wantColMeans, wantColVars := reference(testutil.Vectors(nrow, ncol, data, false), rowGroups, 4, skipNaN)

		for _, layout := range testutil.Layouts(t, nrow, ncol, data) {
			for _, cfg := range testutil.Configs(t, skipNaN) {
				name := layout.Name + "/" + cfg.Name

				means := [][]float64{testutil.Fill(nrow, -1.0), testutil.Fill(nrow, -1.0), testutil.Fill(nrow, -1.0)}
				vars := [][]float64{testutil.Fill(nrow, -1.0), testutil.Fill(nrow, -1.0), testutil.Fill(nrow, -1.0)}
				ApplyWithMeans(true, layout.Matrix, colGroups, stats.TabulateGroups(colGroups), means, vars, cfg.Options)
				for g := range 3 {
					testutil.AssertClose(t, wantRowMeans[g], means[g], name+"/row means")
					testutil.AssertClose(t, wantRowVars[g], vars[g], name+"/row variances")
				}

				cols := ByColumn(layout.Matrix, rowGroups, cfg.Options)
				for g := range 4 {
					testutil.AssertClose(t, wantColVars[g], cols[g], name+"/column variances")
				}

				colMeans := stats.GroupedOutput(4, ncol)
				colVars := stats.GroupedOutput(4, ncol)
				ApplyWithMeans(false, layout.Matrix, rowGroups, stats.TabulateGroups(rowGroups), colMeans, colVars, cfg.Options)
				for g := range 4 {
					testutil.AssertClose(t, wantColMeans[g], colMeans[g], name+"/column means")
				}
			}
		}
	}
}

func TestMatchesUngrouped(t *testing.T) {
	const nrow, ncol = 12, 9
	values := testutil.SimulateSparse(nrow*ncol, 0.5, 23, -1, 1)
	group := make([]int, ncol)

	for _, layout := range testutil.Layouts(t, nrow, ncol, values) {
		got := ByRow(layout.Matrix, group, stats.Options{NumThreads: 3})
		testutil.AssertClose(t, variances.ByRow(layout.Matrix, stats.Options{}), got[0], layout.Name)
	}
}
