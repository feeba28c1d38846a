// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package groupedmedians computes the median of each row (or column)
// separately within groups of the other dimension.
package groupedmedians

import (
	"github.com/ajroetker/go-dimstats/matrix"
	"github.com/ajroetker/go-dimstats/stats"
	"github.com/ajroetker/go-dimstats/stats/medians"
)

// Apply computes per-group medians of every row (if row is true) or column
// of mat. group labels each element of the other dimension with a group in
// [0, len(groupSizes)), and groupSizes holds the number of elements per
// label as returned by stats.TabulateGroups. output[g] receives the medians
// for group g.
func Apply[O stats.Floats, T stats.Number, G stats.Integers](row bool, mat matrix.Matrix[T], group []G, groupSizes []int, output [][]O, opt stats.Options) {
	dim := matrix.Extent(mat, row)
	otherdim := matrix.Extent(mat, !row)
	stats.LogDispatch(opt, "groupedmedians", row, mat.Sparse(), true)

	numGroups := len(groupSizes)
	newWorkspace := func() [][]T {
		workspace := make([][]T, numGroups)
		for g := range workspace {
			workspace[g] = make([]T, 0, groupSizes[g])
		}
		return workspace
	}

	if mat.Sparse() {
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveSparse(mat, row, start, length, matrix.ExtractOptions{UnorderedIndex: true})
			vbuffer := make([]T, otherdim)
			ibuffer := make([]int, otherdim)
			workspace := newWorkspace()

			for x := range length {
				rng := ext.Fetch(vbuffer, ibuffer)
				for k, v := range rng.Value {
					g := group[rng.Index[k]]
					workspace[g] = append(workspace[g], v)
				}
				for g := range workspace {
					output[g][start+x] = medians.DirectSparse[O](workspace[g], groupSizes[g], opt.SkipNaN)
					workspace[g] = workspace[g][:0]
				}
			}
		})
		return
	}

	stats.Parallelize(opt, dim, func(_, start, length int) {
		ext := matrix.ConsecutiveDense(mat, row, start, length)
		buffer := make([]T, otherdim)
		workspace := newWorkspace()

		for x := range length {
			for j, v := range ext.Fetch(buffer) {
				g := group[j]
				workspace[g] = append(workspace[g], v)
			}
			for g := range workspace {
				output[g][start+x] = medians.Direct[O](workspace[g], opt.SkipNaN)
				workspace[g] = workspace[g][:0]
			}
		}
	})
}

// ByRow computes the median of each row within the column groups in group.
// The result has one slice per group, each with one entry per row.
func ByRow[T stats.Number, G stats.Integers](mat matrix.Matrix[T], group []G, opt stats.Options) [][]float64 {
	sizes := stats.TabulateGroups(group)
	output := stats.GroupedOutput(len(sizes), mat.NRow())
	Apply(true, mat, group, sizes, output, opt)
	return output
}

// ByColumn computes the median of each column within the row groups in
// group.
func ByColumn[T stats.Number, G stats.Integers](mat matrix.Matrix[T], group []G, opt stats.Options) [][]float64 {
	sizes := stats.TabulateGroups(group)
	output := stats.GroupedOutput(len(sizes), mat.NCol())
	Apply(false, mat, group, sizes, output, opt)
	return output
}
