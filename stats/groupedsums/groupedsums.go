// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package groupedsums sums each row (or column) separately within groups of
// the other dimension.
package groupedsums

import (
	"github.com/ajroetker/go-dimstats/matrix"
	"github.com/ajroetker/go-dimstats/stats"
	"github.com/ajroetker/go-dimstats/stats/sums"
)

// Apply computes per-group sums of every row (if row is true) or column of
// mat. group assigns each element of the other dimension a label in
// [0, numGroups), and output[g] receives the sums over the elements labelled
// g, one per objective vector.
func Apply[O, T stats.Number, G stats.Integers](row bool, mat matrix.Matrix[T], group []G, numGroups int, output [][]O, opt stats.Options) {
	dim := matrix.Extent(mat, row)
	otherdim := matrix.Extent(mat, !row)
	direct := mat.PreferRows() == row
	stats.LogDispatch(opt, "groupedsums", row, mat.Sparse(), direct)

	fetch := func(g int) []O { return output[g] }

	switch {
	case mat.Sparse() && direct:
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveSparse(mat, row, start, length, matrix.ExtractOptions{UnorderedIndex: true})
			vbuffer := make([]T, otherdim)
			ibuffer := make([]int, otherdim)
			tmp := make([]O, numGroups)

			for x := range length {
				rng := ext.Fetch(vbuffer, ibuffer)
				clear(tmp)
				stats.NanableIfElse[T](opt.SkipNaN, func() {
					for k, v := range rng.Value {
						if !stats.IsNaN(v) {
							tmp[group[rng.Index[k]]] += O(v)
						}
					}
				}, func() {
					for k, v := range rng.Value {
						tmp[group[rng.Index[k]]] += O(v)
					}
				})
				for g, sum := range tmp {
					output[g][start+x] = sum
				}
			}
		})

	case mat.Sparse():
		stats.Parallelize(opt, dim, func(thread, start, length int) {
			locals := stats.NewLocalOutputBuffers(thread, numGroups, start, length, fetch, 0)
			runners := make([]*sums.RunningSparse[O, T], numGroups)
			for g := range runners {
				runners[g] = sums.NewRunningSparse[O, T](locals.Data(g), opt.SkipNaN, start)
			}

			ext := mat.SparseExtractor(!row, 0, otherdim, start, length, matrix.ExtractOptions{UnorderedIndex: true})
			vbuffer := make([]T, length)
			ibuffer := make([]int, length)
			for i := range otherdim {
				rng := ext.Fetch(vbuffer, ibuffer)
				runners[group[i]].Add(rng.Value, rng.Index)
			}
			locals.Transfer()
		})

	case direct:
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveDense(mat, row, start, length)
			buffer := make([]T, otherdim)
			tmp := make([]O, numGroups)

			for x := range length {
				values := ext.Fetch(buffer)
				clear(tmp)
				stats.NanableIfElse[T](opt.SkipNaN, func() {
					for j, v := range values {
						if !stats.IsNaN(v) {
							tmp[group[j]] += O(v)
						}
					}
				}, func() {
					for j, v := range values {
						tmp[group[j]] += O(v)
					}
				})
				for g, sum := range tmp {
					output[g][start+x] = sum
				}
			}
		})

	default:
		stats.Parallelize(opt, dim, func(thread, start, length int) {
			locals := stats.NewLocalOutputBuffers(thread, numGroups, start, length, fetch, 0)
			runners := make([]*sums.RunningDense[O, T], numGroups)
			for g := range runners {
				runners[g] = sums.NewRunningDense[O, T](locals.Data(g), opt.SkipNaN)
			}

			ext := mat.DenseExtractor(!row, 0, otherdim, start, length)
			buffer := make([]T, length)
			for i := range otherdim {
				runners[group[i]].Add(ext.Fetch(buffer))
			}
			locals.Transfer()
		})
	}
}

// ByRow sums each row within the column groups in group. The result has
// one slice per group, each with one entry per row.
func ByRow[T stats.Number, G stats.Integers](mat matrix.Matrix[T], group []G, opt stats.Options) [][]float64 {
	output := stats.GroupedOutput(stats.TotalGroups(group), mat.NRow())
	Apply(true, mat, group, len(output), output, opt)
	return output
}

// ByColumn sums each column within the row groups in group.
func ByColumn[T stats.Number, G stats.Integers](mat matrix.Matrix[T], group []G, opt stats.Options) [][]float64 {
	output := stats.GroupedOutput(stats.TotalGroups(group), mat.NCol())
	Apply(false, mat, group, len(output), output, opt)
	return output
}
