// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package groupedvariances computes the mean and sample variance of each row
// (or column) separately within groups of the other dimension.
package groupedvariances

import (
	"math"

	"github.com/ajroetker/go-dimstats/matrix"
	"github.com/ajroetker/go-dimstats/stats"
	"github.com/ajroetker/go-dimstats/stats/variances"
)

func finalize[O stats.Floats](mean, variance *O, count int) {
	switch {
	case count == 0:
		*mean = O(math.NaN())
		*variance = O(math.NaN())
	case count == 1:
		*variance = O(math.NaN())
	default:
		*variance /= O(count - 1)
	}
}

// Direct computes the per-group mean and sample variance of one dense
// vector. group labels every element of values, groupSizes holds the number
// of elements per label, and means and variances receive one entry per
// group.
func Direct[O stats.Floats, T stats.Number, G stats.Integers](values []T, group []G, groupSizes []int, skipNaN bool, means, variances []O) {
	clear(means)
	clear(variances)
	counts := groupSizes

	stats.NanableIfElse[T](skipNaN, func() {
		counts = make([]int, len(groupSizes))
		for j, v := range values {
			if !stats.IsNaN(v) {
				g := group[j]
				means[g] += O(v)
				counts[g]++
			}
		}
	}, func() {
		for j, v := range values {
			means[group[j]] += O(v)
		}
	})
	for g := range means {
		means[g] /= O(counts[g])
	}

	stats.NanableIfElse[T](skipNaN, func() {
		for j, v := range values {
			if !stats.IsNaN(v) {
				g := group[j]
				d := O(v) - means[g]
				variances[g] += d * d
			}
		}
	}, func() {
		for j, v := range values {
			g := group[j]
			d := O(v) - means[g]
			variances[g] += d * d
		}
	})

	for g := range means {
		finalize(&means[g], &variances[g], counts[g])
	}
}

// DirectSparse is Direct for a sparse vector whose structural non-zeros are
// values at positions indices. Structural zeros contribute to the mean and
// variance of their group without being visited.
func DirectSparse[O stats.Floats, T stats.Number, G stats.Integers](values []T, indices []int, group []G, groupSizes []int, skipNaN bool, means, variances []O) {
	clear(means)
	clear(variances)
	nonzero := make([]int, len(groupSizes))
	lost := make([]int, len(groupSizes))

	stats.NanableIfElse[T](skipNaN, func() {
		for k, v := range values {
			g := group[indices[k]]
			nonzero[g]++
			if stats.IsNaN(v) {
				lost[g]++
				continue
			}
			means[g] += O(v)
		}
	}, func() {
		for k, v := range values {
			g := group[indices[k]]
			nonzero[g]++
			means[g] += O(v)
		}
	})
	for g := range means {
		means[g] /= O(groupSizes[g] - lost[g])
	}

	stats.NanableIfElse[T](skipNaN, func() {
		for k, v := range values {
			if !stats.IsNaN(v) {
				g := group[indices[k]]
				d := O(v) - means[g]
				variances[g] += d * d
			}
		}
	}, func() {
		for k, v := range values {
			g := group[indices[k]]
			d := O(v) - means[g]
			variances[g] += d * d
		}
	})

	for g := range means {
		if zeros := groupSizes[g] - nonzero[g]; zeros > 0 {
			variances[g] += O(zeros) * means[g] * means[g]
		}
		finalize(&means[g], &variances[g], groupSizes[g]-lost[g])
	}
}

// Apply computes per-group sample variances of every row (if row is true)
// or column of mat into output[g].
func Apply[O stats.Floats, T stats.Number, G stats.Integers](row bool, mat matrix.Matrix[T], group []G, groupSizes []int, output [][]O, opt stats.Options) {
	ApplyWithMeans(row, mat, group, groupSizes, nil, output, opt)
}

// ApplyWithMeans is Apply that also writes the per-group means. means may
// be nil.
func ApplyWithMeans[O stats.Floats, T stats.Number, G stats.Integers](row bool, mat matrix.Matrix[T], group []G, groupSizes []int, means, vars [][]O, opt stats.Options) {
	dim := matrix.Extent(mat, row)
	otherdim := matrix.Extent(mat, !row)
	direct := mat.PreferRows() == row
	stats.LogDispatch(opt, "groupedvariances", row, mat.Sparse(), direct)

	numGroups := len(groupSizes)
	store := func(x int, tmpMeans, tmpVars []O) {
		for g := range numGroups {
			if means != nil {
				means[g][x] = tmpMeans[g]
			}
			vars[g][x] = tmpVars[g]
		}
	}

	switch {
	case mat.Sparse() && direct:
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveSparse(mat, row, start, length, matrix.ExtractOptions{UnorderedIndex: true})
			vbuffer := make([]T, otherdim)
			ibuffer := make([]int, otherdim)
			tmpMeans := make([]O, numGroups)
			tmpVars := make([]O, numGroups)
			for x := range length {
				rng := ext.Fetch(vbuffer, ibuffer)
				DirectSparse(rng.Value, rng.Index, group, groupSizes, opt.SkipNaN, tmpMeans, tmpVars)
				store(start+x, tmpMeans, tmpVars)
			}
		})

	case direct:
		stats.Parallelize(opt, dim, func(_, start, length int) {
			ext := matrix.ConsecutiveDense(mat, row, start, length)
			buffer := make([]T, otherdim)
			tmpMeans := make([]O, numGroups)
			tmpVars := make([]O, numGroups)
			for x := range length {
				Direct(ext.Fetch(buffer), group, groupSizes, opt.SkipNaN, tmpMeans, tmpVars)
				store(start+x, tmpMeans, tmpVars)
			}
		})

	default:
		stats.Parallelize(opt, dim, func(thread, start, length int) {
			localVars := stats.NewLocalOutputBuffers(thread, numGroups, start, length, func(g int) []O { return vars[g] }, 0)
			meanData := func(g int) []O { return make([]O, length) }
			var localMeans *stats.LocalOutputBuffers[O]
			if means != nil {
				localMeans = stats.NewLocalOutputBuffers(thread, numGroups, start, length, func(g int) []O { return means[g] }, 0)
				meanData = localMeans.Data
			}

			if mat.Sparse() {
				runners := make([]*variances.RunningSparse[O, T], numGroups)
				for g := range runners {
					runners[g] = variances.NewRunningSparse[O, T](meanData(g), localVars.Data(g), opt.SkipNaN, start)
				}
				ext := mat.SparseExtractor(!row, 0, otherdim, start, length, matrix.ExtractOptions{UnorderedIndex: true})
				vbuffer := make([]T, length)
				ibuffer := make([]int, length)
				for i := range otherdim {
					rng := ext.Fetch(vbuffer, ibuffer)
					runners[group[i]].Add(rng.Value, rng.Index)
				}
				for _, r := range runners {
					r.Finish()
				}
			} else {
				runners := make([]*variances.RunningDense[O, T], numGroups)
				for g := range runners {
					runners[g] = variances.NewRunningDense[O, T](meanData(g), localVars.Data(g), opt.SkipNaN)
				}
				ext := mat.DenseExtractor(!row, 0, otherdim, start, length)
				buffer := make([]T, length)
				for i := range otherdim {
					runners[group[i]].Add(ext.Fetch(buffer))
				}
				for _, r := range runners {
					r.Finish()
				}
			}

			localVars.Transfer()
			if localMeans != nil {
				localMeans.Transfer()
			}
		})
	}
}

// ByRow computes the sample variance of each row within the column groups
// in group. The result has one slice per group, each with one entry per row.
func ByRow[T stats.Number, G stats.Integers](mat matrix.Matrix[T], group []G, opt stats.Options) [][]float64 {
	sizes := stats.TabulateGroups(group)
	output := stats.GroupedOutput(len(sizes), mat.NRow())
	Apply(true, mat, group, sizes, output, opt)
	return output
}

// ByColumn computes the sample variance of each column within the row
// groups in group.
func ByColumn[T stats.Number, G stats.Integers](mat matrix.Matrix[T], group []G, opt stats.Options) [][]float64 {
	sizes := stats.TabulateGroups(group)
	output := stats.GroupedOutput(len(sizes), mat.NCol())
	Apply(false, mat, group, sizes, output, opt)
	return output
}
