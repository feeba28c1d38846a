// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package stats

import "github.com/samber/lo"

// TotalGroups returns the number of groups implied by the labels in group,
// i.e. the largest label plus one. It returns 0 for an empty slice.
func TotalGroups[G Integers](group []G) int {
	if len(group) == 0 {
		return 0
	}
	return int(lo.Max(group)) + 1
}

// TabulateGroups counts the occurrences of each label in group. The result
// has TotalGroups(group) entries.
func TabulateGroups[G Integers](group []G) []int {
	sizes := make([]int, TotalGroups(group))
	for _, g := range group {
		sizes[g]++
	}
	return sizes
}

// GroupedOutput allocates numGroups zeroed slices of length dim.
func GroupedOutput(numGroups, dim int) [][]float64 {
	output := make([][]float64, numGroups)
	for g := range output {
		output[g] = make([]float64, dim)
	}
	return output
}
