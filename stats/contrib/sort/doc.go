// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sort provides partial selection for the median computations.
//
// # Algorithm
//
// NthElement is an introselect variant that combines:
//   - Sampled pivot selection (median of five evenly spaced samples)
//   - 3-way (Dutch National Flag) partitioning, so runs of equal values
//     terminate immediately
//   - Insertion sort for small subarrays
//   - Heapsort fallback to guarantee O(n log n) worst case
//
// Only the side of the partition containing the requested rank is visited,
// giving O(n) expected time.
//
// # NaN handling
//
// Selection assumes a strict weak ordering, which NaN breaks. Callers move
// NaNs out of the way first with TranslocateNaNs and select over the rest.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-dimstats/stats/contrib/sort"
//
//	func Median(data []float64) float64 {
//	    lost := sort.TranslocateNaNs(data)
//	    data = data[lost:]
//	    sort.NthElement(data, len(data)/2)
//	    return data[len(data)/2]
//	}
package sort
