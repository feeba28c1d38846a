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

package sort

import "github.com/ajroetker/go-dimstats/stats"

// sortInsertionThreshold: use insertion sort for arrays this size or smaller.
const sortInsertionThreshold = 32

// NthElement rearranges data such that the element at index k
// is the element that would be at that position if data were sorted.
// Elements before k are <= data[k], elements after are >= data[k].
//
// data must not contain NaN.
func NthElement[T stats.Number](data []T, k int) {
	n := len(data)
	if k < 0 || k >= n {
		return
	}

	// Calculate max depth
	maxDepth := 0
	for tmp := n; tmp > 0; tmp >>= 1 {
		maxDepth++
	}
	maxDepth *= 2

	nthElementImpl(data, k, maxDepth)
}

func nthElementImpl[T stats.Number](data []T, k, depthLimit int) {
	for {
		n := len(data)
		if n <= 1 {
			return
		}

		if n <= sortInsertionThreshold {
			insertionSort(data)
			return
		}

		if depthLimit == 0 {
			heapSort(data)
			return
		}
		depthLimit--

		pivot := pivotSampled(data)
		lt, gt := partition3Way(data, pivot)

		switch {
		case k < lt:
			data = data[:lt]
		case k >= gt:
			data = data[gt:]
			k -= gt
		default:
			// lt <= k < gt, k is in the equal partition - done
			return
		}
	}
}

// MaxOf returns the largest element of data, which must be non-empty.
// After NthElement(data, k), MaxOf(data[:k]) is the (k-1)-th order statistic.
func MaxOf[T stats.Number](data []T) T {
	best := data[0]
	for _, v := range data[1:] {
		if v > best {
			best = v
		}
	}
	return best
}

// TranslocateNaNs moves every NaN in data to the front, preserving nothing
// about the order of the other elements, and returns the number of NaNs.
func TranslocateNaNs[T stats.Number](data []T) int {
	pos := 0
	for i, v := range data {
		if stats.IsNaN(v) {
			data[i], data[pos] = data[pos], data[i]
			pos++
		}
	}
	return pos
}

// insertionSort is insertion sort for small arrays.
func insertionSort[T stats.Number](data []T) {
	for i := 1; i < len(data); i++ {
		key := data[i]
		j := i - 1
		for j >= 0 && data[j] > key {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = key
	}
}

// heapSort is heapsort for O(n log n) worst-case guarantee.
func heapSort[T stats.Number](data []T) {
	n := len(data)
	if n <= 1 {
		return
	}

	// Build max-heap
	for i := n/2 - 1; i >= 0; i-- {
		siftDown(data, i, n)
	}

	// Extract elements
	for i := n - 1; i > 0; i-- {
		data[0], data[i] = data[i], data[0]
		siftDown(data, 0, i)
	}
}

func siftDown[T stats.Number](data []T, i, n int) {
	for {
		largest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < n && data[left] > data[largest] {
			largest = left
		}
		if right < n && data[right] > data[largest] {
			largest = right
		}

		if largest == i {
			break
		}

		data[i], data[largest] = data[largest], data[i]
		i = largest
	}
}

// pivotMedianOf3 selects pivot as median of first, middle, and last elements.
func pivotMedianOf3[T stats.Number](data []T) T {
	n := len(data)
	if n <= 2 {
		return data[0]
	}

	a := data[0]
	b := data[n/2]
	c := data[n-1]

	if a > b {
		a, b = b, a
	}
	if b > c {
		b = c
		if a > b {
			b = a
		}
	}
	return b
}

// pivotSampled selects pivot by sampling elements at regular intervals.
// For larger arrays, this gives a better pivot estimate than median-of-3.
func pivotSampled[T stats.Number](data []T) T {
	n := len(data)
	if n <= 8 {
		return pivotMedianOf3(data)
	}

	samples := [5]T{
		data[0],
		data[n/4],
		data[n/2],
		data[3*n/4],
		data[n-1],
	}

	insertionSort(samples[:])
	return samples[2]
}

// partition3Way performs 3-way partitioning (Dutch National Flag).
// On return data[:lt] < pivot, data[lt:gt] == pivot and data[gt:] > pivot.
func partition3Way[T stats.Number](data []T, pivot T) (int, int) {
	lt := 0
	gt := len(data)
	i := 0

	for i < gt {
		if data[i] < pivot {
			data[lt], data[i] = data[i], data[lt]
			lt++
			i++
		} else if data[i] > pivot {
			gt--
			data[i], data[gt] = data[gt], data[i]
		} else {
			i++
		}
	}

	return lt, gt
}
