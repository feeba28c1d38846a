// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

// Range is the contiguous block of units assigned to one thread.
type Range struct {
	Thread int
	Start  int
	Length int
}

// Partitions divides [0, n) into at most threads contiguous ranges of
// ceil(n/threads) units each, the last one possibly shorter. Fewer ranges
// are returned when n is too small to give every thread work.
func Partitions(n, threads int) []Range {
	if n <= 0 {
		return nil
	}
	if threads < 1 {
		threads = 1
	}

	chunkSize := (n + threads - 1) / threads
	ranges := make([]Range, 0, min(threads, n))
	for start := 0; start < n; start += chunkSize {
		ranges = append(ranges, Range{
			Thread: len(ranges),
			Start:  start,
			Length: min(chunkSize, n-start),
		})
	}
	return ranges
}
