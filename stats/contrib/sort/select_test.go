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

import (
	"math"
	"math/rand"
	"slices"
	"testing"
)

// TestNthElement tests partial sorting
func TestNthElement(t *testing.T) {
	// Create sorted reference
	ref := []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	for k := range ref {
		// Shuffle data
		data := make([]float32, len(ref))
		copy(data, ref)
		rand.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })

		NthElement(data, k)

		if data[k] != ref[k] {
			t.Errorf("NthElement(k=%d): got %v, want %v", k, data[k], ref[k])
		}
	}
}

// TestNthElementLarge checks the partition invariant past the insertion-sort threshold.
func TestNthElementLarge(t *testing.T) {
	for _, n := range []int{33, 100, 1000, 4097} {
		data := generateInt64(n)
		ref := slices.Clone(data)
		slices.Sort(ref)

		for _, k := range []int{0, n / 3, n / 2, n - 1} {
			work := slices.Clone(data)
			NthElement(work, k)
			if work[k] != ref[k] {
				t.Fatalf("n=%d k=%d: got %d, want %d", n, k, work[k], ref[k])
			}
			for i := 0; i < k; i++ {
				if work[i] > work[k] {
					t.Fatalf("n=%d k=%d: work[%d]=%d > pivot %d", n, k, i, work[i], work[k])
				}
			}
			for i := k + 1; i < n; i++ {
				if work[i] < work[k] {
					t.Fatalf("n=%d k=%d: work[%d]=%d < pivot %d", n, k, i, work[i], work[k])
				}
			}
			if k > 0 && MaxOf(work[:k]) != ref[k-1] {
				t.Fatalf("n=%d k=%d: MaxOf prefix = %d, want %d", n, k, MaxOf(work[:k]), ref[k-1])
			}
		}
	}
}

func TestNthElementDuplicates(t *testing.T) {
	data := make([]float64, 500)
	for i := range data {
		data[i] = float64(i % 3)
	}
	ref := slices.Clone(data)
	slices.Sort(ref)

	for _, k := range []int{0, 166, 167, 250, 499} {
		work := slices.Clone(data)
		NthElement(work, k)
		if work[k] != ref[k] {
			t.Errorf("k=%d: got %v, want %v", k, work[k], ref[k])
		}
	}
}

func TestNthElementOutOfRange(t *testing.T) {
	data := []int32{3, 1, 2}
	NthElement(data, 3)
	NthElement(data, -1)
	if !slices.Equal(data, []int32{3, 1, 2}) {
		t.Errorf("out-of-range k modified data: %v", data)
	}
}

func TestTranslocateNaNs(t *testing.T) {
	nan := math.NaN()
	data := []float64{1, nan, 2, nan, nan, 3}
	lost := TranslocateNaNs(data)
	if lost != 3 {
		t.Fatalf("lost = %d, want 3", lost)
	}
	for i := 0; i < lost; i++ {
		if !math.IsNaN(data[i]) {
			t.Errorf("data[%d] = %v, want NaN", i, data[i])
		}
	}
	rest := slices.Clone(data[lost:])
	slices.Sort(rest)
	if !slices.Equal(rest, []float64{1, 2, 3}) {
		t.Errorf("rest = %v", rest)
	}

	ints := []int{4, 5, 6}
	if TranslocateNaNs(ints) != 0 {
		t.Error("integers never hold NaN")
	}
}

func generateInt64(n int) []int64 {
	data := make([]int64, n)
	for i := range data {
		data[i] = rand.Int63n(10000) - 5000
	}
	return data
}

func generateFloat64(n int) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = rand.Float64() * 1000
	}
	return data
}

func BenchmarkNthElement(b *testing.B) {
	data := generateFloat64(10000)
	work := make([]float64, len(data))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(work, data)
		NthElement(work, len(work)/2)
	}
}
