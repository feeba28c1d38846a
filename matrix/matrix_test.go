// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 3x4 reference matrix, row-major:
//
//	1 0 2 0
//	0 0 0 3
//	4 5 0 6
var (
	refRows = []float64{1, 0, 2, 0, 0, 0, 0, 3, 4, 5, 0, 6}
	refCols = []float64{1, 0, 4, 0, 0, 5, 2, 0, 0, 0, 3, 6}
)

func layouts(t *testing.T) map[string]Matrix[float64] {
	t.Helper()
	dr, err := NewDense(3, 4, refRows, true)
	require.NoError(t, err)
	dc, err := NewDense(3, 4, refCols, false)
	require.NoError(t, err)
	csr, err := NewCompressedSparse(3, 4,
		[]float64{1, 2, 3, 4, 5, 6},
		[]int{0, 2, 3, 0, 1, 3},
		[]int{0, 2, 3, 6}, true)
	require.NoError(t, err)
	csc, err := NewCompressedSparse(3, 4,
		[]float64{1, 4, 5, 2, 3, 6},
		[]int{0, 2, 2, 0, 1, 2},
		[]int{0, 2, 3, 4, 6}, false)
	require.NoError(t, err)
	return map[string]Matrix[float64]{
		"dense-row": dr, "dense-col": dc, "csr": csr, "csc": csc,
	}
}

func want(r, c int) float64 {
	return refRows[r*4+c]
}

func TestDenseExtraction(t *testing.T) {
	for name, m := range layouts(t) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 3, m.NRow())
			assert.Equal(t, 4, m.NCol())

			buffer := make([]float64, 4)
			ext := ConsecutiveDense(m, true, 0, 3)
			for r := range 3 {
				got := ext.Fetch(buffer)
				require.Len(t, got, 4)
				for c := range 4 {
					assert.Equal(t, want(r, c), got[c], "row %d col %d", r, c)
				}
			}

			ext = m.DenseExtractor(false, 1, 3, 1, 2)
			for c := 1; c < 4; c++ {
				got := ext.Fetch(buffer)
				assert.Equal(t, []float64{want(1, c), want(2, c)}, got, "col %d", c)
			}
		})
	}
}

func TestSparseExtraction(t *testing.T) {
	for name, m := range layouts(t) {
		t.Run(name, func(t *testing.T) {
			vbuffer := make([]float64, 4)
			ibuffer := make([]int, 4)

			for _, row := range []bool{true, false} {
				n, other := Extent(m, row), Extent(m, !row)
				ext := m.SparseExtractor(row, 0, n, 1, other-1, ExtractOptions{})
				for i := range n {
					rng := ext.Fetch(vbuffer, ibuffer)
					require.Len(t, rng.Index, rng.Number())

					// Every reported value matches the matrix and every
					// unreported position in the block is zero.
					seen := map[int]bool{}
					for k, v := range rng.Value {
						idx := rng.Index[k]
						require.GreaterOrEqual(t, idx, 1)
						seen[idx] = true
						if row {
							assert.Equal(t, want(i, idx), v)
						} else {
							assert.Equal(t, want(idx, i), v)
						}
					}
					for j := 1; j < other; j++ {
						if seen[j] {
							continue
						}
						if row {
							assert.Zero(t, want(i, j))
						} else {
							assert.Zero(t, want(j, i))
						}
					}
				}
			}
		})
	}
}

func TestSparseExtractionOmitIndex(t *testing.T) {
	for name, m := range layouts(t) {
		t.Run(name, func(t *testing.T) {
			ext := ConsecutiveSparse(m, false, 0, 4, ExtractOptions{OmitIndex: true})
			rng := ext.Fetch(make([]float64, 3), make([]int, 3))
			assert.Nil(t, rng.Index)
			assert.NotZero(t, rng.Number())
		})
	}
}

func TestSecondaryCursorMidStart(t *testing.T) {
	m := layouts(t)["csr"]
	ext := m.SparseExtractor(false, 2, 2, 0, 3, ExtractOptions{})
	vbuffer, ibuffer := make([]float64, 3), make([]int, 3)

	rng := ext.Fetch(vbuffer, ibuffer)
	assert.Equal(t, []float64{2}, rng.Value)
	assert.Equal(t, []int{0}, rng.Index)

	rng = ext.Fetch(vbuffer, ibuffer)
	assert.Equal(t, []float64{3, 6}, rng.Value)
	assert.Equal(t, []int{1, 2}, rng.Index)
}

func TestConversions(t *testing.T) {
	for name, m := range layouts(t) {
		t.Run(name, func(t *testing.T) {
			for _, rowMajor := range []bool{true, false} {
				d := ToDense(m, rowMajor)
				assert.Equal(t, rowMajor, d.PreferRows())
				for r := range 3 {
					for c := range 4 {
						assert.Equal(t, want(r, c), d.At(r, c))
					}
				}

				s := ToCompressedSparse(m, rowMajor)
				assert.Equal(t, 6, s.NonZeros())
				assert.True(t, s.Sparse())
				assert.Equal(t, refRows, ToDense[float64](s, true).values)
			}
		})
	}
}

func TestToCompressedSparseKeepsNaN(t *testing.T) {
	d, err := NewDense(1, 3, []float64{0, math.NaN(), 2}, true)
	require.NoError(t, err)
	s := ToCompressedSparse[float64](d, true)
	require.Equal(t, 2, s.NonZeros())
	assert.True(t, math.IsNaN(s.values[0]))
	assert.Equal(t, []int{1, 2}, s.indices)
}

func TestConstructorErrors(t *testing.T) {
	_, err := NewDense(-1, 2, []int{}, true)
	assert.ErrorIs(t, err, ErrBadShape)

	_, err = NewDense(2, 2, []int{1, 2, 3}, true)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	tests := []struct {
		name     string
		values   []int
		indices  []int
		pointers []int
		want     error
	}{
		{"length mismatch", []int{1, 2}, []int{0}, []int{0, 1, 1}, ErrDimensionMismatch},
		{"pointer count", []int{1}, []int{0}, []int{0, 1}, ErrBadPointers},
		{"pointer start", []int{1}, []int{0}, []int{1, 1, 1}, ErrBadPointers},
		{"pointer end", []int{1}, []int{0}, []int{0, 0, 0}, ErrBadPointers},
		{"decreasing", []int{1}, []int{0}, []int{0, 2, 1}, ErrBadPointers},
		{"out of range", []int{1}, []int{5}, []int{0, 1, 1}, ErrIndexOutOfRange},
		{"unsorted", []int{1, 2}, []int{1, 0}, []int{0, 2, 2}, ErrUnsortedIndex},
		{"duplicate", []int{1, 2}, []int{1, 1}, []int{0, 2, 2}, ErrUnsortedIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCompressedSparse(2, 3, tt.values, tt.indices, tt.pointers, true)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
