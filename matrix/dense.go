// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"

	"github.com/ajroetker/go-dimstats/stats"
)

// DenseMatrix stores every element in a single row- or column-major slice.
type DenseMatrix[T stats.Number] struct {
	nrow, ncol int
	values     []T
	rowMajor   bool
}

// NewDense wraps values as an nrow x ncol matrix. values is not copied.
func NewDense[T stats.Number](nrow, ncol int, values []T, rowMajor bool) (*DenseMatrix[T], error) {
	if nrow < 0 || ncol < 0 {
		return nil, fmt.Errorf("NewDense: %dx%d: %w", nrow, ncol, ErrBadShape)
	}
	if len(values) != nrow*ncol {
		return nil, fmt.Errorf("NewDense: %d values for %dx%d: %w", len(values), nrow, ncol, ErrDimensionMismatch)
	}
	return &DenseMatrix[T]{nrow: nrow, ncol: ncol, values: values, rowMajor: rowMajor}, nil
}

func (m *DenseMatrix[T]) NRow() int        { return m.nrow }
func (m *DenseMatrix[T]) NCol() int        { return m.ncol }
func (m *DenseMatrix[T]) Sparse() bool     { return false }
func (m *DenseMatrix[T]) PreferRows() bool { return m.rowMajor }

// At returns the element at (r, c).
func (m *DenseMatrix[T]) At(r, c int) T {
	if m.rowMajor {
		return m.values[r*m.ncol+c]
	}
	return m.values[c*m.nrow+r]
}

// layout returns the stride between consecutive vectors along the requested
// dimension, the stride between consecutive elements within a vector, and
// whether the request follows the storage order.
func (m *DenseMatrix[T]) layout(row bool) (vecStride, elemStride int, primary bool) {
	if row == m.rowMajor {
		if row {
			return m.ncol, 1, true
		}
		return m.nrow, 1, true
	}
	if row {
		return 1, m.nrow, false
	}
	return 1, m.ncol, false
}

func (m *DenseMatrix[T]) DenseExtractor(row bool, iterStart, iterLength, blockStart, blockLength int) DenseExtractor[T] {
	vecStride, elemStride, primary := m.layout(row)
	return &denseExtractor[T]{
		values:      m.values,
		next:        iterStart,
		blockStart:  blockStart,
		blockLength: blockLength,
		vecStride:   vecStride,
		elemStride:  elemStride,
		primary:     primary,
	}
}

func (m *DenseMatrix[T]) SparseExtractor(row bool, iterStart, iterLength, blockStart, blockLength int, opt ExtractOptions) SparseExtractor[T] {
	return &denseAsSparse[T]{
		inner:       m.DenseExtractor(row, iterStart, iterLength, blockStart, blockLength).(*denseExtractor[T]),
		blockStart:  blockStart,
		blockLength: blockLength,
		omitIndex:   opt.OmitIndex,
	}
}

type denseExtractor[T stats.Number] struct {
	values                  []T
	next                    int
	blockStart, blockLength int
	vecStride, elemStride   int
	primary                 bool
}

func (e *denseExtractor[T]) Fetch(buffer []T) []T {
	offset := e.next*e.vecStride + e.blockStart*e.elemStride
	e.next++
	if e.primary {
		return e.values[offset : offset+e.blockLength]
	}
	out := buffer[:e.blockLength]
	for i := range out {
		out[i] = e.values[offset]
		offset += e.elemStride
	}
	return out
}

// denseAsSparse reports every element of a dense vector as a structural
// non-zero.
type denseAsSparse[T stats.Number] struct {
	inner                   *denseExtractor[T]
	blockStart, blockLength int
	omitIndex               bool
}

func (e *denseAsSparse[T]) Fetch(vbuffer []T, ibuffer []int) SparseRange[T] {
	out := SparseRange[T]{Value: e.inner.Fetch(vbuffer)}
	if !e.omitIndex {
		idx := ibuffer[:e.blockLength]
		for i := range idx {
			idx[i] = e.blockStart + i
		}
		out.Index = idx
	}
	return out
}
