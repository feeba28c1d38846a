// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package matrix defines the read-only matrix interface consumed by the
// statistics packages, together with dense and compressed-sparse
// implementations.
//
// A matrix is traversed through extractors. An extractor is created for a
// contiguous run of vectors along one dimension ("row" selects rows, otherwise
// columns) and a contiguous block of the other dimension. Each call to Fetch
// returns the next vector of the run, restricted to the block.
//
// Slices returned by Fetch may alias the matrix storage or the buffers passed
// in. They are only valid until the next call and must not be modified.
package matrix

import "github.com/ajroetker/go-dimstats/stats"

// Matrix is a two-dimensional read-only numeric matrix.
type Matrix[T stats.Number] interface {
	NRow() int
	NCol() int

	// Sparse reports whether the storage only records structural non-zeros.
	Sparse() bool

	// PreferRows reports whether row-wise traversal is the efficient one.
	PreferRows() bool

	// DenseExtractor yields vectors iterStart, ..., iterStart+iterLength-1 of
	// the row (or column) dimension, each restricted to
	// [blockStart, blockStart+blockLength) of the other dimension.
	DenseExtractor(row bool, iterStart, iterLength, blockStart, blockLength int) DenseExtractor[T]

	// SparseExtractor is DenseExtractor in sparse form.
	SparseExtractor(row bool, iterStart, iterLength, blockStart, blockLength int, opt ExtractOptions) SparseExtractor[T]
}

// DenseExtractor returns successive dense vectors.
type DenseExtractor[T stats.Number] interface {
	// Fetch returns the next vector. buffer must hold at least blockLength
	// elements and may be used as storage for the result.
	Fetch(buffer []T) []T
}

// SparseExtractor returns successive sparse vectors.
type SparseExtractor[T stats.Number] interface {
	// Fetch returns the next vector. vbuffer and ibuffer must hold at least
	// blockLength elements and may be used as storage for the result.
	// ibuffer may be nil if the extractor was created with OmitIndex.
	Fetch(vbuffer []T, ibuffer []int) SparseRange[T]
}

// SparseRange holds the structural non-zeros of one vector.
type SparseRange[T stats.Number] struct {
	Value []T
	// Index holds the position of each value in the other dimension, in
	// global coordinates. It is nil when ExtractOptions.OmitIndex is set.
	Index []int
}

// Number returns the number of structural non-zeros.
func (r SparseRange[T]) Number() int {
	return len(r.Value)
}

// ExtractOptions tunes sparse extraction.
type ExtractOptions struct {
	// OmitIndex skips index extraction when only values are needed.
	OmitIndex bool

	// UnorderedIndex tells the matrix that indices need not be returned in
	// increasing order.
	UnorderedIndex bool
}

// Extent returns the number of rows if row is true, otherwise the number of
// columns.
func Extent[T stats.Number](m Matrix[T], row bool) int {
	if row {
		return m.NRow()
	}
	return m.NCol()
}

// ConsecutiveDense returns a dense extractor over vectors
// [iterStart, iterStart+iterLength) covering the whole other dimension.
func ConsecutiveDense[T stats.Number](m Matrix[T], row bool, iterStart, iterLength int) DenseExtractor[T] {
	return m.DenseExtractor(row, iterStart, iterLength, 0, Extent(m, !row))
}

// ConsecutiveSparse is ConsecutiveDense in sparse form.
func ConsecutiveSparse[T stats.Number](m Matrix[T], row bool, iterStart, iterLength int, opt ExtractOptions) SparseExtractor[T] {
	return m.SparseExtractor(row, iterStart, iterLength, 0, Extent(m, !row), opt)
}
