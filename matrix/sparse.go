// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import (
	"fmt"
	"sort"

	"github.com/ajroetker/go-dimstats/stats"
)

// CompressedSparseMatrix stores structural non-zeros in compressed sparse row
// (CSR) or column (CSC) form. The primary dimension is rows for CSR and
// columns for CSC.
type CompressedSparseMatrix[T stats.Number] struct {
	nrow, ncol int
	values     []T
	indices    []int
	pointers   []int
	csr        bool
}

// NewCompressedSparse wraps the compressed arrays. For primary vector p, its
// non-zeros are values[pointers[p]:pointers[p+1]] at secondary positions
// indices[pointers[p]:pointers[p+1]], which must be strictly increasing.
// Nothing is copied.
func NewCompressedSparse[T stats.Number](nrow, ncol int, values []T, indices, pointers []int, csr bool) (*CompressedSparseMatrix[T], error) {
	const op = "NewCompressedSparse"
	if nrow < 0 || ncol < 0 {
		return nil, fmt.Errorf("%s: %dx%d: %w", op, nrow, ncol, ErrBadShape)
	}
	if len(values) != len(indices) {
		return nil, fmt.Errorf("%s: %d values, %d indices: %w", op, len(values), len(indices), ErrDimensionMismatch)
	}

	primary, secondary := ncol, nrow
	if csr {
		primary, secondary = nrow, ncol
	}
	if len(pointers) != primary+1 {
		return nil, fmt.Errorf("%s: %d pointers for %d vectors: %w", op, len(pointers), primary, ErrBadPointers)
	}
	if pointers[0] != 0 || pointers[primary] != len(values) {
		return nil, fmt.Errorf("%s: pointers span [%d, %d) for %d non-zeros: %w",
			op, pointers[0], pointers[primary], len(values), ErrBadPointers)
	}

	for p := 0; p < primary; p++ {
		if pointers[p+1] < pointers[p] {
			return nil, fmt.Errorf("%s: pointer %d decreases: %w", op, p+1, ErrBadPointers)
		}
	}

	for p := 0; p < primary; p++ {
		start, end := pointers[p], pointers[p+1]
		for k := start; k < end; k++ {
			idx := indices[k]
			if idx < 0 || idx >= secondary {
				return nil, fmt.Errorf("%s: index %d in vector %d: %w", op, idx, p, ErrIndexOutOfRange)
			}
			if k > start && idx <= indices[k-1] {
				return nil, fmt.Errorf("%s: vector %d: %w", op, p, ErrUnsortedIndex)
			}
		}
	}

	return &CompressedSparseMatrix[T]{
		nrow:     nrow,
		ncol:     ncol,
		values:   values,
		indices:  indices,
		pointers: pointers,
		csr:      csr,
	}, nil
}

func (m *CompressedSparseMatrix[T]) NRow() int        { return m.nrow }
func (m *CompressedSparseMatrix[T]) NCol() int        { return m.ncol }
func (m *CompressedSparseMatrix[T]) Sparse() bool     { return true }
func (m *CompressedSparseMatrix[T]) PreferRows() bool { return m.csr }

// NonZeros returns the number of structural non-zeros.
func (m *CompressedSparseMatrix[T]) NonZeros() int {
	return len(m.values)
}

// span returns the positions of primary vector p's non-zeros that fall in
// [blockStart, blockStart+blockLength).
func (m *CompressedSparseMatrix[T]) span(p, blockStart, blockLength int) (int, int) {
	start, end := m.pointers[p], m.pointers[p+1]
	secondary := m.nrow
	if m.csr {
		secondary = m.ncol
	}
	if blockStart > 0 {
		idx := m.indices[start:end]
		start += sort.SearchInts(idx, blockStart)
	}
	if blockStart+blockLength < secondary {
		idx := m.indices[start:end]
		end = start + sort.SearchInts(idx, blockStart+blockLength)
	}
	return start, end
}

func (m *CompressedSparseMatrix[T]) SparseExtractor(row bool, iterStart, iterLength, blockStart, blockLength int, opt ExtractOptions) SparseExtractor[T] {
	if row == m.csr {
		return &primarySparse[T]{m: m, next: iterStart, blockStart: blockStart, blockLength: blockLength, omitIndex: opt.OmitIndex}
	}
	return &secondarySparse[T]{
		cursor:    newCursor(m, iterStart, blockStart, blockLength),
		omitIndex: opt.OmitIndex,
	}
}

func (m *CompressedSparseMatrix[T]) DenseExtractor(row bool, iterStart, iterLength, blockStart, blockLength int) DenseExtractor[T] {
	inner := m.SparseExtractor(row, iterStart, iterLength, blockStart, blockLength, ExtractOptions{})
	return &sparseAsDense[T]{
		inner:       inner,
		blockStart:  blockStart,
		blockLength: blockLength,
		vbuffer:     make([]T, blockLength),
		ibuffer:     make([]int, blockLength),
	}
}

type primarySparse[T stats.Number] struct {
	m                       *CompressedSparseMatrix[T]
	next                    int
	blockStart, blockLength int
	omitIndex               bool
}

func (e *primarySparse[T]) Fetch(_ []T, _ []int) SparseRange[T] {
	start, end := e.m.span(e.next, e.blockStart, e.blockLength)
	e.next++
	out := SparseRange[T]{Value: e.m.values[start:end]}
	if !e.omitIndex {
		out.Index = e.m.indices[start:end]
	}
	return out
}

// cursor walks the secondary dimension of a compressed matrix, remembering
// for every primary vector in the block how far its indices have been
// consumed.
type cursor[T stats.Number] struct {
	m          *CompressedSparseMatrix[T]
	next       int
	blockStart int
	pos, end   []int
}

func newCursor[T stats.Number](m *CompressedSparseMatrix[T], iterStart, blockStart, blockLength int) *cursor[T] {
	c := &cursor[T]{
		m:          m,
		next:       iterStart,
		blockStart: blockStart,
		pos:        make([]int, blockLength),
		end:        make([]int, blockLength),
	}
	for i := range c.pos {
		p := blockStart + i
		start, end := m.pointers[p], m.pointers[p+1]
		c.pos[i] = start + sort.SearchInts(m.indices[start:end], iterStart)
		c.end[i] = end
	}
	return c
}

// advance visits every primary vector holding a non-zero at the next
// secondary position, in increasing primary order.
func (c *cursor[T]) advance(visit func(primary int, value T)) {
	target := c.next
	c.next++
	for i, pos := range c.pos {
		if pos < c.end[i] && c.m.indices[pos] == target {
			visit(c.blockStart+i, c.m.values[pos])
			c.pos[i]++
		}
	}
}

type secondarySparse[T stats.Number] struct {
	cursor    *cursor[T]
	omitIndex bool
}

func (e *secondarySparse[T]) Fetch(vbuffer []T, ibuffer []int) SparseRange[T] {
	n := 0
	e.cursor.advance(func(primary int, value T) {
		vbuffer[n] = value
		if !e.omitIndex {
			ibuffer[n] = primary
		}
		n++
	})
	out := SparseRange[T]{Value: vbuffer[:n]}
	if !e.omitIndex {
		out.Index = ibuffer[:n]
	}
	return out
}

// sparseAsDense expands sparse vectors, filling the gaps with zeros.
type sparseAsDense[T stats.Number] struct {
	inner                   SparseExtractor[T]
	blockStart, blockLength int
	vbuffer                 []T
	ibuffer                 []int
}

func (e *sparseAsDense[T]) Fetch(buffer []T) []T {
	rng := e.inner.Fetch(e.vbuffer, e.ibuffer)
	out := buffer[:e.blockLength]
	clear(out)
	for k, v := range rng.Value {
		out[rng.Index[k]-e.blockStart] = v
	}
	return out
}
