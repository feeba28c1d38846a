// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import "github.com/ajroetker/go-dimstats/stats"

// ToDense copies m into a new dense matrix with the requested layout.
func ToDense[T stats.Number](m Matrix[T], rowMajor bool) *DenseMatrix[T] {
	nrow, ncol := m.NRow(), m.NCol()
	primary, secondary := Extent(m, rowMajor), Extent(m, !rowMajor)

	values := make([]T, nrow*ncol)
	ext := ConsecutiveDense(m, rowMajor, 0, primary)
	buffer := make([]T, secondary)
	for p := range primary {
		copy(values[p*secondary:(p+1)*secondary], ext.Fetch(buffer))
	}
	return &DenseMatrix[T]{nrow: nrow, ncol: ncol, values: values, rowMajor: rowMajor}
}

// ToCompressedSparse copies the non-zero elements of m into a new compressed
// matrix, CSR if csr is true and CSC otherwise. NaNs are kept.
func ToCompressedSparse[T stats.Number](m Matrix[T], csr bool) *CompressedSparseMatrix[T] {
	primary, secondary := Extent(m, csr), Extent(m, !csr)

	var (
		values   []T
		indices  []int
		pointers = make([]int, 1, primary+1)
	)
	ext := ConsecutiveSparse(m, csr, 0, primary, ExtractOptions{})
	vbuffer := make([]T, secondary)
	ibuffer := make([]int, secondary)
	for range primary {
		rng := ext.Fetch(vbuffer, ibuffer)
		for k, v := range rng.Value {
			if v != 0 {
				values = append(values, v)
				indices = append(indices, rng.Index[k])
			}
		}
		pointers = append(pointers, len(values))
	}

	return &CompressedSparseMatrix[T]{
		nrow:     m.NRow(),
		ncol:     m.NCol(),
		values:   values,
		indices:  indices,
		pointers: pointers,
		csr:      csr,
	}
}
