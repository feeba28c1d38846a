// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matrix

import "errors"

// Sentinel errors returned by the constructors. Callers match them with
// errors.Is; the returned error is wrapped with the operation name.
var (
	// ErrBadShape is returned when a dimension is negative.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrDimensionMismatch indicates that a backing slice does not match the
	// declared dimensions.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrBadPointers indicates a compressed pointer array that does not start
	// at 0, is not non-decreasing, or does not end at the number of non-zeros.
	ErrBadPointers = errors.New("matrix: invalid pointer array")

	// ErrIndexOutOfRange indicates a secondary index outside the matrix.
	ErrIndexOutOfRange = errors.New("matrix: index out of range")

	// ErrUnsortedIndex indicates indices that are not strictly increasing
	// within one primary vector.
	ErrUnsortedIndex = errors.New("matrix: indices not strictly increasing")
)
