// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package stats

// NanableIfElse runs ifFn when skipNaN is set and T can hold NaN, and elseFn
// otherwise. Integer element types therefore never pay for NaN checks.
func NanableIfElse[T Number](skipNaN bool, ifFn, elseFn func()) {
	if skipNaN && SupportsNaN[T]() {
		ifFn()
		return
	}
	elseFn()
}

// NanableIfElseWithValue is NanableIfElse for branches that return a value.
func NanableIfElseWithValue[T Number, R any](skipNaN bool, ifFn, elseFn func() R) R {
	if skipNaN && SupportsNaN[T]() {
		return ifFn()
	}
	return elseFn()
}
