// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package stats

import (
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/ajroetker/go-dimstats/stats/contrib/workerpool"
)

// NumThreadsEnvVar names the environment variable consulted when
// Options.NumThreads is not set.
const NumThreadsEnvVar = "DIMSTATS_NUM_THREADS"

// Options controls how a statistic is computed.
type Options struct {
	// SkipNaN excludes NaNs from the computation. If false, NaNs are assumed
	// to be absent and results in their presence are unspecified.
	SkipNaN bool

	// NumThreads is the number of workers used to split the objective
	// dimension. Values <= 0 fall back to NumThreadsEnv, then to 1.
	NumThreads int

	// Executor runs the per-thread tasks. If nil, a goroutine is spawned per
	// task for the duration of the call.
	Executor workerpool.Executor

	// Logger receives a debug entry per computation. If nil, logging is
	// disabled.
	Logger *zap.Logger
}

// Threads returns the resolved number of threads, always at least 1.
func (o Options) Threads() int {
	if o.NumThreads > 0 {
		return o.NumThreads
	}
	if n := NumThreadsEnv(); n > 0 {
		return n
	}
	return 1
}

// Log returns the configured logger or a no-op logger.
func (o Options) Log() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// NumThreadsEnv returns the thread count from DIMSTATS_NUM_THREADS, or 0 if
// it is unset or unparsable.
func NumThreadsEnv() int {
	val := os.Getenv(NumThreadsEnvVar)
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
