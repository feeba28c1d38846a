// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package stats

import (
	"go.uber.org/zap"

	"github.com/ajroetker/go-dimstats/stats/contrib/workerpool"
)

// Parallelize splits the objective dimension [0, n) into opt.Threads()
// contiguous ranges and calls fn once per range. It returns after every call
// has finished; a panic in any call is re-raised as *workerpool.TaskPanic.
func Parallelize(opt Options, n int, fn func(thread, start, length int)) {
	workerpool.Run(opt.Executor, n, opt.Threads(), fn)
}

// LogDispatch records which computation path a statistic took.
func LogDispatch(opt Options, statistic string, row, sparse, direct bool) {
	log := opt.Log()
	if ce := log.Check(zap.DebugLevel, "dispatch"); ce != nil {
		ce.Write(
			zap.String("statistic", statistic),
			zap.Bool("row", row),
			zap.Bool("sparse", sparse),
			zap.Bool("direct", direct),
			zap.Int("threads", opt.Threads()),
		)
	}
}
