// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ajroetker/go-dimstats/stats/contrib/workerpool"
)

func TestSupportsNaN(t *testing.T) {
	assert.True(t, SupportsNaN[float32]())
	assert.True(t, SupportsNaN[float64]())
	assert.False(t, SupportsNaN[int]())
	assert.False(t, SupportsNaN[uint8]())
}

func TestIsNaN(t *testing.T) {
	assert.True(t, IsNaN(math.NaN()))
	assert.True(t, IsNaN(float32(math.NaN())))
	assert.False(t, IsNaN(1.0))
	assert.False(t, IsNaN(int64(0)))
}

func TestLimits(t *testing.T) {
	assert.Equal(t, math.MaxFloat64, MaxValue[float64]())
	assert.Equal(t, float32(math.MaxFloat32), MaxValue[float32]())
	assert.Equal(t, -math.MaxFloat64, LowestValue[float64]())
	assert.Equal(t, int8(127), MaxValue[int8]())
	assert.Equal(t, int8(-128), LowestValue[int8]())
	assert.Equal(t, int64(math.MaxInt64), MaxValue[int64]())
	assert.Equal(t, int64(math.MinInt64), LowestValue[int64]())
	assert.Equal(t, uint32(math.MaxUint32), MaxValue[uint32]())
	assert.Equal(t, uint32(0), LowestValue[uint32]())
	assert.Equal(t, uint64(math.MaxUint64), MaxValue[uint64]())

	inf, ok := Infinity[float32](false)
	assert.True(t, ok)
	assert.True(t, math.IsInf(float64(inf), -1))
	_, ok = Infinity[int](true)
	assert.False(t, ok)
}

func TestNanableIfElse(t *testing.T) {
	var took string
	NanableIfElse[float64](true, func() { took = "nan" }, func() { took = "plain" })
	assert.Equal(t, "nan", took)
	NanableIfElse[float64](false, func() { took = "nan" }, func() { took = "plain" })
	assert.Equal(t, "plain", took)
	NanableIfElse[int32](true, func() { took = "nan" }, func() { took = "plain" })
	assert.Equal(t, "plain", took)

	got := NanableIfElseWithValue[float32](true, func() int { return 1 }, func() int { return 2 })
	assert.Equal(t, 1, got)
	got = NanableIfElseWithValue[uint16](true, func() int { return 1 }, func() int { return 2 })
	assert.Equal(t, 2, got)
}

func TestOptionsThreads(t *testing.T) {
	assert.Equal(t, 4, Options{NumThreads: 4}.Threads())

	t.Setenv(NumThreadsEnvVar, "3")
	assert.Equal(t, 3, Options{}.Threads())
	assert.Equal(t, 2, Options{NumThreads: 2}.Threads())

	t.Setenv(NumThreadsEnvVar, "many")
	assert.Equal(t, 1, Options{}.Threads())
}

func TestParallelizeCoversRange(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Close()

	for _, opt := range []Options{{NumThreads: 1}, {NumThreads: 3}, {NumThreads: 5, Executor: pool}} {
		seen := make([]int, 23)
		Parallelize(opt, len(seen), func(_, start, length int) {
			for i := start; i < start+length; i++ {
				seen[i]++
			}
		})
		for i, n := range seen {
			assert.Equal(t, 1, n, "index %d threads %d", i, opt.NumThreads)
		}
	}
}

func TestLogDispatch(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	opt := Options{NumThreads: 2, Logger: zap.New(core)}

	LogDispatch(opt, "sums", true, false, true)
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "sums", fields["statistic"])
		assert.Equal(t, true, fields["direct"])
		assert.Equal(t, int64(2), fields["threads"])
	}

	// A nil logger is a no-op.
	LogDispatch(Options{}, "sums", true, false, true)
}
