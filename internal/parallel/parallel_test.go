package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 1000

	For(n, cfg, func(_ int) {
		atomic.AddInt64(&counter, 1)
	})

	assert.Equal(t, int64(n), counter)
}

func TestForRange_CoversEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	n := 203
	hits := make([]int32, n)
	ForRange(n, cfg, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		assert.Equal(t, int32(1), h, "index %d", i)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	calls := 0
	ForRange(100, cfg, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 100, end)
	})

	assert.Equal(t, 1, calls)
}

func TestFor_SmallChunk(t *testing.T) {
	// Small work units fall back to sequential.
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, cfg, func(_ int) {
		atomic.AddInt64(&counter, 1)
	})

	assert.Equal(t, int64(n), counter)
}

func TestForRange_Empty(t *testing.T) {
	called := false
	ForRange(0, DefaultConfig(), func(_, _ int) { called = true })
	assert.False(t, called)
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, cfg, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			})
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, cfgSeq, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			})
		}
	})
}
