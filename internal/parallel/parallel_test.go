package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 10000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("For visited %d indices, want %d", counter, n)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	visited := make([]bool, 100)
	For(len(visited), func(i int) {
		visited[i] = true
	}, cfg)

	for i, v := range visited {
		if !v {
			t.Fatalf("index %d not visited", i)
		}
	}
}

func TestFor_EachIndexOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 1

	counts := make([]int64, 4096)
	For(len(counts), func(i int) {
		atomic.AddInt64(&counts[i], 1)
	}, cfg)

	for i, c := range counts {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfgSeq)
		}
	})
}
