package leaderfollowers

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRunsEveryTask(t *testing.T) {
	p := New(4)
	defer p.Shutdown()

	const n = 200
	var count int64
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		p.Submit(func() {
			atomic.AddInt64(&count, 1)
			wg.Done()
		})
	}

	waitOrTimeout(t, &wg, 2*time.Second)
	assert.EqualValues(t, n, atomic.LoadInt64(&count))
}

func TestTaskExecutionOverlapsAcrossWorkers(t *testing.T) {
	p := New(8)
	defer p.Shutdown()

	const n = 500
	var active int32
	var maxActive int32
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		p.Submit(func() {
			defer wg.Done()
			cur := atomic.AddInt32(&active, 1)
			for {
				old := atomic.LoadInt32(&maxActive)
				if cur <= old || atomic.CompareAndSwapInt32(&maxActive, old, cur) {
					break
				}
			}
			atomic.AddInt32(&active, -1)
		})
	}

	waitOrTimeout(t, &wg, 2*time.Second)
	assert.Greater(t, maxActive, int32(1), "task execution itself should overlap across workers")
}

func TestShutdownDrainsPendingTasks(t *testing.T) {
	p := New(3)

	var count int64
	for i := 0; i < 50; i++ {
		p.Submit(func() {
			atomic.AddInt64(&count, 1)
		})
	}

	p.Shutdown()
	assert.EqualValues(t, 50, atomic.LoadInt64(&count))
}

func TestSubmitAfterShutdownIsDropped(t *testing.T) {
	p := New(2)
	p.Shutdown()

	ran := false
	p.Submit(func() { ran = true })
	assert.False(t, ran)
}

func waitOrTimeout(t *testing.T, wg *sync.WaitGroup, d time.Duration) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		require.Fail(t, "timed out waiting for tasks to complete")
	}
}
