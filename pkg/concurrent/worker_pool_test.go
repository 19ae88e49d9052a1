package concurrent

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolProcessesAllJobs(t *testing.T) {
	pool := NewWorkerPool[int, int](4, 16)

	var sum atomic.Int64
	pool.Start(func(job int) int {
		sum.Add(int64(job))
		return job * 2
	})

	for i := 1; i <= 10; i++ {
		pool.AddJob(i)
	}
	pool.Close()
	pool.Wait()

	if sum.Load() != 55 {
		t.Errorf("workers saw sum %d, want 55", sum.Load())
	}

	got := 0
	for res := range pool.CollectResults() {
		got += res
	}
	if got != 110 {
		t.Errorf("result sum = %d, want 110", got)
	}
}

func TestTryAddJobShedsLoad(t *testing.T) {
	pool := NewWorkerPool[int, int](1, 1)
	// no workers started: the queue fills up and TryAddJob must not block
	if !pool.TryAddJob(1) {
		t.Fatal("first job must fit in the queue")
	}
	if pool.TryAddJob(2) {
		t.Fatal("second job must be shed, queue size is 1")
	}
}
