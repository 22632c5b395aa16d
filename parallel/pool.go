// Package parallel runs independent jobs on a fixed number of workers.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

type (
	// WorkerFunc queues a job; it blocks while every worker is busy.
	WorkerFunc func(job func() error)
	// WaitFunc blocks until queued jobs are done. With done set no more jobs
	// may be queued afterwards.
	WaitFunc   func(done bool)
	CancelFunc func()
)

type Pool struct {
	wg     sync.WaitGroup
	Do     WorkerFunc
	Wait   WaitFunc
	Cancel CancelFunc

	succeeded atomic.Uint64
	failed    atomic.Uint64
}

// Start returns a pool of numWorkers workers, GOMAXPROCS when numWorkers < 1.
// A single worker runs jobs inline on the caller's goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Wait:   func(bool) {},
		Cancel: func() {},
	}
	pool.Do = pool.run

	if numWorkers > 1 {
		workChan := make(chan func() error, numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for job := range workChan {
					pool.run(job)
				}
			})
		}

		pool.Do = func(job func() error) {
			workChan <- job
		}
		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

func (p *Pool) run(job func() error) {
	if err := job(); err != nil {
		p.failed.Add(1)
		return
	}
	p.succeeded.Add(1)
}

// Stats returns how many jobs returned nil and how many an error so far.
func (p *Pool) Stats() (succeeded, failed uint64) {
	return p.succeeded.Load(), p.failed.Load()
}
