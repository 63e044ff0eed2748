// Package workerpool bounds concurrent fan-out work.
//
// A Pool runs at most size goroutines. When the queue is full Submit
// fails fast with ErrPoolFull so the caller can shed load or fall back
// to running the task inline:
//
//	pool := workerpool.New(10)
//	defer pool.Shutdown()
//	if err := pool.Submit(task); errors.Is(err, workerpool.ErrPoolFull) {
//	    task()
//	}
package workerpool

import (
	"errors"
	"sync"
)

var (
	// ErrPoolFull means the queue is at capacity.
	ErrPoolFull = errors.New("workerpool: pool is full")
	// ErrPoolClosed means Shutdown has already been called.
	ErrPoolClosed = errors.New("workerpool: pool is closed")
)

// Pool is a fixed-size worker pool with a bounded queue.
type Pool struct {
	queue   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	closing sync.Once
}

// New starts size workers. The queue holds twice that many pending
// tasks to absorb bursts.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{
		queue: make(chan func(), 2*size),
		done:  make(chan struct{}),
	}
	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for task := range p.queue {
		run(task)
	}
}

// run isolates a panicking task from its worker.
func run(task func()) {
	defer func() { recover() }() //nolint:errcheck
	task()
}

// Submit enqueues task without blocking. ErrPoolFull when the queue is
// at capacity, ErrPoolClosed after Shutdown.
func (p *Pool) Submit(task func()) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	default:
	}
	select {
	case p.queue <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until the task is queued or the pool closes.
func (p *Pool) SubmitWait(task func()) error {
	select {
	case <-p.done:
		return ErrPoolClosed
	case p.queue <- task:
		return nil
	}
}

// Shutdown stops intake and waits for queued tasks to finish. Safe to
// call more than once.
func (p *Pool) Shutdown() {
	p.closing.Do(func() {
		close(p.done)
		close(p.queue)
		p.wg.Wait()
	})
}
