package pool

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/arvindr21/stealpool/deque"
	"github.com/arvindr21/stealpool/internal/semaphore"
	"github.com/arvindr21/stealpool/internal/xrand"
	"github.com/arvindr21/stealpool/task"
)

// ErrInvalidWorkerCount is the construction-time error for a non-positive
// worker count that New cannot default away.
var ErrInvalidWorkerCount = errors.New("pool: worker count must be positive")

// ErrPoolClosed is returned by Submit once the pool has been Closed.
var ErrPoolClosed = errors.New("pool: submit called after Close")

// runnable is whatever a worker can pull off a deque and run. *task.Task[R]
// satisfies it for every R, which is what lets one Deque[runnable] per
// worker hold tasks of arbitrarily different result types.
type runnable interface {
	Invoke()
}

type cacheLinePad [64]byte

// workerQueue is one worker's task source: a counting semaphore for
// sleep/wake plus its Chase-Lev deque. Padded on both sides so adjacent
// queues in Pool.queues don't false-share a cache line.
type workerQueue struct {
	_ cacheLinePad

	sem *semaphore.Semaphore
	dq  *deque.Deque[runnable]

	// pushMu serializes Push calls onto dq. Chase-Lev's push/pop require a
	// single owner thread, but this pool's external submitters round-robin
	// across workers and may race to target the same worker concurrently;
	// this mutex is that single logical owner. It never touches Steal, so
	// stealing remains exactly as lock-free as the deque alone provides.
	pushMu sync.Mutex

	_ cacheLinePad
}

// Pool is a fixed-size work-stealing thread pool. The zero value is not
// usable; construct one with New.
type Pool struct {
	queues []*workerQueue
	rngs   []*xrand.Rand

	pending    atomic.Int64
	nextWorker atomic.Uint64
	stopped    atomic.Bool

	wg  sync.WaitGroup
	cfg config
}

// New constructs a Pool with n workers (defaulting to
// runtime.GOMAXPROCS(0) when n <= 0) and starts them immediately. Callers
// that need all submitted tasks to finish must await every returned Future
// before calling Close; Close does not itself wait for pending work.
func New(n int, opts ...Option) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n <= 0 {
		panic(ErrInvalidWorkerCount)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Pool{
		cfg:    cfg,
		queues: make([]*workerQueue, n),
		rngs:   make([]*xrand.Rand, n),
	}

	base := xrand.New(cfg.seed)
	for i := 0; i < n; i++ {
		p.queues[i] = &workerQueue{
			sem: semaphore.New(0),
			dq:  deque.New[runnable](cfg.dequeCapacity),
		}
		// Worker i's stream is the shared base stream jumped i times, so
		// no two workers' victim-selection sequences overlap.
		p.rngs[i] = base.Clone()
		base.Jump()
	}

	p.wg.Add(n)
	for i := 0; i < n; i++ {
		workerID := i // bind by value: see the loop-capture note in worker.go
		go p.runWorker(workerID)
	}

	return p
}

// Submit enqueues f for execution and returns a Future that resolves with
// f's result, or the error it raised, once some worker runs it. Submit
// never blocks. It returns ErrPoolClosed if the pool has already been
// Closed.
//
// Submit is a free function, not a method, because Go methods cannot
// introduce their own type parameters: R is fixed per call, not per Pool,
// so one Pool can carry tasks of many different result types at once.
func Submit[R any](p *Pool, f func() (R, error)) (*task.Future[R], error) {
	if p.stopped.Load() {
		return nil, ErrPoolClosed
	}

	t, future := task.New(f)

	slot := int(p.nextWorker.Add(1) % uint64(len(p.queues)))
	q := p.queues[slot]

	p.pending.Add(1)

	q.pushMu.Lock()
	q.dq.Push(runnable(t))
	q.pushMu.Unlock()

	q.sem.Signal()

	return future, nil
}

// Close requests that every worker stop once it has drained whatever is
// currently pending, then waits for all workers to return. It does not
// wait for pending to reach zero before requesting stop: a worker that is
// mid-drain keeps going until pending == 0 on its own, per the worker
// loop's own termination check, but Close itself only signals and joins.
// Callers that need submitted work to finish must await its futures
// before calling Close.
func (p *Pool) Close() {
	p.stopped.Store(true)
	for _, q := range p.queues {
		q.sem.Signal()
	}
	p.wg.Wait()
}

// WorkerCount returns the number of workers the pool was constructed with.
func (p *Pool) WorkerCount() int {
	return len(p.queues)
}

// Pending returns the approximate number of submitted-but-unfinished
// tasks. Advisory under concurrent submission and completion, never used
// internally for anything but the workers' own quiescence check.
func (p *Pool) Pending() int64 {
	return p.pending.Load()
}
