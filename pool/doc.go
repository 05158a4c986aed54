// Package pool implements a work-stealing thread pool: a fixed set of
// worker goroutines, each backed by its own Chase-Lev lock-free deque
// (package deque), onto which short-lived tasks are dispatched and from
// which idle peers steal work when their own deque runs dry.
//
// # Basic usage
//
//	p := pool.New(4)
//	defer p.Close()
//
//	future, err := pool.Submit(p, func() (int, error) {
//	    return 42, nil
//	})
//	if err != nil {
//	    // pool already closed
//	}
//	v, err := future.Get()
//
// # Scheduling
//
// Submit round-robins new tasks across workers. Each worker takes tasks
// from its own deque with Steal, oldest first (FIFO), and, once it has
// failed WithSpinThreshold consecutive attempts while its own deque is
// empty, starts stealing FIFO from a randomly chosen worker's deque. Victim selection uses an independent xoroshiro128**
// stream per worker so no two workers' steal sequences correlate.
//
// # Batch helpers
//
// ProcessAll and ProcessStream are convenience wrappers over Submit for the
// common case of fanning a slice or channel of inputs out across the pool
// and collecting results; they add no scheduling semantics beyond what
// Submit already provides.
//
// # Configuration
//
//   - WithDequeCapacity(n): initial per-worker deque capacity (default 1024)
//   - WithSpinThreshold(n): failed self-steals before trying a random peer
//   - WithCPUAffinity(): pin each worker's OS thread to its own core
//   - WithRateLimiter(l): throttle task execution against l
//   - WithSeed(s): fix the base PRNG seed (mainly for deterministic tests)
package pool
