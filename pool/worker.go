package pool

import (
	"context"

	"github.com/arvindr21/stealpool/internal/cpuaffinity"
)

// runWorker is the scheduling loop for worker workerID. It runs until the
// pool is closed and its own queue (and every other queue it can see) has
// nothing left for it.
//
// workerID is captured by value at the call site in New, not by reference
// to the loop variable: a design that shares one captured index across all
// workers would have every worker waiting on the last queue's semaphore
// instead of its own, since by the time any goroutine runs the shared
// variable has already reached its final value. Binding a fresh local per
// iteration (as New does before calling go p.runWorker(workerID)) is what
// keeps worker i actually tied to queue i.
func (p *Pool) runWorker(workerID int) {
	defer p.wg.Done()

	if p.cfg.cpuAffinity {
		defer cpuaffinity.Pin(workerID)()
	}

	q := p.queues[workerID]
	rng := p.rngs[workerID]
	n := len(p.queues)

	debugLog("worker %d: starting", workerID)
	defer debugLog("worker %d: stopping", workerID)

	for {
		q.sem.Wait()

		spins := 0
		for p.pending.Load() > 0 {
			victim := workerID
			if spins >= p.cfg.selfSpinThreshold && q.dq.Size() == 0 {
				victim = rng.Intn(n)
			}

			t, ok := p.queues[victim].dq.Steal()
			if !ok {
				spins++
				debugLog("worker %d: steal from %d missed", workerID, victim)
				continue
			}
			spins = 0
			debugLog("worker %d: stole from %d", workerID, victim)

			// pending is decremented before invocation so a concurrent
			// Close (or another worker checking quiescence) observes the
			// task as already accounted for, per the acquire/release
			// discipline in spec: every write preceding this decrement
			// must be visible to whoever next reads pending == 0.
			p.pending.Add(-1)

			if p.cfg.rateLimiter != nil {
				_ = p.cfg.rateLimiter.Wait(context.Background())
			}

			t.Invoke()
		}

		if p.stopped.Load() {
			return
		}
	}
}
