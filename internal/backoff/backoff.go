// Package backoff implements pluggable retry-delay strategies for the
// pool package's opt-in SubmitWithRetry helper. These strategies govern
// only that convenience layer; the core Pool/Submit/Future path never
// retries a task on its own.
package backoff

import (
	"math/rand"
	"sync"
	"time"
)

// Strategy computes the delay before the next retry attempt.
// attempt is 0-indexed (0 = delay before the first retry).
type Strategy interface {
	NextDelay(attempt int) time.Duration
}

const maxShift = 62 // guards against overflow in 1<<attempt

// Exponential doubles the delay on every attempt, capped at Max.
type Exponential struct {
	Initial, Max time.Duration
}

// NewExponential constructs an Exponential backoff strategy.
func NewExponential(initial, max time.Duration) *Exponential {
	return &Exponential{Initial: initial, Max: max}
}

// NextDelay returns initial * 2^attempt, capped at Max.
func (e *Exponential) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		return 0
	}
	if attempt > maxShift {
		return e.Max
	}
	delay := e.Initial * time.Duration(int64(1)<<uint(attempt))
	if delay <= 0 || delay > e.Max {
		return e.Max
	}
	return delay
}

// Jittered wraps exponential backoff with a uniform +/-factor jitter,
// spreading out retries that would otherwise synchronize (the "thundering
// herd" problem).
type Jittered struct {
	Initial, Max time.Duration
	Factor       float64 // 0..1

	mu  sync.Mutex
	rng *rand.Rand
}

// NewJittered constructs a Jittered backoff strategy. factor is clamped to
// [0, 1].
func NewJittered(initial, max time.Duration, factor float64) *Jittered {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	return &Jittered{
		Initial: initial,
		Max:     max,
		Factor:  factor,
		rng:     rand.New(rand.NewSource(1)), // #nosec G404 -- jitter only, not security sensitive
	}
}

// NextDelay returns an exponential delay perturbed by up to +/-Factor.
func (j *Jittered) NextDelay(attempt int) time.Duration {
	base := (&Exponential{Initial: j.Initial, Max: j.Max}).NextDelay(attempt)

	j.mu.Lock()
	mult := 1 + (j.rng.Float64()*2-1)*j.Factor
	j.mu.Unlock()

	d := time.Duration(float64(base) * mult)
	if d < 0 {
		return 0
	}
	if d > j.Max {
		return j.Max
	}
	return d
}

// Decorrelated implements AWS-style decorrelated jitter: each delay is a
// random value between Initial and 3x the previous delay, capped at Max.
// This decorrelates concurrent retries better than a simple jittered
// exponential, since the delay depends on the previous draw rather than
// only on the attempt number.
//
// Reference: Marc Brooker, "Exponential Backoff And Jitter", AWS
// Architecture Blog, 2015.
type Decorrelated struct {
	Initial, Max time.Duration

	mu   sync.Mutex
	prev time.Duration
	rng  *rand.Rand
}

// NewDecorrelated constructs a Decorrelated backoff strategy.
func NewDecorrelated(initial, max time.Duration) *Decorrelated {
	return &Decorrelated{
		Initial: initial,
		Max:     max,
		prev:    initial,
		rng:     rand.New(rand.NewSource(1)), // #nosec G404 -- jitter only, not security sensitive
	}
}

// NextDelay returns Random(Initial, prev*3), capped at Max.
func (d *Decorrelated) NextDelay(attempt int) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	if attempt <= 0 {
		d.prev = d.Initial
		return d.Initial
	}

	upper := d.prev * 3
	if upper > d.Max || upper <= 0 {
		upper = d.Max
	}

	span := upper - d.Initial
	if span <= 0 {
		d.prev = d.Initial
		return d.Initial
	}

	delay := d.Initial + time.Duration(d.rng.Int63n(int64(span)))
	d.prev = delay
	return delay
}
