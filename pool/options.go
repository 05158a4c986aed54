package pool

import "golang.org/x/time/rate"

const (
	defaultDequeCapacity     = 1024
	defaultSelfSpinThreshold = 100
)

type config struct {
	dequeCapacity     int
	selfSpinThreshold int
	cpuAffinity       bool
	rateLimiter       *rate.Limiter
	seed              uint64
}

func defaultConfig() config {
	return config{
		dequeCapacity:     defaultDequeCapacity,
		selfSpinThreshold: defaultSelfSpinThreshold,
		seed:              0x9E3779B97F4A7C15,
	}
}

// Option configures a Pool at construction time.
type Option func(*config)

// WithDequeCapacity sets the initial capacity of every per-worker deque.
// A positive value must be a power of two; New panics otherwise. A value
// <= 0 selects the deque's own default. Defaults to 1024.
func WithDequeCapacity(capacity int) Option {
	return func(c *config) { c.dequeCapacity = capacity }
}

// WithSpinThreshold sets how many consecutive failed steal attempts a
// worker tolerates against its own queue before it starts picking random
// victims. Spec default is 100: low values bias toward load balancing at
// the cost of more cross-queue traffic, high values bias toward self
// (cache-friendly) at the cost of slower rebalancing when a worker's own
// queue runs dry.
func WithSpinThreshold(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.selfSpinThreshold = n
		}
	}
}

// WithCPUAffinity pins every worker's OS thread to a distinct CPU core
// (workerID mod runtime.NumCPU()) at startup. A no-op lock-only fallback is
// used on platforms without a core-pinning syscall wired up.
func WithCPUAffinity() Option {
	return func(c *config) { c.cpuAffinity = true }
}

// WithRateLimiter throttles task execution: before invoking a stolen task,
// a worker blocks on limiter.Wait. Useful for capping throughput against a
// downstream dependency the tasks call into. Submission itself is never
// throttled, only execution.
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(c *config) { c.rateLimiter = limiter }
}

// WithSeed fixes the base PRNG seed victim selection is derived from.
// Mainly useful for deterministic tests; production callers normally leave
// this at its default.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed = seed }
}
