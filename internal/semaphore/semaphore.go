// Package semaphore provides a minimal counting semaphore used to put idle
// pool workers to sleep and wake them again, without pulling in a
// mutex/condvar-based implementation of its own: a buffered channel already
// gives Go the exact wait/signal contract this needs.
package semaphore

// Semaphore is a counting semaphore whose count is capped at its initial
// count plus one. Wait blocks until a token is available; Signal never
// blocks, even if no one is waiting, and a Signal made while the count is
// at its cap is dropped rather than counted.
//
// The zero value is not usable; construct one with New.
type Semaphore struct {
	c chan struct{}
}

// New constructs a Semaphore with the given initial count.
func New(initial int) *Semaphore {
	if initial < 0 {
		initial = 0
	}
	s := &Semaphore{c: make(chan struct{}, initial+1)}
	for i := 0; i < initial; i++ {
		s.c <- struct{}{}
	}
	return s
}

// Wait blocks until a token is available, consuming it.
func (s *Semaphore) Wait() {
	<-s.c
}

// Signal makes one token available, waking one blocked Wait if any is
// waiting. It never blocks: if the count is already at its cap (the
// initial count plus one), the signal is dropped.
func (s *Semaphore) Signal() {
	select {
	case s.c <- struct{}{}:
	default:
	}
}
