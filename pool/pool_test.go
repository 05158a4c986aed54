package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestNew_DefaultsToGOMAXPROCS(t *testing.T) {
	p := New(0)
	defer p.Close()

	if p.WorkerCount() <= 0 {
		t.Fatalf("expected a positive default worker count, got %d", p.WorkerCount())
	}
}

func TestNew_UsesGivenPositiveWorkerCount(t *testing.T) {
	// n <= 0 defaults to GOMAXPROCS, which is always positive in a live
	// process, so New's panic path cannot be reached from a caller; this
	// test checks only that a positive n is used as given.
	p := New(3)
	defer p.Close()
	if p.WorkerCount() != 3 {
		t.Fatalf("expected 3 workers, got %d", p.WorkerCount())
	}
}

func TestPool_IdentityFanOut(t *testing.T) {
	p := New(4)
	defer p.Close()

	const n = 2000
	futures := make([]*futureLike[int], n)
	for i := 0; i < n; i++ {
		i := i
		f, err := Submit(p, func() (int, error) { return i, nil })
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		futures[i] = &futureLike[int]{f}
	}

	for i, f := range futures {
		v, err := f.Get()
		if err != nil {
			t.Fatalf("task %d: unexpected error %v", i, err)
		}
		if v != i {
			t.Fatalf("task %d: expected result %d, got %d", i, i, v)
		}
	}
}

// futureLike adapts *task.Future[R] behind a local interface so tests can
// build slices of futures without importing the task package directly.
type futureLike[R any] struct {
	f interface{ Get() (R, error) }
}

func (h *futureLike[R]) Get() (R, error) { return h.f.Get() }

func TestPool_EmptyTasks(t *testing.T) {
	p := New(4)
	defer p.Close()

	future, err := Submit(p, func() (struct{}, error) { return struct{}{}, nil })
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := future.Get(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPool_DestructorChurn(t *testing.T) {
	// Repeated short-lived pools, each doing a little work, should all shut
	// down cleanly with no leaked goroutines hanging off a stuck worker.
	for i := 0; i < 20; i++ {
		p := New(2)
		var count atomic.Int64
		for j := 0; j < 10; j++ {
			f, err := Submit(p, func() (int, error) {
				count.Add(1)
				return 0, nil
			})
			if err != nil {
				t.Fatalf("round %d submit %d: %v", i, j, err)
			}
			if _, err := f.Get(); err != nil {
				t.Fatalf("round %d task %d: %v", i, j, err)
			}
		}
		p.Close()
		if got := count.Load(); got != 10 {
			t.Fatalf("round %d: expected 10 tasks run, got %d", i, got)
		}
	}
}

func TestPool_VaryingLatency(t *testing.T) {
	p := New(8)
	defer p.Close()

	const n = 100
	futures := make([]*futureLike[int], n)
	for i := 0; i < n; i++ {
		i := i
		f, err := Submit(p, func() (int, error) {
			if i%7 == 0 {
				time.Sleep(2 * time.Millisecond)
			}
			return i * i, nil
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		futures[i] = &futureLike[int]{f}
	}

	for i, f := range futures {
		v, err := f.Get()
		if err != nil {
			t.Fatalf("task %d: %v", i, err)
		}
		if v != i*i {
			t.Fatalf("task %d: expected %d, got %d", i, i*i, v)
		}
	}
}

func TestPool_CloseWithNoSubmissions(t *testing.T) {
	p := New(4)
	done := make(chan struct{})
	go func() {
		p.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return for a pool with no submissions")
	}
}

func TestSubmit_AfterCloseReturnsErrPoolClosed(t *testing.T) {
	p := New(2)
	p.Close()

	_, err := Submit(p, func() (int, error) { return 0, nil })
	if !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}

func TestPool_TaskErrorRidesFuture(t *testing.T) {
	p := New(2)
	defer p.Close()

	wantErr := errors.New("boom")
	future, err := Submit(p, func() (int, error) { return 0, wantErr })
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, gotErr := future.Get()
	if !errors.Is(gotErr, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, gotErr)
	}
}

func TestPool_PanicInTaskBecomesFutureError(t *testing.T) {
	p := New(2)
	defer p.Close()

	future, err := Submit(p, func() (int, error) { panic("task exploded") })
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := future.Get(); err == nil {
		t.Fatal("expected the panic to surface as a future error")
	}
}

func TestPool_Pending_ReachesZeroAfterDrain(t *testing.T) {
	p := New(4)
	defer p.Close()

	var futures []*futureLike[int]
	for i := 0; i < 50; i++ {
		f, err := Submit(p, func() (int, error) { return 1, nil })
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		futures = append(futures, &futureLike[int]{f})
	}
	for _, f := range futures {
		if _, err := f.Get(); err != nil {
			t.Fatalf("task error: %v", err)
		}
	}

	deadline := time.Now().Add(time.Second)
	for p.Pending() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if p.Pending() != 0 {
		t.Fatalf("expected pending to reach 0 after all futures resolved, got %d", p.Pending())
	}
}

func TestOptions_ApplyToConfig(t *testing.T) {
	p := New(3,
		WithDequeCapacity(64),
		WithSpinThreshold(5),
		WithCPUAffinity(),
		WithSeed(42),
	)
	defer p.Close()

	if p.cfg.dequeCapacity != 64 {
		t.Errorf("expected dequeCapacity 64, got %d", p.cfg.dequeCapacity)
	}
	if p.cfg.selfSpinThreshold != 5 {
		t.Errorf("expected selfSpinThreshold 5, got %d", p.cfg.selfSpinThreshold)
	}
	if !p.cfg.cpuAffinity {
		t.Error("expected cpuAffinity to be enabled")
	}
	if p.cfg.seed != 42 {
		t.Errorf("expected seed 42, got %d", p.cfg.seed)
	}
}

func TestWithSpinThreshold_IgnoresNonPositive(t *testing.T) {
	p := New(2, WithSpinThreshold(0))
	defer p.Close()

	if p.cfg.selfSpinThreshold != defaultSelfSpinThreshold {
		t.Errorf("expected default spin threshold to survive a non-positive override, got %d", p.cfg.selfSpinThreshold)
	}
}

func TestProcessAll_PreservesOrder(t *testing.T) {
	p := New(4)
	defer p.Close()

	items := make([]int, 200)
	for i := range items {
		items[i] = i
	}

	results, err := ProcessAll(context.Background(), p, items, func(_ context.Context, v int) (int, error) {
		return v * 2, nil
	})
	if err != nil {
		t.Fatalf("ProcessAll: %v", err)
	}
	for i, v := range results {
		if v != i*2 {
			t.Fatalf("index %d: expected %d, got %d", i, i*2, v)
		}
	}
}

func TestProcessAll_PropagatesFirstError(t *testing.T) {
	p := New(4)
	defer p.Close()

	wantErr := errors.New("item 3 failed")
	items := []int{1, 2, 3, 4, 5}

	_, err := ProcessAll(context.Background(), p, items, func(_ context.Context, v int) (int, error) {
		if v == 3 {
			return 0, wantErr
		}
		return v, nil
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
}

func TestProcessAll_EmptyInput(t *testing.T) {
	p := New(2)
	defer p.Close()

	results, err := ProcessAll(context.Background(), p, []int{}, func(_ context.Context, v int) (int, error) {
		return v, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty result slice, got %v", results)
	}
}

func TestProcessStream_DeliversEveryItem(t *testing.T) {
	p := New(4)
	defer p.Close()

	in := make(chan int)
	ctx := context.Background()
	out := ProcessStream(ctx, p, in, func(_ context.Context, v int) (int, error) {
		return v * v, nil
	})

	const n = 50
	go func() {
		defer close(in)
		for i := 0; i < n; i++ {
			in <- i
		}
	}()

	seen := make(map[int]bool)
	timeout := time.After(2 * time.Second)
	for len(seen) < n {
		select {
		case v := <-out:
			seen[v] = true
		case <-timeout:
			t.Fatalf("timed out with only %d/%d results", len(seen), n)
		}
	}

	for i := 0; i < n; i++ {
		if !seen[i*i] {
			t.Errorf("missing result %d", i*i)
		}
	}
}
