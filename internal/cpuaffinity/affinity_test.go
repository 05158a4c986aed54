package cpuaffinity

import "testing"

func TestPin_ReturnsCleanup(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		unpin := Pin(3)
		if unpin == nil {
			t.Error("expected a non-nil cleanup function")
		}
		unpin()
	}()
	<-done
}
