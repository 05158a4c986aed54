//go:build !linux && !darwin && !windows

package cpuaffinity

import "runtime"

// Pin locks the calling goroutine to its current OS thread. No core-pinning
// syscall is wired up for this platform; the returned func releases the
// thread lock and should be deferred.
func Pin(workerID int) func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
