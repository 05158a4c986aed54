//go:build darwin

package cpuaffinity

import "runtime"

// Pin locks the calling goroutine to its current OS thread. CPU core
// pinning has no stable public API on macOS, so this is LockOSThread-only;
// the returned func releases the thread lock and should be deferred.
func Pin(workerID int) func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}
