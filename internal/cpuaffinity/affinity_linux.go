//go:build linux

package cpuaffinity

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin locks the calling goroutine to its current OS thread and pins that
// thread to CPU core workerID mod runtime.NumCPU(). It must be called from
// the worker goroutine itself, at startup, before it begins its scheduling
// loop. The returned func releases the thread lock and should be deferred.
func Pin(workerID int) func() {
	runtime.LockOSThread()

	numCPU := runtime.NumCPU()
	core := workerID % numCPU
	if core < 0 {
		core += numCPU
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(core)
	_ = unix.SchedSetaffinity(0, &mask) // 0 = current thread; best-effort

	return runtime.UnlockOSThread
}
