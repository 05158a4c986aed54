//go:build windows

package cpuaffinity

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// Pin locks the calling goroutine to its current OS thread and pins that
// thread to CPU core workerID mod runtime.NumCPU(). The returned func
// releases the thread lock and should be deferred.
func Pin(workerID int) func() {
	runtime.LockOSThread()

	numCPU := runtime.NumCPU()
	core := workerID % numCPU
	if core < 0 {
		core += numCPU
	}

	handle, _, _ := getCurrentThread.Call()
	mask := uintptr(1) << uintptr(core)
	_, _, _ = setThreadAffinityMask.Call(handle, mask) // best-effort

	return runtime.UnlockOSThread
}
