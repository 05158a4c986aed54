//go:build !debug

package pool

// debugLog is a no-op outside of debug builds; see debug.go for the
// -tags debug implementation.
func debugLog(format string, args ...interface{}) {}
