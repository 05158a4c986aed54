// Package cpuaffinity optionally pins a pool worker's OS thread to a
// single CPU core, trading portability for cache locality on machines
// where cross-core migration of a hot worker goroutine is measurable.
package cpuaffinity
