// Package profile provides optional runtime profiling for the cmortab
// application.
//
// This package integrates [github.com/pkg/profile] behind the "pprof"
// build tag. When built without the tag (the default), all operations
// are no-ops with zero runtime overhead.
//
// The following profiling modes are supported when built with the tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// The profiler is configured with functional options applied to a
// [Config] and started with [Config.Start]:
//
//	var cfg profile.Config = func() (string, string, bool) {
//	    return "cpu", "/tmp/profiles", false
//	}
//	defer cfg.Start().Stop()
//
// Profile files are written to the configured directory with names
// matching the profiling mode (e.g., cpu.pprof, heap.pprof). Analyze
// them with:
//
//	go tool pprof ./cmortab /tmp/profiles/cpu.pprof
//
// The cmortab command exposes profiling through the -pprof-mode and
// -pprof-dir flags when built with the pprof tag.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
