//go:build region_nolock

// Package relock, built with region_nolock, compiles the region lock down
// to a no-op: the equivalent of the source's BOOST_DISABLE_THREADS switch,
// for callers who only ever touch a region from one goroutine and want to
// avoid the (small) locking overhead.
package relock

// Mutex is a no-op stand-in for the reentrant lock; see the default
// build's relock.go for the real implementation.
type Mutex struct{}

func (m *Mutex) Lock()   {}
func (m *Mutex) Unlock() {}
