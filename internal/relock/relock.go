//go:build !region_nolock

// Package relock implements the single, process-wide recursive lock that
// guards every mutation of region/proxy/ring/member state (spec §5's
// "static mutex"). A plain [sync.Mutex] is not reentrant, and a payload's
// Destroy hook is permitted to re-enter region operations (e.g. releasing
// a Node field) while teardown already holds the lock — so this type
// tracks the owning goroutine and allows nested Lock calls from it.
package relock

import (
	"sync"

	"github.com/joeycumines/goroutineid"
)

// Mutex is a recursive mutex: Lock is safe to call again from the same
// goroutine that already holds it, and the critical section only actually
// unlocks once the outermost Unlock runs. The zero value is ready to use.
type Mutex struct {
	once  sync.Once
	sem   chan struct{}
	state sync.Mutex
	owner uint64
	held  bool
	depth int
}

func (m *Mutex) init() {
	m.once.Do(func() {
		m.sem = make(chan struct{}, 1)
		m.sem <- struct{}{}
	})
}

// Lock acquires the lock, or increments the reentrancy depth if the
// current goroutine already holds it.
func (m *Mutex) Lock() {
	m.init()

	id := goroutineid.Get()

	m.state.Lock()
	if m.held && m.owner == id {
		m.depth++
		m.state.Unlock()
		return
	}
	m.state.Unlock()

	<-m.sem

	m.state.Lock()
	m.owner = id
	m.held = true
	m.depth = 1
	m.state.Unlock()
}

// Unlock decrements the reentrancy depth, releasing the underlying lock
// only when it reaches zero.
//
// Unlock panics if called by a goroutine that does not hold the lock; this
// is always a programming error in this package, never a caller-facing
// condition.
func (m *Mutex) Unlock() {
	m.init()

	id := goroutineid.Get()

	m.state.Lock()
	if !m.held || m.owner != id {
		m.state.Unlock()
		panic("region: relock: unlock by non-owner")
	}

	m.depth--
	if m.depth > 0 {
		m.state.Unlock()
		return
	}

	m.held = false
	m.owner = 0
	m.state.Unlock()

	m.sem <- struct{}{}
}
