package region

// HasProxy is the owner argument of [MakeNode]: any handle that can tell a
// new [Node] where to adopt into (the payload-side binding hook is
// [ProjectsRegion]). [Root] and [Node] both implement
// it; the method is unexported, so it is effectively sealed to this
// package's own handle types — callers simply pass a Root[V] or Node[V]
// of whatever V they have at hand, without a global or thread-local proxy
// lookup.
type HasProxy interface {
	regionProxy() *proxy
}

// Destroyer is implemented by a payload that needs to run cleanup when
// its node is reclaimed. Destroy may dereference [Node] fields stored in
// the payload; those handles remain valid (their payload pointers are
// not yet nulled) until after Destroy returns, even though the whole
// ring is mid-teardown — see the "destroying" state machine in spec.md
// §4.3.
//
// Destroy is expected not to panic; if it does, destroyAll recovers and
// aggregates the panic value to report once the whole region has finished
// tearing down (see aggregatePanic in proxy.go) rather than abandoning
// the rest of the region.
type Destroyer interface {
	Destroy()
}
