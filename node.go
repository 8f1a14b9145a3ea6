package region

import "fmt"

// node is the generic pointee wrapper (spec's node<T>): a nodeHeader plus
// the payload, obtained from an [Allocator]. Exactly one node[T] backs
// every live Root[T]/Node[T] chain referencing the same object.
type node[T any] struct {
	hdr     nodeHeader
	payload *T
	alloc   Allocator[T]
}

// newNode allocates a payload via alloc, wires its destroy hook, and
// returns a node with rc=1, not yet adopted into any proxy.
func newNode[T any](alloc Allocator[T]) (*node[T], error) {
	p, err := alloc.Allocate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	if p == nil {
		return nil, ErrAllocation
	}

	n := &node[T]{payload: p, alloc: alloc}
	n.hdr.rc = 1
	n.hdr.destroy = func() {
		if d, ok := any(n.payload).(Destroyer); ok {
			d.Destroy()
		}
		alloc.Deallocate(n.payload)
		n.payload = nil
	}
	return n, nil
}

// Node is a heap-resident handle: it is meant to live inside a payload,
// referencing a node in some region without anchoring it (spec's
// node_ptr). Its zero value is a valid, empty handle.
type Node[T any] struct {
	n  *node[T]
	px *proxy
}

var _ HasProxy = Node[int]{}

func (n Node[T]) regionProxy() *proxy { return n.px }

// MakeNode allocates a T inside the region owning owner (a Root[V] or
// Node[V] for any V), adopting the new node into that region.
func MakeNode[T any](owner HasProxy, opts ...Option) (Node[T], error) {
	return makeNode[T](owner, nil, opts)
}

// MakeNodeValue allocates a T inside owner's region, initialized to v.
func MakeNodeValue[T any](owner HasProxy, v T, opts ...Option) (Node[T], error) {
	return makeNode(owner, &v, opts)
}

// makeNode backs MakeNode and MakeNodeValue. A non-nil v is copied into
// the payload before the ProjectRegion hook runs, so the hook's bindings
// are not overwritten by the initial value.
func makeNode[T any](owner HasProxy, v *T, opts []Option) (Node[T], error) {
	px := owner.regionProxy()
	if px == nil {
		return Node[T]{}, fmt.Errorf("region: MakeNode: owner has no region")
	}

	c := resolveConfig(opts)
	alloc := resolveAllocator[T](c)

	nd, err := newNode[T](alloc)
	if err != nil {
		return Node[T]{}, err
	}
	if v != nil {
		*nd.payload = *v
	}

	lock.Lock()
	defer lock.Unlock()

	if px.isDestroying() {
		invariant("node", "MakeNode: owner's region is destroying")
	}
	px.adopt(&nd.hdr)
	project(nd.payload, px)

	return Node[T]{n: nd, px: px}, nil
}

// Get borrows the payload, or nil if n is a reset/zero-value handle
// (spec's DanglingDereference manifests in Go as a nil pointer rather
// than a contract-violation panic).
func (n Node[T]) Get() *T {
	if n.n == nil {
		return nil
	}
	return n.n.payload
}

// RefCount returns the node's current strong count, mirrored from the
// source's block_ptr_common::use_count(); for diagnostics/tests only,
// never consulted for control flow.
func (n Node[T]) RefCount() uint32 {
	if n.n == nil {
		return 0
	}
	lock.Lock()
	defer lock.Unlock()
	return n.n.hdr.rc
}

// Reset releases the currently-referenced payload (if any) and leaves n
// usable for a subsequent Assign.
func (n *Node[T]) Reset() {
	lock.Lock()
	defer lock.Unlock()
	n.reset()
}

// reset performs the release with the lock already held.
func (n *Node[T]) reset() {
	if n.n == nil {
		n.px = nil
		return
	}
	if n.px != nil && n.px.isDestroying() {
		// Cycle-safety pivot (spec §4.3): while the owning ring is
		// tearing down, node-handle release is a no-op on counts —
		// the backing node is already queued for (or mid-)
		// destruction, and double-releasing it would be reentrant.
		n.n = nil
		n.px = nil
		return
	}
	n.n.hdr.release()
	n.n = nil
	n.px = nil
}

// CloneNode returns a new handle sharing src's payload: it takes src's
// proxy and retains the payload, matching the source's
// node_ptr copy-constructor (distinct from Assign, which additionally
// releases whatever the destination previously held). CloneNode never
// introduces a new ring — it always shares src's existing proxy — so a
// destroying src is never a cross-ring hazard; the retain is simply
// skipped, the cycle-safety pivot's no-op on reference counts (spec
// §4.3), matching a reentrant clone from within src's own Destroy hook.
func CloneNode[T any](src Node[T]) Node[T] {
	lock.Lock()
	defer lock.Unlock()

	if src.n == nil {
		return Node[T]{}
	}
	if src.px == nil || !src.px.isDestroying() {
		src.n.hdr.retain()
	}
	return Node[T]{n: src.n, px: src.px}
}

// Assign performs node-handle assignment (spec §4.3): if both proxies
// already share a ring, it is a simple retain/release; otherwise it
// unifies the rings first. Self-assignment is a documented no-op.
//
// A destroying src is fatal only when it would require a genuine
// cross-ring unify or newly reference a dead region from outside its
// ring; a reentrant Assign between two handles that already share a
// mid-teardown ring (e.g. a Destroy hook doing c.a.Assign(c.b) where
// both fields already point into the ring being torn down) is the
// cycle-safety pivot's no-op case instead, and falls through to reset's
// existing no-op path.
func (n *Node[T]) Assign(src Node[T]) {
	lock.Lock()
	defer lock.Unlock()

	if n.n == src.n && n.px == src.px {
		return
	}

	sameRing := n.px != nil && src.px != nil && n.px.sameRing(src.px)
	destroyingNoOp := sameRing && src.px.isDestroying()

	if src.px != nil && src.px.isDestroying() && !sameRing {
		invariant("node", "Assign: source region is destroying")
	}

	if src.n != nil && !destroyingNoOp {
		if n.px != nil && n.px != src.px {
			n.px.unify(src.px)
		}
		src.n.hdr.retain()
	}

	n.reset()

	n.n = src.n
	n.px = src.px
}
