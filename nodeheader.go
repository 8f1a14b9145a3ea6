package region

// nodeHeader is the non-generic control block shared by every node[T],
// regardless of T. The source models this as a virtual base class
// (node_base); Go has no useful equivalent of a non-generic virtual base
// holding a generic payload, so the "virtual" destructor call is instead a
// closure captured at construction time, and the generic node[T] embeds a
// nodeHeader for its non-generic parts: the strong count and the
// region-membership linkage.
//
// Exactly one nodeHeader is allocated per node; it is never copied or
// moved, satisfying the source's note that stable pointer identity is not
// promised but is, in practice, exactly what this layout already gives.
type nodeHeader struct {
	rc    uint32
	owner *proxy

	// destroy invokes the payload's optional Destroy hook. nil for a
	// header acting purely as a members-list sentinel (see proxy.members).
	destroy func()

	// memberPrev/memberNext form the circular, sentinel-based intrusive
	// list of a proxy's members (spec's region_link), embedded directly
	// in the header rather than boxed separately — one allocation per
	// node, not two.
	memberPrev, memberNext *nodeHeader
}

// listInit makes h a one-element (empty) circular list, acting as its own
// sentinel. Every proxy's members sentinel is initialized this way.
func (h *nodeHeader) listInit() {
	h.memberPrev = h
	h.memberNext = h
}

// listEmpty reports whether the sentinel's list has no members.
func (h *nodeHeader) listEmpty() bool {
	return h.memberNext == h
}

// listPushBack inserts n as the new last element of the sentinel's list.
// n must not already belong to a list (spec's "no duplicate adoption").
func (sentinel *nodeHeader) listPushBack(n *nodeHeader) {
	n.memberNext = sentinel
	n.memberPrev = sentinel.memberPrev
	sentinel.memberPrev.memberNext = n
	sentinel.memberPrev = n
}

// listMerge splices other's members onto the end of sentinel's list,
// leaving other empty. O(1); mirrors intrusive_list::merge in the source.
func (sentinel *nodeHeader) listMerge(other *nodeHeader) {
	if other.listEmpty() {
		return
	}

	first, last := other.memberNext, other.memberPrev
	tail := sentinel.memberPrev

	tail.memberNext = first
	first.memberPrev = tail

	last.memberNext = sentinel
	sentinel.memberPrev = last

	other.listInit()
}

// listEach walks the sentinel's list front-to-back (insertion order),
// calling fn for every member. fn must not mutate the list.
func (sentinel *nodeHeader) listEach(fn func(*nodeHeader)) {
	for n := sentinel.memberNext; n != sentinel; n = n.memberNext {
		fn(n)
	}
}

// retain increments the strong count. O(1), never fails.
func (h *nodeHeader) retain() {
	h.rc++
}

// release decrements the strong count. It does not free anything — node
// reclamation only ever happens in bulk, from proxy.destroyAll — this is
// what permits cycles: two nodes holding each other's rc at 1 are both
// reclaimed together when their region dies, instead of deadlocking on
// each other's refcount.
func (h *nodeHeader) release() {
	if h.rc > 0 {
		h.rc--
	}
}

// runDestroy invokes the payload's Destroy hook, if any, recovering a
// panic rather than propagating it — payload destructors are expected not
// to panic (the source's "noexcept" contract), but Go offers no way to
// enforce that statically, so teardown degrades to "collect and report"
// instead of leaving the region half torn down. See proxy.destroyAll.
func (h *nodeHeader) runDestroy() (recovered any) {
	defer func() {
		recovered = recover()
	}()
	if h.destroy != nil {
		h.destroy()
	}
	return
}
