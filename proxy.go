package region

import (
	"github.com/joeycumines/logiface"

	"github.com/detreg/region/internal/relock"
)

// lock is the single, process-wide recursive lock guarding every mutation
// of proxy/ring/member state (spec §5's "static mutex"). It is held for
// the duration of each handle operation, and for the entirety of
// destroyAll — see internal/relock for why it must be reentrant.
var lock relock.Mutex

// proxy is the region's coordinator: the bookkeeping object that owns a
// dynamic equivalence class of nodes (spec's node_proxy). Several proxies
// may be linked into a ring that shares one logical region; destroying any
// proxy in a ring destroys the members of all of them.
type proxy struct {
	members    nodeHeader // sentinel; never holds a payload
	ringPrev   *proxy
	ringNext   *proxy
	anchors    uint32
	destroying bool
	logger     *logiface.Logger[logiface.Event]
}

// newProxy allocates a fresh, singleton-ring proxy with anchors=1, as
// created by a Root constructor.
func newProxy(logger *logiface.Logger[logiface.Event]) *proxy {
	p := &proxy{anchors: 1, logger: logger}
	p.members.listInit()
	p.ringPrev = p
	p.ringNext = p
	return p
}

// adopt appends n to p's member list and sets its owner. n must be a
// freshly allocated header, not yet a member of any proxy — the single
// adoption point that gives spec's "no duplicate adoption" invariant.
func (p *proxy) adopt(n *nodeHeader) {
	if n.owner != nil {
		invariant("proxy", "adopt: node already owned")
	}
	n.owner = p
	p.members.listPushBack(n)
	if l := p.logger; l != nil {
		l.Debug().Log("region: adopted node")
	}
}

// sameRing reports whether o is already linked into p's ring. O(ring
// length), bounded because rings are expected to stay short in practice
// (spec §5).
func (p *proxy) sameRing(o *proxy) bool {
	for i := p; ; i = i.ringNext {
		if i == o {
			return true
		}
		if i.ringNext == p {
			return false
		}
	}
}

// unify merges o's ring into p's ring. O(1); idempotent when o already
// shares p's ring (checked via sameRing first, matching the source's
// intersects probe). Members are never moved between proxies here — the
// ring, not any individual proxy, is the unit of destruction.
func (p *proxy) unify(o *proxy) {
	if p == o || p.sameRing(o) {
		return
	}
	if p.destroying || o.destroying {
		invariant("proxy", "unify during destroy")
	}

	// Splice the two disjoint rings into one: insert o immediately
	// before p, the same ring-splice the source performs via
	// intrusive_list_node::insert on proxy_tag_.
	oPrev := o.ringPrev
	pPrev := p.ringPrev

	pPrev.ringNext = o
	o.ringPrev = pPrev

	oPrev.ringNext = p
	p.ringPrev = oPrev

	if l := p.logger; l != nil {
		l.Debug().Log("region: unified proxies")
	} else if l := o.logger; l != nil {
		l.Debug().Log("region: unified proxies")
	}
}

// ringSize returns the number of proxies currently sharing p's ring.
func (p *proxy) ringSize() int {
	n := 0
	for i := p; ; i = i.ringNext {
		n++
		if i.ringNext == p {
			return n
		}
	}
}

// isDestroying reports whether p's ring is currently tearing down.
func (p *proxy) isDestroying() bool {
	return p.destroying
}

// anchorInc increments p's anchor count: a new Root has claimed p.
func (p *proxy) anchorInc() {
	p.anchors++
}

// anchorDec decrements p's anchor count, reclaiming the region when it
// reaches zero and p is the last proxy anchoring its ring.
//
//   - If the ring still has other proxies, p's members move onto the next
//     proxy in the ring (O(1) splice) and p is detached and discarded — no
//     destructors run, because the ring as a whole is still anchored.
//   - If p is alone in its ring, its members are destroyed via
//     destroyAll.
func (p *proxy) anchorDec() {
	if p.anchors == 0 {
		invariant("proxy", "anchorDec: anchors already zero")
	}
	p.anchors--
	if p.anchors != 0 {
		return
	}

	if p.ringSize() > 1 {
		next := p.ringNext
		next.members.listMerge(&p.members)
		p.detachFromRing()
		return
	}

	p.destroyAll()
}

// detachFromRing removes p from its ring, leaving it a singleton. Used
// only when p has no members of its own left to account for (anchorDec's
// multi-proxy branch, after merging members onto the next proxy).
func (p *proxy) detachFromRing() {
	p.ringPrev.ringNext = p.ringNext
	p.ringNext.ringPrev = p.ringPrev
	p.ringPrev = p
	p.ringNext = p
}

// destroyAll tears down every proxy sharing p's ring: marks the whole ring
// destroying, runs every member's destructor in per-proxy insertion order
// and ring-traversal order starting from p (a public, tested contract —
// see spec §4.2), then discards every proxy in the ring. Iterative, never
// recursive, so a long linear chain cannot overflow the goroutine stack.
func (p *proxy) destroyAll() {
	ring := p.collectRing()

	for _, r := range ring {
		r.destroying = true
	}
	if l := p.logger; l != nil {
		l.Debug().Log("region: destroy started")
	}

	var panics []any
	for _, r := range ring {
		r.members.listEach(func(n *nodeHeader) {
			if rec := n.runDestroy(); rec != nil {
				panics = append(panics, rec)
			}
		})
	}

	// Drop references to dead members so the GC can reclaim them; the
	// ring stays marked destroying permanently — there is no valid way
	// back to "active" for a torn-down region, and any handle that still
	// points here after this call is a dangling reference (spec's
	// DanglingDereference, a contract violation, not a case this
	// library needs to handle gracefully).
	for _, r := range ring {
		r.members.listInit()
	}

	if l := p.logger; l != nil {
		l.Debug().Log("region: destroy finished")
	}

	if len(panics) != 0 {
		panic(aggregatePanic{panics: panics})
	}
}

// collectRing returns every proxy sharing p's ring, in ring-traversal
// order starting from p.
func (p *proxy) collectRing() []*proxy {
	ring := make([]*proxy, 0, 1)
	for i := p; ; i = i.ringNext {
		ring = append(ring, i)
		if i.ringNext == p {
			break
		}
	}
	return ring
}

// aggregatePanic is raised by destroyAll when one or more payload Destroy
// hooks panicked; it aggregates them rather than letting only the first
// (or an arbitrary) one escape, so callers recovering at a boundary can
// see everything that went wrong during one region's teardown.
type aggregatePanic struct {
	panics []any
}

func (a aggregatePanic) Error() string {
	return "region: one or more Destroy hooks panicked during teardown"
}
