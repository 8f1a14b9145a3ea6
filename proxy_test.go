package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProxy_UnifyIsIdempotent(t *testing.T) {
	p1 := newProxy(nil)
	p2 := newProxy(nil)

	p1.unify(p2)
	require.Equal(t, 2, p1.ringSize())
	require.True(t, p1.sameRing(p2))

	// unifying again, in either direction, must not grow the ring
	p1.unify(p2)
	p2.unify(p1)
	assert.Equal(t, 2, p1.ringSize())
}

func TestProxy_UnifySelfIsNoOp(t *testing.T) {
	p := newProxy(nil)
	p.unify(p)
	assert.Equal(t, 1, p.ringSize())
}

func TestProxy_UnifyThreeWay(t *testing.T) {
	p1 := newProxy(nil)
	p2 := newProxy(nil)
	p3 := newProxy(nil)

	p1.unify(p2)
	p2.unify(p3)

	assert.Equal(t, 3, p1.ringSize())
	assert.True(t, p1.sameRing(p3))
	assert.True(t, p3.sameRing(p2))
}

func TestProxy_AdoptRejectsDoubleAdoption(t *testing.T) {
	p := newProxy(nil)
	var h nodeHeader
	p.adopt(&h)

	assert.Panics(t, func() {
		p.adopt(&h)
	})
}

func TestProxy_AnchorDecMultiProxyRingMergesMembers(t *testing.T) {
	p1 := newProxy(nil)
	p2 := newProxy(nil)
	p1.anchors = 1
	p2.anchors = 1

	var h1, h2 nodeHeader
	h1.rc = 1
	h2.rc = 1
	p1.adopt(&h1)
	p2.adopt(&h2)

	p1.unify(p2)

	// p1 loses its only anchor; the ring (still anchored via p2) must
	// survive, with p1's member merged onto p2 rather than destroyed.
	destroyed := false
	h1.destroy = func() { destroyed = true }

	p1.anchorDec()
	assert.False(t, destroyed)
	assert.Equal(t, 1, p2.ringSize())
	assert.False(t, p2.members.listEmpty())
}

func TestProxy_AnchorDecLastTornDown(t *testing.T) {
	p := newProxy(nil)

	var h nodeHeader
	h.rc = 1
	destroyed := false
	h.destroy = func() { destroyed = true }
	p.adopt(&h)

	p.anchorDec()
	assert.True(t, destroyed)
	assert.True(t, p.isDestroying())
}

func TestProxy_DestroyAllAggregatesPanics(t *testing.T) {
	p := newProxy(nil)
	p.anchors = 1

	var h1, h2 nodeHeader
	h1.rc, h2.rc = 1, 1
	h1.destroy = func() { panic("boom1") }
	h2.destroy = func() { panic("boom2") }
	p.adopt(&h1)
	p.adopt(&h2)

	var got any
	func() {
		defer func() { got = recover() }()
		p.anchorDec()
	}()
	assert.Equal(t, aggregatePanic{panics: []any{"boom1", "boom2"}}, got)
}

func TestProxy_DestroyAllRunsInInsertionOrder(t *testing.T) {
	p := newProxy(nil)
	p.anchors = 1

	var order []int
	for i := 0; i < 5; i++ {
		h := &nodeHeader{rc: 1}
		i := i
		h.destroy = func() { order = append(order, i) }
		p.adopt(h)
	}

	p.anchorDec()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}
