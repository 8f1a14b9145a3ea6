package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cell struct {
	value int
	next  Node[cell]
}

func (c *cell) ProjectRegion(ref ProxyRef) {
	c.next.Bind(ref)
}

var _ ProjectsRegion = (*cell)(nil)

func TestMakeNode_RequiresOwnerWithRegion(t *testing.T) {
	_, err := MakeNode[cell](Node[cell]{})
	require.Error(t, err)
}

func TestMakeNode_AdoptsIntoOwnersRegion(t *testing.T) {
	root, err := MakeRootValue[cell](cell{value: 1})
	require.NoError(t, err)
	defer root.Close()

	n, err := MakeNodeValue[cell](root, cell{value: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, n.Get().value)
	assert.Equal(t, 1, root.RingSize())
}

func TestNode_ZeroValueIsSafe(t *testing.T) {
	var n Node[cell]
	assert.Nil(t, n.Get())
	assert.Equal(t, uint32(0), n.RefCount())
	n.Reset() // must not panic
}

func TestNode_AssignSelfIsNoOp(t *testing.T) {
	root, err := MakeRootValue[cell](cell{})
	require.NoError(t, err)
	defer root.Close()

	self := root.AsNode()
	before := self.RefCount()
	self.Assign(self)
	assert.Equal(t, before, self.RefCount())
}

func TestNode_AssignRetainsAndReleases(t *testing.T) {
	a, err := MakeRootValue[cell](cell{value: 1})
	require.NoError(t, err)
	defer a.Close()

	b, err := MakeRootValue[cell](cell{value: 2})
	require.NoError(t, err)
	defer b.Close()

	var h Node[cell]
	h.Assign(a.AsNode())
	assert.Equal(t, uint32(2), a.RefCount())

	h.Assign(b.AsNode())
	assert.Equal(t, uint32(1), a.RefCount())
	assert.Equal(t, uint32(2), b.RefCount())
}

func TestCloneNode_SharesPayloadAndRetains(t *testing.T) {
	root, err := MakeRootValue[cell](cell{value: 7})
	require.NoError(t, err)
	defer root.Close()

	n := root.AsNode()
	clone := CloneNode(n)
	assert.Equal(t, uint32(2), n.RefCount())
	assert.Equal(t, 7, clone.Get().value)
}

func TestProjectRegion_BindsNestedNodeField(t *testing.T) {
	root, err := MakeRoot[cell]()
	require.NoError(t, err)
	defer root.Close()

	// MakeRoot's project() call should have bound root.Get().next's own
	// proxy reference (even though it is still a zero-node handle).
	other, err := MakeRoot[cell]()
	require.NoError(t, err)
	defer other.Close()

	root.Get().next.Assign(other.AsNode())
	assert.Equal(t, 2, root.RingSize())
}
