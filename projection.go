package region

// ProxyRef is an opaque reference to a region's proxy, handed to a
// payload's ProjectRegion method so it can bind its own [Node] fields
// without this package exposing its internal proxy type.
type ProxyRef struct {
	px *proxy
}

// ProjectsRegion is spec.md §6's project_region hook: a payload
// implements it when it embeds [Node] fields that need to discover their
// containing region at construction time, instead of requiring the
// caller to thread a proxy through by hand. It is the direct analogue of
// the source's node_base::proxy(node_proxy*) / boost::proxy<T>
// machinery, made explicit (no reflection) because Go has no template
// specialization to walk a struct's fields automatically.
//
// Example:
//
//	type Cell struct {
//		Next region.Node[Cell]
//	}
//
//	func (c *Cell) ProjectRegion(ref region.ProxyRef) {
//		c.Next.Bind(ref)
//	}
type ProjectsRegion interface {
	ProjectRegion(ref ProxyRef)
}

// project invokes payload's ProjectRegion hook, if implemented, binding
// any nested Node fields to px. Called once, right after a node is
// allocated and before it is handed back to the caller.
func project[T any](payload *T, px *proxy) {
	if pr, ok := any(payload).(ProjectsRegion); ok {
		pr.ProjectRegion(ProxyRef{px: px})
	}
}

// Bind sets n's owning proxy from ref, if n does not already have one.
// Bind is idempotent and a no-op once n has a proxy — mirroring spec's
// "owner is set at adoption and never rewritten" for the node header,
// applied here to a node handle's fixed region reference.
func (n *Node[T]) Bind(ref ProxyRef) {
	if n.px == nil {
		n.px = ref.px
	}
}
