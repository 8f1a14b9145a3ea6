package region

import "github.com/joeycumines/logiface"

// config holds the resolved settings for one MakeRoot/MakeNode call,
// assembled by applying each Option in order.
//
// Grounded on eventloop/options.go's loopOptions/LoopOption shape: a
// small internal config struct, an exported functional-option interface,
// and constructor functions returning an unexported implementation.
type config struct {
	logger    *logiface.Logger[logiface.Event]
	allocator any // type-asserted to Allocator[T] by the caller
}

// Option configures a [MakeRoot] or [MakeNode] call.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithLogger attaches a structured logger to the region being created;
// region lifecycle events (adopt, unify, destroy start/finish) are logged
// at Debug level. A nil logger (the default) disables this tracing
// entirely at effectively zero cost, since *logiface.Logger[E] methods
// are documented as no-ops on a nil receiver.
//
// The logger lives on the proxy, not the call: it only has an effect
// when passed to [MakeRoot], which creates the proxy. Passing it to
// [MakeNode] against an owner's existing region has no effect — that
// region's proxy, and its logger, already exist.
func WithLogger(l *logiface.Logger[logiface.Event]) Option {
	return optionFunc(func(c *config) {
		c.logger = l
	})
}

// WithAllocator overrides the default sync.Pool-backed [Allocator] used
// to create the node for this call. The type parameter must match the
// call's payload type; a mismatched allocator is a programmer error,
// reported via a panic rather than silently falling back to the default.
func WithAllocator[T any](a Allocator[T]) Option {
	return optionFunc(func(c *config) {
		c.allocator = a
	})
}

func resolveConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		o.apply(&c)
	}
	return c
}

func resolveAllocator[T any](c config) Allocator[T] {
	if c.allocator == nil {
		return newPoolAllocator[T]()
	}
	a, ok := c.allocator.(Allocator[T])
	if !ok {
		invariant("options", "WithAllocator: allocator type does not match payload type")
	}
	return a
}
