// Package region implements deterministic, region-based smart pointers: a
// managed-pointer abstraction that tolerates arbitrary object graphs —
// including cycles — while guaranteeing prompt, ordered destruction without
// a tracing collector.
//
// # Model
//
// A [Root] is a stack-anchored handle that owns a region (a [proxy] and the
// nodes adopted into it). A [Node] is a heap-resident handle, stored inside
// payloads, that references a node in some region without anchoring it.
// Allocating through [MakeNode] against an existing [Root] or [Node] adopts
// the new node into that owner's region. Assigning a [Node] across regions
// unifies the two regions into one ring; the ring is reclaimed, in
// insertion order, as soon as the last [Root] anchoring any proxy in it
// is closed or reset — regardless of cycles among the region's members.
// Go has no scope-exit destructor, so a Root is typically released with
// defer r.Close().
//
// # Concurrency
//
// All mutation of region/ring/member state is guarded by a single
// process-wide recursive lock (see internal/relock), mirroring the source
// library's static mutex. Build with the region_nolock tag to compile the
// lock down to a no-op for single-goroutine callers.
package region
