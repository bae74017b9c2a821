// Package runtime is the reactive core: a RuntimeContext that owns the
// dirty-component queue and flush loop, Store[T] reactive values,
// ComponentInstance lifecycle, and the transition group coordinator.
//
// The runtime is single-goroutine by contract. All state mutation happens
// synchronously inside Dispatch or Flush; the only coalescing point is the
// scheduled-flush flag, which lets any number of store writes in one turn
// collapse into a single render pass. A RuntimeContext remembers the
// goroutine that created it and, in debug mode, panics on use from any
// other goroutine.
package runtime
