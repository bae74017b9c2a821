package runtime

import (
	"fmt"
	"sync/atomic"

	"github.com/fray-ui/fray/pkg/dom"
	"github.com/fray-ui/fray/pkg/hydrate"
)

// maxSlots is the number of reactive slots one component may declare,
// bounded by the width of the dirty bitmask.
const maxSlots = 64

var componentCounter int64

// ComponentInstance is one live component: its reactive slot values, its
// dirty bitmask, its fragment, and its lifecycle hooks. Instances are
// created with Instantiate and torn down with Destroy.
type ComponentInstance struct {
	id string
	rt *RuntimeContext

	ctx      []any
	dirty    int64
	fragment Fragment

	update    func(ctx []any, dirty int64)
	notEqual  func(a, b any) bool
	propSlots map[string]int

	// bound holds per-slot binding callbacks, invoked on slot change
	// unless skipBound is set (prop pushes from a parent).
	bound     [][]func(value any)
	skipBound bool

	ready     bool
	destroyed bool

	beforeUpdate []func()
	afterUpdate  []renderCallback
	onMount      []func()
	onDestroy    []func()

	handlers map[string][]func(detail any)
}

// Options describes a component to Instantiate.
type Options struct {
	// Init builds the slot array. It receives the instance, the initial
	// props, and the invalidate function the component's closures use to
	// write slots.
	Init func(c *ComponentInstance, props map[string]any, invalidate func(slot int, value any)) []any

	// CreateFragment builds the component's fragment from the slot array.
	CreateFragment func(ctx []any) Fragment

	// Update recomputes derived slots before each patch. Optional.
	Update func(ctx []any, dirty int64)

	// NotEqual decides whether a slot write is a change. Defaults to
	// SafeNotEqual.
	NotEqual func(a, b any) bool

	// PropSlots maps prop names to slot indices for SetProps.
	PropSlots map[string]int

	Props map[string]any

	// Target, when set, mounts the component immediately (before Anchor
	// when given) and runs a flush.
	Target *dom.Node
	Anchor *dom.Node

	// Intro plays enter transitions on the initial mount.
	Intro bool

	// Hydrate adopts Target's pre-rendered children instead of creating
	// fresh nodes, then reorders them to match the claim sequence.
	Hydrate bool
}

// Instantiate creates a component, runs its init and first update, builds
// its fragment, and mounts it when a target is given. The new instance is
// the current component for the duration of Init and CreateFragment, so
// lifecycle registration inside them binds to it.
func Instantiate(rt *RuntimeContext, opts Options) *ComponentInstance {
	rt.checkThread()

	c := &ComponentInstance{
		id:        fmt.Sprintf("c%d", atomic.AddInt64(&componentCounter, 1)),
		rt:        rt,
		dirty:     dirtyNone,
		update:    opts.Update,
		notEqual:  opts.NotEqual,
		propSlots: opts.PropSlots,
		handlers:  make(map[string][]func(detail any)),
	}
	if c.notEqual == nil {
		c.notEqual = SafeNotEqual
	}

	parent := rt.currentComponent
	rt.currentComponent = c
	defer func() { rt.currentComponent = parent }()

	if opts.Init != nil {
		c.ctx = opts.Init(c, opts.Props, c.Invalidate)
	}
	if len(c.ctx) > maxSlots {
		failf(errTooManySlots, "component %s declares %d slots, limit is %d", c.id, len(c.ctx), maxSlots)
	}
	c.bound = make([][]func(value any), len(c.ctx))

	if c.update != nil {
		c.update(c.ctx, dirtyNone)
	}
	c.ready = true
	for _, fn := range c.beforeUpdate {
		fn()
	}

	if opts.CreateFragment != nil {
		c.fragment = opts.CreateFragment(c.ctx)
	}

	if opts.Target != nil && c.fragment != nil {
		hydrating := false
		if opts.Hydrate {
			if cl, ok := c.fragment.(Claimable); ok {
				cl.Claim(opts.Target, hydrate.NewClaimer())
				hydrating = true
			}
		}
		if !hydrating {
			c.fragment.Create()
		}
		if opts.Intro {
			c.fragment.Intro(true)
		}
		rt.MountComponent(c, opts.Target, opts.Anchor)
		if hydrating {
			hydrate.Reorder(opts.Target)
		}
		rt.Flush()
	}

	rt.logger.Debug("component created", "component_id", c.id, "slots", len(c.ctx))
	return c
}

// MountComponent attaches the component's fragment and queues its mount
// hooks to run after the flush that makes it visible. Nested component
// fragments use this to mount their child instance.
func (rt *RuntimeContext) MountComponent(c *ComponentInstance, target, anchor *dom.Node) {
	c.fragment.Mount(target, anchor)
	rt.AddRenderCallback(func() {
		if c.destroyed {
			return
		}
		mounts := c.onMount
		c.onMount = nil
		for _, fn := range mounts {
			fn()
		}
	})
}

// ID returns the component's instance identifier.
func (c *ComponentInstance) ID() string { return c.id }

// Ctx returns the live slot array.
func (c *ComponentInstance) Ctx() []any { return c.ctx }

// Fragment returns the component's fragment, nil after destroy.
func (c *ComponentInstance) Fragment() Fragment { return c.fragment }

// Destroyed reports whether Destroy has run.
func (c *ComponentInstance) Destroyed() bool { return c.destroyed }

// Invalidate writes value into slot. When the value actually changed it
// notifies slot bindings and, once the component is past init, marks the
// slot dirty so the next flush repatches.
func (c *ComponentInstance) Invalidate(slot int, value any) {
	if c.ctx == nil {
		// During init the slot array does not exist yet; after destroy
		// writes are dropped.
		return
	}
	if slot < 0 || slot >= len(c.ctx) {
		failf(errSlotRange, "slot %d out of range for component %s with %d slots", slot, c.id, len(c.ctx))
	}
	old := c.ctx[slot]
	c.ctx[slot] = value
	if !c.notEqual(old, value) {
		return
	}
	if !c.skipBound {
		for _, cb := range c.bound[slot] {
			cb(value)
		}
	}
	if c.ready {
		c.rt.MarkDirty(c, slot)
	}
}

// BindSlot registers fn to run whenever slot changes from inside the
// component. Prop pushes from SetProps do not fire bindings, which is
// what breaks parent-child update cycles.
func (c *ComponentInstance) BindSlot(slot int, fn func(value any)) {
	if slot < 0 || slot >= len(c.ctx) {
		failf(errSlotRange, "slot %d out of range for component %s with %d slots", slot, c.id, len(c.ctx))
	}
	c.bound[slot] = append(c.bound[slot], fn)
}

// SetProps pushes new prop values into the component's slots. Bindings are
// suppressed for the duration so the write does not echo back to the
// parent.
func (c *ComponentInstance) SetProps(props map[string]any) {
	c.rt.checkThread()
	if c.destroyed || len(props) == 0 {
		return
	}
	c.skipBound = true
	for name, value := range props {
		slot, ok := c.propSlots[name]
		if !ok {
			c.rt.logger.Warn("unknown prop ignored", "component_id", c.id, "prop", name)
			continue
		}
		c.Invalidate(slot, value)
	}
	c.skipBound = false
}

// On registers a handler for a component event. The returned function
// removes the handler.
func (c *ComponentInstance) On(event string, fn func(detail any)) func() {
	c.handlers[event] = append(c.handlers[event], fn)
	idx := len(c.handlers[event]) - 1
	return func() {
		hs := c.handlers[event]
		if idx < len(hs) && hs[idx] != nil {
			hs[idx] = nil
		}
	}
}

// Emit dispatches a component event synchronously to its handlers.
func (c *ComponentInstance) Emit(event string, detail any) {
	for _, fn := range c.handlers[event] {
		if fn != nil {
			fn(detail)
		}
	}
}

// Destroy tears the component down: pending after-update callbacks are
// dropped, destroy hooks run, and the fragment is destroyed (detaching
// its DOM when detach is true). Safe to call more than once.
func (c *ComponentInstance) Destroy(detach bool) {
	c.rt.checkThread()
	if c.destroyed {
		return
	}
	c.destroyed = true

	if len(c.afterUpdate) > 0 {
		drop := make(map[uint64]struct{}, len(c.afterUpdate))
		for _, rc := range c.afterUpdate {
			drop[rc.id] = struct{}{}
		}
		kept := c.rt.renderCallbacks[:0]
		for _, rc := range c.rt.renderCallbacks {
			if _, ok := drop[rc.id]; !ok {
				kept = append(kept, rc)
			}
		}
		c.rt.renderCallbacks = kept
	}

	for _, fn := range c.onDestroy {
		fn()
	}
	c.onDestroy = nil

	if c.fragment != nil {
		c.fragment.Destroy(detach)
		c.fragment = nil
	}
	c.ctx = nil
	c.dirty = dirtyNone

	c.rt.logger.Debug("component destroyed", "component_id", c.id)
}

// OnMount registers fn to run after the component's first mount flush.
// Must be called during component initialization.
func (rt *RuntimeContext) OnMount(fn func()) {
	c := rt.requireCurrent("OnMount")
	c.onMount = append(c.onMount, fn)
}

// OnDestroy registers fn to run when the component is destroyed. Must be
// called during component initialization.
func (rt *RuntimeContext) OnDestroy(fn func()) {
	c := rt.requireCurrent("OnDestroy")
	c.onDestroy = append(c.onDestroy, fn)
}

// BeforeUpdate registers fn to run before every patch of the component.
// Must be called during component initialization.
func (rt *RuntimeContext) BeforeUpdate(fn func()) {
	c := rt.requireCurrent("BeforeUpdate")
	c.beforeUpdate = append(c.beforeUpdate, fn)
}

// AfterUpdate registers fn to run after every flush pass that patched the
// component. Must be called during component initialization.
func (rt *RuntimeContext) AfterUpdate(fn func()) {
	c := rt.requireCurrent("AfterUpdate")
	c.afterUpdate = append(c.afterUpdate, renderCallback{id: rt.newCallbackID(), fn: fn})
}

func (rt *RuntimeContext) requireCurrent(op string) *ComponentInstance {
	if rt.currentComponent == nil {
		failf(errLifecycleContext, "%s called outside component initialization", op)
	}
	return rt.currentComponent
}
