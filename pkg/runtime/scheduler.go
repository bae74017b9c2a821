package runtime

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// dirtyNone marks a component as clean and not queued. Because -1 is all
// ones it doubles as the all-slots-dirty mask for a component's very first
// patch.
const dirtyNone int64 = -1

// MarkDirty records that slot changed on c. The first dirty slot after a
// flush enqueues the component and schedules a flush; further writes in
// the same turn only widen the bitmask.
func (rt *RuntimeContext) MarkDirty(c *ComponentInstance, slot int) {
	rt.checkThread()
	if slot < 0 || slot >= maxSlots {
		failf(errSlotRange, "slot %d out of range for component %s", slot, c.id)
	}
	if c.dirty == dirtyNone {
		rt.dirtyComponents = append(rt.dirtyComponents, c)
		rt.scheduleFlush()
		c.dirty = 0
	}
	c.dirty |= 1 << slot
}

func (rt *RuntimeContext) scheduleFlush() {
	if rt.flushScheduled {
		return
	}
	rt.flushScheduled = true
	rt.stats.Schedules++
	if rt.metrics != nil {
		rt.metrics.schedules.Inc()
	}
}

// Dispatch runs fn as one event turn. Any number of invalidations inside
// fn coalesce into the single flush that runs before Dispatch returns.
// Dispatching while a flush is already draining only runs fn; the active
// flush picks up whatever it enqueued.
func (rt *RuntimeContext) Dispatch(fn func()) {
	rt.checkThread()
	fn()
	if rt.flushScheduled && !rt.flushing {
		rt.Flush()
	}
}

// Flush drains the dirty-component queue until the DOM is stable. The
// loop repeats while component updates enqueue further components; inside
// each pass binding callbacks run in reverse registration order and render
// callbacks fire at most once per flush. Flush callbacks run once after
// the queue is fully settled. Reentrant calls are no-ops.
func (rt *RuntimeContext) Flush() {
	rt.checkThread()
	if rt.flushing {
		return
	}
	rt.flushing = true
	rt.stats.Flushes++

	start := time.Now()
	updatesBefore := rt.stats.ComponentUpdates
	_, span := rt.tracer.Start(rt.base, "runtime.flush")

	defer func() {
		rt.flushScheduled = false
		rt.flushing = false
		clear(rt.seenCallbacks)
		span.SetAttributes(attribute.Int64("fray.component_updates",
			int64(rt.stats.ComponentUpdates-updatesBefore)))
		if r := recover(); r != nil {
			span.RecordError(fmt.Errorf("flush panicked: %v", r))
			span.SetStatus(codes.Error, "flush panicked")
			span.End()
			panic(r)
		}
		span.SetStatus(codes.Ok, "")
		span.End()
		if rt.metrics != nil {
			rt.metrics.flushes.Inc()
			rt.metrics.flushDuration.Observe(time.Since(start).Seconds())
		}
	}()

	for {
		rt.drainComponents()

		// Reverse order so inner bindings settle before the outer
		// components that read them.
		for len(rt.bindingCallbacks) > 0 {
			last := len(rt.bindingCallbacks) - 1
			cb := rt.bindingCallbacks[last]
			rt.bindingCallbacks = rt.bindingCallbacks[:last]
			cb()
		}

		pending := rt.renderCallbacks
		rt.renderCallbacks = nil
		for _, rc := range pending {
			if _, seen := rt.seenCallbacks[rc.id]; seen {
				continue
			}
			rt.seenCallbacks[rc.id] = struct{}{}
			rt.stats.RenderCallbackRuns++
			rc.fn()
		}

		if len(rt.dirtyComponents) == 0 {
			break
		}
	}

	for len(rt.flushCallbacks) > 0 {
		last := len(rt.flushCallbacks) - 1
		cb := rt.flushCallbacks[last]
		rt.flushCallbacks = rt.flushCallbacks[:last]
		cb()
	}
}

// drainComponents updates every queued component, including components
// enqueued while earlier ones update. A panicking update clears the queue
// so the runtime is not left with stale dirty state, then propagates.
func (rt *RuntimeContext) drainComponents() {
	defer func() {
		if r := recover(); r != nil {
			rt.dirtyComponents = rt.dirtyComponents[:0]
			rt.currentComponent = nil
			rt.logger.Error("component update panicked", "panic", r)
			panic(r)
		}
	}()

	for i := 0; i < len(rt.dirtyComponents); i++ {
		c := rt.dirtyComponents[i]
		rt.currentComponent = c
		rt.updateComponent(c)
	}
	rt.currentComponent = nil
	rt.dirtyComponents = rt.dirtyComponents[:0]
}

// updateComponent runs one component's reactive update: recompute derived
// slots, run before-update hooks, patch the fragment with the captured
// dirty mask, and queue after-update hooks as render callbacks.
func (rt *RuntimeContext) updateComponent(c *ComponentInstance) {
	if c.destroyed {
		c.dirty = dirtyNone
		return
	}
	rt.stats.ComponentUpdates++
	if rt.metrics != nil {
		rt.metrics.componentUpdates.Inc()
	}

	if c.update != nil {
		c.update(c.ctx, c.dirty)
	}
	for _, fn := range c.beforeUpdate {
		fn()
	}

	dirty := c.dirty
	c.dirty = dirtyNone
	if c.fragment != nil {
		c.fragment.Patch(c.ctx, dirty)
	}
	for _, rc := range c.afterUpdate {
		rt.renderCallbacks = append(rt.renderCallbacks, rc)
	}
}

func (rt *RuntimeContext) newCallbackID() uint64 {
	rt.nextCallbackID++
	return rt.nextCallbackID
}

// AddRenderCallback queues fn to run after the current (or next) flush
// pass has patched the DOM. Within one flush fn runs at most once.
func (rt *RuntimeContext) AddRenderCallback(fn func()) {
	rt.renderCallbacks = append(rt.renderCallbacks, renderCallback{id: rt.newCallbackID(), fn: fn})
}

// AddBindingCallback queues fn into the binding queue, drained in reverse
// registration order on every flush pass.
func (rt *RuntimeContext) AddBindingCallback(fn func()) {
	rt.bindingCallbacks = append(rt.bindingCallbacks, fn)
}

// AfterFlush queues fn to run once, after the in-progress or next flush
// has fully settled. When no flush is pending fn still waits for the next
// one rather than running immediately. Invalidations made inside fn are
// queued but do not reschedule the flush that just ran; they wait for the
// next scheduled flush.
func (rt *RuntimeContext) AfterFlush(fn func()) {
	rt.flushCallbacks = append(rt.flushCallbacks, fn)
}
