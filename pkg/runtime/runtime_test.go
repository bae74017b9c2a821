package runtime

import (
	"math"
	"strings"
	"testing"

	"github.com/fray-ui/fray/pkg/dom"
)

// recordingFragment counts lifecycle calls. When finishOutro is set, Outro
// completes synchronously by reporting back to the runtime.
type recordingFragment struct {
	rt *RuntimeContext

	creates  int
	mounts   int
	patches  []int64
	intros   int
	outros   int
	destroys int

	outro       bool
	finishOutro bool
}

func (f *recordingFragment) Create()                      { f.creates++ }
func (f *recordingFragment) Mount(target, a *dom.Node)    { f.mounts++ }
func (f *recordingFragment) Patch(ctx []any, dirty int64) { f.patches = append(f.patches, dirty) }
func (f *recordingFragment) Intro(local bool)             { f.intros++ }
func (f *recordingFragment) Destroy(detach bool)          { f.destroys++ }
func (f *recordingFragment) HasOutro() bool               { return f.outro }

func (f *recordingFragment) Outro(local bool) {
	f.outros++
	if f.finishOutro {
		f.rt.FinishOutro(f)
	}
}

func newTestComponent(rt *RuntimeContext, frag Fragment, slots []any) *ComponentInstance {
	return Instantiate(rt, Options{
		Init: func(c *ComponentInstance, props map[string]any, invalidate func(int, any)) []any {
			out := make([]any, len(slots))
			copy(out, slots)
			return out
		},
		CreateFragment: func(ctx []any) Fragment { return frag },
	})
}

func TestDispatchCoalescesInvalidations(t *testing.T) {
	rt := New()
	frag := &recordingFragment{rt: rt}
	c := newTestComponent(rt, frag, []any{0, "a", false})

	rt.Dispatch(func() {
		c.Invalidate(0, 1)
		c.Invalidate(1, "b")
		c.Invalidate(2, true)
	})

	st := rt.Stats()
	if st.Schedules != 1 {
		t.Errorf("expected 1 schedule for 3 writes, got %d", st.Schedules)
	}
	if st.Flushes != 1 {
		t.Errorf("expected 1 flush, got %d", st.Flushes)
	}
	if len(frag.patches) != 1 {
		t.Fatalf("expected 1 patch, got %d", len(frag.patches))
	}
	if want := int64(0b111); frag.patches[0] != want {
		t.Errorf("expected dirty mask %b, got %b", want, frag.patches[0])
	}
	if got := c.Ctx()[1]; got != "b" {
		t.Errorf("slot 1 = %v, want b", got)
	}
}

func TestInvalidateUnchangedValueDoesNotSchedule(t *testing.T) {
	rt := New()
	frag := &recordingFragment{rt: rt}
	c := newTestComponent(rt, frag, []any{42})

	rt.Dispatch(func() {
		c.Invalidate(0, 42)
	})

	if st := rt.Stats(); st.Schedules != 0 || st.Flushes != 0 {
		t.Errorf("no-op write scheduled work: %+v", st)
	}
	if len(frag.patches) != 0 {
		t.Errorf("no-op write patched the fragment")
	}
}

func TestFlushIsReentrancySafe(t *testing.T) {
	rt := New()
	frag := &recordingFragment{rt: rt}

	c := Instantiate(rt, Options{
		Init: func(c *ComponentInstance, props map[string]any, invalidate func(int, any)) []any {
			return []any{0}
		},
		Update: func(ctx []any, dirty int64) {
			if dirty >= 0 {
				rt.Flush()
			}
		},
		CreateFragment: func(ctx []any) Fragment { return frag },
	})

	rt.Dispatch(func() { c.Invalidate(0, 1) })

	if st := rt.Stats(); st.Flushes != 1 {
		t.Errorf("reentrant flush ran: %d flushes", st.Flushes)
	}
	if len(frag.patches) != 1 {
		t.Errorf("expected 1 patch, got %d", len(frag.patches))
	}
}

func TestRenderCallbackRunsOncePerFlush(t *testing.T) {
	rt := New()
	frag := &recordingFragment{rt: rt}

	runs := 0
	var c *ComponentInstance
	c = Instantiate(rt, Options{
		Init: func(self *ComponentInstance, props map[string]any, invalidate func(int, any)) []any {
			rt.AfterUpdate(func() {
				runs++
				if runs == 1 {
					// Force a second drain pass in the same flush.
					c.Invalidate(0, c.Ctx()[0].(int)+1)
				}
			})
			return []any{0}
		},
		CreateFragment: func(ctx []any) Fragment { return frag },
	})

	rt.Dispatch(func() { c.Invalidate(0, 1) })

	if runs != 1 {
		t.Errorf("after-update hook ran %d times in one flush, want 1", runs)
	}
	if len(frag.patches) != 2 {
		t.Errorf("expected 2 patch passes, got %d", len(frag.patches))
	}
	if st := rt.Stats(); st.Flushes != 1 {
		t.Errorf("expected 1 flush, got %d", st.Flushes)
	}

	// A later flush runs the hook again.
	rt.Dispatch(func() { c.Invalidate(0, 100) })
	if runs != 2 {
		t.Errorf("after-update hook did not fire on the next flush, runs=%d", runs)
	}
}

func TestAfterFlushRunsOnceAfterSettling(t *testing.T) {
	rt := New()
	frag := &recordingFragment{rt: rt}
	c := newTestComponent(rt, frag, []any{0})

	var order []string
	rt.AfterFlush(func() { order = append(order, "flush-done") })
	rt.Dispatch(func() {
		c.Invalidate(0, 1)
		order = append(order, "write")
	})

	if len(order) != 2 || order[0] != "write" || order[1] != "flush-done" {
		t.Errorf("unexpected order %v", order)
	}
}

func TestInvalidateInAfterFlushWaitsForNextSchedule(t *testing.T) {
	rt := New()
	frag := &recordingFragment{rt: rt}
	c := newTestComponent(rt, frag, []any{0, 0})
	other := &recordingFragment{rt: rt}
	c2 := newTestComponent(rt, other, []any{0})

	rt.AfterFlush(func() { c.Invalidate(0, 1) })
	rt.Dispatch(func() { c.Invalidate(1, 1) })

	// The flush-callback write stays queued until something schedules again.
	if len(frag.patches) != 1 {
		t.Fatalf("expected 1 patch, got %d", len(frag.patches))
	}
	if rt.FlushScheduled() {
		t.Fatalf("flush-callback write rescheduled the finished flush")
	}

	rt.Dispatch(func() { c2.Invalidate(0, 1) })
	if len(frag.patches) != 2 {
		t.Errorf("queued write did not drain on the next flush: %d patches", len(frag.patches))
	}
}

func TestMountRunsOnMountAfterFlush(t *testing.T) {
	rt := New()
	d := dom.NewDocument()
	frag := &recordingFragment{rt: rt}

	mounted := false
	Instantiate(rt, Options{
		Init: func(c *ComponentInstance, props map[string]any, invalidate func(int, any)) []any {
			rt.OnMount(func() { mounted = true })
			return []any{}
		},
		CreateFragment: func(ctx []any) Fragment { return frag },
		Target:         d.Body(),
	})

	if frag.creates != 1 || frag.mounts != 1 {
		t.Errorf("creates=%d mounts=%d, want 1/1", frag.creates, frag.mounts)
	}
	if !mounted {
		t.Errorf("mount hook did not run")
	}
}

func TestLifecycleOutsideInitPanics(t *testing.T) {
	rt := New()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		if !strings.Contains(r.(string), "[FRAY E001]") {
			t.Errorf("unexpected panic %v", r)
		}
	}()
	rt.OnMount(func() {})
}

func TestDestroyIsIdempotent(t *testing.T) {
	rt := New()
	frag := &recordingFragment{rt: rt}

	destroyHooks := 0
	c := Instantiate(rt, Options{
		Init: func(c *ComponentInstance, props map[string]any, invalidate func(int, any)) []any {
			rt.OnDestroy(func() { destroyHooks++ })
			return []any{0}
		},
		CreateFragment: func(ctx []any) Fragment { return frag },
	})

	c.Destroy(true)
	c.Destroy(true)

	if frag.destroys != 1 {
		t.Errorf("fragment destroyed %d times, want 1", frag.destroys)
	}
	if destroyHooks != 1 {
		t.Errorf("destroy hook ran %d times, want 1", destroyHooks)
	}

	// Writes after destroy are dropped silently.
	c.Invalidate(0, 99)
	if st := rt.Stats(); st.Schedules != 0 {
		t.Errorf("post-destroy write scheduled a flush")
	}
}

func TestSetPropsSkipsBindings(t *testing.T) {
	rt := New()
	frag := &recordingFragment{rt: rt}

	c := Instantiate(rt, Options{
		Init: func(c *ComponentInstance, props map[string]any, invalidate func(int, any)) []any {
			return []any{props["value"]}
		},
		CreateFragment: func(ctx []any) Fragment { return frag },
		PropSlots:      map[string]int{"value": 0},
		Props:          map[string]any{"value": "initial"},
	})

	bindingFired := 0
	c.BindSlot(0, func(v any) { bindingFired++ })

	c.SetProps(map[string]any{"value": "pushed"})
	if bindingFired != 0 {
		t.Errorf("prop push echoed into binding")
	}
	if got := c.Ctx()[0]; got != "pushed" {
		t.Errorf("slot 0 = %v, want pushed", got)
	}

	rt.Dispatch(func() { c.Invalidate(0, "internal") })
	if bindingFired != 1 {
		t.Errorf("internal write fired binding %d times, want 1", bindingFired)
	}
}

func TestComponentEvents(t *testing.T) {
	rt := New()
	frag := &recordingFragment{rt: rt}
	c := newTestComponent(rt, frag, []any{0})

	var got []any
	off := c.On("select", func(detail any) { got = append(got, detail) })
	c.Emit("select", "first")
	off()
	c.Emit("select", "second")

	if len(got) != 1 || got[0] != "first" {
		t.Errorf("expected one delivery of first, got %v", got)
	}
}

func TestSafeNotEqual(t *testing.T) {
	if SafeNotEqual(1, 1) {
		t.Errorf("equal ints reported changed")
	}
	if SafeNotEqual("a", "a") {
		t.Errorf("equal strings reported changed")
	}
	if !SafeNotEqual(1, 2) {
		t.Errorf("different ints reported unchanged")
	}
	if SafeNotEqual(math.NaN(), math.NaN()) {
		t.Errorf("NaN against NaN reported changed")
	}
	if !SafeNotEqual(map[string]int{}, map[string]int{}) {
		t.Errorf("maps must always report changed")
	}
	fn := func() {}
	if !SafeNotEqual(fn, fn) {
		t.Errorf("funcs must always report changed")
	}
	if SafeNotEqual(nil, nil) {
		t.Errorf("nil against nil reported changed")
	}
}

func TestStoreSubscribeAndBind(t *testing.T) {
	rt := New()
	s := NewStore(rt, 10)

	var seen []int
	unsub := s.Subscribe(func(v int) { seen = append(seen, v) })
	if len(seen) != 1 || seen[0] != 10 {
		t.Fatalf("subscribe did not deliver current value, seen=%v", seen)
	}

	s.Set(11)
	s.Set(11) // no-op
	s.Update(func(v int) int { return v + 1 })
	unsub()
	s.Set(99)

	want := []int{10, 11, 12}
	if len(seen) != len(want) {
		t.Fatalf("seen %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen %v, want %v", seen, want)
		}
	}

	frag := &recordingFragment{rt: rt}
	c := newTestComponent(rt, frag, []any{0})
	c.Invalidate(0, s.Get())
	rt.Flush()
	frag.patches = nil

	s.Bind(c, 0)
	rt.Dispatch(func() { s.Set(50) })

	if got := c.Ctx()[0]; got != 50 {
		t.Errorf("bound slot = %v, want 50", got)
	}
	if len(frag.patches) != 1 || frag.patches[0] != 1 {
		t.Errorf("store write did not patch slot 0: %v", frag.patches)
	}
}

func TestTransitionGroupSynchronousOutro(t *testing.T) {
	rt := New()
	a := &recordingFragment{rt: rt, outro: true, finishOutro: true}
	b := &recordingFragment{rt: rt, outro: true, finishOutro: true}

	completed := 0
	rt.BeginGroup()
	rt.TransitionOut(a, false, true, func() { completed++ })
	rt.TransitionOut(b, false, true, func() { completed++ })

	// Both outros completed synchronously, so the group resolved before
	// EndGroup.
	if completed != 2 {
		t.Errorf("expected 2 completions before EndGroup, got %d", completed)
	}
	if a.destroys != 1 || b.destroys != 1 {
		t.Errorf("destroys a=%d b=%d, want 1/1", a.destroys, b.destroys)
	}

	rt.EndGroup()
	if completed != 2 || a.destroys != 1 {
		t.Errorf("EndGroup re-ran group callbacks")
	}
	if rt.CurrentGroup() != -1 {
		t.Errorf("group stack not back at top level: %d", rt.CurrentGroup())
	}
}

func TestTransitionGroupDeferredOutro(t *testing.T) {
	rt := New()
	a := &recordingFragment{rt: rt, outro: true}

	completed := false
	rt.BeginGroup()
	rt.TransitionOut(a, false, true, func() { completed = true })
	rt.EndGroup()

	if completed || a.destroys != 0 {
		t.Fatalf("group resolved before the outro finished")
	}
	if !rt.Outroing(a) {
		t.Fatalf("fragment not tracked as outroing")
	}

	rt.FinishOutro(a)
	if !completed || a.destroys != 1 {
		t.Errorf("group did not resolve on last FinishOutro")
	}
}

func TestNestedGroupsDoNotInterfere(t *testing.T) {
	rt := New()
	outer := &recordingFragment{rt: rt, outro: true}
	inner := &recordingFragment{rt: rt, outro: true, finishOutro: true}

	outerDone := false
	rt.BeginGroup()
	rt.TransitionOut(outer, false, true, func() { outerDone = true })

	innerDone := false
	rt.BeginGroup()
	rt.TransitionOut(inner, false, true, func() { innerDone = true })
	rt.EndGroup()

	// The inner group resolves on its own without touching the outer one.
	if !innerDone || inner.destroys != 1 {
		t.Fatalf("inner group did not resolve synchronously")
	}
	if outerDone || outer.destroys != 0 {
		t.Fatalf("inner group resolution fired the outer group")
	}
	if rt.CurrentGroup() != 0 {
		t.Errorf("inner EndGroup did not unwind to the outer group: %d", rt.CurrentGroup())
	}

	rt.EndGroup()
	if outerDone {
		t.Fatalf("outer group resolved with an outro still in flight")
	}
	if rt.CurrentGroup() != -1 {
		t.Errorf("group stack not back at top level: %d", rt.CurrentGroup())
	}

	rt.FinishOutro(outer)
	if !outerDone || outer.destroys != 1 {
		t.Errorf("outer group did not resolve on its last FinishOutro")
	}
}

func TestTransitionInCancelsPendingOutro(t *testing.T) {
	rt := New()
	a := &recordingFragment{rt: rt, outro: true}

	rt.BeginGroup()
	rt.TransitionOut(a, false, true, nil)
	rt.TransitionIn(a, false)
	rt.EndGroup()

	// Cancelled outro must not destroy the fragment even if the group's
	// bookkeeping later fires.
	rt.FinishOutro(a)
	if a.destroys != 0 {
		t.Errorf("re-entered fragment was destroyed")
	}
	if a.intros != 1 {
		t.Errorf("intro did not play, intros=%d", a.intros)
	}
}

func TestTransitionOutWithoutOutroCompletesImmediately(t *testing.T) {
	rt := New()
	a := &recordingFragment{rt: rt}

	completed := false
	rt.BeginGroup()
	rt.TransitionOut(a, false, true, func() { completed = true })
	rt.EndGroup()

	if !completed || a.destroys != 1 {
		t.Errorf("outro-less fragment did not complete immediately")
	}
	if a.outros != 0 {
		t.Errorf("outro played on fragment without one")
	}
}

func TestTransitionOutWithoutGroupPanics(t *testing.T) {
	rt := New()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		if !strings.Contains(r.(string), "[FRAY E003]") {
			t.Errorf("unexpected panic %v", r)
		}
	}()
	rt.TransitionOut(&recordingFragment{rt: rt, outro: true}, false, true, nil)
}

func TestUnbalancedEndGroupPanics(t *testing.T) {
	rt := New()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		if !strings.Contains(r.(string), "[FRAY E004]") {
			t.Errorf("unexpected panic %v", r)
		}
	}()
	rt.EndGroup()
}

func TestPanicDuringUpdateClearsQueue(t *testing.T) {
	rt := New()
	boom := &recordingFragment{rt: rt}

	c := Instantiate(rt, Options{
		Init: func(c *ComponentInstance, props map[string]any, invalidate func(int, any)) []any {
			return []any{0}
		},
		Update: func(ctx []any, dirty int64) {
			if dirty >= 0 {
				panic("update failed")
			}
		},
		CreateFragment: func(ctx []any) Fragment { return boom },
	})

	func() {
		defer func() {
			if recover() == nil {
				t.Fatalf("panic did not propagate")
			}
		}()
		rt.Dispatch(func() { c.Invalidate(0, 1) })
	}()

	if rt.IsFlushing() || rt.FlushScheduled() {
		t.Errorf("scheduler flags not reset after panic")
	}

	// The runtime stays usable for the next turn.
	frag := &recordingFragment{rt: rt}
	c2 := newTestComponent(rt, frag, []any{0})
	rt.Dispatch(func() { c2.Invalidate(0, 1) })
	if len(frag.patches) != 1 {
		t.Errorf("runtime unusable after panic: %d patches", len(frag.patches))
	}
}

func TestTooManySlotsPanics(t *testing.T) {
	rt := New()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic")
		}
		if !strings.Contains(r.(string), "[FRAY E002]") {
			t.Errorf("unexpected panic %v", r)
		}
	}()
	Instantiate(rt, Options{
		Init: func(c *ComponentInstance, props map[string]any, invalidate func(int, any)) []any {
			return make([]any, maxSlots+1)
		},
	})
}
