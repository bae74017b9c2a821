package runtime

// outroGroup tracks one batch of concurrent exit transitions. Groups form
// a stack; parent indexes the enclosing group so nesting works without
// pointers into a growing slice.
type outroGroup struct {
	remaining int
	callbacks []func()
	parent    int
}

// BeginGroup opens a transition group. Every TransitionOut until the
// matching EndGroup joins this group, and the group's completion
// callbacks run only when all of its outros have finished.
func (rt *RuntimeContext) BeginGroup() {
	rt.checkThread()
	rt.groups = append(rt.groups, outroGroup{parent: rt.current})
	rt.current = len(rt.groups) - 1
}

// TransitionIn plays f's enter transition and clears any pending outro
// state, so an element leaving and immediately re-entering is not torn
// down when the stale outro group completes.
func (rt *RuntimeContext) TransitionIn(f Fragment, local bool) {
	rt.checkThread()
	if f == nil {
		return
	}
	// Group bookkeeping stays: the in-flight outro still reports back and
	// decrements its group, but the completion callback sees the fragment
	// is no longer outroing and leaves it alone.
	delete(rt.outroing, f)
	f.Intro(local)
}

// TransitionOut starts f's exit transition inside the current group. When
// the outro finishes the fragment is destroyed (detaching when detach is
// set) and onComplete runs. Fragments with no outro complete immediately.
// Panics when no group is open.
func (rt *RuntimeContext) TransitionOut(f Fragment, local, detach bool, onComplete func()) {
	rt.checkThread()
	if rt.current < 0 {
		failf(errNoGroup, "TransitionOut called with no open transition group")
	}
	if f == nil {
		return
	}
	if _, already := rt.outroing[f]; already {
		return
	}

	hasOutro := false
	if o, ok := f.(Outroer); ok {
		hasOutro = o.HasOutro()
	}
	if !hasOutro {
		if detach {
			f.Destroy(true)
		}
		if onComplete != nil {
			onComplete()
		}
		return
	}

	idx := rt.current
	rt.outroing[f] = struct{}{}
	rt.outroGroupOf[f] = idx
	rt.groups[idx].remaining++
	rt.stats.OutrosStarted++
	if rt.metrics != nil {
		rt.metrics.outros.Inc()
	}
	rt.groups[idx].callbacks = append(rt.groups[idx].callbacks, func() {
		if _, still := rt.outroing[f]; !still {
			// TransitionIn cancelled the outro; keep the fragment.
			return
		}
		delete(rt.outroing, f)
		delete(rt.outroGroupOf, f)
		if detach {
			f.Destroy(true)
		}
		if onComplete != nil {
			onComplete()
		}
	})

	f.Outro(local)
}

// FinishOutro reports that f's exit transition completed. Fragments call
// this from their outro done hook. When the owning group's last outro
// finishes, the group's callbacks run.
func (rt *RuntimeContext) FinishOutro(f Fragment) {
	rt.checkThread()
	idx, ok := rt.outroGroupOf[f]
	if !ok {
		return
	}
	delete(rt.outroGroupOf, f)
	rt.groups[idx].remaining--
	if rt.groups[idx].remaining == 0 {
		rt.runGroupCallbacks(idx)
	}
}

// EndGroup closes the innermost transition group. A group whose outros
// all completed synchronously (or that started none) fires its callbacks
// here; otherwise the callbacks wait for the last FinishOutro. Panics on
// an unbalanced call.
func (rt *RuntimeContext) EndGroup() {
	rt.checkThread()
	if rt.current < 0 {
		failf(errUnbalancedGroup, "EndGroup called with no open transition group")
	}
	idx := rt.current
	rt.current = rt.groups[idx].parent
	if rt.groups[idx].remaining == 0 {
		rt.runGroupCallbacks(idx)
	}
}

func (rt *RuntimeContext) runGroupCallbacks(idx int) {
	cbs := rt.groups[idx].callbacks
	rt.groups[idx].callbacks = nil
	for _, cb := range cbs {
		cb()
	}
}

// CurrentGroup returns the index of the open transition group, -1 at top
// level. Exposed for tests and diagnostics.
func (rt *RuntimeContext) CurrentGroup() int { return rt.current }

// Outroing reports whether f has an exit transition in flight.
func (rt *RuntimeContext) Outroing(f Fragment) bool {
	_, ok := rt.outroing[f]
	return ok
}
