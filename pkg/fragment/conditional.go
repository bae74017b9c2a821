package fragment

import (
	"github.com/fray-ui/fray/pkg/dom"
	"github.com/fray-ui/fray/pkg/hydrate"
	"github.com/fray-ui/fray/pkg/runtime"
)

// If shows one of two branches behind a stable comment anchor. Branch
// fragments are built lazily on first show and torn down through the
// transition coordinator, so a branch with an exit transition finishes
// animating before its DOM is removed.
type If struct {
	rt  *runtime.RuntimeContext
	doc *dom.Document

	cond      func() bool
	build     func() runtime.Fragment
	elseBuild func() runtime.Fragment

	anchor        *dom.Node
	anchorClaimed bool
	target        *dom.Node

	// branch is -1 before Create, 0 for the then branch, 1 for else.
	branch  int
	current runtime.Fragment

	outroDone func()
	destroyed bool
}

// If creates a conditional fragment. elseBuild may be nil.
func (b *Builder) If(cond func() bool, build, elseBuild func() runtime.Fragment) *If {
	return &If{rt: b.rt, doc: b.doc, cond: cond, build: build, elseBuild: elseBuild, branch: -1}
}

// FirstNode implements Anchored.
func (f *If) FirstNode() *dom.Node {
	if f.current != nil {
		if n := firstNodeOf(f.current); n != nil {
			return n
		}
	}
	return f.anchor
}

func (f *If) factory(show bool) func() runtime.Fragment {
	if show {
		return f.build
	}
	return f.elseBuild
}

func branchIndex(show bool) int {
	if show {
		return 0
	}
	return 1
}

func (f *If) Create() {
	f.anchor = f.doc.CreateComment("if")
	show := f.cond()
	f.branch = branchIndex(show)
	if factory := f.factory(show); factory != nil {
		f.current = factory()
		f.current.Create()
	}
}

// Claim adopts the branch's pre-rendered nodes and the anchor comment.
func (f *If) Claim(target *dom.Node, cl *hydrate.Claimer) {
	show := f.cond()
	f.branch = branchIndex(show)
	if factory := f.factory(show); factory != nil {
		f.current = factory()
		if claimable, ok := f.current.(runtime.Claimable); ok {
			claimable.Claim(target, cl)
		} else {
			f.current.Create()
		}
	}
	if n := cl.ClaimComment(target); n != nil {
		f.anchor = n
		f.anchorClaimed = true
	} else {
		f.anchor = f.doc.CreateComment("if")
	}
}

func (f *If) Mount(target, anchor *dom.Node) {
	if f.current != nil {
		f.current.Mount(target, anchor)
	}
	mountNode(f.anchor, target, anchor, f.anchorClaimed)
	f.anchorClaimed = false
	f.target = target
}

func (f *If) Patch(ctx []any, dirty int64) {
	show := f.cond()
	idx := branchIndex(show)

	if idx == f.branch {
		if f.current != nil {
			f.current.Patch(ctx, dirty)
		}
		return
	}

	old := f.current
	f.current = nil
	f.branch = idx
	if old != nil {
		f.rt.BeginGroup()
		f.rt.TransitionOut(old, true, true, nil)
		f.rt.EndGroup()
	}
	if factory := f.factory(show); factory != nil {
		next := factory()
		next.Create()
		f.rt.TransitionIn(next, true)
		next.Mount(f.target, f.anchor)
		f.current = next
	}
}

func (f *If) Intro(local bool) {
	if f.current != nil {
		f.current.Intro(local)
	}
}

func (f *If) Outro(local bool) {
	if f.current == nil {
		return
	}
	done := f.outroDone
	f.outroDone = nil
	if done == nil {
		done = func() { f.rt.FinishOutro(f) }
	}
	if s, ok := f.current.(OutroDoneSetter); ok {
		s.SetOutroDone(done)
	}
	f.current.Outro(local)
}

// HasOutro implements runtime.Outroer by delegating to the live branch.
func (f *If) HasOutro() bool {
	return f.current != nil && hasOutro(f.current)
}

// SetOutroDone implements OutroDoneSetter.
func (f *If) SetOutroDone(fn func()) { f.outroDone = fn }

func (f *If) Destroy(detach bool) {
	if f.destroyed {
		return
	}
	f.destroyed = true
	if f.current != nil {
		f.current.Destroy(detach)
		f.current = nil
	}
	if detach && f.anchor != nil {
		f.anchor.Remove()
	}
	f.anchor = nil
}
