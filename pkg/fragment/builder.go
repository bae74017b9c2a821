package fragment

import (
	"github.com/fray-ui/fray/pkg/dom"
	"github.com/fray-ui/fray/pkg/runtime"
)

// Builder constructs fragments bound to one runtime and document.
type Builder struct {
	rt  *runtime.RuntimeContext
	doc *dom.Document
}

// NewBuilder creates a fragment builder for rt and doc.
func NewBuilder(rt *runtime.RuntimeContext, doc *dom.Document) *Builder {
	return &Builder{rt: rt, doc: doc}
}

// Runtime returns the builder's runtime.
func (b *Builder) Runtime() *runtime.RuntimeContext { return b.rt }

// Document returns the builder's document.
func (b *Builder) Document() *dom.Document { return b.doc }

// Anchored is implemented by fragments that can name their first DOM
// node, which keyed lists use as the insertion anchor when reordering.
type Anchored interface {
	FirstNode() *dom.Node
}

// OutroDoneSetter redirects a fragment's exit-transition completion.
// Wrapper fragments that delegate Outro to an inner fragment set the
// inner completion to report the wrapper instead.
type OutroDoneSetter interface {
	SetOutroDone(fn func())
}

// firstNodeOf returns f's first DOM node when f is Anchored, else nil.
func firstNodeOf(f runtime.Fragment) *dom.Node {
	if a, ok := f.(Anchored); ok {
		return a.FirstNode()
	}
	return nil
}

// hasOutro reports whether f plays an exit transition.
func hasOutro(f runtime.Fragment) bool {
	if o, ok := f.(runtime.Outroer); ok {
		return o.HasOutro()
	}
	return false
}

// mountNode inserts n into target before anchor, skipping nodes that are
// already in place. Claimed nodes are left wherever hydration found them;
// the post-mount reorder puts them in claim order.
func mountNode(n, target, anchor *dom.Node, claimed bool) {
	if n.Parent() == target && (claimed || n.NextSibling() == anchor) {
		return
	}
	target.InsertBefore(n, anchor)
}
