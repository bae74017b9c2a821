package fragment

import (
	"github.com/fray-ui/fray/pkg/dom"
	"github.com/fray-ui/fray/pkg/hydrate"
	"github.com/fray-ui/fray/pkg/runtime"
)

// TransitionFunc plays a transition on node and calls done when it
// completes. Synchronous transitions call done before returning; timed
// ones stash it and call it later in the same goroutine turn that drives
// the runtime.
type TransitionFunc func(node *dom.Node, done func())

type staticAttr struct {
	name  string
	value string
}

type dynAttr struct {
	name string
	mask int64
	fn   func() any
}

// Element is an element node with static attributes, reactive attributes
// gated by dirty masks, and child fragments.
type Element struct {
	rt  *runtime.RuntimeContext
	doc *dom.Document
	tag string

	node    *dom.Node
	static  []staticAttr
	dynamic []dynAttr

	children        []runtime.Fragment
	childrenMounted bool

	intro     TransitionFunc
	outro     TransitionFunc
	outroDone func()

	claimed   bool
	destroyed bool
}

// ElementOption configures an Element at construction.
type ElementOption func(*Element)

// Static sets a fixed attribute.
func Static(name, value string) ElementOption {
	return func(e *Element) {
		e.static = append(e.static, staticAttr{name: name, value: value})
	}
}

// Attr sets a reactive attribute, re-evaluated whenever a patch's dirty
// mask intersects mask. fn may return nil or false to remove the
// attribute, true for a bare boolean attribute, or any stringable value.
func Attr(name string, mask int64, fn func() any) ElementOption {
	return func(e *Element) {
		e.dynamic = append(e.dynamic, dynAttr{name: name, mask: mask, fn: fn})
	}
}

// Children appends child fragments in order.
func Children(frags ...runtime.Fragment) ElementOption {
	return func(e *Element) {
		e.children = append(e.children, frags...)
	}
}

// WithIntro attaches an enter transition.
func WithIntro(fn TransitionFunc) ElementOption {
	return func(e *Element) { e.intro = fn }
}

// WithOutro attaches an exit transition.
func WithOutro(fn TransitionFunc) ElementOption {
	return func(e *Element) { e.outro = fn }
}

// Element creates an element fragment.
func (b *Builder) Element(tag string, opts ...ElementOption) *Element {
	e := &Element{rt: b.rt, doc: b.doc, tag: tag}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Node returns the live DOM node, nil before Create.
func (e *Element) Node() *dom.Node { return e.node }

// FirstNode implements Anchored.
func (e *Element) FirstNode() *dom.Node { return e.node }

func (e *Element) Create() {
	e.node = e.doc.CreateElement(e.tag)
	e.applyAttrs(-1)
	for _, c := range e.children {
		c.Create()
	}
}

// Claim adopts a matching pre-rendered element, or falls back to Create.
func (e *Element) Claim(target *dom.Node, cl *hydrate.Claimer) {
	n := cl.ClaimElement(target, e.tag)
	if n == nil {
		e.Create()
		return
	}
	e.node = n
	e.claimed = true
	// Compare-first keeps adoption of matching server output write-free.
	e.applyAttrs(-1)
	for _, c := range e.children {
		if claimable, ok := c.(runtime.Claimable); ok {
			claimable.Claim(e.node, cl)
		} else {
			c.Create()
		}
	}
	// Sibling order must follow the claim sequence; faithful markup costs
	// zero moves here.
	hydrate.Reorder(e.node)
}

func (e *Element) Mount(target, anchor *dom.Node) {
	mountNode(e.node, target, anchor, e.claimed)
	e.claimed = false
	if !e.childrenMounted {
		for _, c := range e.children {
			c.Mount(e.node, nil)
		}
		e.childrenMounted = true
	}
}

func (e *Element) Patch(ctx []any, dirty int64) {
	e.applyAttrs(dirty)
	for _, c := range e.children {
		c.Patch(ctx, dirty)
	}
}

// applyAttrs writes the attributes selected by dirty, comparing against
// the live node first so unchanged values cost no mutation.
func (e *Element) applyAttrs(dirty int64) {
	for _, a := range e.static {
		if cur, has := e.node.Attribute(a.name); !has || cur != a.value {
			e.node.SetAttribute(a.name, a.value)
		}
	}
	for _, a := range e.dynamic {
		if dirty&a.mask == 0 {
			continue
		}
		val, present := attrValue(a.fn())
		cur, has := e.node.Attribute(a.name)
		if !present {
			if has {
				e.node.RemoveAttribute(a.name)
			}
			continue
		}
		if !has || cur != val {
			e.node.SetAttribute(a.name, val)
		}
	}
}

func (e *Element) Intro(local bool) {
	if e.intro != nil {
		e.intro(e.node, func() {})
	}
	for _, c := range e.children {
		c.Intro(local)
	}
}

func (e *Element) Outro(local bool) {
	if e.outro == nil {
		return
	}
	done := e.outroDone
	e.outroDone = nil
	if done == nil {
		done = func() { e.rt.FinishOutro(e) }
	}
	e.outro(e.node, done)
}

// HasOutro implements runtime.Outroer.
func (e *Element) HasOutro() bool { return e.outro != nil }

// SetOutroDone implements OutroDoneSetter.
func (e *Element) SetOutroDone(fn func()) { e.outroDone = fn }

func (e *Element) Destroy(detach bool) {
	if e.destroyed {
		return
	}
	e.destroyed = true
	// Children go with the subtree; they never detach individually.
	for _, c := range e.children {
		c.Destroy(false)
	}
	if detach && e.node != nil {
		e.node.Remove()
	}
	e.node = nil
}
