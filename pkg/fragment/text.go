package fragment

import (
	"github.com/fray-ui/fray/pkg/dom"
	"github.com/fray-ui/fray/pkg/hydrate"
)

// Text is a text node, either fixed or recomputed under a dirty mask.
type Text struct {
	doc  *dom.Document
	node *dom.Node

	value string
	mask  int64
	fn    func() string

	claimed   bool
	destroyed bool
}

// Text creates a fixed text fragment.
func (b *Builder) Text(s string) *Text {
	return &Text{doc: b.doc, value: s}
}

// DynamicText creates a text fragment re-evaluated whenever a patch's
// dirty mask intersects mask.
func (b *Builder) DynamicText(mask int64, fn func() string) *Text {
	return &Text{doc: b.doc, mask: mask, fn: fn}
}

// Node returns the live DOM node, nil before Create.
func (t *Text) Node() *dom.Node { return t.node }

// FirstNode implements Anchored.
func (t *Text) FirstNode() *dom.Node { return t.node }

func (t *Text) current() string {
	if t.fn != nil {
		return t.fn()
	}
	return t.value
}

func (t *Text) Create() {
	t.node = t.doc.CreateText(t.current())
}

// Claim adopts the next pre-rendered text node, correcting its content
// only when it differs.
func (t *Text) Claim(target *dom.Node, cl *hydrate.Claimer) {
	n := cl.ClaimText(target)
	if n == nil {
		t.Create()
		return
	}
	t.node = n
	t.claimed = true
	if s := t.current(); n.Text() != s {
		n.SetText(s)
	}
}

func (t *Text) Mount(target, anchor *dom.Node) {
	mountNode(t.node, target, anchor, t.claimed)
	t.claimed = false
}

// Patch rewrites the text only when the mask selects it and the value
// actually changed, so patching unchanged state touches nothing.
func (t *Text) Patch(ctx []any, dirty int64) {
	if t.fn == nil || dirty&t.mask == 0 {
		return
	}
	if s := t.fn(); t.node.Text() != s {
		t.node.SetText(s)
	}
}

func (t *Text) Intro(local bool) {}
func (t *Text) Outro(local bool) {}

func (t *Text) Destroy(detach bool) {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if detach && t.node != nil {
		t.node.Remove()
	}
	t.node = nil
}
