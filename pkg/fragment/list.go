package fragment

import (
	"github.com/fray-ui/fray/pkg/dom"
	"github.com/fray-ui/fray/pkg/runtime"
)

// List renders one fragment per key behind a stable comment anchor.
// Patches diff the key sequence: departed items leave through the
// transition coordinator, new items are created and mounted, and
// surviving items are repositioned in place with node moves rather than
// rebuilds.
type List struct {
	rt  *runtime.RuntimeContext
	doc *dom.Document

	keys  func() []string
	build func(key string) runtime.Fragment

	anchor *dom.Node
	target *dom.Node
	order  []string
	frags  map[string]runtime.Fragment

	destroyed bool
}

// List creates a keyed list fragment. keys returns the desired key
// sequence and build builds the fragment for one key.
func (b *Builder) List(keys func() []string, build func(key string) runtime.Fragment) *List {
	return &List{rt: b.rt, doc: b.doc, keys: keys, build: build, frags: map[string]runtime.Fragment{}}
}

// Len returns the number of live items.
func (l *List) Len() int { return len(l.frags) }

// FirstNode implements Anchored.
func (l *List) FirstNode() *dom.Node {
	if len(l.order) > 0 {
		if n := firstNodeOf(l.frags[l.order[0]]); n != nil {
			return n
		}
	}
	return l.anchor
}

func (l *List) Create() {
	l.anchor = l.doc.CreateComment("list")
	l.order = append([]string(nil), l.keys()...)
	for _, key := range l.order {
		f := l.build(key)
		f.Create()
		l.frags[key] = f
	}
}

func (l *List) Mount(target, anchor *dom.Node) {
	mountNode(l.anchor, target, anchor, false)
	for _, key := range l.order {
		l.frags[key].Mount(target, l.anchor)
	}
	l.target = target
}

func (l *List) Patch(ctx []any, dirty int64) {
	next := l.keys()
	keep := make(map[string]struct{}, len(next))
	for _, key := range next {
		keep[key] = struct{}{}
	}

	l.rt.BeginGroup()
	for _, key := range l.order {
		if _, ok := keep[key]; ok {
			continue
		}
		departed := l.frags[key]
		delete(l.frags, key)
		l.rt.TransitionOut(departed, true, true, nil)
	}
	l.rt.EndGroup()

	for _, key := range next {
		if f, ok := l.frags[key]; ok {
			f.Patch(ctx, dirty)
			continue
		}
		f := l.build(key)
		f.Create()
		f.Mount(l.target, l.anchor)
		l.frags[key] = f
	}

	// Walk backwards so each item's anchor is the already-positioned item
	// after it. In-place items cost nothing; Mount moves the rest.
	insertAnchor := l.anchor
	for i := len(next) - 1; i >= 0; i-- {
		f := l.frags[next[i]]
		f.Mount(l.target, insertAnchor)
		if n := firstNodeOf(f); n != nil {
			insertAnchor = n
		}
	}
	l.order = append(l.order[:0], next...)
}

func (l *List) Intro(local bool) {
	for _, key := range l.order {
		l.frags[key].Intro(local)
	}
}

func (l *List) Outro(local bool) {}

func (l *List) Destroy(detach bool) {
	if l.destroyed {
		return
	}
	l.destroyed = true
	for _, f := range l.frags {
		f.Destroy(detach)
	}
	l.frags = nil
	if detach && l.anchor != nil {
		l.anchor.Remove()
	}
	l.anchor = nil
}
