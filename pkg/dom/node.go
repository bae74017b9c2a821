package dom

import "sort"

// NodeKind is the node type discriminator.
type NodeKind uint8

const (
	KindElement NodeKind = iota // <div>, <input>, etc.
	KindText                    // Plain text node
	KindComment                 // Anchor/marker node
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// Node is a single node in a Document tree.
type Node struct {
	kind     NodeKind
	doc      *Document
	tag      string
	text     string
	attrs    map[string]string
	parent   *Node
	children []*Node

	// claimOrder is the hydration consumption stamp; -1 means unclaimed.
	claimOrder int
}

// Kind returns the node type.
func (n *Node) Kind() NodeKind { return n.kind }

// Tag returns the element tag name ("" for non-elements).
func (n *Node) Tag() string { return n.tag }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Parent returns the parent node, or nil if detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. The returned slice must not be mutated.
func (n *Node) Children() []*Node { return n.children }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// NextSibling returns the node following this one under the same parent.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	sibs := n.parent.children
	for i, c := range sibs {
		if c == n && i+1 < len(sibs) {
			return sibs[i+1]
		}
	}
	return nil
}

// Index returns the position of this node among its siblings, -1 if detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// AppendChild appends child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	n.InsertBefore(child, nil)
}

// InsertBefore inserts child before anchor. A nil anchor appends. If child
// already has a parent it is detached first, so InsertBefore doubles as the
// move primitive.
func (n *Node) InsertBefore(child *Node, anchor *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.detach(child)
	}
	idx := len(n.children)
	if anchor != nil {
		for i, c := range n.children {
			if c == anchor {
				idx = i
				break
			}
		}
	}
	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
	child.parent = n
	n.doc.counters.Inserts++
}

// RemoveChild detaches child from n. Removing a node that is not a child
// of n is a no-op.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	n.detach(child)
	n.doc.counters.Removes++
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// detach unlinks child without touching counters.
func (n *Node) detach(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			break
		}
	}
	child.parent = nil
}

// SetAttribute sets an attribute on an element node. Every call counts as
// a mutation; callers that want idempotent patches compare first.
func (n *Node) SetAttribute(name, value string) {
	if n.kind != KindElement {
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	n.doc.counters.AttrSets++
}

// RemoveAttribute removes an attribute. Removing an absent attribute is a
// counted no-op-shaped write, so patch code checks presence first.
func (n *Node) RemoveAttribute(name string) {
	if n.kind != KindElement || n.attrs == nil {
		return
	}
	delete(n.attrs, name)
	n.doc.counters.AttrRemoves++
}

// Attribute returns the attribute value and whether it is present.
func (n *Node) Attribute(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// AttributeNames returns the attribute names in sorted order.
func (n *Node) AttributeNames() []string {
	if len(n.attrs) == 0 {
		return nil
	}
	names := make([]string, 0, len(n.attrs))
	for k := range n.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SetText sets the text content of a text or comment node. Every call is a
// counted mutation.
func (n *Node) SetText(s string) {
	if n.kind == KindElement {
		return
	}
	n.text = s
	n.doc.counters.TextSets++
}

// Text returns the text content of a text or comment node.
func (n *Node) Text() string { return n.text }

// SetClaimOrder stamps the node's hydration consumption order.
func (n *Node) SetClaimOrder(order int) { n.claimOrder = order }

// ClaimOrder returns the hydration stamp, -1 if the node was never claimed.
func (n *Node) ClaimOrder() int { return n.claimOrder }
