package hydrate

import "github.com/fray-ui/fray/pkg/dom"

// Claimer hands out claim-order stamps during a hydration pass.
type Claimer struct {
	next int
}

// NewClaimer creates a claimer starting at order zero.
func NewClaimer() *Claimer {
	return &Claimer{}
}

// Stamp assigns the next claim order to n.
func (c *Claimer) Stamp(n *dom.Node) {
	n.SetClaimOrder(c.next)
	c.next++
}

// Count returns how many nodes have been stamped.
func (c *Claimer) Count() int {
	return c.next
}

// ClaimElement finds the first unclaimed element child of parent with the
// given tag, stamps it, and returns it. Returns nil when no match exists
// and the caller must create a fresh node.
func (c *Claimer) ClaimElement(parent *dom.Node, tag string) *dom.Node {
	for _, child := range parent.Children() {
		if child.Kind() == dom.KindElement && child.Tag() == tag && child.ClaimOrder() < 0 {
			c.Stamp(child)
			return child
		}
	}
	return nil
}

// ClaimText finds the first unclaimed text child of parent, stamps it, and
// returns it. Returns nil when no match exists.
func (c *Claimer) ClaimText(parent *dom.Node) *dom.Node {
	for _, child := range parent.Children() {
		if child.Kind() == dom.KindText && child.ClaimOrder() < 0 {
			c.Stamp(child)
			return child
		}
	}
	return nil
}

// ClaimComment finds the first unclaimed comment child of parent, stamps
// it, and returns it. Returns nil when no match exists.
func (c *Claimer) ClaimComment(parent *dom.Node) *dom.Node {
	for _, child := range parent.Children() {
		if child.Kind() == dom.KindComment && child.ClaimOrder() < 0 {
			c.Stamp(child)
			return child
		}
	}
	return nil
}
