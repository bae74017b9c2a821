package dom

import "testing"

func TestInsertBeforeOrdering(t *testing.T) {
	d := NewDocument()
	body := d.Body()

	a := d.CreateElement("a")
	b := d.CreateElement("b")
	c := d.CreateElement("c")

	body.AppendChild(a)
	body.AppendChild(c)
	body.InsertBefore(b, c)

	got := ""
	for _, n := range body.Children() {
		got += n.Tag()
	}
	if got != "abc" {
		t.Errorf("expected sibling order abc, got %s", got)
	}
}

func TestInsertBeforeMovesExistingChild(t *testing.T) {
	d := NewDocument()
	body := d.Body()

	a := d.CreateElement("a")
	b := d.CreateElement("b")
	c := d.CreateElement("c")
	body.AppendChild(a)
	body.AppendChild(b)
	body.AppendChild(c)

	// Moving c before a must detach it first, not duplicate it.
	body.InsertBefore(c, a)

	if len(body.Children()) != 3 {
		t.Fatalf("expected 3 children after move, got %d", len(body.Children()))
	}
	got := ""
	for _, n := range body.Children() {
		got += n.Tag()
	}
	if got != "cab" {
		t.Errorf("expected order cab after move, got %s", got)
	}
	if c.Parent() != body {
		t.Errorf("moved node lost its parent")
	}
}

func TestRemoveChild(t *testing.T) {
	d := NewDocument()
	body := d.Body()
	a := d.CreateElement("a")
	body.AppendChild(a)

	body.RemoveChild(a)
	if a.Parent() != nil {
		t.Errorf("removed node still has a parent")
	}
	if len(body.Children()) != 0 {
		t.Errorf("expected no children, got %d", len(body.Children()))
	}

	// Removing a non-child is a no-op.
	other := d.CreateElement("b")
	before := d.Counters().Removes
	body.RemoveChild(other)
	if d.Counters().Removes != before {
		t.Errorf("removing a non-child counted as a mutation")
	}
}

func TestAttributes(t *testing.T) {
	d := NewDocument()
	n := d.CreateElement("input")

	n.SetAttribute("type", "text")
	n.SetAttribute("class", "answer")

	if v, ok := n.Attribute("type"); !ok || v != "text" {
		t.Errorf("expected type=text, got %q (present=%v)", v, ok)
	}

	names := n.AttributeNames()
	if len(names) != 2 || names[0] != "class" || names[1] != "type" {
		t.Errorf("expected sorted attribute names [class type], got %v", names)
	}

	n.RemoveAttribute("class")
	if _, ok := n.Attribute("class"); ok {
		t.Errorf("attribute still present after removal")
	}
}

func TestMutationCounters(t *testing.T) {
	d := NewDocument()
	body := d.Body()

	a := d.CreateElement("a")
	txt := d.CreateText("hello")
	body.AppendChild(a)
	a.AppendChild(txt)
	a.SetAttribute("id", "x")
	txt.SetText("world")
	a.RemoveAttribute("id")
	body.RemoveChild(a)

	c := d.Counters()
	if c.Inserts != 2 || c.Removes != 1 || c.AttrSets != 1 || c.AttrRemoves != 1 || c.TextSets != 1 {
		t.Errorf("unexpected counters: %+v", c)
	}
	if c.Total() != 6 {
		t.Errorf("expected total 6, got %d", c.Total())
	}

	d.ResetCounters()
	if d.Counters().Total() != 0 {
		t.Errorf("counters not reset")
	}
}

func TestSiblingNavigation(t *testing.T) {
	d := NewDocument()
	body := d.Body()
	a := d.CreateElement("a")
	b := d.CreateElement("b")
	body.AppendChild(a)
	body.AppendChild(b)

	if body.FirstChild() != a {
		t.Errorf("FirstChild mismatch")
	}
	if a.NextSibling() != b {
		t.Errorf("NextSibling mismatch")
	}
	if b.NextSibling() != nil {
		t.Errorf("last child should have no next sibling")
	}
	if a.Index() != 0 || b.Index() != 1 {
		t.Errorf("unexpected indices %d, %d", a.Index(), b.Index())
	}
}

func TestClaimOrderDefaultsUnclaimed(t *testing.T) {
	d := NewDocument()
	n := d.CreateElement("a")
	if n.ClaimOrder() != -1 {
		t.Errorf("fresh node should be unclaimed, got %d", n.ClaimOrder())
	}
	n.SetClaimOrder(7)
	if n.ClaimOrder() != 7 {
		t.Errorf("expected claim order 7, got %d", n.ClaimOrder())
	}
}
