package dom

// MutationCounters tracks how many structural and content writes a document
// has absorbed. Patch idempotence tests assert against these.
type MutationCounters struct {
	Inserts     uint64
	Removes     uint64
	AttrSets    uint64
	AttrRemoves uint64
	TextSets    uint64
}

// Total returns the sum of all mutation counters.
func (c MutationCounters) Total() uint64 {
	return c.Inserts + c.Removes + c.AttrSets + c.AttrRemoves + c.TextSets
}

// Document owns a node tree and its mutation accounting.
type Document struct {
	body     *Node
	counters MutationCounters
}

// NewDocument creates a document with an empty <body> root.
func NewDocument() *Document {
	d := &Document{}
	d.body = &Node{kind: KindElement, tag: "body", doc: d, claimOrder: -1}
	return d
}

// Body returns the document root element.
func (d *Document) Body() *Node { return d.body }

// CreateElement creates a detached element node.
func (d *Document) CreateElement(tag string) *Node {
	return &Node{kind: KindElement, tag: tag, doc: d, claimOrder: -1}
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) *Node {
	return &Node{kind: KindText, text: text, doc: d, claimOrder: -1}
}

// CreateComment creates a detached comment node. The runtime uses comments
// as stable anchors for conditional and list fragments.
func (d *Document) CreateComment(text string) *Node {
	return &Node{kind: KindComment, text: text, doc: d, claimOrder: -1}
}

// Counters returns a snapshot of the document's mutation counters.
func (d *Document) Counters() MutationCounters { return d.counters }

// ResetCounters zeroes the mutation counters. Tests call this between
// phases to isolate the writes of a single patch pass.
func (d *Document) ResetCounters() { d.counters = MutationCounters{} }
