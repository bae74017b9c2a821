package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fray-ui/fray/pkg/dom"
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables pretty-printed output with one node per line.
	// Should only be used in development and tests.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// Comments controls whether comment nodes (fragment anchors) are
	// emitted. Enabled by default so hydration markup round-trips.
	OmitComments bool
}

// Renderer serializes dom trees to HTML.
type Renderer struct {
	config Config
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a node and its subtree to an HTML string.
func (r *Renderer) RenderToString(node *dom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderChildren renders only the children of node, which is the usual
// call for a document body.
func (r *Renderer) RenderChildren(node *dom.Node) (string, error) {
	var buf bytes.Buffer
	for _, child := range node.Children() {
		if err := r.renderNode(&buf, child, 0); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// RenderToWriter streams a node and its subtree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *dom.Node) error {
	return r.renderNode(w, node, 0)
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *dom.Node, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind() {
	case dom.KindElement:
		return r.renderElement(w, node, depth)
	case dom.KindText:
		return r.renderText(w, node, depth)
	case dom.KindComment:
		return r.renderComment(w, node, depth)
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind())
	}
}

// renderElement renders an element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *dom.Node, depth int) error {
	tag := node.Tag()

	if err := r.writeIndent(w, depth); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}

	for _, name := range node.AttributeNames() {
		value, _ := node.Attribute(name)
		var err error
		if value == "" {
			_, err = io.WriteString(w, " "+name)
		} else {
			_, err = io.WriteString(w, " "+name+`="`+escapeAttr(value)+`"`)
		}
		if err != nil {
			return err
		}
	}

	if isVoidElement(tag) {
		_, err := io.WriteString(w, ">")
		if err != nil {
			return err
		}
		return r.writeNewline(w)
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if err := r.writeNewline(w); err != nil {
		return err
	}

	for _, child := range node.Children() {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}

	if err := r.writeIndent(w, depth); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "</"+tag+">"); err != nil {
		return err
	}
	return r.writeNewline(w)
}

// renderText renders an escaped text node.
func (r *Renderer) renderText(w io.Writer, node *dom.Node, depth int) error {
	if err := r.writeIndent(w, depth); err != nil {
		return err
	}
	if _, err := io.WriteString(w, escapeHTML(node.Text())); err != nil {
		return err
	}
	return r.writeNewline(w)
}

// renderComment renders a comment node (fragment anchor).
func (r *Renderer) renderComment(w io.Writer, node *dom.Node, depth int) error {
	if r.config.OmitComments {
		return nil
	}
	if err := r.writeIndent(w, depth); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "<!--"+node.Text()+"-->"); err != nil {
		return err
	}
	return r.writeNewline(w)
}

// writeIndent writes pretty-mode indentation.
func (r *Renderer) writeIndent(w io.Writer, depth int) error {
	if !r.config.Pretty {
		return nil
	}
	for i := 0; i < depth; i++ {
		if _, err := io.WriteString(w, r.config.Indent); err != nil {
			return err
		}
	}
	return nil
}

// writeNewline terminates a line in pretty mode.
func (r *Renderer) writeNewline(w io.Writer) error {
	if !r.config.Pretty {
		return nil
	}
	_, err := io.WriteString(w, "\n")
	return err
}
