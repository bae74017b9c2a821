package fragment

import (
	"github.com/fray-ui/fray/pkg/dom"
	"github.com/fray-ui/fray/pkg/runtime"
)

// Component embeds a child component instance as a fragment of its
// parent. Prop writes flow down through SetProps under the parent's dirty
// mask; destroy cascades into the child instance.
type Component struct {
	rt *runtime.RuntimeContext

	instantiate func() *runtime.ComponentInstance
	child       *runtime.ComponentInstance

	propsMask int64
	props     func() map[string]any

	outroDone func()
	destroyed bool
}

// Component creates a nested component fragment. instantiate builds the
// child (without a target; mounting is the fragment's job). props, when
// set, recomputes the child's props whenever the parent's dirty mask
// intersects mask.
func (b *Builder) Component(instantiate func() *runtime.ComponentInstance, mask int64, props func() map[string]any) *Component {
	return &Component{rt: b.rt, instantiate: instantiate, propsMask: mask, props: props}
}

// Child returns the embedded component instance, nil before Create.
func (c *Component) Child() *runtime.ComponentInstance { return c.child }

// FirstNode implements Anchored.
func (c *Component) FirstNode() *dom.Node {
	if c.child == nil || c.child.Fragment() == nil {
		return nil
	}
	return firstNodeOf(c.child.Fragment())
}

func (c *Component) Create() {
	c.child = c.instantiate()
	if f := c.child.Fragment(); f != nil {
		f.Create()
	}
}

func (c *Component) Mount(target, anchor *dom.Node) {
	c.rt.MountComponent(c.child, target, anchor)
}

func (c *Component) Patch(ctx []any, dirty int64) {
	if c.props != nil && dirty&c.propsMask != 0 {
		c.child.SetProps(c.props())
	}
}

func (c *Component) Intro(local bool) {
	if f := c.child.Fragment(); f != nil {
		f.Intro(local)
	}
}

func (c *Component) Outro(local bool) {
	f := c.child.Fragment()
	if f == nil {
		return
	}
	done := c.outroDone
	c.outroDone = nil
	if done == nil {
		done = func() { c.rt.FinishOutro(c) }
	}
	if s, ok := f.(OutroDoneSetter); ok {
		s.SetOutroDone(done)
	}
	f.Outro(local)
}

// HasOutro implements runtime.Outroer by delegating to the child's root
// fragment.
func (c *Component) HasOutro() bool {
	return c.child != nil && c.child.Fragment() != nil && hasOutro(c.child.Fragment())
}

// SetOutroDone implements OutroDoneSetter.
func (c *Component) SetOutroDone(fn func()) { c.outroDone = fn }

func (c *Component) Destroy(detach bool) {
	if c.destroyed {
		return
	}
	c.destroyed = true
	if c.child != nil {
		c.child.Destroy(detach)
		c.child = nil
	}
}
