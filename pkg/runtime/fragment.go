package runtime

import (
	"github.com/fray-ui/fray/pkg/dom"

	"github.com/fray-ui/fray/pkg/hydrate"
)

// Fragment is the unit of renderable output. Concrete variants live in the
// fragment package; the runtime depends only on this shape.
//
// Lifecycle: Create builds detached DOM, Mount attaches it, Patch applies
// the minimal mutations for the given dirty bitmask, Intro/Outro run enter
// and exit transitions, Destroy tears down (detaching from the DOM when
// asked). Destroy must be idempotent: parents cascade destroy into
// children, and a child may already have been destroyed explicitly.
type Fragment interface {
	Create()
	Mount(target, anchor *dom.Node)
	Patch(ctx []any, dirty int64)
	Intro(local bool)
	Outro(local bool)
	Destroy(detach bool)
}

// Outroer is implemented by fragments that have exit-transition behavior.
// The transition coordinator treats TransitionOut as a no-op for fragments
// that do not report an outro.
type Outroer interface {
	HasOutro() bool
}

// Claimable is implemented by fragments that can adopt pre-rendered DOM
// instead of creating fresh nodes. Claim walks the existing children of
// target, stamping every adopted node with its consumption order via the
// claimer, and falls back to creating nodes that have no match.
type Claimable interface {
	Claim(target *dom.Node, c *hydrate.Claimer)
}
