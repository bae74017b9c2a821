// Package quiz is the reference application for the runtime: a
// guess-the-team quiz where each row shows a team's players and reveals
// the team tag once guessed. It wires the full stack together: stores,
// component slots, conditional fragments, and hydration of pre-rendered
// output.
package quiz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fray-ui/fray/pkg/dom"
	"github.com/fray-ui/fray/pkg/fragment"
	"github.com/fray-ui/fray/pkg/render"
	"github.com/fray-ui/fray/pkg/runtime"
)

// Reactive slot layout for the quiz component.
const (
	slotGuess = iota
	slotRevealed
	slotScore
)

// App is one live quiz instance mounted into a document.
type App struct {
	rt      *runtime.RuntimeContext
	doc     *dom.Document
	roster  *Roster
	matcher *Matcher
	score   *runtime.Store[int]

	c     *runtime.ComponentInstance
	input *fragment.Element
}

// AppOptions configures NewApp.
type AppOptions struct {
	// Target is the mount point, usually the document body.
	Target *dom.Node

	// Hydrate adopts Target's pre-rendered children instead of creating
	// fresh nodes.
	Hydrate bool
}

// NewApp builds and mounts a quiz over the given roster.
func NewApp(rt *runtime.RuntimeContext, doc *dom.Document, roster *Roster, opts AppOptions) *App {
	a := &App{
		rt:      rt,
		doc:     doc,
		roster:  roster,
		matcher: NewMatcher(roster),
		score:   runtime.NewStore(rt, 0),
	}
	b := fragment.NewBuilder(rt, doc)

	a.c = runtime.Instantiate(rt, runtime.Options{
		Init: func(c *runtime.ComponentInstance, props map[string]any, invalidate func(int, any)) []any {
			rt.OnDestroy(a.score.Bind(c, slotScore))
			return []any{"", map[string]bool{}, a.score.Get()}
		},
		CreateFragment: func(ctx []any) runtime.Fragment {
			return a.buildFragment(b, ctx)
		},
		Target:  opts.Target,
		Hydrate: opts.Hydrate,
	})
	return a
}

func (a *App) buildFragment(b *fragment.Builder, ctx []any) runtime.Fragment {
	revealed := func() map[string]bool { return ctx[slotRevealed].(map[string]bool) }

	a.input = b.Element("input",
		fragment.Static("type", "text"),
		fragment.Static("placeholder", "team name"),
		fragment.Attr("value", 1<<slotGuess, func() any { return ctx[slotGuess] }),
	)

	scoreLine := b.Element("p",
		fragment.Static("class", "score"),
		fragment.Children(
			b.Text("Score: "),
			b.DynamicText(1<<slotScore, func() string {
				return strconv.Itoa(ctx[slotScore].(int))
			}),
			b.Text(fmt.Sprintf(" / %d", len(a.roster.Teams))),
		),
	)

	rows := make([]runtime.Fragment, 0, len(a.roster.Teams))
	for _, team := range a.roster.Teams {
		answer := b.If(
			func() bool { return revealed()[team.Tag] },
			func() runtime.Fragment {
				return b.Element("span",
					fragment.Static("class", "answer"),
					fragment.Children(b.Text(team.Tag)),
				)
			},
			func() runtime.Fragment {
				return b.Element("span",
					fragment.Static("class", "hidden"),
					fragment.Children(b.Text("-")),
				)
			},
		)
		rows = append(rows, b.Element("li",
			fragment.Children(
				b.Element("span",
					fragment.Static("class", "players"),
					fragment.Children(b.Text(strings.Join(team.Players, ", "))),
				),
				answer,
			),
		))
	}

	return b.Element("div",
		fragment.Static("class", "quiz"),
		fragment.Children(
			a.input,
			scoreLine,
			b.Element("ul", fragment.Children(rows...)),
		),
	)
}

// SetGuess writes the current input value, as a keystroke handler would.
func (a *App) SetGuess(s string) {
	a.rt.Dispatch(func() {
		a.c.Invalidate(slotGuess, s)
	})
}

// Submit resolves the current guess. A first-time correct guess reveals
// the team, bumps the score, and clears the input; anything else leaves
// the quiz untouched. Reports whether a team was revealed.
func (a *App) Submit() bool {
	revealed := false
	a.rt.Dispatch(func() {
		guess := a.c.Ctx()[slotGuess].(string)
		idx, ok := a.matcher.Match(guess)
		if !ok {
			a.rt.Logger().Debug("guess missed", "guess", guess)
			return
		}
		team := a.roster.Teams[idx]
		rev := a.c.Ctx()[slotRevealed].(map[string]bool)
		if rev[team.Tag] {
			return
		}
		rev[team.Tag] = true
		a.c.Invalidate(slotRevealed, rev)
		a.score.Update(func(v int) int { return v + 1 })
		a.c.Invalidate(slotGuess, "")
		revealed = true
		a.rt.Logger().Info("team revealed", "team", team.Tag, "score", a.score.Get())
	})
	return revealed
}

// Score returns the number of revealed teams.
func (a *App) Score() int { return a.score.Get() }

// Complete reports whether every team has been revealed.
func (a *App) Complete() bool { return a.score.Get() == len(a.roster.Teams) }

// InputNode returns the live input element node.
func (a *App) InputNode() *dom.Node { return a.input.Node() }

// Component returns the underlying component instance.
func (a *App) Component() *runtime.ComponentInstance { return a.c }

// HTML serializes the document body's content.
func (a *App) HTML() (string, error) {
	return render.NewRenderer(render.Config{}).RenderChildren(a.doc.Body())
}

// Destroy tears the quiz down. keepDOM leaves the rendered nodes in
// place, which is how a server render hands its tree to a hydrating
// client instance.
func (a *App) Destroy(keepDOM bool) {
	a.c.Destroy(!keepDOM)
}
