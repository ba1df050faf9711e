package figure

import (
	"github.com/chemdoc/figref/internal/docast"
	"github.com/yuin/goldmark/ast"
)

// render applies the target's caption strategy to every numbered figure.
// Native targets only get delegation fields set on the node; the downstream
// LaTeX writer turns those into numbered environments and the caption inlines
// stay untouched. Every other target gets the numbered label synthesized into
// the caption here, since nothing downstream will do it.
func render(doc ast.Node, assigned map[*docast.Figure]Assigned, fc FormatConfig, target Target) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fig, ok := n.(*docast.Figure)
		if !ok {
			return ast.WalkContinue, nil
		}
		a, ok := assigned[fig]
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		if target.Native() {
			delegate(fig, a)
		} else {
			synthesize(fig, a, fc)
		}
		return ast.WalkSkipChildren, nil
	})
}

// delegate marks a figure for native numbering. Width, position and
// placement values pass through verbatim; interpreting them is the
// downstream renderer's job. Only the wrap position has a default. A wrap
// request takes precedence over a float placement.
func delegate(fig *docast.Figure, a Assigned) {
	fig.Delegated = true
	fig.Env = a.Category.String() + a.EnvSuffix
	if a.WrapWidth != "" {
		fig.Wrap = true
		fig.WrapWidth = a.WrapWidth
		fig.WrapPos = a.WrapPos
		if fig.WrapPos == "" {
			fig.WrapPos = "r"
		}
		return
	}
	fig.Placement = a.Placement
}

// synthesize prepends the numbered label to the caption and strips the
// placement params, which mean nothing outside LaTeX.
func synthesize(fig *docast.Figure, a Assigned, fc FormatConfig) {
	label := fc.Styled(a.Category, fc.CaptionLabel(a.Category, a.Number))
	fig.InsertBefore(fig, fig.FirstChild(), label)
	fig.RemoveParams(placementKeys...)
}
