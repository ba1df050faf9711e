package figure

import (
	"log/slog"
	"strings"

	"github.com/chemdoc/figref/internal/docast"
	"github.com/yuin/goldmark/ast"
)

// Assigned is the numbering pass's record for one classified node: its
// extracted attributes plus the sequence number it drew from its category.
type Assigned struct {
	Attrs
	Number int
}

// number walks the tree once in document order, numbering every classified
// figure with a non-empty caption. A figure with no caption text has nothing
// for a number to attach to and is skipped outright, invisible to both the
// counters and the registry. The tree is not mutated here; the rendering
// pass picks the assignments up afterwards.
func number(doc ast.Node, source []byte, reg *Registry, log *slog.Logger) map[*docast.Figure]Assigned {
	assigned := make(map[*docast.Figure]Assigned)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fig, ok := n.(*docast.Figure)
		if !ok {
			return ast.WalkContinue, nil
		}

		attrs, ok := ExtractAttrs(fig.ID, fig.Classes, fig.Params)
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		caption := docast.PlainText(fig, source)
		if strings.TrimSpace(caption) == "" {
			return ast.WalkSkipChildren, nil
		}

		num := reg.Next(attrs.Category)
		assigned[fig] = Assigned{Attrs: attrs, Number: num}

		// Unlabeled figures are numbered for display but cannot be
		// referenced, so they never reach the registry.
		if attrs.Label == "" {
			return ast.WalkSkipChildren, nil
		}
		entry := Entry{
			Label:    attrs.Label,
			Category: attrs.Category,
			Number:   num,
			Caption:  caption,
		}
		if prev, conflict := reg.Put(entry); conflict {
			log.Warn("duplicate figure label, keeping the later figure",
				"label", attrs.Label,
				"was", prev.Category.String(), "was_number", prev.Number,
				"now", entry.Category.String(), "now_number", entry.Number,
			)
		}
		return ast.WalkSkipChildren, nil
	})

	return assigned
}
