package figure

import (
	"fmt"

	"github.com/chemdoc/figref/internal/docast"
	"github.com/yuin/goldmark/ast"
)

// resolve rewrites every reference token whose label the registry knows.
// Native targets get a raw \ref command so the typesetter substitutes the
// number; other targets get the category prefix and number as text. Unknown
// labels stay in the tree untouched, since a later filter in the host
// pipeline may still claim them.
//
// The registry is frozen by now, so tokens resolve independently of each
// other and of their position in the document.
func resolve(doc ast.Node, reg *Registry, fc FormatConfig, target Target) (seen, resolved int) {
	var refs []*docast.CrossRef
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if ref, ok := n.(*docast.CrossRef); ok {
				refs = append(refs, ref)
			}
		}
		return ast.WalkContinue, nil
	})

	for _, ref := range refs {
		seen++
		entry, ok := reg.Get(string(ref.Label))
		if !ok {
			continue
		}
		var repl ast.Node
		if target.Native() {
			repl = docast.NewRawLaTeX(fmt.Appendf(nil, `\ref{%s}`, entry.Label))
		} else {
			repl = ast.NewString([]byte(fc.Reference(entry.Category, entry.Number)))
		}
		parent := ref.Parent()
		parent.ReplaceChild(parent, ref, repl)
		resolved++
	}
	return seen, resolved
}
