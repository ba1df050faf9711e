// Package render serializes processed document trees. LaTeX output keeps
// the delegation markup the figure passes emit; HTML output carries the
// synthesized captions instead.
package render

import (
	"fmt"
	"io"

	"github.com/yuin/goldmark/ast"

	"github.com/chemdoc/figref/internal/figure"
)

// Document writes the serialized form of doc for the given target. The pdf
// target emits LaTeX source; compiling it is a downstream concern.
func Document(w io.Writer, doc ast.Node, source []byte, target figure.Target) error {
	switch target {
	case figure.TargetLaTeX, figure.TargetPDF:
		return writeLaTeX(w, doc, source)
	case figure.TargetHTML:
		return writeHTML(w, doc, source)
	}
	return fmt.Errorf("no renderer for target %q", target)
}

// ContentType returns the media type of the bytes Document writes for the
// target.
func ContentType(target figure.Target) string {
	if target.Native() {
		return "application/x-latex"
	}
	return "text/html; charset=utf-8"
}
