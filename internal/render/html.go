package render

import (
	"io"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/chemdoc/figref/internal/docast"
)

// writeHTML serializes the tree with goldmark's HTML renderer extended by
// renderers for the figure node kinds.
func writeHTML(w io.Writer, doc ast.Node, source []byte) error {
	r := renderer.NewRenderer(renderer.WithNodeRenderers(
		util.Prioritized(html.NewRenderer(), 1000),
		util.Prioritized(&figureHTMLRenderer{}, 500),
	))
	return r.Render(w, source, doc)
}

type figureHTMLRenderer struct{}

func (r *figureHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(docast.KindFigure, r.renderFigure)
	reg.Register(docast.KindCrossRef, r.renderCrossRef)
	reg.Register(docast.KindRawLaTeX, r.renderRawLaTeX)
}

func (r *figureHTMLRenderer) renderFigure(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*docast.Figure)
	if !entering {
		if n.HasChildren() {
			_, _ = w.WriteString("</figcaption>\n")
		}
		_, _ = w.WriteString("</figure>\n")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("<figure")
	if n.ID != "" {
		_, _ = w.WriteString(` id="`)
		_, _ = w.Write(util.EscapeHTML([]byte(n.ID)))
		_ = w.WriteByte('"')
	}
	if len(n.Classes) > 0 {
		_, _ = w.WriteString(` class="`)
		_, _ = w.Write(util.EscapeHTML([]byte(strings.Join(n.Classes, " "))))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(">\n<img src=\"")
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(docast.PlainText(n, source))))
	_ = w.WriteByte('"')
	if len(n.ImageTitle) > 0 {
		_, _ = w.WriteString(` title="`)
		_, _ = w.Write(util.EscapeHTML(n.ImageTitle))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(">\n")
	if n.HasChildren() {
		_, _ = w.WriteString("<figcaption>")
	}
	return ast.WalkContinue, nil
}

// renderCrossRef writes an unresolved reference token as its literal source
// text so authors can spot the dangling label.
func (r *figureHTMLRenderer) renderCrossRef(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*docast.CrossRef)
	_, _ = w.Write(util.EscapeHTML(n.Value(source)))
	return ast.WalkSkipChildren, nil
}

func (r *figureHTMLRenderer) renderRawLaTeX(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}
