package docast

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

type figureTransformer struct{}

// NewFigureTransformer returns an AST transformer that promotes standalone
// image paragraphs into Figure blocks.
func NewFigureTransformer() parser.ASTTransformer {
	return &figureTransformer{}
}

// Transform rewrites every paragraph that consists of a single image,
// optionally followed by an attribute block, into a Figure. Collecting the
// candidates first keeps the walk's sibling pointers intact while nodes are
// replaced.
func (t *figureTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var paragraphs []*ast.Paragraph
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if p, ok := n.(*ast.Paragraph); ok {
			paragraphs = append(paragraphs, p)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, p := range paragraphs {
		fig, ok := figureFromParagraph(p, source)
		if !ok {
			continue
		}
		parent := p.Parent()
		parent.ReplaceChild(parent, p, fig)
	}
}

// figureFromParagraph converts a paragraph of the form ![caption](dest) or
// ![caption](dest){...attrs...} into a Figure. Any other content keeps the
// paragraph as-is. The image's alt inlines move onto the figure as its
// caption.
func figureFromParagraph(p *ast.Paragraph, source []byte) (*Figure, bool) {
	img, ok := p.FirstChild().(*ast.Image)
	if !ok {
		return nil, false
	}

	var trailing strings.Builder
	for c := img.NextSibling(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok {
			return nil, false
		}
		trailing.Write(t.Value(source))
		if t.SoftLineBreak() || t.HardLineBreak() {
			trailing.WriteByte(' ')
		}
	}

	fig := NewFigure(img.Destination, img.Title)
	if rest := strings.TrimSpace(trailing.String()); rest != "" {
		id, classes, params, ok := parseAttributes(rest)
		if !ok {
			return nil, false
		}
		fig.ID = id
		fig.Classes = classes
		fig.Params = params
	}

	for c := img.FirstChild(); c != nil; {
		next := c.NextSibling()
		fig.AppendChild(fig, c)
		c = next
	}
	return fig, true
}
