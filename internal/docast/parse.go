package docast

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// NewMarkdown builds a markdown instance with figure and cross-reference
// support. The reference parser runs ahead of the link parser so bracketed
// tokens are not swallowed as link labels.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithParserOptions(
			parser.WithInlineParsers(
				util.Prioritized(NewCrossRefParser(), 150),
			),
			parser.WithASTTransformers(
				util.Prioritized(NewFigureTransformer(), 500),
			),
		),
	)
}

// Parse parses markdown source into a document tree.
func Parse(source []byte) ast.Node {
	md := NewMarkdown()
	return md.Parser().Parse(text.NewReader(source))
}
