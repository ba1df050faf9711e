package docast

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Param is one key/value attribute pair, in declared order.
type Param struct {
	Key   string
	Value string
}

// KindFigure is the node kind of Figure blocks.
var KindFigure = ast.NewNodeKind("Figure")

// Figure is a standalone image block with an attribute set. The node's
// children are the caption inlines (the image's alt content). The Delegated
// fields are filled in by the figure passes for native-numbering targets and
// consumed by the LaTeX writer.
type Figure struct {
	ast.BaseBlock

	Destination []byte
	ImageTitle  []byte

	ID      string
	Classes []string
	Params  []Param

	// Set when a native-numbering target delegates captioning to the
	// downstream renderer.
	Delegated bool
	Env       string
	Wrap      bool
	WrapPos   string
	WrapWidth string
	Placement string
}

// NewFigure returns a figure block for the given image target.
func NewFigure(destination, title []byte) *Figure {
	return &Figure{
		Destination: destination,
		ImageTitle:  title,
	}
}

// Kind implements ast.Node.Kind.
func (n *Figure) Kind() ast.NodeKind {
	return KindFigure
}

// Dump implements ast.Node.Dump.
func (n *Figure) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Destination": string(n.Destination),
		"ID":          n.ID,
		"Classes":     strings.Join(n.Classes, " "),
	}, nil)
}

// Param returns the value of the named attribute pair.
func (n *Figure) Param(key string) (string, bool) {
	for _, p := range n.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// RemoveParams drops the named attribute pairs from the node.
func (n *Figure) RemoveParams(keys ...string) {
	kept := n.Params[:0]
	for _, p := range n.Params {
		drop := false
		for _, k := range keys {
			if p.Key == k {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, p)
		}
	}
	n.Params = kept
}

// KindCrossRef is the node kind of CrossRef inlines.
var KindCrossRef = ast.NewNodeKind("CrossRef")

// CrossRef is a citation-style reference token targeting a figure label.
// Unresolved tokens render as their literal source text.
type CrossRef struct {
	ast.BaseInline

	Label   []byte
	Segment text.Segment
}

// NewCrossRef returns a reference token for the given label.
func NewCrossRef(label []byte, segment text.Segment) *CrossRef {
	return &CrossRef{
		Label:   label,
		Segment: segment,
	}
}

// Kind implements ast.Node.Kind.
func (n *CrossRef) Kind() ast.NodeKind {
	return KindCrossRef
}

// Dump implements ast.Node.Dump.
func (n *CrossRef) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Label": string(n.Label),
	}, nil)
}

// Value returns the token's original source text.
func (n *CrossRef) Value(source []byte) []byte {
	return n.Segment.Value(source)
}

// KindRawLaTeX is the node kind of RawLaTeX inlines.
var KindRawLaTeX = ast.NewNodeKind("RawLaTeX")

// RawLaTeX is an inline emitted verbatim by the LaTeX writer and dropped by
// every other serializer.
type RawLaTeX struct {
	ast.BaseInline

	Value []byte
}

// NewRawLaTeX returns a raw LaTeX inline.
func NewRawLaTeX(value []byte) *RawLaTeX {
	return &RawLaTeX{Value: value}
}

// Kind implements ast.Node.Kind.
func (n *RawLaTeX) Kind() ast.NodeKind {
	return KindRawLaTeX
}

// Dump implements ast.Node.Dump.
func (n *RawLaTeX) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Value": string(n.Value),
	}, nil)
}

// PlainText flattens a node's inline content to plain text. Soft and hard
// line breaks become single spaces.
func PlainText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	writePlainText(&buf, n, source)
	return buf.String()
}

func writePlainText(buf *bytes.Buffer, n ast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *CrossRef:
			buf.Write(t.Value(source))
		default:
			writePlainText(buf, c, source)
		}
	}
}
