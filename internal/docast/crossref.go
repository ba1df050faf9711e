package docast

import (
	"bytes"
	"regexp"
	"unicode"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Reference tokens come in two forms: bracketed [@label] and bare @label.
// The bare form stops at whitespace and sheds trailing sentence punctuation
// so "see @sch-1." references sch-1.
var (
	crossRefBracketed = regexp.MustCompile(`^\[@([^\s\[\]]+)\]`)
	crossRefBare      = regexp.MustCompile(`^@([A-Za-z0-9][A-Za-z0-9_.:#-]*)`)
)

type crossRefParser struct{}

// NewCrossRefParser returns an inline parser for figure reference tokens.
func NewCrossRefParser() parser.InlineParser {
	return &crossRefParser{}
}

func (p *crossRefParser) Trigger() []byte {
	return []byte{'[', '@'}
}

func (p *crossRefParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	if len(line) == 0 {
		return nil
	}

	if line[0] == '[' {
		m := crossRefBracketed.FindSubmatch(line)
		if m == nil {
			return nil
		}
		consumed := len(m[0])
		n := NewCrossRef(m[1], text.NewSegment(segment.Start, segment.Start+consumed))
		block.Advance(consumed)
		return n
	}

	// A bare token must start a word: "user@host" stays intact.
	if prev := block.PrecendingCharacter(); unicode.IsLetter(prev) || unicode.IsDigit(prev) {
		return nil
	}
	m := crossRefBare.FindSubmatch(line)
	if m == nil {
		return nil
	}
	label := bytes.TrimRight(m[1], ".,;:!?")
	if len(label) == 0 {
		return nil
	}
	consumed := 1 + len(label)
	n := NewCrossRef(label, text.NewSegment(segment.Start, segment.Start+consumed))
	block.Advance(consumed)
	return n
}
