package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/chemdoc/figref/internal/docast"
)

// latexWriter serializes a document tree as LaTeX body source. It emits no
// preamble; the output is meant to be included in or concatenated into a
// full document.
type latexWriter struct {
	w      *bufio.Writer
	source []byte
}

func writeLaTeX(w io.Writer, doc ast.Node, source []byte) error {
	lw := &latexWriter{w: bufio.NewWriter(w), source: source}
	lw.blocks(doc)
	return lw.w.Flush()
}

// blocks writes parent's children separated by blank lines.
func (lw *latexWriter) blocks(parent ast.Node) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if c != parent.FirstChild() {
			lw.w.WriteByte('\n')
		}
		lw.block(c)
	}
}

var sectionCmds = []string{
	"\\section", "\\subsection", "\\subsubsection",
	"\\paragraph", "\\subparagraph", "\\subparagraph",
}

func (lw *latexWriter) block(n ast.Node) {
	switch t := n.(type) {
	case *ast.Heading:
		level := t.Level
		if level > len(sectionCmds) {
			level = len(sectionCmds)
		}
		lw.w.WriteString(sectionCmds[level-1])
		lw.w.WriteByte('{')
		lw.inlines(t)
		lw.w.WriteString("}\n")
	case *ast.Paragraph:
		lw.inlines(t)
		lw.w.WriteByte('\n')
	case *ast.TextBlock:
		lw.inlines(t)
		lw.w.WriteByte('\n')
	case *ast.Blockquote:
		lw.w.WriteString("\\begin{quote}\n")
		lw.blocks(t)
		lw.w.WriteString("\\end{quote}\n")
	case *ast.FencedCodeBlock:
		lw.verbatim(t)
	case *ast.CodeBlock:
		lw.verbatim(t)
	case *ast.List:
		lw.list(t)
	case *ast.ThematicBreak:
		lw.w.WriteString("\\begin{center}\\rule{0.5\\linewidth}{0.5pt}\\end{center}\n")
	case *docast.Figure:
		lw.figure(t)
	case *ast.HTMLBlock:
		// raw HTML has no LaTeX rendering
	default:
		lw.blocks(n)
	}
}

func (lw *latexWriter) verbatim(n ast.Node) {
	lw.w.WriteString("\\begin{verbatim}\n")
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		lw.w.Write(seg.Value(lw.source))
	}
	lw.w.WriteString("\\end{verbatim}\n")
}

func (lw *latexWriter) list(n *ast.List) {
	env := "itemize"
	if n.IsOrdered() {
		env = "enumerate"
	}
	lw.w.WriteString("\\begin{" + env + "}\n")
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		lw.w.WriteString("\\item ")
		lw.listItem(c)
	}
	lw.w.WriteString("\\end{" + env + "}\n")
}

// listItem writes an item's blocks. Tight items hold a single text block, so
// the common case is one inline run on the \item line.
func (lw *latexWriter) listItem(item ast.Node) {
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if c != item.FirstChild() {
			lw.w.WriteByte('\n')
		}
		lw.block(c)
	}
}

// figure emits the environment markup the numbering pass chose. Wrapped
// floats use the wrapfloat environment around the category environment;
// plain floats carry an optional placement. Figures the passes never
// touched fall back to a standard figure environment.
func (lw *latexWriter) figure(n *docast.Figure) {
	env := n.Env
	if env == "" {
		env = "figure"
	}
	switch {
	case n.Wrap:
		fmt.Fprintf(lw.w, "\\begin{wrapfloat}{%s}{%s}{%s}\n", env, n.WrapPos, n.WrapWidth)
	case n.Placement != "":
		fmt.Fprintf(lw.w, "\\begin{%s}[%s]\n", env, n.Placement)
	default:
		fmt.Fprintf(lw.w, "\\begin{%s}\n", env)
	}
	lw.w.WriteString("\\centering\n")
	fmt.Fprintf(lw.w, "\\includegraphics{%s}\n", n.Destination)
	if n.HasChildren() {
		lw.w.WriteString("\\caption{")
		lw.inlines(n)
		lw.w.WriteString("}\n")
	}
	if n.ID != "" {
		fmt.Fprintf(lw.w, "\\label{%s}\n", n.ID)
	}
	if n.Wrap {
		lw.w.WriteString("\\end{wrapfloat}\n")
	} else {
		fmt.Fprintf(lw.w, "\\end{%s}\n", env)
	}
}

func (lw *latexWriter) inlines(parent ast.Node) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		lw.inline(c)
	}
}

func (lw *latexWriter) inline(n ast.Node) {
	switch t := n.(type) {
	case *ast.Text:
		lw.w.WriteString(escapeLaTeX(string(t.Value(lw.source))))
		if t.HardLineBreak() {
			lw.w.WriteString("\\\\\n")
		} else if t.SoftLineBreak() {
			lw.w.WriteByte('\n')
		}
	case *ast.String:
		lw.w.WriteString(escapeLaTeX(string(t.Value)))
	case *ast.Emphasis:
		if t.Level == 2 {
			lw.w.WriteString("\\textbf{")
		} else {
			lw.w.WriteString("\\emph{")
		}
		lw.inlines(t)
		lw.w.WriteByte('}')
	case *ast.CodeSpan:
		lw.w.WriteString("\\texttt{")
		lw.w.WriteString(escapeLaTeX(docast.PlainText(t, lw.source)))
		lw.w.WriteByte('}')
	case *ast.Link:
		fmt.Fprintf(lw.w, "\\href{%s}{", t.Destination)
		lw.inlines(t)
		lw.w.WriteByte('}')
	case *ast.AutoLink:
		fmt.Fprintf(lw.w, "\\url{%s}", t.URL(lw.source))
	case *ast.Image:
		fmt.Fprintf(lw.w, "\\includegraphics{%s}", t.Destination)
	case *ast.RawHTML:
		// dropped
	case *docast.CrossRef:
		// unresolved reference tokens keep their literal source text
		lw.w.WriteString(escapeLaTeX(string(t.Value(lw.source))))
	case *docast.RawLaTeX:
		lw.w.Write(t.Value)
	default:
		lw.inlines(n)
	}
}

var latexEscaper = strings.NewReplacer(
	"\\", "\\textbackslash{}",
	"&", "\\&",
	"%", "\\%",
	"$", "\\$",
	"#", "\\#",
	"_", "\\_",
	"{", "\\{",
	"}", "\\}",
	"~", "\\textasciitilde{}",
	"^", "\\textasciicircum{}",
)

func escapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}
