package importer

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// HTMLImporter converts HTML files to markdown. Figure elements and
// standalone images come out as attributed image blocks so their labels and
// category classes survive the trip into the pipeline.
type HTMLImporter struct{}

func (p *HTMLImporter) Import(r io.Reader, filename string) ([]byte, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var buf bytes.Buffer
	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	writeBlocks(&buf, body)
	return buf.Bytes(), nil
}

func writeBlocks(buf *bytes.Buffer, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeBlock(buf, c)
	}
}

func writeBlock(buf *bytes.Buffer, n *html.Node) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			writePara(buf, t)
		}
		return
	}
	if n.Type != html.ElementNode {
		return
	}

	if level := headingLevel(n.Data); level > 0 {
		writePara(buf, strings.Repeat("#", level)+" "+inlineMarkdown(n))
		return
	}

	switch n.Data {
	case "script", "style", "nav", "footer", "header":
		return
	case "p":
		// A paragraph holding a single image is a figure in disguise.
		if img := soleImage(n); img != nil {
			writePara(buf, imageBlock(img, nil, ""))
			return
		}
		if t := inlineMarkdown(n); t != "" {
			writePara(buf, t)
		}
	case "figure":
		writeFigure(buf, n)
	case "img":
		writePara(buf, imageBlock(n, nil, ""))
	case "ul", "ol":
		writeList(buf, n)
	case "blockquote":
		if t := inlineMarkdown(n); t != "" {
			writePara(buf, "> "+t)
		}
	case "pre":
		writePara(buf, "```\n"+strings.Trim(rawText(n), "\n")+"\n```")
	default:
		writeBlocks(buf, n)
	}
}

// writeFigure emits an attributed image block, folding the figcaption into
// the image's alt text and the figure's id and classes into the attribute
// set.
func writeFigure(buf *bytes.Buffer, n *html.Node) {
	img := findElement(n, "img")
	if img == nil {
		writeBlocks(buf, n)
		return
	}
	var caption string
	if fc := findElement(n, "figcaption"); fc != nil {
		caption = inlineMarkdown(fc)
	}
	writePara(buf, imageBlock(img, n, caption))
}

// imageBlock renders ![caption](src){#id .class ...}. Attributes on the
// enclosing figure element win over attributes on the img.
func imageBlock(img, figure *html.Node, caption string) string {
	src := attrValue(img, "src")
	if caption == "" {
		caption = attrValue(img, "alt")
	}
	id := attrValue(img, "id")
	classes := attrValue(img, "class")
	if figure != nil {
		if v := attrValue(figure, "id"); v != "" {
			id = v
		}
		if v := attrValue(figure, "class"); v != "" {
			classes = v
		}
	}

	var attrs []string
	if id != "" {
		attrs = append(attrs, "#"+id)
	}
	for _, c := range strings.Fields(classes) {
		attrs = append(attrs, "."+c)
	}

	s := fmt.Sprintf("![%s](%s)", caption, src)
	if len(attrs) > 0 {
		s += "{" + strings.Join(attrs, " ") + "}"
	}
	return s
}

func writeList(buf *bytes.Buffer, n *html.Node) {
	var items []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			items = append(items, inlineMarkdown(c))
		}
	}
	if len(items) == 0 {
		return
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		if n.Data == "ol" {
			fmt.Fprintf(&b, "%d. %s", i+1, item)
		} else {
			b.WriteString("- " + item)
		}
	}
	writePara(buf, b.String())
}

// writePara appends a block separated from the previous one by a blank line.
func writePara(buf *bytes.Buffer, s string) {
	if buf.Len() > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteString(s)
	buf.WriteByte('\n')
}

// inlineMarkdown converts an element's inline content to markdown text.
// Whitespace runs collapse to single spaces.
func inlineMarkdown(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(collapseSpace(n.Data))
			return
		}
		if n.Type != html.ElementNode {
			return
		}
		switch n.Data {
		case "em", "i":
			buf.WriteByte('*')
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			buf.WriteByte('*')
		case "strong", "b":
			buf.WriteString("**")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			buf.WriteString("**")
		case "code":
			buf.WriteByte('`')
			buf.WriteString(strings.TrimSpace(rawText(n)))
			buf.WriteByte('`')
		case "a":
			buf.WriteByte('[')
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			buf.WriteString("](" + attrValue(n, "href") + ")")
		case "img":
			buf.WriteString(imageBlock(n, nil, ""))
		case "br":
			buf.WriteByte('\n')
		case "script", "style":
			return
		default:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return strings.TrimSpace(buf.String())
}

// collapseSpace folds whitespace runs into single spaces, keeping leading
// and trailing separators so adjacent inline elements stay apart.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// soleImage returns the paragraph's img child if the paragraph holds nothing
// but that image and whitespace.
func soleImage(n *html.Node) *html.Node {
	var img *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		case c.Type == html.ElementNode && c.Data == "img":
			if img != nil {
				return nil
			}
			img = c
		case c.Type == html.ElementNode:
			return nil
		}
	}
	return img
}

func rawText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if e := findElement(c, tag); e != nil {
			return e
		}
	}
	return nil
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
