package figure

import (
	"strconv"

	"github.com/chemdoc/figref/internal/docast"
	"github.com/yuin/goldmark/ast"
)

// LabelFormat is the display template for one category's numbered labels.
// A caption label is Prefix + number + Separator; an inline reference is
// Prefix + number. Style applies to the whole label so the number carries
// the same emphasis as its prefix.
type LabelFormat struct {
	Prefix    string
	Separator string
	Style     string // "", "strong" or "em"
}

// FormatConfig holds the resolved per-category templates for one run.
type FormatConfig map[Category]LabelFormat

// DefaultFormats returns the built-in templates.
func DefaultFormats() FormatConfig {
	return FormatConfig{
		CategoryFigure: {Prefix: "Fig. ", Separator: " "},
		CategoryScheme: {Prefix: "Sch. ", Separator: " "},
		CategoryChart:  {Prefix: "Chart ", Separator: " "},
		CategoryGraph:  {Prefix: "Graph ", Separator: " "},
	}
}

// ResolveFormats merges frontmatter overrides over the defaults. Overrides
// are keyed by category class; keys naming no category are ignored.
func ResolveFormats(overrides map[string]docast.LabelOverride) FormatConfig {
	fc := DefaultFormats()
	for class, ov := range overrides {
		c, ok := CategoryFromClass(class)
		if !ok {
			continue
		}
		f := fc[c]
		if ov.Prefix != "" {
			f.Prefix = ov.Prefix
		}
		if ov.Suffix != "" {
			f.Separator = ov.Suffix
		}
		if ov.Style != "" {
			f.Style = ov.Style
		}
		fc[c] = f
	}
	return fc
}

// Reference renders the inline reference text for a numbered figure.
func (fc FormatConfig) Reference(c Category, number int) string {
	return fc[c].Prefix + strconv.Itoa(number)
}

// CaptionLabel renders the label prepended to a synthesized caption,
// including the separator before the caption text.
func (fc FormatConfig) CaptionLabel(c Category, number int) string {
	f := fc[c]
	return f.Prefix + strconv.Itoa(number) + f.Separator
}

// Styled wraps label text in the category's configured emphasis.
func (fc FormatConfig) Styled(c Category, label string) ast.Node {
	s := ast.NewString([]byte(label))
	switch fc[c].Style {
	case "strong":
		em := ast.NewEmphasis(2)
		em.AppendChild(em, s)
		return em
	case "em":
		em := ast.NewEmphasis(1)
		em.AppendChild(em, s)
		return em
	}
	return s
}
