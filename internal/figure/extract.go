package figure

import "github.com/chemdoc/figref/internal/docast"

// Attribute keys consumed by the filter. Placement keys are stripped from
// nodes on non-native targets, where they have no meaning.
const (
	keyWrapWidth = "wwidth"
	keyWrapPos   = "wpos"
	keyPlacement = "lpos"
	keyEnvSuffix = "lts"
)

var placementKeys = []string{keyWrapWidth, keyWrapPos, keyPlacement, keyEnvSuffix}

// Attrs is the classified view of a node's raw attribute set.
type Attrs struct {
	Category  Category
	Label     string
	WrapWidth string
	WrapPos   string
	Placement string
	EnvSuffix string
}

// ExtractAttrs classifies a node from its attributes. A node with no
// category class is not figure-like and reports ok=false. When several
// classes name categories, the first one declared on the node wins.
func ExtractAttrs(id string, classes []string, params []docast.Param) (Attrs, bool) {
	attrs := Attrs{Label: id}
	for _, class := range classes {
		if c, ok := CategoryFromClass(class); ok {
			attrs.Category = c
			break
		}
	}
	if attrs.Category == CategoryNone {
		return Attrs{}, false
	}
	for _, p := range params {
		switch p.Key {
		case keyWrapWidth:
			attrs.WrapWidth = p.Value
		case keyWrapPos:
			attrs.WrapPos = p.Value
		case keyPlacement:
			attrs.Placement = p.Value
		case keyEnvSuffix:
			attrs.EnvSuffix = p.Value
		}
	}
	return attrs, true
}
