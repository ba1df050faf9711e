package docast

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Meta holds the document frontmatter fields the pipeline understands.
type Meta struct {
	Target string                   `yaml:"target"`
	Labels map[string]LabelOverride `yaml:"fig-labels"`
}

// LabelOverride customizes the numbered label of one figure category.
// Keys in fig-labels are category class names ("figure", "scheme", ...).
type LabelOverride struct {
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
	Style  string `yaml:"style"`
}

// SplitFrontmatter separates a leading YAML frontmatter block from the
// markdown body. Documents without a block come back unchanged with a zero
// Meta. An opening delimiter without a closing one is treated as content,
// not an error; malformed YAML inside a complete block is an error.
func SplitFrontmatter(source []byte) (Meta, []byte, error) {
	var meta Meta

	first, rest, found := bytes.Cut(source, []byte("\n"))
	if !found || string(bytes.TrimRight(first, "\r")) != "---" {
		return meta, source, nil
	}

	pos := 0
	for pos <= len(rest) {
		lineEnd := len(rest)
		next := len(rest) + 1
		if nl := bytes.IndexByte(rest[pos:], '\n'); nl >= 0 {
			lineEnd = pos + nl
			next = pos + nl + 1
		}
		line := string(bytes.TrimRight(rest[pos:lineEnd], "\r"))
		if line == "---" || line == "..." {
			if err := yaml.Unmarshal(rest[:pos], &meta); err != nil {
				return Meta{}, source, fmt.Errorf("parse frontmatter: %w", err)
			}
			if next >= len(rest) {
				return meta, rest[len(rest):], nil
			}
			return meta, rest[next:], nil
		}
		pos = next
	}
	return Meta{}, source, nil
}
