package importer

import "io"

// MarkdownImporter handles markdown and plain text files. Both are already
// valid pipeline input, so they pass through unchanged.
type MarkdownImporter struct{}

func (p *MarkdownImporter) Import(r io.Reader, filename string) ([]byte, error) {
	return io.ReadAll(r)
}
