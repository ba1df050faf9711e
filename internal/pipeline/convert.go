package pipeline

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/chemdoc/figref/internal/docast"
	"github.com/chemdoc/figref/internal/figure"
	"github.com/chemdoc/figref/internal/render"
)

// ConvertResult is the outcome of one conversion run.
type ConvertResult struct {
	Target      figure.Target
	ContentType string
	Output      []byte
	Figures     []figure.Entry
	Report      figure.Report
}

// ResolveTarget picks the output target: an explicit request wins over the
// document's frontmatter, which wins over the configured default.
func ResolveTarget(requested, frontmatter string, def figure.Target) (figure.Target, error) {
	switch {
	case requested != "":
		return figure.ParseTarget(requested)
	case frontmatter != "":
		return figure.ParseTarget(frontmatter)
	}
	return def, nil
}

// Convert runs the whole filter on markdown source: frontmatter split,
// parse, figure numbering with reference resolution, serialization. Every
// call builds fresh counters, so concurrent conversions never share state.
func Convert(source []byte, requestedTarget string, def figure.Target, log *slog.Logger) (ConvertResult, error) {
	meta, body, err := docast.SplitFrontmatter(source)
	if err != nil {
		return ConvertResult{}, err
	}
	target, err := ResolveTarget(requestedTarget, meta.Target, def)
	if err != nil {
		return ConvertResult{}, err
	}

	doc := docast.Parse(body)
	reg, report := figure.Process(doc, body, figure.Options{
		Target:  target,
		Formats: figure.ResolveFormats(meta.Labels),
		Log:     log,
	})

	var buf bytes.Buffer
	if err := render.Document(&buf, doc, body, target); err != nil {
		return ConvertResult{}, fmt.Errorf("render %s: %w", target, err)
	}
	return ConvertResult{
		Target:      target,
		ContentType: render.ContentType(target),
		Output:      buf.Bytes(),
		Figures:     reg.Entries(),
		Report:      report,
	}, nil
}
