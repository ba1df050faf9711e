package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/chemdoc/figref/internal/docast"
	"github.com/chemdoc/figref/internal/figure"
)

// process parses src, runs the figure passes for target and returns the
// rendered output.
func process(t *testing.T, src string, target figure.Target) string {
	t.Helper()
	source := []byte(src)
	doc := docast.Parse(source)
	figure.Process(doc, source, figure.Options{Target: target})
	var buf bytes.Buffer
	if err := Document(&buf, doc, source, target); err != nil {
		t.Fatalf("render %s: %v", target, err)
	}
	return buf.String()
}

func wantContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(out, f) {
			t.Errorf("output missing %q\n---\n%s", f, out)
		}
	}
}

func TestDocument_UnknownTarget(t *testing.T) {
	source := []byte("hello\n")
	doc := docast.Parse(source)
	var buf bytes.Buffer
	if err := Document(&buf, doc, source, figure.Target("docx")); err == nil {
		t.Fatal("expected error for unknown target")
	}
}

func TestContentType(t *testing.T) {
	cases := []struct {
		target figure.Target
		want   string
	}{
		{figure.TargetLaTeX, "application/x-latex"},
		{figure.TargetPDF, "application/x-latex"},
		{figure.TargetHTML, "text/html; charset=utf-8"},
	}
	for _, tc := range cases {
		if got := ContentType(tc.target); got != tc.want {
			t.Errorf("ContentType(%s) = %q, want %q", tc.target, got, tc.want)
		}
	}
}
