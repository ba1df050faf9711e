package importer

import (
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"notes.md", "*importer.MarkdownImporter"},
		{"notes.markdown", "*importer.MarkdownImporter"},
		{"notes.txt", "*importer.MarkdownImporter"},
		{"REPORT.MD", "*importer.MarkdownImporter"},
		{"page.html", "*importer.HTMLImporter"},
		{"page.htm", "*importer.HTMLImporter"},
		{"paper.pdf", "*importer.PDFImporter"},
		{"thesis.docx", "*importer.DOCXImporter"},
	}
	for _, tt := range tests {
		imp, err := ForFile(tt.filename, Config{})
		if err != nil {
			t.Fatalf("ForFile(%q): unexpected error: %v", tt.filename, err)
		}
		switch imp.(type) {
		case *MarkdownImporter:
			if tt.want != "*importer.MarkdownImporter" {
				t.Errorf("ForFile(%q): got MarkdownImporter, want %s", tt.filename, tt.want)
			}
		case *HTMLImporter:
			if tt.want != "*importer.HTMLImporter" {
				t.Errorf("ForFile(%q): got HTMLImporter, want %s", tt.filename, tt.want)
			}
		case *PDFImporter:
			if tt.want != "*importer.PDFImporter" {
				t.Errorf("ForFile(%q): got PDFImporter, want %s", tt.filename, tt.want)
			}
		case *DOCXImporter:
			if tt.want != "*importer.DOCXImporter" {
				t.Errorf("ForFile(%q): got DOCXImporter, want %s", tt.filename, tt.want)
			}
		}
	}
}

func TestForFile_Unsupported(t *testing.T) {
	if _, err := ForFile("data.csv", Config{}); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestForFile_PDFFallbackFlag(t *testing.T) {
	imp, err := ForFile("paper.pdf", Config{PDFFallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, ok := imp.(*PDFImporter)
	if !ok {
		t.Fatalf("expected PDFImporter, got %T", imp)
	}
	if !p.FallbackPdftotext {
		t.Error("expected fallback flag carried into importer")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	supported := []string{"a.md", "a.markdown", "a.txt", "a.html", "a.htm", "a.pdf", "a.docx", "A.PDF"}
	for _, f := range supported {
		if !IsSupportedExtension(f) {
			t.Errorf("expected %q supported", f)
		}
	}
	unsupported := []string{"a.csv", "a.png", "a", "a.tex"}
	for _, f := range unsupported {
		if IsSupportedExtension(f) {
			t.Errorf("expected %q unsupported", f)
		}
	}
}

func TestMarkdownImporter_Passthrough(t *testing.T) {
	input := "---\ntarget: latex\n---\n![A](a.png){#sch-a .scheme}\n"
	p := &MarkdownImporter{}
	out, err := p.Import(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != input {
		t.Errorf("expected passthrough, got %q", out)
	}
}
