package docast

import (
	"testing"

	"github.com/yuin/goldmark/ast"
)

func refLabels(t *testing.T, src string) []string {
	t.Helper()
	source := []byte(src)
	doc := Parse(source)
	var labels []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if ref, ok := n.(*CrossRef); ok {
				labels = append(labels, string(ref.Label))
			}
		}
		return ast.WalkContinue, nil
	})
	return labels
}

func TestCrossRef_Bracketed(t *testing.T) {
	labels := refLabels(t, "See [@sch-a] for details.")
	if len(labels) != 1 || labels[0] != "sch-a" {
		t.Errorf("expected [sch-a], got %v", labels)
	}
}

func TestCrossRef_Bare(t *testing.T) {
	labels := refLabels(t, "See @fig1 for details.")
	if len(labels) != 1 || labels[0] != "fig1" {
		t.Errorf("expected [fig1], got %v", labels)
	}
}

func TestCrossRef_BareTrailingPunctuation(t *testing.T) {
	labels := refLabels(t, "As shown in @sch-b.")
	if len(labels) != 1 || labels[0] != "sch-b" {
		t.Errorf("expected punctuation excluded, got %v", labels)
	}
}

func TestCrossRef_EmailNotARef(t *testing.T) {
	if labels := refLabels(t, "Mail user@example.com about it."); len(labels) != 0 {
		t.Errorf("expected no refs in an email address, got %v", labels)
	}
}

func TestCrossRef_EmptyLabelNotARef(t *testing.T) {
	if labels := refLabels(t, "A lone @ sign and empty [@] brackets."); len(labels) != 0 {
		t.Errorf("expected no refs, got %v", labels)
	}
}

func TestCrossRef_MultiplePerLine(t *testing.T) {
	labels := refLabels(t, "Compare [@a] with [@b] and @c.")
	want := []string{"a", "b", "c"}
	if len(labels) != len(want) {
		t.Fatalf("expected %d refs, got %v", len(want), labels)
	}
	for i, w := range want {
		if labels[i] != w {
			t.Errorf("ref %d: expected %q, got %q", i, w, labels[i])
		}
	}
}

func TestCrossRef_RegularLinksUntouched(t *testing.T) {
	source := []byte("A [link](http://example.com) and [@ref] together.")
	doc := Parse(source)

	var links, refs int
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			switch n.(type) {
			case *ast.Link:
				links++
			case *CrossRef:
				refs++
			}
		}
		return ast.WalkContinue, nil
	})
	if links != 1 {
		t.Errorf("expected 1 link, got %d", links)
	}
	if refs != 1 {
		t.Errorf("expected 1 ref, got %d", refs)
	}
}

func TestCrossRef_ValueIsSourceText(t *testing.T) {
	source := []byte("See [@sch-a].")
	doc := Parse(source)
	var ref *CrossRef
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if r, ok := n.(*CrossRef); ok {
				ref = r
			}
		}
		return ast.WalkContinue, nil
	})
	if ref == nil {
		t.Fatal("expected a ref")
	}
	if got := string(ref.Value(source)); got != "[@sch-a]" {
		t.Errorf("expected literal source %q, got %q", "[@sch-a]", got)
	}
}
