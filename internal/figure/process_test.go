package figure

import (
	"reflect"
	"testing"

	"github.com/chemdoc/figref/internal/docast"
	"github.com/yuin/goldmark/ast"
)

func parseDoc(t *testing.T, src string) (ast.Node, []byte) {
	t.Helper()
	source := []byte(src)
	return docast.Parse(source), source
}

func collectFigures(doc ast.Node) []*docast.Figure {
	var figs []*docast.Figure
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if f, ok := n.(*docast.Figure); ok {
				figs = append(figs, f)
			}
		}
		return ast.WalkContinue, nil
	})
	return figs
}

func collectRefs(doc ast.Node) []*docast.CrossRef {
	var refs []*docast.CrossRef
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if r, ok := n.(*docast.CrossRef); ok {
				refs = append(refs, r)
			}
		}
		return ast.WalkContinue, nil
	})
	return refs
}

// lastParagraphText flattens the document's last paragraph, which is where
// the test documents keep their reference prose.
func lastParagraphText(t *testing.T, doc ast.Node, source []byte) string {
	t.Helper()
	var last *ast.Paragraph
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if p, ok := n.(*ast.Paragraph); ok {
				last = p
			}
		}
		return ast.WalkContinue, nil
	})
	if last == nil {
		t.Fatal("document has no paragraph")
	}
	return docast.PlainText(last, source)
}

const schemeDoc = `![A](a.png){#sch-a .scheme}

![B](b.png){.scheme}

![C](c.png){#sch-c .scheme}

See [@sch-c] and [@sch-missing].
`

func TestProcess_SchemeScenario(t *testing.T) {
	doc, source := parseDoc(t, schemeDoc)
	reg, report := Process(doc, source, Options{Target: TargetHTML})

	entries := reg.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 registry entries, got %d", len(entries))
	}
	want := []Entry{
		{Label: "sch-a", Category: CategoryScheme, Number: 1, Caption: "A"},
		{Label: "sch-c", Category: CategoryScheme, Number: 3, Caption: "C"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("expected entries %+v, got %+v", want, entries)
	}
	if reg.Count(CategoryScheme) != 3 {
		t.Errorf("expected 3 schemes numbered, got %d", reg.Count(CategoryScheme))
	}

	figs := collectFigures(doc)
	if len(figs) != 3 {
		t.Fatalf("expected 3 figures, got %d", len(figs))
	}
	if got := docast.PlainText(figs[1], source); got != "Sch. 2 B" {
		t.Errorf("expected unlabeled caption %q, got %q", "Sch. 2 B", got)
	}

	if got := lastParagraphText(t, doc, source); got != "See Sch. 3 and [@sch-missing]." {
		t.Errorf("expected reference prose %q, got %q", "See Sch. 3 and [@sch-missing].", got)
	}

	refs := collectRefs(doc)
	if len(refs) != 1 {
		t.Fatalf("expected 1 unresolved token left, got %d", len(refs))
	}
	if string(refs[0].Label) != "sch-missing" {
		t.Errorf("expected unresolved label %q, got %q", "sch-missing", refs[0].Label)
	}

	if report.Figures != 3 {
		t.Errorf("expected 3 figures in report, got %d", report.Figures)
	}
	if report.RefsSeen != 2 || report.RefsResolved != 1 || report.RefsUnresolved != 1 {
		t.Errorf("expected refs seen=2 resolved=1 unresolved=1, got %+v", report)
	}
}

func TestProcess_NativeDelegation(t *testing.T) {
	doc, source := parseDoc(t, schemeDoc)
	reg, _ := Process(doc, source, Options{Target: TargetLaTeX})

	figs := collectFigures(doc)
	for i, fig := range figs {
		if !fig.Delegated {
			t.Errorf("figure %d: expected delegation under latex target", i)
		}
		if fig.Env != "scheme" {
			t.Errorf("figure %d: expected env %q, got %q", i, "scheme", fig.Env)
		}
	}
	// Captions stay verbatim: the downstream renderer numbers them.
	if got := docast.PlainText(figs[0], source); got != "A" {
		t.Errorf("expected untouched caption %q, got %q", "A", got)
	}

	// Known refs become raw \ref commands, unknown ones stay tokens.
	var raws []*docast.RawLaTeX
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if r, ok := n.(*docast.RawLaTeX); ok {
				raws = append(raws, r)
			}
		}
		return ast.WalkContinue, nil
	})
	if len(raws) != 1 {
		t.Fatalf("expected 1 raw latex ref, got %d", len(raws))
	}
	if got := string(raws[0].Value); got != `\ref{sch-c}` {
		t.Errorf("expected %q, got %q", `\ref{sch-c}`, got)
	}
	if refs := collectRefs(doc); len(refs) != 1 {
		t.Errorf("expected 1 unresolved token left, got %d", len(refs))
	}

	if e, ok := reg.Get("sch-c"); !ok || e.Number != 3 {
		t.Errorf("expected sch-c registered as number 3, got %+v ok=%v", e, ok)
	}
}

func TestProcess_TargetIndependentNumbers(t *testing.T) {
	docA, srcA := parseDoc(t, schemeDoc)
	regA, _ := Process(docA, srcA, Options{Target: TargetLaTeX})

	docB, srcB := parseDoc(t, schemeDoc)
	regB, _ := Process(docB, srcB, Options{Target: TargetHTML})

	if !reflect.DeepEqual(regA.Entries(), regB.Entries()) {
		t.Errorf("expected identical registries across targets, got %+v vs %+v",
			regA.Entries(), regB.Entries())
	}
}

func TestProcess_Determinism(t *testing.T) {
	docA, srcA := parseDoc(t, schemeDoc)
	regA, repA := Process(docA, srcA, Options{Target: TargetHTML})

	docB, srcB := parseDoc(t, schemeDoc)
	regB, repB := Process(docB, srcB, Options{Target: TargetHTML})

	if !reflect.DeepEqual(regA.Entries(), regB.Entries()) {
		t.Errorf("expected identical registries across runs")
	}
	if !reflect.DeepEqual(repA, repB) {
		t.Errorf("expected identical reports, got %+v vs %+v", repA, repB)
	}
}

func TestProcess_PerCategoryMonotonicity(t *testing.T) {
	const src = `![f1](1.png){#f1 .figure}

![s1](2.png){#s1 .scheme}

![f2](3.png){#f2 .figure}

![c1](4.png){#c1 .chart}

![s2](5.png){#s2 .scheme}

![g1](6.png){#g1 .graph}

[@f2] [@s2] [@c1] [@g1]
`
	doc, source := parseDoc(t, src)
	reg, report := Process(doc, source, Options{Target: TargetHTML})

	wantNumbers := map[string]int{"f1": 1, "f2": 2, "s1": 1, "s2": 2, "c1": 1, "g1": 1}
	for label, num := range wantNumbers {
		e, ok := reg.Get(label)
		if !ok {
			t.Fatalf("expected label %q registered", label)
		}
		if e.Number != num {
			t.Errorf("label %q: expected number %d, got %d", label, num, e.Number)
		}
	}

	if got := lastParagraphText(t, doc, source); got != "Fig. 2 Sch. 2 Chart 1 Graph 1" {
		t.Errorf("expected %q, got %q", "Fig. 2 Sch. 2 Chart 1 Graph 1", got)
	}

	wantBy := map[string]int{"figure": 2, "scheme": 2, "chart": 1, "graph": 1}
	if !reflect.DeepEqual(report.ByCategory, wantBy) {
		t.Errorf("expected by-category %+v, got %+v", wantBy, report.ByCategory)
	}
}

func TestProcess_ForwardReference(t *testing.T) {
	const src = `As [@later] shows, order does not matter.

![Later](l.png){#later .scheme}
`
	doc, source := parseDoc(t, src)
	Process(doc, source, Options{Target: TargetHTML})

	if refs := collectRefs(doc); len(refs) != 0 {
		t.Fatalf("expected forward reference resolved, %d tokens left", len(refs))
	}
}

func TestProcess_UncaptionedExcluded(t *testing.T) {
	const src = `![](skip.png){#skip .figure}

![   ](ws.png){#ws .figure}

![Shown](shown.png){#shown .figure}
`
	doc, source := parseDoc(t, src)
	reg, report := Process(doc, source, Options{Target: TargetHTML})

	if _, ok := reg.Get("skip"); ok {
		t.Error("expected uncaptioned figure to stay unregistered")
	}
	if _, ok := reg.Get("ws"); ok {
		t.Error("expected whitespace-captioned figure to stay unregistered")
	}
	e, ok := reg.Get("shown")
	if !ok {
		t.Fatal("expected captioned figure registered")
	}
	if e.Number != 1 {
		t.Errorf("expected skipped figures to leave no number gap, got %d", e.Number)
	}
	if report.Figures != 1 {
		t.Errorf("expected 1 numbered figure, got %d", report.Figures)
	}
}

func TestProcess_ConflictOverwrite(t *testing.T) {
	const src = `![First](1.png){#x .figure}

![Second](2.png){#x .figure}
`
	doc, source := parseDoc(t, src)
	reg, report := Process(doc, source, Options{Target: TargetHTML})

	e, ok := reg.Get("x")
	if !ok {
		t.Fatal("expected label x registered")
	}
	if e.Number != 2 || e.Caption != "Second" {
		t.Errorf("expected later entry to win, got %+v", e)
	}
	if report.LabelConflicts != 1 {
		t.Errorf("expected 1 conflict reported, got %d", report.LabelConflicts)
	}
	// Both figures were still numbered.
	if reg.Count(CategoryFigure) != 2 {
		t.Errorf("expected both figures numbered, got %d", reg.Count(CategoryFigure))
	}
}

func TestProcess_UnclassifiedUntouched(t *testing.T) {
	const src = `![X](x.png){#x .diagram}
`
	doc, source := parseDoc(t, src)
	reg, report := Process(doc, source, Options{Target: TargetHTML})

	if reg.Len() != 0 {
		t.Errorf("expected empty registry, got %d entries", reg.Len())
	}
	if report.Figures != 0 {
		t.Errorf("expected 0 figures, got %d", report.Figures)
	}
	figs := collectFigures(doc)
	if len(figs) != 1 {
		t.Fatalf("expected the figure node kept, got %d", len(figs))
	}
	if got := docast.PlainText(figs[0], source); got != "X" {
		t.Errorf("expected caption untouched, got %q", got)
	}
}

func TestProcess_WrapDelegation(t *testing.T) {
	const src = `![W](w.png){#w .scheme wwidth="0.4\textwidth"}
`
	doc, source := parseDoc(t, src)
	Process(doc, source, Options{Target: TargetPDF})

	fig := collectFigures(doc)[0]
	if !fig.Wrap {
		t.Fatal("expected wrap-enabled delegation")
	}
	if fig.WrapWidth != `0.4\textwidth` {
		t.Errorf("expected width passed verbatim, got %q", fig.WrapWidth)
	}
	if fig.WrapPos != "r" {
		t.Errorf("expected default wrap position r, got %q", fig.WrapPos)
	}
}

func TestProcess_WrapPositionAndPrecedence(t *testing.T) {
	const src = `![W](w.png){#w .scheme wwidth=5cm wpos=l lpos=H}
`
	doc, source := parseDoc(t, src)
	Process(doc, source, Options{Target: TargetLaTeX})

	fig := collectFigures(doc)[0]
	if !fig.Wrap || fig.WrapPos != "l" || fig.WrapWidth != "5cm" {
		t.Errorf("expected wrap l/5cm, got wrap=%v pos=%q width=%q", fig.Wrap, fig.WrapPos, fig.WrapWidth)
	}
	if fig.Placement != "" {
		t.Errorf("expected wrap to take precedence over placement, got %q", fig.Placement)
	}
}

func TestProcess_FloatPlacement(t *testing.T) {
	const src = `![P](p.png){#p .chart lpos=H}
`
	doc, source := parseDoc(t, src)
	Process(doc, source, Options{Target: TargetLaTeX})

	fig := collectFigures(doc)[0]
	if fig.Wrap {
		t.Error("expected no wrap")
	}
	if fig.Placement != "H" {
		t.Errorf("expected placement H, got %q", fig.Placement)
	}
}

func TestProcess_EnvSuffix(t *testing.T) {
	const src = `![E](e.png){#e .scheme lts=s}
`
	doc, source := parseDoc(t, src)
	Process(doc, source, Options{Target: TargetLaTeX})

	if got := collectFigures(doc)[0].Env; got != "schemes" {
		t.Errorf("expected env %q, got %q", "schemes", got)
	}
}

func TestProcess_ManualStripsPlacementParams(t *testing.T) {
	const src = `![M](m.png){#m .scheme wwidth=2in wpos=l lpos=H lts=s foo=bar}
`
	doc, source := parseDoc(t, src)
	Process(doc, source, Options{Target: TargetHTML})

	fig := collectFigures(doc)[0]
	for _, key := range []string{"wwidth", "wpos", "lpos", "lts"} {
		if _, ok := fig.Param(key); ok {
			t.Errorf("expected param %q stripped on manual target", key)
		}
	}
	if v, ok := fig.Param("foo"); !ok || v != "bar" {
		t.Errorf("expected unrelated param kept, got %q ok=%v", v, ok)
	}
	if fig.Delegated {
		t.Error("expected no delegation on manual target")
	}
}

func TestProcess_FormatOverrides(t *testing.T) {
	const src = `![A](a.png){#sch-a .scheme}

[@sch-a]
`
	doc, source := parseDoc(t, src)
	formats := ResolveFormats(map[string]docast.LabelOverride{
		"scheme":  {Prefix: "Scheme ", Suffix: ". ", Style: "strong"},
		"sidebar": {Prefix: "ignored"},
	})
	Process(doc, source, Options{Target: TargetHTML, Formats: formats})

	fig := collectFigures(doc)[0]
	if got := docast.PlainText(fig, source); got != "Scheme 1. A" {
		t.Errorf("expected caption %q, got %q", "Scheme 1. A", got)
	}
	label, ok := fig.FirstChild().(*ast.Emphasis)
	if !ok {
		t.Fatalf("expected strong label node, got %T", fig.FirstChild())
	}
	if label.Level != 2 {
		t.Errorf("expected emphasis level 2, got %d", label.Level)
	}

	if got := lastParagraphText(t, doc, source); got != "Scheme 1" {
		t.Errorf("expected reference %q, got %q", "Scheme 1", got)
	}
}

func TestProcess_EmptyDocument(t *testing.T) {
	doc, source := parseDoc(t, "Just prose with [@nothing] in it.\n")
	reg, report := Process(doc, source, Options{Target: TargetHTML})

	if reg.Len() != 0 {
		t.Errorf("expected empty registry, got %d entries", reg.Len())
	}
	if report.RefsSeen != 1 || report.RefsUnresolved != 1 {
		t.Errorf("expected one unresolved ref, got %+v", report)
	}
	if refs := collectRefs(doc); len(refs) != 1 {
		t.Errorf("expected token left in place, got %d", len(refs))
	}
}
