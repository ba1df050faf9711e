package figure

import (
	"log/slog"

	"github.com/yuin/goldmark/ast"
)

// Options configures one filter run.
type Options struct {
	Target  Target
	Formats FormatConfig // nil means the built-in defaults
	Log     *slog.Logger
}

// Report summarizes one run. Nothing in it is fatal: conflicts are
// overwrites that were kept anyway, unresolved references are tokens left
// for a downstream filter.
type Report struct {
	Figures        int            `json:"figures"`
	ByCategory     map[string]int `json:"by_category"`
	LabelConflicts int            `json:"label_conflicts"`
	RefsSeen       int            `json:"refs_seen"`
	RefsResolved   int            `json:"refs_resolved"`
	RefsUnresolved int            `json:"refs_unresolved"`
}

// Process numbers a document's figures and resolves its references, mutating
// the tree in place for the requested target.
//
// It makes three strictly ordered walks. Numbering populates the registry
// without touching the tree, rendering rewrites the numbered figures for the
// target, and resolution replaces the reference tokens the registry knows.
// References may point forward; the pass ordering is what makes that work.
// Numbers depend only on document order, never on the target, so a registry
// built for LaTeX output matches one built for HTML.
//
// The registry and format config live for this run only; every call starts
// from empty counters.
func Process(doc ast.Node, source []byte, opts Options) (*Registry, Report) {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	formats := opts.Formats
	if formats == nil {
		formats = DefaultFormats()
	}

	reg := NewRegistry()
	assigned := number(doc, source, reg, log)
	render(doc, assigned, formats, opts.Target)
	seen, resolved := resolve(doc, reg, formats, opts.Target)

	report := Report{
		Figures:        len(assigned),
		ByCategory:     make(map[string]int),
		LabelConflicts: reg.Conflicts(),
		RefsSeen:       seen,
		RefsResolved:   resolved,
		RefsUnresolved: seen - resolved,
	}
	for _, c := range Categories() {
		if n := reg.Count(c); n > 0 {
			report.ByCategory[c.String()] = n
		}
	}
	return reg, report
}
