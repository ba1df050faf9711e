package figure

import "fmt"

// Target identifies the output format a document is converted to.
type Target string

const (
	TargetLaTeX Target = "latex"
	TargetPDF   Target = "pdf"
	TargetHTML  Target = "html"
)

// Native reports whether the target's downstream toolchain numbers and
// captions figures itself. For native targets the filter emits environment
// markup and leaves caption text alone; for everything else it synthesizes
// numbered captions directly in the tree.
func (t Target) Native() bool {
	return t == TargetLaTeX || t == TargetPDF
}

// ParseTarget validates a target name from a request or config value.
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetLaTeX, TargetPDF, TargetHTML:
		return Target(s), nil
	}
	return "", fmt.Errorf("unknown target %q (supported: latex, pdf, html)", s)
}
