package figure

// Entry records one labeled, numbered figure.
type Entry struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
	Number   int      `json:"number"`
	Caption  string   `json:"caption"`
}

// Registry maps labels to their assigned numbers and holds the per-category
// sequence counters. It is built by the numbering pass and read-only
// afterwards; resolution never allocates new numbers.
type Registry struct {
	entries   map[string]Entry
	order     []string
	counts    map[Category]int
	conflicts int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
		counts:  make(map[Category]int),
	}
}

// Next assigns the next sequence number for a category, starting at 1.
func (r *Registry) Next(c Category) int {
	r.counts[c]++
	return r.counts[c]
}

// Put records an entry under its label. A label seen before is a conflict:
// the new entry wins and the old one is returned for reporting.
func (r *Registry) Put(e Entry) (prev Entry, conflict bool) {
	prev, conflict = r.entries[e.Label]
	if !conflict {
		r.order = append(r.order, e.Label)
	} else {
		r.conflicts++
	}
	r.entries[e.Label] = e
	return prev, conflict
}

// Get looks up an entry by label.
func (r *Registry) Get(label string) (Entry, bool) {
	e, ok := r.entries[label]
	return e, ok
}

// Entries returns all entries in first-registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.order))
	for _, label := range r.order {
		out = append(out, r.entries[label])
	}
	return out
}

// Count returns how many nodes of a category have been numbered, labeled or
// not.
func (r *Registry) Count(c Category) int {
	return r.counts[c]
}

// Conflicts returns how many Put calls overwrote an existing label.
func (r *Registry) Conflicts() int {
	return r.conflicts
}

// Len returns the number of labeled entries.
func (r *Registry) Len() int {
	return len(r.entries)
}
