package figure

import "encoding/json"

// Category classifies a figure-like block. Each category numbers
// independently: the third scheme is Scheme 3 no matter how many charts
// precede it.
type Category int

const (
	CategoryNone Category = iota
	CategoryFigure
	CategoryScheme
	CategoryChart
	CategoryGraph
)

// Categories lists the numbered categories.
func Categories() []Category {
	return []Category{CategoryFigure, CategoryScheme, CategoryChart, CategoryGraph}
}

// CategoryFromClass maps an attribute class to its category. The class name
// doubles as the LaTeX environment name for native targets.
func CategoryFromClass(class string) (Category, bool) {
	switch class {
	case "figure":
		return CategoryFigure, true
	case "scheme":
		return CategoryScheme, true
	case "chart":
		return CategoryChart, true
	case "graph":
		return CategoryGraph, true
	}
	return CategoryNone, false
}

// String returns the category's class name.
func (c Category) String() string {
	switch c {
	case CategoryFigure:
		return "figure"
	case CategoryScheme:
		return "scheme"
	case CategoryChart:
		return "chart"
	case CategoryGraph:
		return "graph"
	}
	return "none"
}

// MarshalJSON writes the class name so registry entries read naturally in
// API responses.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}
