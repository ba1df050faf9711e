package docast

import (
	"reflect"
	"testing"
)

func TestParseAttributes_Full(t *testing.T) {
	id, classes, params, ok := parseAttributes(`{#sch-a .scheme .wide wwidth=5cm note="two words"}`)
	if !ok {
		t.Fatal("expected well-formed block to parse")
	}
	if id != "sch-a" {
		t.Errorf("expected id %q, got %q", "sch-a", id)
	}
	if !reflect.DeepEqual(classes, []string{"scheme", "wide"}) {
		t.Errorf("expected classes in declared order, got %v", classes)
	}
	want := []Param{{Key: "wwidth", Value: "5cm"}, {Key: "note", Value: "two words"}}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("expected params %v, got %v", want, params)
	}
}

func TestParseAttributes_Minimal(t *testing.T) {
	id, classes, params, ok := parseAttributes("{.figure}")
	if !ok {
		t.Fatal("expected parse")
	}
	if id != "" || len(classes) != 1 || classes[0] != "figure" || len(params) != 0 {
		t.Errorf("unexpected result: id=%q classes=%v params=%v", id, classes, params)
	}
}

func TestParseAttributes_WhitespaceTolerant(t *testing.T) {
	id, classes, _, ok := parseAttributes("  {  #a   .b  }  ")
	if !ok {
		t.Fatal("expected parse")
	}
	if id != "a" || len(classes) != 1 || classes[0] != "b" {
		t.Errorf("unexpected result: id=%q classes=%v", id, classes)
	}
}

func TestParseAttributes_Malformed(t *testing.T) {
	cases := []string{
		"",
		"{",
		"#a .b",            // no braces
		"{#}",              // empty id
		"{.}",              // empty class
		"{key}",            // key without value
		`{note="unclosed}`, // unterminated quote
	}
	for _, c := range cases {
		if _, _, _, ok := parseAttributes(c); ok {
			t.Errorf("expected %q to be rejected", c)
		}
	}
}

func TestParseAttributes_ValueWithBackslash(t *testing.T) {
	// LaTeX lengths pass through verbatim, backslash included.
	_, _, params, ok := parseAttributes(`{wwidth="0.5\textwidth"}`)
	if !ok {
		t.Fatal("expected parse")
	}
	if len(params) != 1 || params[0].Value != `0.5\textwidth` {
		t.Errorf("expected verbatim value, got %v", params)
	}
}
