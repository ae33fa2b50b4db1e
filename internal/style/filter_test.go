package style

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beetlebugorg/vtrender/internal/parser"
	"github.com/tidwall/gjson"
)

func compile(t *testing.T, expr string) Filter {
	t.Helper()
	return ParseFilter(gjson.Parse(expr), captureLogger(&bytes.Buffer{}))
}

func TestFilterAllHas(t *testing.T) {
	f := compile(t, `["all", ["==", "class", "park"], ["has", "name"]]`)

	if !f.Match(tags("class", "park", "name", "Central")) {
		t.Error("Expected match for park with name")
	}
	if f.Match(tags("class", "park")) {
		t.Error("Expected no match for park without name")
	}
	if f.Match(tags("class", "forest", "name", "Sherwood")) {
		t.Error("Expected no match for forest")
	}
}

func TestFilterCompare(t *testing.T) {
	feature := tags("rank", 5, "name", "Elm", "oneway", true, "height", 12.5)

	tests := []struct {
		expr  string
		match bool
	}{
		{`["==", "rank", 5]`, true},
		{`["==", "rank", 5.0]`, true},
		{`["!=", "rank", 5]`, false},
		{`["<", "rank", 6]`, true},
		{`["<=", "rank", 5]`, true},
		{`[">", "rank", 5]`, false},
		{`[">=", "height", 12.5]`, true},
		{`["<", "name", "Fir"]`, true},
		{`["==", "oneway", true]`, true},
		{`["==", "rank", "5"]`, false},
		{`["!=", "rank", "5"]`, true},
		{`["<", "rank", "9"]`, false},
		{`[">", "name", 1]`, false},
		{`["==", "missing", 1]`, false},
		{`["!=", "missing", 1]`, true},
		{`["<", "missing", 1]`, false},
		{`["==", "$id", 42]`, true},
	}

	feature.id = 42
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := compile(t, tt.expr).Match(feature); got != tt.match {
				t.Errorf("Expected %v, got %v", tt.match, got)
			}
		})
	}
}

func TestFilterInHas(t *testing.T) {
	feature := tags("class", "primary", "rank", 3)

	tests := []struct {
		expr  string
		match bool
	}{
		{`["in", "class", "primary", "secondary"]`, true},
		{`["in", "class", "motorway"]`, false},
		{`["!in", "class", "motorway"]`, true},
		{`["!in", "class", "primary"]`, false},
		{`["in", "rank", 1, 2, 3]`, true},
		{`["in", "$type", "Polygon", "LineString"]`, true},
		{`["has", "rank"]`, true},
		{`["!has", "rank"]`, false},
		{`["has", "name"]`, false},
		{`["!has", "name"]`, true},
		{`["any", ["has", "name"], ["==", "class", "primary"]]`, true},
		{`["any"]`, false},
		{`["all"]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := compile(t, tt.expr).Match(feature); got != tt.match {
				t.Errorf("Expected %v, got %v", tt.match, got)
			}
		})
	}
}

func TestFilterGeometryType(t *testing.T) {
	f := compile(t, `["==", "$type", "LineString"]`)
	gt, ok := f.(GeometryType)
	if !ok {
		t.Fatalf("Expected GeometryType, got %T", f)
	}
	if gt.Expected != parser.GeomLineString {
		t.Errorf("Expected LineString, got %s", gt.Expected)
	}

	line := testFeature{typ: parser.GeomLineString}
	poly := testFeature{typ: parser.GeomPolygon}
	if !f.Match(line) || f.Match(poly) {
		t.Error("GeometryType mismatch")
	}

	neg := compile(t, `["!=", "$type", "LineString"]`)
	if neg.Match(line) || !neg.Match(poly) {
		t.Error("Negated GeometryType mismatch")
	}
}

func TestFilterInvalid(t *testing.T) {
	tests := []string{
		`[]`,
		`"class"`,
		`["==", "class"]`,
		`["==", "class", "a", "b"]`,
		`["in", "class"]`,
		`["has"]`,
		`["within", "x"]`,
		`[1, "a", "b"]`,
		`["==", 1, 2]`,
		`["==", "$type", "Circle"]`,
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			var buf bytes.Buffer
			f := ParseFilter(gjson.Parse(expr), captureLogger(&buf))
			if _, ok := f.(Unknown); !ok {
				t.Fatalf("Expected Unknown, got %T", f)
			}
			if f.Match(tags("class", "a")) {
				t.Error("Unknown must never match")
			}
			if !strings.Contains(buf.String(), "invalid filter") {
				t.Errorf("Expected a warning, got %q", buf.String())
			}
		})
	}
}

func TestFilterInvalidChild(t *testing.T) {
	f := compile(t, `["any", ["bogus"], ["has", "name"]]`)
	if !f.Match(tags("name", "x")) {
		t.Error("Valid sibling of an invalid child should still match")
	}
	f = compile(t, `["all", ["bogus"], ["has", "name"]]`)
	if f.Match(tags("name", "x")) {
		t.Error("All with an Unknown child never matches")
	}
}

func BenchmarkFilterMatch(b *testing.B) {
	f := ParseFilter(gjson.Parse(`["all", ["==", "class", "park"], ["has", "name"], ["in", "rank", 1, 2, 3], [">=", "area", 1000]]`),
		captureLogger(&bytes.Buffer{}))
	feature := tags("class", "park", "name", "Central", "rank", 2, "area", 3400)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Match(feature)
	}
}
