package style

import (
	"strconv"
	"strings"

	"github.com/beetlebugorg/vtrender/internal/parser"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Feature is what a filter or template sees of a tile feature.
type Feature interface {
	// Tag returns the value stored under key.
	Tag(key string) (parser.Value, bool)
	// GeomType returns the declared geometry type.
	GeomType() parser.GeomType
	// ID returns the feature id.
	ID() uint64
}

// Pseudo keys resolved from the feature itself rather than its tags.
const (
	keyType = "$type"
	keyID   = "$id"
)

func lookup(f Feature, key string) (parser.Value, bool) {
	switch key {
	case keyType:
		return parser.StringValue(f.GeomType().String()), true
	case keyID:
		return parser.UintValue(f.ID()), true
	}
	return f.Tag(key)
}

// Filter is a compiled filter expression. The set of implementations is
// closed: None, Compare, In, Has, All, Any, GeometryType and Unknown.
type Filter interface {
	Match(f Feature) bool
	filter()
}

// Op is a comparison operator.
type Op int

const (
	EQ Op = iota
	NE
	LT
	LE
	GT
	GE
)

var ops = map[string]Op{"==": EQ, "!=": NE, "<": LT, "<=": LE, ">": GT, ">=": GE}

func (o Op) String() string {
	for k, v := range ops {
		if v == o {
			return k
		}
	}
	return "?"
}

// None matches every feature. It is the filter of a layer without one.
type None struct{}

// Unknown is a filter that failed to compile. It never matches.
type Unknown struct {
	Reason string
}

// Compare compares a tag value against a literal.
type Compare struct {
	Op      Op
	Key     string
	Literal parser.Value
}

// In tests membership of the stringified tag value in a literal set.
type In struct {
	Key     string
	Set     map[string]struct{}
	Negated bool
}

// Has tests presence of a key.
type Has struct {
	Key     string
	Negated bool
}

// All matches when every child matches.
type All struct {
	Children []Filter
}

// Any matches when at least one child matches.
type Any struct {
	Children []Filter
}

// GeometryType matches on the feature's declared geometry type.
type GeometryType struct {
	Expected parser.GeomType
	Negated  bool
}

func (None) filter() {}
func (Unknown) filter() {}
func (Compare) filter() {}
func (In) filter() {}
func (Has) filter() {}
func (All) filter() {}
func (Any) filter() {}
func (GeometryType) filter() {}

func (None) Match(Feature) bool { return true }
func (Unknown) Match(Feature) bool { return false }

// Match applies the comparison. A missing key only satisfies NE; values
// without a common ordering satisfy only NE as well.
func (c Compare) Match(f Feature) bool {
	v, ok := lookup(f, c.Key)
	if !ok {
		return c.Op == NE
	}
	cmp, comparable := v.Compare(c.Literal)
	if !comparable {
		return c.Op == NE
	}
	switch c.Op {
	case EQ:
		return cmp == 0
	case NE:
		return cmp != 0
	case LT:
		return cmp < 0
	case LE:
		return cmp <= 0
	case GT:
		return cmp > 0
	case GE:
		return cmp >= 0
	}
	return false
}

func (in In) Match(f Feature) bool {
	var s string
	if v, ok := lookup(f, in.Key); ok {
		s = v.String()
	}
	_, found := in.Set[s]
	return found != in.Negated
}

func (h Has) Match(f Feature) bool {
	_, ok := lookup(f, h.Key)
	return ok != h.Negated
}

func (a All) Match(f Feature) bool {
	for _, c := range a.Children {
		if !c.Match(f) {
			return false
		}
	}
	return true
}

func (a Any) Match(f Feature) bool {
	for _, c := range a.Children {
		if c.Match(f) {
			return true
		}
	}
	return false
}

func (g GeometryType) Match(f Feature) bool {
	return (f.GeomType() == g.Expected) != g.Negated
}

// ParseFilter compiles a filter array. Malformed input yields Unknown and a
// warning on log; it never fails.
func ParseFilter(json gjson.Result, log logrus.FieldLogger) Filter {
	f, reason := compileFilter(json, log)
	if reason != "" {
		log.WithField("filter", json.Raw).Warnf("invalid filter: %s", reason)
		return Unknown{Reason: reason}
	}
	return f
}

func compileFilter(json gjson.Result, log logrus.FieldLogger) (Filter, string) {
	if !json.IsArray() {
		return nil, "not an array"
	}
	args := json.Array()
	if len(args) == 0 {
		return nil, "empty array"
	}
	if args[0].Type != gjson.String {
		return nil, "operator is not a string"
	}
	op := args[0].Str

	if cmp, ok := ops[op]; ok {
		if len(args) != 3 {
			return nil, op + " takes exactly two operands"
		}
		if args[1].Type != gjson.String {
			return nil, "key is not a string"
		}
		key := args[1].Str
		if key == keyType && (cmp == EQ || cmp == NE) {
			t, ok := parser.ParseGeomType(args[2].String())
			if !ok {
				return nil, "unknown geometry type " + args[2].String()
			}
			return GeometryType{Expected: t, Negated: cmp == NE}, ""
		}
		return Compare{Op: cmp, Key: key, Literal: Literal(args[2])}, ""
	}

	switch op {
	case "all", "any":
		children := make([]Filter, 0, len(args)-1)
		for _, c := range args[1:] {
			children = append(children, ParseFilter(c, log))
		}
		if op == "all" {
			return All{Children: children}, ""
		}
		return Any{Children: children}, ""
	case "in", "!in":
		if len(args) < 3 {
			return nil, op + " needs a key and at least one value"
		}
		if args[1].Type != gjson.String {
			return nil, "key is not a string"
		}
		set := make(map[string]struct{}, len(args)-2)
		for _, v := range args[2:] {
			set[Literal(v).String()] = struct{}{}
		}
		return In{Key: args[1].Str, Set: set, Negated: strings.HasPrefix(op, "!")}, ""
	case "has", "!has":
		if len(args) < 2 {
			return nil, op + " needs a key"
		}
		if args[1].Type != gjson.String {
			return nil, "key is not a string"
		}
		return Has{Key: args[1].Str, Negated: strings.HasPrefix(op, "!")}, ""
	}

	return nil, "unsupported operator " + op
}

// Literal converts a JSON scalar to a tag value. Integral numbers become
// integers so they compare exactly against integer tags.
func Literal(json gjson.Result) parser.Value {
	switch json.Type {
	case gjson.String:
		return parser.StringValue(json.Str)
	case gjson.True:
		return parser.BoolValue(true)
	case gjson.False:
		return parser.BoolValue(false)
	case gjson.Number:
		if i, err := strconv.ParseInt(json.Raw, 10, 64); err == nil {
			return parser.IntValue(i)
		}
		if u, err := strconv.ParseUint(json.Raw, 10, 64); err == nil {
			return parser.UintValue(u)
		}
		return parser.DoubleValue(json.Num)
	}
	return parser.Value{}
}
