package parser

import (
	"math"
	"strconv"
	"strings"
)

// GeomType is the geometry type declared by a feature.
type GeomType uint8

const (
	GeomUnknown    GeomType = 0
	GeomPoint      GeomType = 1
	GeomLineString GeomType = 2
	GeomPolygon    GeomType = 3
)

func (g GeomType) String() string {
	switch g {
	case GeomPoint:
		return "Point"
	case GeomLineString:
		return "LineString"
	case GeomPolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// ParseGeomType maps a style "$type" name to a GeomType.
func ParseGeomType(name string) (GeomType, bool) {
	switch name {
	case "Point":
		return GeomPoint, true
	case "LineString":
		return GeomLineString, true
	case "Polygon":
		return GeomPolygon, true
	case "Unknown":
		return GeomUnknown, true
	}
	return GeomUnknown, false
}

// Tile is a decoded vector tile. Layers keep their order in the source buffer.
type Tile struct {
	Layers []*Layer
}

// Layer returns the last layer named name, or nil. Later layers shadow
// earlier ones with the same name.
func (t *Tile) Layer(name string) *Layer {
	for i := len(t.Layers) - 1; i >= 0; i-- {
		if t.Layers[i].Name == name {
			return t.Layers[i]
		}
	}
	return nil
}

// Layer is one named collection of features sharing a key and value table.
type Layer struct {
	Name     string
	Version  uint32
	Extent   uint32
	Keys     []string
	Values   []Value
	Features []*Feature
}

// Feature is a single tile feature. Tags index into the owning layer's Keys
// and Values; Geometry is the raw command stream, see Path.
type Feature struct {
	ID       uint64
	Tags     []uint32
	Type     GeomType
	Geometry []uint32
}

// ValueKind identifies which variant of a Value is populated.
type ValueKind uint8

const (
	KindInvalid ValueKind = iota
	KindString
	KindFloat
	KindDouble
	KindInt
	KindUint
	KindSint
	KindBool
)

// Value is a typed tag value. The zero Value is KindInvalid.
type Value struct {
	kind ValueKind
	s    string
	f    float64
	i    int64
	u    uint64
	b    bool
}

// Constructors for each Value variant.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }
func FloatValue(f float32) Value { return Value{kind: KindFloat, f: float64(f)} }
func DoubleValue(f float64) Value { return Value{kind: KindDouble, f: f} }
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }
func UintValue(u uint64) Value { return Value{kind: KindUint, u: u} }
func SintValue(i int64) Value { return Value{kind: KindSint, i: i} }
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsNumeric reports whether the value is one of the number variants.
func (v Value) IsNumeric() bool {
	switch v.kind {
	case KindFloat, KindDouble, KindInt, KindUint, KindSint:
		return true
	}
	return false
}

// Float returns the value as float64 and whether it is numeric.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat, KindDouble:
		return v.f, true
	case KindInt, KindSint:
		return float64(v.i), true
	case KindUint:
		return float64(v.u), true
	}
	return 0, false
}

// String formats the value the way it appears in label text and in
// membership tests.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindInt, KindSint:
		return strconv.FormatInt(v.i, 10)
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

func (v Value) isInteger() bool {
	return v.kind == KindInt || v.kind == KindSint || v.kind == KindUint
}

// Compare orders v against o. The second result is false when the two
// values have no common ordering: different type classes, invalid values or
// NaN operands.
func (v Value) Compare(o Value) (int, bool) {
	switch {
	case v.isInteger() && o.isInteger():
		return compareIntegers(v, o), true
	case v.IsNumeric() && o.IsNumeric():
		a, _ := v.Float()
		b, _ := o.Float()
		if math.IsNaN(a) || math.IsNaN(b) {
			return 0, false
		}
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}
		return 0, true
	case v.kind == KindString && o.kind == KindString:
		return strings.Compare(v.s, o.s), true
	case v.kind == KindBool && o.kind == KindBool:
		switch {
		case v.b == o.b:
			return 0, true
		case !v.b:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

// Equal reports whether v and o compare equal.
func (v Value) Equal(o Value) bool {
	c, ok := v.Compare(o)
	return ok && c == 0
}

func compareIntegers(a, b Value) int {
	if a.kind == KindUint && b.kind == KindUint {
		return cmpOrdered(a.u, b.u)
	}
	if a.kind == KindUint {
		if a.u > math.MaxInt64 || b.i < 0 {
			return 1
		}
		return cmpOrdered(int64(a.u), b.i)
	}
	if b.kind == KindUint {
		return -compareIntegers(b, a)
	}
	return cmpOrdered(a.i, b.i)
}

func cmpOrdered[T int64 | uint64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
