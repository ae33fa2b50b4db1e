package parser

import (
	"fmt"
	"math"
)

// Field numbers of the vector tile schema.
const (
	tileLayer = 3

	layerName     = 1
	layerFeature  = 2
	layerKey      = 3
	layerValue    = 4
	layerExtent   = 5
	layerVersion  = 15
	defaultExtent = 4096

	featureID       = 1
	featureTags     = 2
	featureType     = 3
	featureGeometry = 4

	valueString = 1
	valueFloat  = 2
	valueDouble = 3
	valueInt    = 4
	valueUint   = 5
	valueSint   = 6
	valueBool   = 7
)

type decoder struct {
	opts     ParseOptions
	features int
}

// decodeTile builds the Tile graph. Any error discards the partial result.
func decodeTile(data []byte, opts ParseOptions) (*Tile, error) {
	d := &decoder{opts: opts}
	r := NewWireReader(data)
	tile := &Tile{}

	for !r.Done() {
		field, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}
		if field != tileLayer {
			if err := r.Skip(wt); err != nil {
				return nil, err
			}
			continue
		}
		if err := r.expect(field, wt, WireBytes); err != nil {
			return nil, err
		}
		if d.opts.MaxLayers > 0 && len(tile.Layers) >= d.opts.MaxLayers {
			return nil, r.fail(r.pos, fmt.Sprintf("more than %d layers", d.opts.MaxLayers), ErrLimitExceeded)
		}
		sub, err := r.Message()
		if err != nil {
			return nil, err
		}
		layer, err := d.layer(sub)
		if err != nil {
			return nil, err
		}
		tile.Layers = append(tile.Layers, layer)
	}

	return tile, nil
}

func (d *decoder) layer(r *WireReader) (*Layer, error) {
	l := &Layer{Version: 1, Extent: defaultExtent}

	for !r.Done() {
		field, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}

		switch field {
		case layerName:
			if l.Name, err = d.str(r, field, wt); err != nil {
				return nil, err
			}
		case layerFeature:
			if err := r.expect(field, wt, WireBytes); err != nil {
				return nil, err
			}
			d.features++
			if d.opts.MaxFeatures > 0 && d.features > d.opts.MaxFeatures {
				return nil, r.fail(r.pos, fmt.Sprintf("more than %d features", d.opts.MaxFeatures), ErrLimitExceeded)
			}
			sub, err := r.Message()
			if err != nil {
				return nil, err
			}
			f, err := d.feature(sub)
			if err != nil {
				return nil, err
			}
			l.Features = append(l.Features, f)
		case layerKey:
			key, err := d.str(r, field, wt)
			if err != nil {
				return nil, err
			}
			l.Keys = append(l.Keys, key)
		case layerValue:
			if err := r.expect(field, wt, WireBytes); err != nil {
				return nil, err
			}
			sub, err := r.Message()
			if err != nil {
				return nil, err
			}
			v, err := d.value(sub)
			if err != nil {
				return nil, err
			}
			l.Values = append(l.Values, v)
		case layerExtent:
			if err := r.expect(field, wt, WireVarint); err != nil {
				return nil, err
			}
			if l.Extent, err = r.Varint32(); err != nil {
				return nil, err
			}
		case layerVersion:
			if err := r.expect(field, wt, WireVarint); err != nil {
				return nil, err
			}
			if l.Version, err = r.Varint32(); err != nil {
				return nil, err
			}
		default:
			if err := r.Skip(wt); err != nil {
				return nil, err
			}
		}
	}

	return l, nil
}

func (d *decoder) feature(r *WireReader) (*Feature, error) {
	f := &Feature{}

	for !r.Done() {
		field, wt, err := r.Tag()
		if err != nil {
			return nil, err
		}

		switch field {
		case featureID:
			if err := r.expect(field, wt, WireVarint); err != nil {
				return nil, err
			}
			if f.ID, err = r.Varint64(); err != nil {
				return nil, err
			}
		case featureTags:
			if f.Tags, err = r.Packed32(wt, f.Tags); err != nil {
				return nil, err
			}
		case featureType:
			if err := r.expect(field, wt, WireVarint); err != nil {
				return nil, err
			}
			at := r.pos
			t, err := r.Varint32()
			if err != nil {
				return nil, err
			}
			if t > uint32(GeomPolygon) {
				return nil, r.fail(at, fmt.Sprintf("geometry type %d", t), ErrInvalidEnum)
			}
			f.Type = GeomType(t)
		case featureGeometry:
			if f.Geometry, err = r.Packed32(wt, f.Geometry); err != nil {
				return nil, err
			}
		default:
			if err := r.Skip(wt); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// value decodes a Value message. When a message carries several variants
// the last one read wins.
func (d *decoder) value(r *WireReader) (Value, error) {
	var v Value

	for !r.Done() {
		field, wt, err := r.Tag()
		if err != nil {
			return Value{}, err
		}

		switch field {
		case valueString:
			s, err := d.str(r, field, wt)
			if err != nil {
				return Value{}, err
			}
			v = StringValue(s)
		case valueFloat:
			if err := r.expect(field, wt, WireFixed32); err != nil {
				return Value{}, err
			}
			bits, err := r.Fixed32()
			if err != nil {
				return Value{}, err
			}
			v = FloatValue(math.Float32frombits(bits))
		case valueDouble:
			if err := r.expect(field, wt, WireFixed64); err != nil {
				return Value{}, err
			}
			bits, err := r.Fixed64()
			if err != nil {
				return Value{}, err
			}
			v = DoubleValue(math.Float64frombits(bits))
		case valueInt, valueUint, valueSint, valueBool:
			if err := r.expect(field, wt, WireVarint); err != nil {
				return Value{}, err
			}
			n, err := r.Varint64()
			if err != nil {
				return Value{}, err
			}
			switch field {
			case valueInt:
				v = IntValue(int64(n))
			case valueUint:
				v = UintValue(n)
			case valueSint:
				v = SintValue(Zigzag64(n))
			default:
				v = BoolValue(n != 0)
			}
		default:
			if err := r.Skip(wt); err != nil {
				return Value{}, err
			}
		}
	}

	return v, nil
}

// str copies a length-delimited string out of the buffer.
func (d *decoder) str(r *WireReader, field uint32, wt WireType) (string, error) {
	if err := r.expect(field, wt, WireBytes); err != nil {
		return "", err
	}
	b, err := r.LengthDelimited()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
