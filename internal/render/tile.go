package render

import (
	"sort"

	"github.com/beetlebugorg/vtrender/internal/parser"
)

// sourceLayer is a decoded layer prepared for rendering: tag keys are
// hashed once and features are ordered by id. Per-feature tag maps are
// built on first lookup and shared by every style layer of the pass.
type sourceLayer struct {
	*parser.Layer
	keys     map[string]uint32
	features []*parser.Feature
	tags     []map[uint32]uint32 // parallel to features, nil until used
}

func wrapLayer(l *parser.Layer) *sourceLayer {
	s := &sourceLayer{
		Layer:    l,
		keys:     make(map[string]uint32, len(l.Keys)),
		features: make([]*parser.Feature, len(l.Features)),
		tags:     make([]map[uint32]uint32, len(l.Features)),
	}
	for i, k := range l.Keys {
		s.keys[k] = uint32(i)
	}
	copy(s.features, l.Features)
	sort.SliceStable(s.features, func(i, j int) bool {
		return s.features[i].ID < s.features[j].ID
	})
	return s
}

// wrapTile indexes the usable layers of t by name. Layers with a version
// above 2 are left out.
func (r *Renderer) wrapTile(t *parser.Tile) map[string]*sourceLayer {
	layers := make(map[string]*sourceLayer, len(t.Layers))
	for _, l := range t.Layers {
		if l.Version > 2 {
			r.log.WithField("layer", l.Name).Debugf("ignoring layer version %d", l.Version)
			continue
		}
		layers[l.Name] = wrapLayer(l)
	}
	return layers
}

// tagMap returns the key index to value index map of feature i. The first
// pair for a key wins.
func (s *sourceLayer) tagMap(i int) map[uint32]uint32 {
	if m := s.tags[i]; m != nil {
		return m
	}
	tags := s.features[i].Tags
	m := make(map[uint32]uint32, len(tags)/2)
	for j := 0; j+1 < len(tags); j += 2 {
		if _, ok := m[tags[j]]; !ok {
			m[tags[j]] = tags[j+1]
		}
	}
	s.tags[i] = m
	return m
}

// feature adapts the i-th feature of a source layer to style.Feature.
type feature struct {
	layer *sourceLayer
	i     int
	f     *parser.Feature
}

func (f feature) Tag(key string) (parser.Value, bool) {
	idx, ok := f.layer.keys[key]
	if !ok {
		return parser.Value{}, false
	}
	v, ok := f.layer.tagMap(f.i)[idx]
	if !ok || int(v) >= len(f.layer.Values) {
		return parser.Value{}, false
	}
	return f.layer.Values[v], true
}

func (f feature) GeomType() parser.GeomType { return f.f.Type }
func (f feature) ID() uint64                { return f.f.ID }
