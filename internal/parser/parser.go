package parser

// Parser decodes Mapbox Vector Tile buffers.
//
// The buffer must already be decompressed. Decoding is all-or-nothing: a
// malformed buffer yields a *DecodeError and no tile.
type Parser interface {
	// Parse decodes a tile with default options.
	Parse(data []byte) (*Tile, error)

	// ParseWithOptions decodes with custom options.
	ParseWithOptions(data []byte, opts ParseOptions) (*Tile, error)
}

// ParseOptions configures decoding limits.
type ParseOptions struct {
	// MaxLayers caps the number of layers. Zero means unlimited.
	MaxLayers int

	// MaxFeatures caps the number of features across all layers.
	// Zero means unlimited.
	MaxFeatures int
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{}
}

// defaultParser implements the Parser interface
type defaultParser struct{}

// NewParser creates a new tile parser
func NewParser() Parser {
	return &defaultParser{}
}

func (p *defaultParser) Parse(data []byte) (*Tile, error) {
	return p.ParseWithOptions(data, DefaultParseOptions())
}

func (p *defaultParser) ParseWithOptions(data []byte, opts ParseOptions) (*Tile, error) {
	return decodeTile(data, opts)
}

// Decode is shorthand for NewParser().Parse(data).
func Decode(data []byte) (*Tile, error) {
	return decodeTile(data, DefaultParseOptions())
}
