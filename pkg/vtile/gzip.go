package vtile

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
)

// ErrTooLarge is returned when decompressed data exceeds the limit.
var ErrTooLarge = errors.New("decompressed data too large")

// IsGzip reports whether data starts with the gzip magic and the deflate
// method byte.
func IsGzip(data []byte) bool {
	return len(data) >= 3 && data[0] == 0x1f && data[1] == 0x8b && data[2] == 0x08
}

// Gunzip decompresses data. A limit > 0 caps the output size.
func Gunzip(data []byte, limit int64) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	defer zr.Close()

	var r io.Reader = zr
	if limit > 0 {
		r = io.LimitReader(zr, limit+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gunzip: %w", err)
	}
	if limit > 0 && int64(len(out)) > limit {
		return nil, ErrTooLarge
	}
	return out, nil
}

// Uncompress returns data unchanged unless it is gzip compressed.
func Uncompress(data []byte, limit int64) ([]byte, error) {
	if !IsGzip(data) {
		return data, nil
	}
	return Gunzip(data, limit)
}
