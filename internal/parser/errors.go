package parser

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by DecodeError. Use errors.Is to test for them.
var (
	ErrTruncated      = errors.New("unexpected end of buffer")
	ErrVarintOverflow = errors.New("varint overflows target type")
	ErrLengthOverrun  = errors.New("length exceeds buffer")
	ErrWireType       = errors.New("unexpected wire type")
	ErrInvalidTag     = errors.New("invalid field tag")
	ErrInvalidEnum    = errors.New("invalid enum value")
	ErrLimitExceeded  = errors.New("limit exceeded")
)

// DecodeError indicates malformed wire data. A decode that fails with a
// DecodeError returns no tile at all.
type DecodeError struct {
	Offset  int    // byte offset into the tile buffer
	Message string // what was being decoded
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("decode error at offset %d: %v", e.Offset, e.Err)
	}
	return fmt.Sprintf("decode error at offset %d: %s: %v", e.Offset, e.Message, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FeatureError indicates a malformed feature. Only that feature is skipped.
type FeatureError struct {
	ID     uint64
	Index  int // position in the geometry or tags array, -1 if not applicable
	Reason string
}

func (e *FeatureError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("feature %d: %s (at %d)", e.ID, e.Reason, e.Index)
	}
	return fmt.Sprintf("feature %d: %s", e.ID, e.Reason)
}
