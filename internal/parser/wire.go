package parser

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

// WireType is the low three bits of a field tag.
type WireType uint8

const (
	WireVarint  WireType = 0
	WireFixed64 WireType = 1
	WireBytes   WireType = 2
	WireFixed32 WireType = 5
)

func (w WireType) String() string {
	switch w {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireBytes:
		return "length-delimited"
	case WireFixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("wiretype(%d)", uint8(w))
	}
}

// WireReader is a forward-only cursor over a protocol buffer encoded region.
//
// A reader never reads past the end of its region. Sub-messages are decoded
// with a child reader over exactly the declared region, so a message that
// does not consume its region to the boundary fails inside the child.
type WireReader struct {
	buf  []byte
	pos  int
	base int // offset of buf[0] within the outermost buffer
}

// NewWireReader creates a reader over buf.
func NewWireReader(buf []byte) *WireReader {
	return &WireReader{buf: buf}
}

// Offset returns the absolute position of the cursor.
func (r *WireReader) Offset() int { return r.base + r.pos }

// Remaining returns the number of unread bytes.
func (r *WireReader) Remaining() int { return len(r.buf) - r.pos }

// Done reports whether the region is fully consumed.
func (r *WireReader) Done() bool { return r.pos >= len(r.buf) }

func (r *WireReader) fail(at int, what string, err error) error {
	return &DecodeError{Offset: r.base + at, Message: what, Err: err}
}

type unsigned interface {
	~uint32 | ~uint64
}

// readVarint decodes one base-128 varint into T. The scan window is the
// number of 7-bit groups needed to cover T; any set bit beyond the width of T
// is an overflow.
func readVarint[T unsigned](r *WireReader) (T, error) {
	width := uint(bits.Len64(uint64(^T(0))))
	start := r.pos
	var v uint64
	for shift := uint(0); ; shift += 7 {
		if r.pos >= len(r.buf) {
			return 0, r.fail(start, "varint", ErrTruncated)
		}
		if shift >= width {
			return 0, r.fail(start, "varint", ErrVarintOverflow)
		}
		b := r.buf[r.pos]
		r.pos++
		chunk := uint64(b & 0x7f)
		if room := width - shift; room < 7 && chunk>>room != 0 {
			return 0, r.fail(start, "varint", ErrVarintOverflow)
		}
		v |= chunk << shift
		if b&0x80 == 0 {
			return T(v), nil
		}
	}
}

// Varint32 reads a varint that must fit 32 bits.
func (r *WireReader) Varint32() (uint32, error) { return readVarint[uint32](r) }

// Varint64 reads a varint that must fit 64 bits.
func (r *WireReader) Varint64() (uint64, error) { return readVarint[uint64](r) }

// Zigzag64 reads a zigzag encoded signed 64 bit varint.
func (r *WireReader) Zigzag64() (int64, error) {
	v, err := r.Varint64()
	if err != nil {
		return 0, err
	}
	return Zigzag64(v), nil
}

// Zigzag64 maps an unsigned zigzag value back to its signed form.
func Zigzag64(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}

// Zigzag32 is Zigzag64 for 32 bit parameters (geometry deltas).
func Zigzag32(v uint32) int32 {
	return int32(v>>1) ^ -int32(v&1)
}

// Tag reads a field tag and splits it into field number and wire type.
// Group wire types (3, 4) and the reserved types 6 and 7 are rejected.
func (r *WireReader) Tag() (uint32, WireType, error) {
	start := r.pos
	t, err := r.Varint32()
	if err != nil {
		return 0, 0, err
	}
	field, wt := t>>3, WireType(t&0x07)
	if field == 0 {
		return 0, 0, r.fail(start, "tag", ErrInvalidTag)
	}
	switch wt {
	case WireVarint, WireFixed64, WireBytes, WireFixed32:
	default:
		return 0, 0, r.fail(start, fmt.Sprintf("field %d", field), ErrWireType)
	}
	return field, wt, nil
}

// LengthDelimited reads a varint length and returns the region it covers.
// The returned slice aliases the reader's buffer.
func (r *WireReader) LengthDelimited() ([]byte, error) {
	start := r.pos
	n, err := r.Varint32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(r.Remaining()) {
		return nil, r.fail(start, fmt.Sprintf("length %d", n), ErrLengthOverrun)
	}
	b := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return b, nil
}

// Message reads a length-delimited region and returns a reader bounded to it.
func (r *WireReader) Message() (*WireReader, error) {
	b, err := r.LengthDelimited()
	if err != nil {
		return nil, err
	}
	return &WireReader{buf: b, base: r.Offset() - len(b)}, nil
}

// Fixed32 reads four little-endian bytes.
func (r *WireReader) Fixed32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, r.fail(r.pos, "fixed32", ErrTruncated)
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// Fixed64 reads eight little-endian bytes.
func (r *WireReader) Fixed64() (uint64, error) {
	if r.Remaining() < 8 {
		return 0, r.fail(r.pos, "fixed64", ErrTruncated)
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

// Skip advances past the value of an unknown field.
func (r *WireReader) Skip(wt WireType) error {
	var n int
	switch wt {
	case WireVarint:
		_, err := r.Varint64()
		return err
	case WireFixed64:
		n = 8
	case WireFixed32:
		n = 4
	case WireBytes:
		_, err := r.LengthDelimited()
		return err
	default:
		return r.fail(r.pos, "skip", ErrWireType)
	}
	if r.Remaining() < n {
		return r.fail(r.pos, "skip", ErrTruncated)
	}
	r.pos += n
	return nil
}

// Packed32 appends a repeated uint32 field to dst. The field may arrive
// packed (length-delimited run of varints) or as a single bare varint; both
// encodings occur in the wild.
func (r *WireReader) Packed32(wt WireType, dst []uint32) ([]uint32, error) {
	switch wt {
	case WireVarint:
		v, err := r.Varint32()
		if err != nil {
			return dst, err
		}
		return append(dst, v), nil
	case WireBytes:
		sub, err := r.Message()
		if err != nil {
			return dst, err
		}
		for !sub.Done() {
			v, err := sub.Varint32()
			if err != nil {
				return dst, err
			}
			dst = append(dst, v)
		}
		return dst, nil
	default:
		return dst, r.fail(r.pos, "packed field", ErrWireType)
	}
}

// expect checks that a known field arrived with the wire type it requires.
func (r *WireReader) expect(field uint32, got, want WireType) error {
	if got != want {
		return r.fail(r.pos, fmt.Sprintf("field %d is %s, want %s", field, got, want), ErrWireType)
	}
	return nil
}
