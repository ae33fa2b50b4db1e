package vtile

import (
	"bytes"
	"compress/gzip"
	"errors"
	"testing"
)

func gz(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestGunzip(t *testing.T) {
	plain := []byte("hello tile")
	packed := gz(t, plain)

	if !IsGzip(packed) {
		t.Error("Expected gzip magic to be detected")
	}
	if IsGzip(plain) || IsGzip([]byte{0x1f}) {
		t.Error("Expected plain data not to be gzip")
	}

	out, err := Gunzip(packed, 0)
	if err != nil {
		t.Fatalf("Gunzip: %v", err)
	}
	if !bytes.Equal(out, plain) {
		t.Errorf("Expected %q, got %q", plain, out)
	}

	if _, err := Gunzip(packed, 4); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge, got %v", err)
	}
	if _, err := Gunzip(packed[:len(packed)-6], 0); err == nil {
		t.Error("Expected error for truncated stream")
	}
}

func TestUncompress(t *testing.T) {
	plain := []byte{0x1a, 0x00}
	out, err := Uncompress(plain, 0)
	if err != nil || !bytes.Equal(out, plain) {
		t.Errorf("Expected plain data unchanged, got %v %v", out, err)
	}
	out, err = Uncompress(gz(t, plain), 0)
	if err != nil || !bytes.Equal(out, plain) {
		t.Errorf("Expected data decompressed, got %v %v", out, err)
	}
}
