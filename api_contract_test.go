package lz4

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestAPIContract_DecompressRejectsTrailingBytes(t *testing.T) {
	src := bytes.Repeat([]byte("api-contract"), 64)

	compressed, err := Compress(src, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	payload := append(append([]byte{}, compressed...), []byte("tail")...)
	if _, err := Decompress(payload, DefaultDecompressOptions(len(src))); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for trailing bytes, got %v", err)
	}

	// partial decoding stops at the target and tolerates the tail
	dst := make([]byte, len(src))
	n, err := DecompressPartial(payload, dst, len(src))
	if err != nil {
		t.Fatalf("DecompressPartial with trailing bytes failed: %v", err)
	}
	if !bytes.Equal(dst[:n], src) {
		t.Fatal("partial decode mismatch for trailing-byte input")
	}
}

func TestAPIContract_DecompressCanReturnShorterThanOutLen(t *testing.T) {
	src := bytes.Repeat([]byte("short-output"), 32)

	compressed, err := Compress(src, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	out, err := Decompress(compressed, DefaultDecompressOptions(len(src)+256))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}

	if len(out) != len(src) {
		t.Fatalf("decoded length mismatch: got=%d want=%d", len(out), len(src))
	}
	if !bytes.Equal(out, src) {
		t.Fatal("decoded output mismatch")
	}
}

func TestAPIContract_ReaderInputCap(t *testing.T) {
	src := bytes.Repeat([]byte("reader-cap"), 64)

	compressed, err := Compress(src, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	opts := &DecompressOptions{OutLen: len(src), MaxInputSize: len(compressed) - 1}
	if _, err := DecompressFromReader(bytes.NewReader(compressed), opts); !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}

	if _, err := DecompressFromReader(strings.NewReader("\x00"), nil); !errors.Is(err, ErrOptionsRequired) {
		t.Fatalf("expected ErrOptionsRequired, got %v", err)
	}
}

func TestAPIContract_SrcTooLargeIsChecked(t *testing.T) {
	// CompressInto rejects oversized inputs without touching the data, so a
	// deliberately out-of-range slice header is never dereferenced
	if CompressBound(maxInputSize) == 0 {
		t.Fatal("maxInputSize itself must be compressible")
	}
	if CompressBound(maxInputSize+1) != 0 {
		t.Fatal("inputs beyond maxInputSize must be rejected")
	}
}
