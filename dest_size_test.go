package lz4

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestCompressDestSize_FillsCapacity(t *testing.T) {
	data := streamTestData(100 << 10)

	for _, capacity := range []int{1, 32, 512, 4096, 30000} {
		t.Run(fmt.Sprintf("cap-%d", capacity), func(t *testing.T) {
			dst := make([]byte, capacity)
			written, consumed, err := CompressDestSize(data, dst)
			if err != nil {
				t.Fatalf("CompressDestSize failed: %v", err)
			}
			if written > capacity {
				t.Fatalf("wrote %d bytes into a %d-byte dst", written, capacity)
			}
			if consumed > len(data) {
				t.Fatalf("consumed %d of %d bytes", consumed, len(data))
			}
			if capacity >= 32 && consumed == 0 {
				t.Fatal("consumed nothing despite usable capacity")
			}

			out, err := Decompress(dst[:written], DefaultDecompressOptions(consumed))
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(out, data[:consumed]) {
				t.Fatalf("decoded %d bytes do not match the consumed prefix", len(out))
			}
		})
	}
}

func TestCompressDestSize_SplitAndContinue(t *testing.T) {
	// compress what fits, then compress the remainder separately; together
	// they must reproduce the input
	data := streamTestData(64 << 10)

	first := make([]byte, 10000)
	written, consumed, err := CompressDestSize(data, first)
	if err != nil {
		t.Fatalf("CompressDestSize failed: %v", err)
	}
	if consumed == 0 || consumed == len(data) {
		t.Fatalf("expected a genuine split, consumed %d of %d", consumed, len(data))
	}

	rest, err := Compress(data[consumed:], nil)
	if err != nil {
		t.Fatalf("Compress of remainder failed: %v", err)
	}

	head, err := Decompress(first[:written], DefaultDecompressOptions(consumed))
	if err != nil {
		t.Fatalf("Decompress of head failed: %v", err)
	}
	tail, err := Decompress(rest, DefaultDecompressOptions(len(data)-consumed))
	if err != nil {
		t.Fatalf("Decompress of tail failed: %v", err)
	}

	if !bytes.Equal(append(head, tail...), data) {
		t.Fatal("split round-trip mismatch")
	}
}

func TestCompressDestSize_Edges(t *testing.T) {
	if _, _, err := CompressDestSize([]byte("x"), nil); !errors.Is(err, ErrDstCapacity) {
		t.Fatalf("expected ErrDstCapacity for nil dst, got %v", err)
	}

	dst := make([]byte, 16)
	written, consumed, err := CompressDestSize(nil, dst)
	if err != nil || written != 1 || consumed != 0 || dst[0] != 0 {
		t.Fatalf("empty input: written=%d consumed=%d err=%v", written, consumed, err)
	}

	// ample capacity consumes everything and matches plain compression
	data := streamTestData(8 << 10)
	big := make([]byte, CompressBound(len(data)))
	written, consumed, err = CompressDestSize(data, big)
	if err != nil {
		t.Fatalf("CompressDestSize failed: %v", err)
	}
	if consumed != len(data) {
		t.Fatalf("consumed %d, want all %d", consumed, len(data))
	}

	plain, err := Compress(data, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if !bytes.Equal(big[:written], plain) {
		t.Fatal("full-capacity output differs from plain compression")
	}
}
