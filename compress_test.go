package lz4

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"testing"
)

func testInputSet() []struct {
	name string
	data []byte
} {
	rng := rand.New(rand.NewSource(1))
	noise := make([]byte, 4096)
	rng.Read(noise)

	return []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "single-byte", data: []byte{0xAB}},
		{name: "short-text", data: []byte("hello world, lz4 test")},
		{name: "repeated-pattern", data: bytes.Repeat([]byte("abc123"), 2000)},
		{name: "long-run", data: bytes.Repeat([]byte{0xFF}, 12000)},
		{name: "byte-cycle", data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1200)},
		{name: "noise-4k", data: noise},
	}
}

func TestCompressDecompress_RoundTripAcrossAccelerations(t *testing.T) {
	accelerations := []int{-3, 0, 1, 2, 16, 65537}

	for _, in := range testInputSet() {
		for _, accel := range accelerations {
			name := fmt.Sprintf("%s/accel-%d", in.name, accel)
			t.Run(name, func(t *testing.T) {
				cmp, err := Compress(in.data, &CompressOptions{Acceleration: accel})
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}
				if len(cmp) == 0 {
					t.Fatal("compressed data is empty")
				}

				out, err := Decompress(cmp, DefaultDecompressOptions(len(in.data)))
				if err != nil {
					t.Fatalf("Decompress failed: %v", err)
				}
				if !bytes.Equal(out, in.data) {
					t.Fatalf("round-trip mismatch: got=%d want=%d", len(out), len(in.data))
				}

				outReader, err := DecompressFromReader(bytes.NewReader(cmp), DefaultDecompressOptions(len(in.data)))
				if err != nil {
					t.Fatalf("DecompressFromReader failed: %v", err)
				}
				if !bytes.Equal(outReader, in.data) {
					t.Fatalf("reader round-trip mismatch: got=%d want=%d", len(outReader), len(in.data))
				}
			})
		}
	}
}

func TestCompress_SizesAroundTableSwitch(t *testing.T) {
	// straddle the size where the compressor switches table widths
	sizes := []int{
		64, 65535, 65536,
		smallSizeLimit - 1, smallSizeLimit, smallSizeLimit + 1,
		131072,
	}

	for _, size := range sizes {
		t.Run(fmt.Sprintf("size-%d", size), func(t *testing.T) {
			data := make([]byte, size)
			for i := range data {
				data[i] = byte(i / 7)
			}

			cmp, err := Compress(data, nil)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}

			out, err := Decompress(cmp, DefaultDecompressOptions(size))
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(out, data) {
				t.Fatalf("round-trip mismatch at size %d", size)
			}

			again, err := Compress(data, nil)
			if err != nil {
				t.Fatalf("second Compress failed: %v", err)
			}
			if !bytes.Equal(cmp, again) {
				t.Fatal("compression is not deterministic across pooled contexts")
			}
		})
	}
}

func TestCompress_LongSingleRun(t *testing.T) {
	data := bytes.Repeat([]byte{'A'}, 70000)

	if bound := CompressBound(len(data)); bound < len(data)+len(data)/255+16 {
		t.Fatalf("bound %d too small for %d bytes", bound, len(data))
	}

	cmp, err := Compress(data, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if len(cmp) >= len(data)/100 {
		t.Fatalf("a single run should compress far below %d bytes, got %d", len(data)/100, len(cmp))
	}

	// the first sequence must cover the run via an offset-1 match with an
	// extended length
	token := cmp[0]
	ip := 1
	ll := int(token >> 4)
	if ll == runMask {
		for cmp[ip] == 255 {
			ll += 255
			ip++
		}
		ll += int(cmp[ip])
		ip++
	}
	ip += ll
	if off := int(binary.LittleEndian.Uint16(cmp[ip:])); off != 1 {
		t.Fatalf("first match offset = %d, want 1", off)
	}
	if token&mlMask != mlMask {
		t.Fatal("first match should carry a length extension")
	}

	dst := make([]byte, len(data))
	n, err := DecompressInto(cmp, dst)
	if err != nil {
		t.Fatalf("DecompressInto failed: %v", err)
	}
	if n != len(data) || !bytes.Equal(dst[:n], data) {
		t.Fatalf("round-trip mismatch: decoded %d bytes", n)
	}
}

func TestCompress_EmptyInputYieldsOneByteBlock(t *testing.T) {
	cmp, err := Compress(nil, nil)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if !bytes.Equal(cmp, []byte{0x00}) {
		t.Fatalf("empty block mismatch: % x", cmp)
	}

	out, err := Decompress(cmp, DefaultDecompressOptions(0))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("empty block decoded to %d bytes", len(out))
	}
}

func TestCompressBound(t *testing.T) {
	if CompressBound(-1) != 0 {
		t.Fatal("negative size should bound to 0")
	}
	if CompressBound(maxInputSize+1) != 0 {
		t.Fatal("oversized input should bound to 0")
	}
	if CompressBound(0) == 0 {
		t.Fatal("zero input still needs room for the empty block")
	}

	for _, in := range testInputSet() {
		cmp, err := Compress(in.data, nil)
		if err != nil {
			t.Fatalf("Compress(%s) failed: %v", in.name, err)
		}
		if len(cmp) > CompressBound(len(in.data)) {
			t.Fatalf("%s: compressed %d exceeds bound %d", in.name, len(cmp), CompressBound(len(in.data)))
		}
	}
}

func TestCompressInto_DstTooSmall(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	data := make([]byte, 4096)
	rng.Read(data)

	if _, err := CompressInto(data, make([]byte, 64), nil); !errors.Is(err, ErrDstCapacity) {
		t.Fatalf("expected ErrDstCapacity, got %v", err)
	}
	if _, err := CompressInto(data, nil, nil); !errors.Is(err, ErrDstCapacity) {
		t.Fatalf("expected ErrDstCapacity for nil dst, got %v", err)
	}

	dst := make([]byte, CompressBound(len(data)))
	n, err := CompressInto(data, dst, nil)
	if err != nil {
		t.Fatalf("CompressInto failed: %v", err)
	}

	out, err := Decompress(dst[:n], DefaultDecompressOptions(len(data)))
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("round-trip mismatch")
	}
}

func TestCompress_AccelerationClamping(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 4096)

	cmpNeg, err := Compress(data, &CompressOptions{Acceleration: -100})
	if err != nil {
		t.Fatalf("Compress accel=-100 failed: %v", err)
	}
	cmpOne, err := Compress(data, &CompressOptions{Acceleration: 1})
	if err != nil {
		t.Fatalf("Compress accel=1 failed: %v", err)
	}
	if !bytes.Equal(cmpNeg, cmpOne) {
		t.Fatal("negative acceleration should clamp to the default")
	}

	cmpHuge, err := Compress(data, &CompressOptions{Acceleration: 1 << 24})
	if err != nil {
		t.Fatalf("Compress accel=1<<24 failed: %v", err)
	}
	cmpMax, err := Compress(data, &CompressOptions{Acceleration: accelerationMax})
	if err != nil {
		t.Fatalf("Compress accel=max failed: %v", err)
	}
	if !bytes.Equal(cmpHuge, cmpMax) {
		t.Fatal("oversized acceleration should clamp to the maximum")
	}
}

func FuzzCompressDecompressRoundTrip(f *testing.F) {
	f.Add([]byte(""), uint8(0))
	f.Add([]byte("hello world"), uint8(1))
	f.Add(bytes.Repeat([]byte{0x00}, 1024), uint8(9))
	f.Add(bytes.Repeat([]byte("abc"), 500), uint8(7))

	f.Fuzz(func(t *testing.T, data []byte, accel uint8) {
		if len(data) > 1<<16 {
			data = data[:1<<16]
		}

		cmp, err := Compress(data, &CompressOptions{Acceleration: int(accel)})
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}

		out, err := Decompress(cmp, DefaultDecompressOptions(len(data)))
		if err != nil {
			t.Fatalf("Decompress failed: %v", err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("round-trip mismatch: got=%d want=%d", len(out), len(data))
		}
	})
}
