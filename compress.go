// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

// CompressBound returns the worst-case compressed size for n input bytes.
// Returns 0 when n is negative or exceeds the largest representable block.
func CompressBound(n int) int {
	if n < 0 || n > maxInputSize {
		return 0
	}

	return n + n/255 + 16
}

// Compress compresses src into a freshly allocated block. opts may be nil
// (default acceleration). Empty input yields the one-byte empty block.
func Compress(src []byte, opts *CompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}

	bound := CompressBound(len(src))
	if bound == 0 {
		return nil, ErrSrcTooLarge
	}

	dst := make([]byte, bound)
	n := compressBlock(src, dst, clampAcceleration(opts.Acceleration), notLimited)

	return dst[:n], nil
}

// CompressInto compresses src into caller-managed dst and returns the number
// of bytes written. Returns ErrDstCapacity when dst cannot hold the result.
func CompressInto(src, dst []byte, opts *CompressOptions) (int, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}

	if len(src) > maxInputSize {
		return 0, ErrSrcTooLarge
	}
	if len(dst) == 0 {
		return 0, ErrDstCapacity
	}

	directive := limitedOutput
	if len(dst) >= CompressBound(len(src)) {
		directive = notLimited
	}

	n := compressBlock(src, dst, clampAcceleration(opts.Acceleration), directive)
	if n == 0 {
		return 0, ErrDstCapacity
	}

	return n, nil
}

// compressBlock runs a single independent block through a pooled context.
// The table kind follows the input size: 16-bit entries while every position
// fits the 64 KiB window, absolute positions beyond that.
func compressBlock(src, dst []byte, acceleration int, directive outputDirective) int {
	if len(src) == 0 {
		dst[0] = 0
		return 1
	}

	kind := tableAbs
	if len(src) < smallSizeLimit {
		kind = tableU16
	}

	s := acquireCompressorState(kind)
	defer releaseCompressorState(s)

	n, _ := compressGeneric(s, src, 0, dst, directive, kind, noDict, noDictIssue, acceleration, nil)

	return n
}
