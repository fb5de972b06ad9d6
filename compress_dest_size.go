// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

// CompressDestSize compresses the longest prefix of src that fits dst
// exactly. It returns the bytes written and the bytes of src consumed.
// Decompressing the produced block yields src[:consumed]. When dst can hold
// the worst case for all of src this is a plain full compression.
func CompressDestSize(src, dst []byte) (written, consumed int, err error) {
	if len(dst) == 0 {
		return 0, 0, ErrDstCapacity
	}
	if len(src) > maxInputSize {
		return 0, 0, ErrSrcTooLarge
	}

	if len(dst) >= CompressBound(len(src)) {
		n := compressBlock(src, dst, accelerationDefault, notLimited)
		return n, len(src), nil
	}

	if len(src) == 0 {
		dst[0] = 0
		return 1, 0, nil
	}

	kind := tableAbs
	if len(src) < smallSizeLimit {
		kind = tableU16
	}

	s := acquireCompressorState(kind)
	defer releaseCompressorState(s)

	written, consumed = compressGeneric(s, src, 0, dst,
		fillOutput, kind, noDict, noDictIssue, accelerationDefault, nil)

	return written, consumed, nil
}
