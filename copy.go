// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

// copyBackRef copies length bytes from dst[outputPos-dist:outputPos-dist+length] to dst[outputPos:outputPos+length].
// If distance < length, source and destination overlap; copy must be byte-by-byte so that
// repeated bytes (RLE) are correct. The built-in copy does not handle overlapping regions
// where src precedes dst. Callers validate bounds.
func copyBackRef(dst []byte, outputPos, dist, length int) {
	mPos := outputPos - dist

	if dist >= length {
		copy(dst[outputPos:outputPos+length], dst[mPos:mPos+length])
		return
	}

	for i := 0; i < length; i++ {
		dst[outputPos+i] = dst[mPos+i]
	}
}

// wildCopyBackRef copies a back-reference in fixed strides, rounding the total
// written up to a stride multiple. The stride never exceeds dist, so each chunk
// reads bytes that are already in place. Callers guarantee dist >= wildCopyLength
// and at least fastLoopSafeDistance bytes of room past outputPos+length.
func wildCopyBackRef(dst []byte, outputPos, dist, length int) {
	stride := copyStride()
	if stride > dist {
		stride = wildCopyLength
	}

	mPos := outputPos - dist
	end := outputPos + length
	for outputPos < end {
		copy(dst[outputPos:outputPos+stride], dst[mPos:mPos+stride])
		outputPos += stride
		mPos += stride
	}
}
