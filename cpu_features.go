// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
)

var (
	strideOnce     sync.Once
	wideCopyStride = wildCopyLength
)

// copyStride returns the bulk-copy granularity for the decoder's wild copies,
// selected once from the detected SIMD width. Every stride produces identical
// output; only the copy chunking differs.
func copyStride() int {
	strideOnce.Do(func() {
		switch {
		case cpuid.CPU.Supports(cpuid.AVX512F):
			wideCopyStride = 64
		case cpuid.CPU.Supports(cpuid.AVX2):
			wideCopyStride = 32
		case cpuid.CPU.Supports(cpuid.SSE2):
			wideCopyStride = 16
		}
	})

	return wideCopyStride
}
