// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

// LZ4 block format constants: token layout, length extension, offset and
// parsing-restriction bounds.

// Token byte layout: high nibble literal-run length, low nibble match length.
const (
	mlBits  = 4
	mlMask  = (1 << mlBits) - 1 // 15, also the low-nibble saturation value
	runMask = mlMask            // high-nibble saturation value
)

// Match and offset bounds.
const (
	minMatch    = 4      // shortest representable match
	distanceMax = 0xFFFF // offsets are 2 little-endian bytes, 0 is invalid
)

// Parsing restrictions. Every block ends with at least lastLiterals literal
// bytes, and the last match must start at least mfLimit bytes before the end.
const (
	lastLiterals     = 5
	mfLimit          = 12
	minInputForMatch = mfLimit + 1 // shorter inputs are a single literal run
)

// Copy margins for the decoder's wild (strided, bounded) copies.
const (
	wildCopyLength       = 8
	matchSafeguard       = 12
	fastLoopSafeDistance = 64
)

// Compressor tuning.
const (
	skipTrigger         = 6 // dynamic step = searchMatchNb++ >> skipTrigger
	accelerationDefault = 1
	accelerationMax     = 65537

	// smallSizeLimit is the largest input compressed with the 16-bit table.
	smallSizeLimit = 64*1024 + (mfLimit - 1)
)

// Hash table sizing. The 16-bit table gets one extra hash bit since its
// entries are half as wide.
const (
	hashLog       = 12
	hashTableSize = 1 << hashLog
	hashLogU16    = hashLog + 1
	tableSizeU16  = 1 << hashLogU16
)

// maxInputSize is the largest block the format can represent.
const maxInputSize = 0x7E000000

// Streaming window parameters.
const (
	dictWindowSize = 64 * 1024
	hashUnit       = 8          // dicts shorter than one hash word are ignored
	renormCeiling  = 0x80000000 // table indexes renormalize before this base
)
