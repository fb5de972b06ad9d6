// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

import (
	"errors"
	"fmt"
)

// Sentinel errors for compression and decompression.
var (
	// ErrEmptyInput is returned when the input slice or stream is empty where
	// a non-empty block is required.
	ErrEmptyInput = errors.New("empty input")
	// ErrSrcTooLarge is returned when the input exceeds the largest block the
	// format can represent (maxInputSize).
	ErrSrcTooLarge = errors.New("source exceeds maximum block size")
	// ErrDstCapacity is returned when the destination buffer cannot hold the
	// compressed or decompressed result.
	ErrDstCapacity = errors.New("destination buffer too small")
	// ErrCorrupt is returned when the decoder rejects malformed input. It is
	// wrapped with the count of input bytes consumed; use errors.Is.
	ErrCorrupt = errors.New("corrupt compressed data")
	// ErrFrameHeader is returned when a multi-chunk frame header is present
	// but inconsistent.
	ErrFrameHeader = errors.New("invalid frame header")
	// ErrChunkBounds is returned when a frame record points outside the input
	// or the destination.
	ErrChunkBounds = errors.New("frame chunk out of bounds")
	// ErrOptionsRequired is returned when Decompress is called with nil
	// options (OutLen is required).
	ErrOptionsRequired = errors.New("options required: OutLen must be set")
	// ErrInputTooLarge is returned when DecompressFromReader reads more than
	// MaxInputSize bytes.
	ErrInputTooLarge = errors.New("input exceeds MaxInputSize")
)

// corruptAt wraps ErrCorrupt with the number of input bytes consumed before
// the decoder gave up. Callers can use errors.Is(err, lz4.ErrCorrupt).
func corruptAt(consumed int) error {
	return fmt.Errorf("%w: offset %d", ErrCorrupt, consumed)
}
