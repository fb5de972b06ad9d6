// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

// DecompressOptions configures decompression.
// OutLen is required (expected decompressed size); MaxInputSize limits reads
// when using DecompressFromReader.
type DecompressOptions struct {
	// OutLen is the expected decompressed size (required for buffer allocation and safety).
	OutLen int
	// MaxInputSize limits how many bytes DecompressFromReader may read (0 = no limit).
	MaxInputSize int
	// Workers caps concurrent chunk decoding in DecompressParallel (0 = GOMAXPROCS).
	Workers int
}

// DefaultDecompressOptions returns options with the given output length and no input limit.
func DefaultDecompressOptions(outLen int) *DecompressOptions {
	return &DecompressOptions{OutLen: outLen}
}

// CompressOptions configures compression.
type CompressOptions struct {
	// Acceleration trades ratio for speed: 1 is the default search effort,
	// larger values skip more aggressively. Values outside [1, 65537] are clamped.
	Acceleration int
	// Workers caps chunk concurrency in CompressParallel (0 = GOMAXPROCS).
	Workers int
}

// DefaultCompressOptions returns options with default acceleration.
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{Acceleration: accelerationDefault}
}

// clampAcceleration maps out-of-range acceleration values to valid ones.
func clampAcceleration(a int) int {
	if a < 1 {
		return accelerationDefault
	}
	return min(a, accelerationMax)
}
