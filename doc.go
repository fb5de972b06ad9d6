// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

/*
Package lz4 implements the LZ4 block format (lz4_decompress_safe-compatible)
with dictionary and streaming modes, plus a parallel compressor that joins
per-chunk output into one stitched stream behind a small frame header.

A block is a sequence of token-prefixed literal runs and back-references with
2-byte offsets up to 64 KiB. Blocks carry no size information of their own;
callers track the decompressed length.

# Decompress

OutLen is required (use DecompressOptions). From a byte slice:

	out, err := lz4.Decompress(compressed, lz4.DefaultDecompressOptions(expectedLen))

To reuse caller-managed output memory (no per-call output allocation):

	dst := make([]byte, expectedLen)
	n, err := lz4.DecompressInto(compressed, dst)

From an io.Reader (e.g. stream with known decompressed size):

	out, err := lz4.DecompressFromReader(r, lz4.DefaultDecompressOptions(expectedLen))

Partial decoding stops after a target byte count and accepts truncated input:

	n, err := lz4.DecompressPartial(compressed, dst, 4096)

# Compress

Options may be nil (default acceleration):

	out, err := lz4.Compress(data, nil)
	out, err := lz4.Compress(data, &lz4.CompressOptions{Acceleration: 8})

# Streaming and dictionaries

Stream compresses dependent blocks against a rolling 64 KiB window;
StreamDecoder mirrors it on the decode side:

	s := lz4.NewStream()
	s.LoadDict(dict)
	n, err := s.CompressContinue(block, dst)

# Parallel

CompressParallel splits large inputs into independent chunks, compresses them
concurrently and stitches the results. The output of DecompressParallel is
identical to sequential decompression, and the stitched payload after the
frame header is itself a valid single block.
*/
package lz4
