// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

import "io"

// DecompressFromReader reads the full stream then decodes it, routing
// stitched multi-chunk streams through DecompressParallel and plain blocks
// through Decompress. If opts.MaxInputSize > 0 and more bytes are read,
// returns ErrInputTooLarge.
func DecompressFromReader(r io.Reader, opts *DecompressOptions) ([]byte, error) {
	if opts == nil {
		return nil, ErrOptionsRequired
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if opts.MaxInputSize > 0 && len(src) > opts.MaxInputSize {
		return nil, ErrInputTooLarge
	}

	if hasFrameMagic(src) {
		if opts.OutLen < 0 {
			return nil, ErrOptionsRequired
		}
		dst := make([]byte, opts.OutLen)
		n, err := DecompressParallel(src, dst, opts)
		if err != nil {
			return nil, err
		}
		return dst[:n], nil
	}

	return Decompress(src, opts)
}
