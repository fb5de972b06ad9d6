// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

// StreamDecoder decompresses a sequence of dependent blocks produced by
// Stream.CompressContinue. Each block may reference up to 64 KiB of
// previously decoded output, which the decoder tracks across calls whether
// the caller decodes into one growing buffer, a ring buffer, or alternating
// buffers.
//
// A StreamDecoder must not be used from multiple goroutines concurrently.
type StreamDecoder struct {
	// prefix is the most recently decoded region; the next block may extend
	// it in place when the caller's buffer allows.
	prefix []byte
	// extDict is older history that lives in a different buffer.
	extDict []byte
}

// NewStreamDecoder returns a decoder with no history.
func NewStreamDecoder() *StreamDecoder {
	return &StreamDecoder{}
}

// Reset drops all decoding history.
func (d *StreamDecoder) Reset() {
	d.prefix = nil
	d.extDict = nil
}

// SetDict installs a dictionary as the initial history. It must match the
// dictionary loaded into the compressing Stream, and the caller must keep
// it unchanged while decoding.
func (d *StreamDecoder) SetDict(dict []byte) {
	d.prefix = dict
	d.extDict = nil
}

// DecoderRingBufferSize returns the smallest ring buffer that can hold the
// decoding history plus one block of at most maxBlockSize bytes. A ring
// buffer at least this large may be filled round-robin without the decoder
// ever overwriting history a later block still needs.
func DecoderRingBufferSize(maxBlockSize int) int {
	if maxBlockSize < 0 || maxBlockSize > maxInputSize {
		return 0
	}
	maxBlockSize = max(maxBlockSize, 16)

	return dictWindowSize + 14 + maxBlockSize
}

// DecompressContinue decodes one block into dst, resolving matches against
// the history decoded by previous calls. dst bounds the decoded size; the
// decoded bytes become the newest history, so the caller must not overwrite
// them before decoding the block that depends on them.
func (d *StreamDecoder) DecompressContinue(src, dst []byte) (int, error) {
	if len(src) == 0 {
		return 0, ErrEmptyInput
	}

	switch {
	case len(d.prefix) == 0:
		n, err := decompressGeneric(src, dst, 0, d.extDict, false, true)
		if err != nil {
			return 0, err
		}
		d.prefix = dst[:n]
		return n, nil

	case contiguous(d.prefix, dst) && cap(d.prefix) >= len(d.prefix)+len(dst):
		// dst extends the previous output in place
		dict := d.extDict
		if len(d.prefix) >= dictWindowSize-1 {
			dict = nil
		}
		full := d.prefix[: len(d.prefix)+len(dst) : len(d.prefix)+len(dst)]
		n, err := decompressGeneric(src, full, len(d.prefix), dict, false, true)
		if err != nil {
			return 0, err
		}
		d.prefix = full[:len(d.prefix)+n]
		return n, nil

	default:
		// new buffer: the previous output becomes an external dictionary
		n, err := decompressGeneric(src, dst, 0, d.prefix, false, true)
		if err != nil {
			return 0, err
		}
		d.extDict = d.prefix
		d.prefix = dst[:n]
		return n, nil
	}
}
