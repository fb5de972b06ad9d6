// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

import "encoding/binary"

// Streams produced by CompressParallel start with a small header that maps
// each independently compressed chunk to its slice of the payload:
//
//	[ 8] magic
//	[ 4] header length, including all records
//	[ 2] chunk count
//	[ 2] reserved, zero
//	per chunk:
//	[ 4] chunk offset from the start of the stream
//	[ 4] compressed length
//	[ 4] decompressed length
//
// The payload is a single valid block stream: decoding it sequentially from
// the end of the header yields the same output as decoding the chunks
// independently. Streams without the magic are plain blocks.
const (
	frameMagic       = 0x434C4C5F4C434F41
	frameFixedLen    = 16
	frameRecordLen   = 12
	frameChunksLimit = 1 << 16
)

// chunkRecord locates one chunk inside a stitched stream.
type chunkRecord struct {
	offset    int
	compLen   int
	decompLen int
}

func frameHeaderLen(chunks int) int {
	return frameFixedLen + chunks*frameRecordLen
}

// hasFrameMagic reports whether src starts with a chunk-map header.
func hasFrameMagic(src []byte) bool {
	return len(src) >= 8 && binary.LittleEndian.Uint64(src) == frameMagic
}

func putFrameHeader(dst []byte, chunks int) {
	binary.LittleEndian.PutUint64(dst, frameMagic)
	binary.LittleEndian.PutUint32(dst[8:], uint32(frameHeaderLen(chunks))) //nolint:gosec // G115
	binary.LittleEndian.PutUint16(dst[12:], uint16(chunks))                //nolint:gosec // G115: chunks < 1<<16
	binary.LittleEndian.PutUint16(dst[14:], 0)
}

func putFrameRecord(dst []byte, i, offset, compLen, decompLen int) {
	rec := dst[frameFixedLen+i*frameRecordLen:]
	binary.LittleEndian.PutUint32(rec, uint32(offset))        //nolint:gosec // G115
	binary.LittleEndian.PutUint32(rec[4:], uint32(compLen))   //nolint:gosec // G115
	binary.LittleEndian.PutUint32(rec[8:], uint32(decompLen)) //nolint:gosec // G115
}

// parseFrameHeader validates the header and returns the chunk map. Chunks
// must tile the payload exactly: each record starts where the previous one
// ended and the last one ends at the end of src.
func parseFrameHeader(src []byte) ([]chunkRecord, error) {
	if len(src) < frameFixedLen || !hasFrameMagic(src) {
		return nil, ErrFrameHeader
	}

	headerLen := int(binary.LittleEndian.Uint32(src[8:]))
	chunks := int(binary.LittleEndian.Uint16(src[12:]))
	reserved := binary.LittleEndian.Uint16(src[14:])

	if reserved != 0 || chunks == 0 || chunks >= frameChunksLimit {
		return nil, ErrFrameHeader
	}
	if headerLen != frameHeaderLen(chunks) || headerLen > len(src) {
		return nil, ErrFrameHeader
	}

	records := make([]chunkRecord, chunks)
	expected := headerLen
	for i := range records {
		rec := src[frameFixedLen+i*frameRecordLen:]
		r := chunkRecord{
			offset:    int(binary.LittleEndian.Uint32(rec)),
			compLen:   int(binary.LittleEndian.Uint32(rec[4:])),
			decompLen: int(binary.LittleEndian.Uint32(rec[8:])),
		}
		if r.offset != expected || r.compLen > len(src)-r.offset {
			return nil, ErrChunkBounds
		}
		if r.compLen == 0 && r.decompLen != 0 {
			return nil, ErrChunkBounds
		}
		expected = r.offset + r.compLen
		records[i] = r
	}
	if expected != len(src) {
		return nil, ErrChunkBounds
	}

	return records, nil
}
