// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

import "encoding/binary"

// tableKind selects the match-table representation.
type tableKind int

const (
	// tableClean marks a table with no usable entries and no chosen width.
	tableClean tableKind = iota
	// tableAbs stores absolute positions; valid for a single contiguous
	// buffer without dictionary.
	tableAbs
	// tableU32 stores positions relative to the stream base offset; used by
	// all streaming and dictionary modes.
	tableU32
	// tableU16 stores 16-bit positions; used for inputs under smallSizeLimit
	// with a double-size table (one extra hash bit).
	tableU16
)

// matchTable is the compressor's hash-head table. Slices are allocated lazily
// and reused across resets. An entry of 0 is an always-safe candidate at
// position 0: the 4-byte compare or the distance check rejects it when stale.
type matchTable struct {
	kind tableKind
	abs  []int32
	u32  []uint32
	u16  []uint16
}

// reset switches the table to the given kind and drops all entries.
func (t *matchTable) reset(kind tableKind) {
	t.kind = kind

	switch kind {
	case tableU16:
		if t.u16 == nil {
			t.u16 = make([]uint16, tableSizeU16)
		}
		clear(t.u16)
	case tableU32:
		if t.u32 == nil {
			t.u32 = make([]uint32, hashTableSize)
		}
		clear(t.u32)
	case tableAbs:
		if t.abs == nil {
			t.abs = make([]int32, hashTableSize)
		}
		clear(t.abs)
	}
}

// resetAll drops every entry in every allocated width.
func (t *matchTable) resetAll() {
	t.kind = tableClean
	clear(t.abs)
	clear(t.u32)
	clear(t.u16)
}

func (t *matchTable) get(h uint32) uint32 {
	switch t.kind {
	case tableU16:
		return uint32(t.u16[h])
	case tableU32:
		return t.u32[h]
	default:
		return uint32(t.abs[h]) //nolint:gosec // G115: abs positions are non-negative
	}
}

func (t *matchTable) put(h, pos uint32) {
	switch t.kind {
	case tableU16:
		t.u16[h] = uint16(pos) //nolint:gosec // G115: positions < smallSizeLimit fit
	case tableU32:
		t.u32[h] = pos
	default:
		t.abs[h] = int32(pos) //nolint:gosec // G115: positions bounded by maxInputSize
	}
}

// clearEntry removes one slot so the table never indexes unconsumed input
// after a fill-to-capacity rewind.
func (t *matchTable) clearEntry(h uint32) {
	switch t.kind {
	case tableU16:
		t.u16[h] = 0
	case tableU32:
		t.u32[h] = 0
	default:
		t.abs[h] = 0
	}
}

// hash4 mixes a 4-byte little-endian key into log bits.
func hash4(v uint32, log uint) uint32 {
	return (v * 2654435761) >> (32 - log)
}

// hash5 mixes the low 5 bytes of a little-endian word into hashLog bits.
func hash5(v uint64) uint32 {
	return uint32(((v << 24) * 889523592379) >> (64 - hashLog)) //nolint:gosec // G115: result fits hashLog bits
}

// hashPosition hashes the key starting at src[i]. Kinds other than tableU16
// use the 5-byte hash, which needs 8 readable bytes at i; callers stay within
// the parsing restrictions that guarantee it.
func hashPosition(src []byte, i int, kind tableKind) uint32 {
	if kind == tableU16 {
		return hash4(binary.LittleEndian.Uint32(src[i:]), hashLogU16)
	}

	return hash5(binary.LittleEndian.Uint64(src[i:]))
}
