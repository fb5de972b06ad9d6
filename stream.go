// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

// Stream compresses a sequence of dependent blocks against a rolling
// 64 KiB history window. Blocks may reference the previous block's bytes
// whether or not the caller keeps them in one contiguous buffer.
//
// A Stream must not be used from multiple goroutines concurrently.
type Stream struct {
	cctx         compressorState
	acceleration int
}

// NewStream returns a streaming compressor with default acceleration.
func NewStream() *Stream {
	return &Stream{acceleration: accelerationDefault}
}

// SetAcceleration changes the search effort for subsequent blocks.
func (s *Stream) SetAcceleration(a int) {
	s.acceleration = clampAcceleration(a)
}

// Reset returns the stream to its initial state, keeping allocated tables.
func (s *Stream) Reset() {
	s.cctx.reset()
}

// LoadDict preloads a dictionary into the stream. Only the trailing 64 KiB
// are kept; dictionaries shorter than 8 bytes are ignored. The stream is
// reset first. Returns the number of dictionary bytes retained.
//
// The caller must keep dict unchanged while the stream uses it.
func (s *Stream) LoadDict(dict []byte) int {
	cctx := &s.cctx
	cctx.reset()
	cctx.table.reset(tableU32)

	// always advance a full window so every offset after the dictionary is valid
	cctx.currentOffset = dictWindowSize

	if len(dict) < hashUnit {
		return 0
	}
	if len(dict) > dictWindowSize {
		dict = dict[len(dict)-dictWindowSize:]
	}

	cctx.hist = dict
	cctx.currentOffset += uint32(len(dict)) //nolint:gosec // G115: dict <= 64 KiB

	// index every third position; match extension recovers the rest
	idx := cctx.currentOffset - uint32(len(dict)) //nolint:gosec // G115
	for p := 0; p+hashUnit <= len(dict); p += 3 {
		cctx.table.put(hashPosition(dict, p, tableU32), idx)
		idx += 3
	}

	return len(dict)
}

// AttachDict borrows the table of a dictionary stream (prepared with
// LoadDict) for the next block without copying it. Passing nil detaches.
// The working stream should be fresh or Reset; the dictionary stream must
// stay alive and unchanged while attached.
func (s *Stream) AttachDict(d *Stream) {
	var ctx *compressorState
	if d != nil && len(d.cctx.hist) > 0 {
		ctx = &d.cctx
	}

	s.cctx.dictCtx = ctx
	if ctx != nil && s.cctx.currentOffset == 0 {
		s.cctx.currentOffset = dictWindowSize
	}
}

// CompressContinue compresses one block that may reference the previous
// block and any loaded dictionary. When src directly extends the current
// history in the same backing array the cheaper prefix addressing is used;
// otherwise the previous buffer is addressed as an external dictionary.
// After the call the history window is src, which the caller must keep
// unchanged until the next block (or SaveDict).
func (s *Stream) CompressContinue(src, dst []byte) (int, error) {
	cctx := &s.cctx

	if len(src) > maxInputSize {
		return 0, ErrSrcTooLarge
	}
	if len(dst) == 0 {
		return 0, ErrDstCapacity
	}
	if cctx.table.kind != tableU32 {
		cctx.table.reset(tableU32)
	}

	if uint64(cctx.currentOffset)+uint64(len(src)) > renormCeiling {
		s.renormalize()
	}

	directive := limitedOutput
	if len(dst) >= CompressBound(len(src)) {
		directive = notLimited
	}
	accel := s.acceleration
	if accel == 0 {
		accel = accelerationDefault
	}

	prefixMode := contiguous(cctx.hist, src) &&
		cap(cctx.hist) >= len(cctx.hist)+len(src)
	if len(cctx.hist) < minMatch && !prefixMode && len(src) > 0 && cctx.dictCtx == nil {
		// tiny history cannot seed a hash; drop it rather than address it
		cctx.hist = nil
		prefixMode = true
	}

	var n int
	switch {
	case prefixMode && len(cctx.hist) > 0:
		issue := noDictIssue
		if len(cctx.hist) < dictWindowSize && uint32(len(cctx.hist)) < cctx.currentOffset { //nolint:gosec // G115
			issue = dictSmall
		}
		full := cctx.hist[: len(cctx.hist)+len(src) : len(cctx.hist)+len(src)]
		n, _ = compressGeneric(cctx, full, len(cctx.hist), dst,
			directive, tableU32, withPrefix, issue, accel, nil)
		cctx.hist = full

	case prefixMode:
		// empty history: a degenerate prefix of length zero
		n, _ = compressGeneric(cctx, src, 0, dst,
			directive, tableU32, withPrefix, noDictIssue, accel, nil)
		cctx.hist = src

	case cctx.dictCtx != nil && len(src) > 4<<10:
		// large block: import the attached state once, then run ext-dict
		dictCtx := cctx.dictCtx
		copy(cctx.table.u32, dictCtx.table.u32)
		cctx.currentOffset = dictCtx.currentOffset
		cctx.hist = dictCtx.hist
		cctx.dictCtx = nil
		n, _ = compressGeneric(cctx, src, 0, dst,
			directive, tableU32, usingExtDict, noDictIssue, accel, nil)
		cctx.hist = src

	case cctx.dictCtx != nil:
		n, _ = compressGeneric(cctx, src, 0, dst,
			directive, tableU32, usingDictCtx, noDictIssue, accel, nil)
		cctx.hist = src

	default:
		issue := noDictIssue
		if len(cctx.hist) < dictWindowSize && uint32(len(cctx.hist)) < cctx.currentOffset { //nolint:gosec // G115
			issue = dictSmall
		}
		n, _ = compressGeneric(cctx, src, 0, dst,
			directive, tableU32, usingExtDict, issue, accel, nil)
		cctx.hist = src
	}

	if n == 0 {
		return 0, ErrDstCapacity
	}

	return n, nil
}

// SaveDict copies the trailing window of history into buf and repoints the
// stream there, so the caller may reuse or free the source buffers. Returns
// the number of bytes saved (at most 64 KiB, at most len(buf)).
func (s *Stream) SaveDict(buf []byte) int {
	cctx := &s.cctx

	n := min(len(cctx.hist), dictWindowSize, len(buf))
	if n > 0 {
		copy(buf, cctx.hist[len(cctx.hist)-n:])
	}
	cctx.hist = buf[:n]

	return n
}

// renormalize rebases table indexes so the stream offset never wraps.
// Entries older than one window below the base are dropped.
func (s *Stream) renormalize() {
	cctx := &s.cctx
	delta := cctx.currentOffset - dictWindowSize

	for i, v := range cctx.table.u32 {
		if v < delta {
			cctx.table.u32[i] = 0
		} else {
			cctx.table.u32[i] = v - delta
		}
	}

	cctx.currentOffset = dictWindowSize
	if len(cctx.hist) > dictWindowSize {
		cctx.hist = cctx.hist[len(cctx.hist)-dictWindowSize:]
	}
}
