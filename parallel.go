// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const (
	// parallelQuantum is the smallest worthwhile chunk: a full match window
	// plus read margin, scaled so per-chunk overhead stays negligible.
	parallelWindowLen    = distanceMax + 32
	parallelWindowFactor = 4
	parallelQuantum      = parallelWindowLen * parallelWindowFactor
)

// CompressParallelBound returns a dst size sufficient for CompressParallel
// with input of n bytes, whatever worker count ends up being used.
func CompressParallelBound(n int) int {
	bound := CompressBound(n)
	if bound == 0 {
		return 0
	}
	chunks := n/parallelQuantum + 1

	// every chunk carries its own per-block overhead, and joining may
	// re-encode one literal run per chunk
	return bound + n/255 + frameHeaderLen(chunks) + chunks*16
}

// CompressParallel compresses src across opts.Workers goroutines and writes
// a stitched stream into dst: a chunk-map header followed by the chunk
// payloads joined into one valid block stream. Inputs too small to split,
// or Workers of 1, produce a plain block with no header. The result always
// decompresses with DecompressParallel; the payload after the header (or
// the whole stream when there is no header) also decompresses sequentially.
func CompressParallel(src, dst []byte, opts *CompressOptions) (int, error) {
	if opts == nil {
		opts = DefaultCompressOptions()
	}
	if len(src) > maxInputSize {
		return 0, ErrSrcTooLarge
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || len(src) < parallelQuantum {
		return CompressInto(src, dst, opts)
	}

	partitions := len(src) / parallelQuantum
	if len(src)%parallelQuantum >= parallelQuantum/2 {
		partitions++
	}
	n := min(workers, partitions)
	if n <= 1 {
		return CompressInto(src, dst, opts)
	}

	accel := clampAcceleration(opts.Acceleration)
	common := len(src) / n

	parts := make([][]byte, n)
	for i := range parts {
		end := (i + 1) * common
		if i == n-1 {
			end = len(src)
		}
		parts[i] = src[i*common : end]
	}

	outs := make([][]byte, n)
	tails := make([]chunkTail, n)

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			part := parts[i]
			kind := tableAbs
			if len(part) < smallSizeLimit {
				kind = tableU16
			}

			s := acquireCompressorState(kind)
			defer releaseCompressorState(s)

			var tail *chunkTail
			if i < n-1 {
				tail = &tails[i]
			}

			buf := make([]byte, CompressBound(len(part)))
			w, _ := compressGeneric(s, part, 0, buf, notLimited, kind, noDict, noDictIssue, accel, tail)
			outs[i] = buf[:w]

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return joinChunks(src, dst, parts, outs, tails, common)
}

// joinChunks stitches per-chunk outputs into one block stream. A non-final
// chunk stops after its last match and leaves its trailing literals to be
// carried: the next chunk's first token is rewritten with the carried count
// added and the carried bytes spliced in front of its own literals. A chunk
// too small to encode any match is rolled into the carry whole and recorded
// with zero length.
func joinChunks(src, dst []byte, parts, outs [][]byte, tails []chunkTail, common int) (int, error) {
	n := len(parts)
	headerLen := frameHeaderLen(n)
	if headerLen+len(outs[0]) > len(dst) {
		return 0, ErrDstCapacity
	}
	putFrameHeader(dst, n)

	pos := headerLen
	copy(dst[pos:], outs[0])
	pos += len(outs[0])
	putFrameRecord(dst, 0, headerLen, len(outs[0]), len(parts[0])-tails[0].length)
	carry := tails[0].length

	for i := 1; i < n; i++ {
		out := outs[i]
		partLen := len(parts[i])
		tailLen := 0
		if i < n-1 {
			tailLen = tails[i].length
		}

		if len(out) == 0 {
			putFrameRecord(dst, i, pos, 0, 0)
			carry += tailLen
			continue
		}

		// decode the first sequence header, then re-emit it with the
		// carried literal count folded in
		token := out[0]
		lit := int(token >> mlBits)
		hdr := 1
		if lit == runMask {
			for out[hdr] == 255 {
				lit += 255
				hdr++
			}
			lit += int(out[hdr])
			hdr++
		}
		newLit := lit + carry

		need := 1 + carry + (len(out) - hdr)
		if newLit >= runMask {
			need += 1 + (newLit-runMask)/255
		}
		if pos+need > len(dst) {
			return 0, ErrDstCapacity
		}

		recOff := pos
		if newLit >= runMask {
			dst[pos] = runMask<<mlBits | token&mlMask
			pos++
			acc := newLit - runMask
			for ; acc >= 255; acc -= 255 {
				dst[pos] = 255
				pos++
			}
			dst[pos] = byte(acc)
			pos++
		} else {
			dst[pos] = byte(newLit)<<mlBits | token&mlMask //nolint:gosec // G115: newLit < 15
			pos++
		}

		partStart := i * common
		copy(dst[pos:], src[partStart-carry:partStart])
		pos += carry
		copy(dst[pos:], out[hdr:])
		pos += len(out) - hdr

		putFrameRecord(dst, i, recOff, pos-recOff, partLen-tailLen+carry)
		carry = tailLen
	}

	return pos, nil
}

// DecompressParallel decodes a stream produced by CompressParallel into
// dst, fanning chunks out across opts.Workers goroutines. Streams without
// the chunk-map header, and chunk maps wider than the worker budget, decode
// sequentially. Returns the number of bytes written.
func DecompressParallel(src, dst []byte, opts *DecompressOptions) (int, error) {
	if len(src) == 0 {
		return 0, ErrEmptyInput
	}
	if !hasFrameMagic(src) {
		return DecompressInto(src, dst)
	}

	records, err := parseFrameHeader(src)
	if err != nil {
		return 0, err
	}

	workers := 0
	if opts != nil {
		workers = opts.Workers
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers < len(records) {
		return DecompressInto(src[records[0].offset:], dst)
	}

	total := 0
	for _, r := range records {
		total += r.decompLen
	}
	if total > len(dst) {
		return 0, ErrDstCapacity
	}

	var g errgroup.Group
	g.SetLimit(workers)
	dOff := 0
	for i, r := range records {
		if r.compLen == 0 {
			continue
		}
		chunkSrc := src[r.offset : r.offset+r.compLen]
		chunkDst := dst[dOff : dOff+r.decompLen]
		dOff += r.decompLen
		lastChunk := i == len(records)-1

		g.Go(func() error {
			w, err := decompressGeneric(chunkSrc, chunkDst, 0, nil, false, lastChunk)
			if err != nil {
				return err
			}
			if w != len(chunkDst) {
				return fmt.Errorf("%w: chunk decoded %d of %d bytes", ErrCorrupt, w, len(chunkDst))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return total, nil
}
