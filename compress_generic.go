// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

import (
	"encoding/binary"
	"math/bits"
)

// outputDirective controls how the encoder treats the destination bound.
type outputDirective int

const (
	// notLimited assumes dst holds CompressBound(len(src)) bytes.
	notLimited outputDirective = iota
	// limitedOutput fails (returns 0 written) when dst is too small.
	limitedOutput
	// fillOutput compresses the longest src prefix that fits dst exactly.
	fillOutput
)

// dictDirective selects how history outside the current block is addressed.
type dictDirective int

const (
	noDict dictDirective = iota
	// withPrefix: history directly precedes the block in the same buffer.
	withPrefix
	// usingExtDict: history lives in a separate buffer.
	usingExtDict
	// usingDictCtx: history and its table are borrowed from another context.
	usingDictCtx
)

// dictIssue flags a dictionary smaller than the match window, which requires
// rejecting candidates below the dictionary start.
type dictIssue int

const (
	noDictIssue dictIssue = iota
	dictSmall
)

// compressorState is the persistent match-finder state shared by one-shot
// (pooled) and streaming compression.
type compressorState struct {
	table matchTable
	// currentOffset is the stream index of the next input byte (tableU32).
	currentOffset uint32
	// hist is the most recent contiguous history (dictionary window).
	hist []byte
	// dictCtx is a borrowed table used for the next block only.
	dictCtx *compressorState
}

func (s *compressorState) reset() {
	s.table.resetAll()
	s.currentOffset = 0
	s.hist = nil
	s.dictCtx = nil
}

// chunkTail reports an unwritten trailing literal run so a coordinator can
// splice it into the following chunk.
type chunkTail struct {
	anchor int // input offset where the trailing run starts
	length int // trailing run length in bytes
}

// candidate is a resolved match-table entry.
type candidate struct {
	pos    int    // index into the live buffer, or into the dictionary
	inDict bool   // pos addresses the external dictionary
	index  uint32 // stream index comparable with the current position
}

// lookupCandidate maps the table entry for hash h onto a buffer position.
// A miss in the working table falls through to a borrowed table when one is
// attached.
func lookupCandidate(s, dictCtx *compressorState, h uint32, dictMode dictDirective,
	startIndex, dictDelta, dictLen uint32, srcStart int,
) candidate {
	matchIndex := s.table.get(h)

	if dictMode == usingDictCtx && matchIndex < startIndex {
		mi := dictCtx.table.get(h)
		return candidate{
			pos:    int(int64(mi) - int64(dictCtx.currentOffset-dictLen)),
			inDict: true,
			index:  mi + dictDelta,
		}
	}

	if dictMode == usingExtDict && matchIndex < startIndex {
		return candidate{
			pos:    int(int64(matchIndex) - int64(startIndex-dictLen)),
			inDict: true,
			index:  matchIndex,
		}
	}

	return candidate{
		pos:   srcStart + int(int64(matchIndex)-int64(startIndex)),
		index: matchIndex,
	}
}

// compressGeneric is the single match-finder and token encoder behind every
// compression entry point. src[:srcStart] is in-buffer history (withPrefix);
// the block itself is src[srcStart:]. It returns bytes written to dst and
// input bytes consumed. A limitedOutput overflow returns (0, 0) and leaves
// the table valid. When tail is non-nil the final literal run is not written
// and is reported through tail instead.
func compressGeneric(s *compressorState, src []byte, srcStart int, dst []byte,
	directive outputDirective, kind tableKind, dictMode dictDirective,
	issue dictIssue, acceleration int, tail *chunkTail,
) (written, consumed int) {
	inputSize := len(src) - srcStart
	iend := len(src)

	startIndex := s.currentOffset
	dictCtx := s.dictCtx

	var dictBuf []byte
	var historyLen uint32
	switch dictMode {
	case withPrefix:
		historyLen = uint32(srcStart) //nolint:gosec // G115: bounded by maxInputSize
	case usingExtDict:
		dictBuf = s.hist
		historyLen = uint32(len(dictBuf)) //nolint:gosec // G115
	case usingDictCtx:
		dictBuf = dictCtx.hist
		historyLen = uint32(len(dictBuf)) //nolint:gosec // G115
	}
	dictLen := historyLen

	var dictDelta uint32
	if dictMode == usingDictCtx {
		dictDelta = startIndex - dictCtx.currentOffset
	}

	var prefixIdxLimit uint32
	if issue == dictSmall {
		prefixIdxLimit = startIndex - historyLen
	}

	// catch-up low bound for matches in the live buffer
	liveLow := srcStart
	if dictMode == withPrefix {
		liveLow = srcStart - int(historyLen)
	}

	// stream bookkeeping happens up front, exactly once per block
	if dictMode == usingDictCtx {
		s.dictCtx = nil
	}
	s.currentOffset += uint32(inputSize) //nolint:gosec // G115

	ip := srcStart
	anchor := srcStart
	op := 0
	olimit := len(dst)
	mflimitPlusOne := iend - mfLimit + 1
	matchlimit := iend - lastLiterals
	filledIp := srcStart

	var forwardH uint32

	if inputSize < minInputForMatch {
		goto emitLastLiterals
	}

	forwardH = hashPosition(src, ip, kind)
	s.table.put(forwardH, startIndex)
	ip++
	forwardH = hashPosition(src, ip, kind)

	for {
		var cand candidate
		var cur uint32
		var offset int

		// find a match
		{
			forwardIp := ip
			step := 1
			searchMatchNb := acceleration << skipTrigger

			for {
				h := forwardH
				cur = startIndex + uint32(forwardIp-srcStart) //nolint:gosec // G115
				ip = forwardIp
				forwardIp += step
				step = searchMatchNb >> skipTrigger
				searchMatchNb++

				if forwardIp > mflimitPlusOne {
					goto emitLastLiterals
				}

				cand = lookupCandidate(s, dictCtx, h, dictMode, startIndex, dictDelta, dictLen, srcStart)
				forwardH = hashPosition(src, forwardIp, kind)
				s.table.put(h, cur)

				if issue == dictSmall && cand.index < prefixIdxLimit {
					continue
				}
				if kind != tableU16 && cand.index+distanceMax < cur {
					continue // too far back to encode
				}

				cb := src
				if cand.inDict {
					cb = dictBuf
				}
				if cand.pos < 0 || cand.pos+minMatch > len(cb) {
					continue // stale entry
				}

				if binary.LittleEndian.Uint32(cb[cand.pos:]) == binary.LittleEndian.Uint32(src[ip:]) {
					offset = int(cur - cand.index)
					break
				}
			}
		}

		// extend the match backward toward the anchor
		filledIp = ip
		{
			cb := src
			low := liveLow
			if cand.inDict {
				cb = dictBuf
				low = 0
			}
			for ip > anchor && cand.pos > low && src[ip-1] == cb[cand.pos-1] {
				ip--
				cand.pos--
			}
		}

		// encode the literal run
		tokenPos := op
		{
			litLen := ip - anchor
			op++

			if directive == limitedOutput &&
				op+litLen+2+1+lastLiterals+litLen/255 > olimit {
				return 0, 0
			}
			if directive == fillOutput &&
				op+(litLen+240)/255+litLen+2+1+mfLimit-minMatch > olimit {
				op--
				goto emitLastLiterals
			}

			if litLen >= runMask {
				dst[tokenPos] = runMask << mlBits
				l := litLen - runMask
				for ; l >= 255; l -= 255 {
					dst[op] = 255
					op++
				}
				dst[op] = byte(l)
				op++
			} else {
				dst[tokenPos] = byte(litLen << mlBits)
			}

			copy(dst[op:op+litLen], src[anchor:ip])
			op += litLen
		}

		// encode matches; loops when the very next position matches again
		for {
			if directive == fillOutput && op+2+1+mfLimit-minMatch > olimit {
				// too close to the end, rewind and close with literals
				op = tokenPos
				goto emitLastLiterals
			}

			binary.LittleEndian.PutUint16(dst[op:], uint16(offset)) //nolint:gosec // G115: offset <= distanceMax
			op += 2

			var matchCode int
			if cand.inDict {
				limit := min(ip+(len(dictBuf)-cand.pos), matchlimit)
				matchCode = matchLen(src, ip+minMatch, dictBuf, cand.pos+minMatch, limit)
				ip += matchCode + minMatch
				if ip == limit {
					// the match runs off the dictionary end, continue in the live buffer
					more := matchLen(src, ip, src, srcStart, matchlimit)
					matchCode += more
					ip += more
				}
			} else {
				matchCode = matchLen(src, ip+minMatch, src, cand.pos+minMatch, matchlimit)
				ip += matchCode + minMatch
			}

			if directive != notLimited && op+1+lastLiterals+(matchCode+240)/255 > olimit {
				if directive == limitedOutput {
					return 0, 0
				}

				// truncate the match so its encoding fills dst exactly
				newMatchCode := mlMask - 1 + ((olimit-op)-1-lastLiterals)*255
				ip -= matchCode - newMatchCode
				matchCode = newMatchCode

				if ip <= filledIp {
					// the table holds positions past the rewound cursor; drop
					// them so it never indexes unconsumed input
					for p := ip; p <= filledIp; p++ {
						s.table.clearEntry(hashPosition(src, p, kind))
					}
				}
			}

			if matchCode >= mlMask {
				dst[tokenPos] += mlMask
				mc := matchCode - mlMask
				for ; mc >= 255; mc -= 255 {
					dst[op] = 255
					op++
				}
				dst[op] = byte(mc)
				op++
			} else {
				dst[tokenPos] += byte(matchCode)
			}

			anchor = ip
			if ip >= mflimitPlusOne {
				goto emitLastLiterals
			}

			s.table.put(hashPosition(src, ip-2, kind), startIndex+uint32(ip-2-srcStart)) //nolint:gosec // G115

			// test the position right after the match before searching again
			h := hashPosition(src, ip, kind)
			cur = startIndex + uint32(ip-srcStart) //nolint:gosec // G115
			cand = lookupCandidate(s, dictCtx, h, dictMode, startIndex, dictDelta, dictLen, srcStart)
			s.table.put(h, cur)

			usable := true
			if issue == dictSmall && cand.index < prefixIdxLimit {
				usable = false
			}
			if usable && kind != tableU16 && cand.index+distanceMax < cur {
				usable = false
			}
			cb := src
			if cand.inDict {
				cb = dictBuf
			}
			if usable && (cand.pos < 0 || cand.pos+minMatch > len(cb)) {
				usable = false
			}
			if usable && binary.LittleEndian.Uint32(cb[cand.pos:]) == binary.LittleEndian.Uint32(src[ip:]) {
				offset = int(cur - cand.index)
				tokenPos = op
				dst[tokenPos] = 0
				op++
				continue
			}

			ip++
			forwardH = hashPosition(src, ip, kind)
			break
		}
	}

emitLastLiterals:
	lastRun := iend - anchor

	if tail != nil {
		// the coordinator splices this run into the next chunk instead
		tail.anchor = anchor - srcStart
		tail.length = lastRun
		return op, anchor - srcStart
	}

	if directive != notLimited && op+lastRun+1+(lastRun+255-runMask)/255 > olimit {
		if directive == limitedOutput {
			return 0, 0
		}
		// fillOutput: shrink the run so token, extension bytes and literals fit
		lastRun = olimit - op - 1
		lastRun -= (lastRun + 256 - runMask) / 256
	}

	if lastRun >= runMask {
		acc := lastRun - runMask
		dst[op] = runMask << mlBits
		op++
		for ; acc >= 255; acc -= 255 {
			dst[op] = 255
			op++
		}
		dst[op] = byte(acc)
		op++
	} else {
		dst[op] = byte(lastRun << mlBits)
		op++
	}

	copy(dst[op:op+lastRun], src[anchor:anchor+lastRun])
	op += lastRun

	return op, anchor + lastRun - srcStart
}

// matchLen counts equal bytes between a[ai:] and b[bi:], eight at a time with
// a trailing-byte count. ai is bounded by aLimit, bi by len(b).
func matchLen(a []byte, ai int, b []byte, bi, aLimit int) int {
	n := 0

	for ai+8 <= aLimit && bi+8 <= len(b) {
		x := binary.LittleEndian.Uint64(a[ai:]) ^ binary.LittleEndian.Uint64(b[bi:])
		if x != 0 {
			return n + bits.TrailingZeros64(x)>>3
		}
		ai += 8
		bi += 8
		n += 8
	}

	for ai < aLimit && bi < len(b) && a[ai] == b[bi] {
		ai++
		bi++
		n++
	}

	return n
}
