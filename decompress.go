// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/lz4

package lz4

import "encoding/binary"

// Decompress decompresses a block from src into a buffer of length
// opts.OutLen. Returns ErrOptionsRequired if opts is nil; ErrEmptyInput if
// src is empty. The whole of src must be one valid block.
func Decompress(src []byte, opts *DecompressOptions) ([]byte, error) {
	if opts == nil || opts.OutLen < 0 {
		return nil, ErrOptionsRequired
	}

	if len(src) == 0 {
		return nil, ErrEmptyInput
	}

	dst := make([]byte, opts.OutLen)
	n, err := decompressGeneric(src, dst, 0, nil, false, true)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// DecompressInto decompresses a block into caller-managed dst and returns
// the number of bytes written. len(dst) is the capacity; the block may
// decode to fewer bytes.
func DecompressInto(src, dst []byte) (int, error) {
	if len(src) == 0 {
		return 0, ErrEmptyInput
	}

	return decompressGeneric(src, dst, 0, nil, false, true)
}

// DecompressPartial decodes at most min(target, len(dst)) bytes and stops.
// Truncated input past the target is accepted; src may hold a block whose
// full decoded size exceeds the target.
func DecompressPartial(src, dst []byte, target int) (int, error) {
	if len(src) == 0 {
		return 0, ErrEmptyInput
	}
	if target < 0 {
		target = 0
	}

	if target < len(dst) {
		dst = dst[:target]
	}

	return decompressGeneric(src, dst, 0, nil, true, true)
}

// DecompressWithDict decompresses a block produced against a dictionary.
// When dict directly precedes dst in the same backing array the prefix
// addressing mode is used; otherwise matches below the block start read the
// trailing bytes of dict.
func DecompressWithDict(src, dst, dict []byte) (int, error) {
	if len(src) == 0 {
		return 0, ErrEmptyInput
	}
	if len(dict) == 0 {
		return decompressGeneric(src, dst, 0, nil, false, true)
	}

	if contiguous(dict, dst) && cap(dict) >= len(dict)+len(dst) {
		full := dict[: len(dict)+len(dst) : len(dict)+len(dst)]
		return decompressGeneric(src, full, len(dict), nil, false, true)
	}

	return decompressGeneric(src, dst, 0, dict, false, true)
}

// DecompressFast decodes a block whose exact decompressed size is len(dst),
// terminating on output rather than input, and returns the number of input
// bytes consumed. Intended for trusted input: malformed data still returns
// an error rather than corrupting memory, but the validation is looser than
// DecompressInto.
func DecompressFast(src, dst []byte) (int, error) {
	if len(src) == 0 {
		return 0, ErrEmptyInput
	}

	return decodeOutputBounded(src, dst, 0, nil)
}

// contiguous reports whether b starts exactly where a ends in the same
// backing array.
func contiguous(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 || cap(a) < len(a)+1 {
		return false
	}

	ext := a[: len(a)+1 : len(a)+1]
	return &ext[len(a)] == &b[0]
}

// varLenStatus reports how a base-255 length extension parse ended.
type varLenStatus int

const (
	varLenOK varLenStatus = iota
	// varLenInitial: the extension could not even start.
	varLenInitial
	// varLenLoop: the parse hit the guard position; the accumulated value is
	// returned and the caller's copy bounds decide whether that is fatal.
	varLenLoop
)

// readVarLen accumulates a base-255 length extension starting at *ip.
// lencheck is the first index at which continuing would leave no room for
// the rest of the sequence.
func readVarLen(src []byte, ip *int, lencheck int, initialCheck bool) (int, varLenStatus) {
	i := *ip
	length := 0

	if initialCheck && i >= lencheck {
		return 0, varLenInitial
	}

	for {
		if i >= len(src) {
			*ip = i
			return length, varLenLoop
		}

		s := src[i]
		i++
		length += int(s)

		if i >= lencheck || length > maxInputSize {
			*ip = i
			return length, varLenLoop
		}

		if s != 255 {
			*ip = i
			return length, varLenOK
		}
	}
}

// decompressGeneric is the bounds-checked decoder behind every entry point.
// dst[:outStart] is in-buffer history (prefix); matches below it address the
// trailing bytes of dict. partial stops cleanly once dst is full. lastChunk
// is false only for the non-final chunks of a stitched parallel stream,
// which are allowed to end right after a match. Returns bytes written past
// outStart.
func decompressGeneric(src, dst []byte, outStart int, dict []byte, partial, lastChunk bool) (int, error) {
	ilen := len(src)
	oend := len(dst)
	ip := 0
	op := outStart

	if ilen == 0 {
		return 0, corruptAt(0)
	}

	if oend-outStart == 0 {
		if partial {
			return 0, nil
		}
		if ilen == 1 && src[0] == 0 {
			return 0, nil
		}
		return 0, corruptAt(0)
	}

	// offsets cannot underrun a full-window dictionary
	checkOffset := len(dict) < dictWindowSize

	matchLencheck := ilen - lastLiterals + 1
	if !lastChunk {
		matchLencheck = ilen + 1
	}

	// Fast loop: wild (strided, bounded) copies while the output margin
	// holds. Any boundary condition rewinds to the sequence start and leaves
	// the rest to the safe loop.
	for oend-op >= fastLoopSafeDistance {
		if ip >= ilen {
			return 0, corruptAt(ip)
		}

		seqIP, seqOP := ip, op
		token := src[ip]
		ip++
		ll := int(token >> 4)

		if ll == runMask {
			v, st := readVarLen(src, &ip, ilen-runMask, true)
			if st == varLenInitial {
				return 0, corruptAt(ip)
			}
			ll += v

			cpy := op + ll
			if cpy > oend-32 || ip+ll > ilen-32 {
				ip, op = seqIP, seqOP
				break
			}
			copy(dst[op:cpy], src[ip:ip+ll])
			ip += ll
			op = cpy
		} else {
			if ip+16+1 > ilen {
				ip, op = seqIP, seqOP
				break
			}
			// literal run <= 14: one wild 16-byte copy, margin guaranteed
			copy(dst[op:op+16], src[ip:ip+16])
			ip += ll
			op += ll
		}

		off := int(binary.LittleEndian.Uint16(src[ip:]))
		ip += 2
		mp := op - off
		ml := int(token & mlMask)

		if off == 0 || (checkOffset && mp+len(dict) < 0) {
			return 0, corruptAt(ip)
		}

		if ml == mlMask {
			v, st := readVarLen(src, &ip, matchLencheck, false)
			if st != varLenOK {
				return 0, corruptAt(ip)
			}
			ml += v
		}
		ml += minMatch

		if op+ml >= oend-fastLoopSafeDistance || mp < 0 {
			// near the end, or the match starts in the dictionary
			ip, op = seqIP, seqOP
			break
		}

		if off >= wildCopyLength {
			wildCopyBackRef(dst, op, off, ml)
		} else {
			copyBackRef(dst, op, off, ml)
		}
		op += ml
	}

	// Safe loop: exact copies, full validation.
	for {
		if ip >= ilen {
			return 0, corruptAt(ip)
		}

		token := src[ip]
		ip++
		ll := int(token >> 4)

		if ll == runMask {
			v, st := readVarLen(src, &ip, ilen-runMask, true)
			if st == varLenInitial {
				return 0, corruptAt(ip)
			}
			ll += v
			// a run cut off inside its own length extension has no decodable
			// prefix: the remaining bytes are length field, not data
			if st == varLenLoop && (ll > maxInputSize || src[ip-1] == 255) {
				return 0, corruptAt(ip)
			}
		}

		cpy := op + ll
		if cpy > oend-mfLimit || ip+ll > ilen-(2+1+lastLiterals) {
			// terminal literal run, truncated input, or malformed stream
			if partial {
				if ip+ll > ilen {
					ll = ilen - ip
					cpy = op + ll
				}
				if cpy > oend {
					ll = oend - op
					cpy = oend
				}
			} else {
				if ip+ll > ilen {
					return 0, corruptAt(ip)
				}
				if lastChunk && ip+ll != ilen {
					return 0, corruptAt(ip)
				}
				if cpy > oend {
					return 0, corruptAt(ip)
				}
			}

			copy(dst[op:cpy], src[ip:ip+ll])
			ip += ll
			op = cpy

			if (lastChunk && !partial) || cpy == oend || (lastChunk && ip >= ilen-2) {
				break
			}
			// mid chunk (or partial with room): a match follows
		} else {
			copy(dst[op:cpy], src[ip:ip+ll])
			ip += ll
			op = cpy
		}

		if ip+2 > ilen {
			return 0, corruptAt(ip)
		}
		off := int(binary.LittleEndian.Uint16(src[ip:]))
		ip += 2
		mp := op - off
		ml := int(token & mlMask)

		if ml == mlMask {
			v, st := readVarLen(src, &ip, matchLencheck, false)
			if st != varLenOK {
				return 0, corruptAt(ip)
			}
			ml += v
		}
		ml += minMatch

		if off == 0 || (checkOffset && mp+len(dict) < 0) {
			return 0, corruptAt(ip)
		}

		if mp < 0 {
			// match starts in the external dictionary
			if op+ml > oend-lastLiterals {
				if !partial {
					return 0, corruptAt(ip)
				}
				ml = min(ml, oend-op)
			}

			dictAvail := -mp
			if ml <= dictAvail {
				start := len(dict) - dictAvail
				copy(dst[op:op+ml], dict[start:start+ml])
				op += ml
			} else {
				// split copy: dictionary tail, then wrap to the output start
				copy(dst[op:op+dictAvail], dict[len(dict)-dictAvail:])
				op += dictAvail
				rest := ml - dictAvail
				if rest > op {
					for i := 0; i < rest; i++ {
						dst[op+i] = dst[i]
					}
				} else {
					copy(dst[op:op+rest], dst[:rest])
				}
				op += rest
			}

			if !lastChunk && (op == oend || ip >= ilen) {
				break
			}
			continue
		}

		cpy = op + ml
		if partial && cpy > oend-matchSafeguard {
			mlen := min(ml, oend-op)
			copyBackRef(dst, op, off, mlen)
			op += mlen
			if op == oend {
				break
			}
			continue
		}

		if lastChunk {
			if cpy > oend-lastLiterals {
				return 0, corruptAt(ip)
			}
		} else if cpy > oend {
			return 0, corruptAt(ip)
		}

		copyBackRef(dst, op, off, ml)
		op = cpy

		if !lastChunk && (cpy == oend || ip >= ilen) {
			break
		}
	}

	return op - outStart, nil
}

// decodeOutputBounded decodes until dst is full (exact size known, trusted
// input) and returns the number of input bytes consumed. The block must end
// with its terminal literal run exactly at the output end.
func decodeOutputBounded(src, dst []byte, outStart int, dict []byte) (int, error) {
	ilen := len(src)
	oend := len(dst)
	ip := 0
	op := outStart

	if oend-outStart == 0 {
		if src[0] == 0 {
			return 1, nil
		}
		return 0, corruptAt(0)
	}

	for {
		if ip >= ilen {
			return 0, corruptAt(ip)
		}

		token := src[ip]
		ip++
		ll := int(token >> 4)

		if ll == runMask {
			v, st := readVarLen(src, &ip, ilen, false)
			if st != varLenOK {
				return 0, corruptAt(ip)
			}
			ll += v
		}

		cpy := op + ll
		if ip+ll > ilen {
			return 0, corruptAt(ip)
		}
		if cpy > oend-wildCopyLength {
			// only the terminal run may reach this close to the end
			if cpy != oend {
				return 0, corruptAt(ip)
			}
			copy(dst[op:cpy], src[ip:ip+ll])
			ip += ll
			return ip, nil
		}
		copy(dst[op:cpy], src[ip:ip+ll])
		ip += ll
		op = cpy

		if ip+2 > ilen {
			return 0, corruptAt(ip)
		}
		off := int(binary.LittleEndian.Uint16(src[ip:]))
		ip += 2
		mp := op - off
		ml := int(token & mlMask)

		if ml == mlMask {
			v, st := readVarLen(src, &ip, ilen, false)
			if st != varLenOK {
				return 0, corruptAt(ip)
			}
			ml += v
		}
		ml += minMatch

		if off == 0 || mp+len(dict) < 0 || op+ml > oend {
			return 0, corruptAt(ip)
		}

		if mp < 0 {
			dictAvail := -mp
			if ml <= dictAvail {
				start := len(dict) - dictAvail
				copy(dst[op:op+ml], dict[start:start+ml])
				op += ml
			} else {
				copy(dst[op:op+dictAvail], dict[len(dict)-dictAvail:])
				op += dictAvail
				rest := ml - dictAvail
				if rest > op {
					for i := 0; i < rest; i++ {
						dst[op+i] = dst[i]
					}
				} else {
					copy(dst[op:op+rest], dst[:rest])
				}
				op += rest
			}
			continue
		}

		copyBackRef(dst, op, off, ml)
		op += ml
	}
}
