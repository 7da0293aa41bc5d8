// Package codec implements the binary wire encoding shared by every
// transaction shape: base-128 varints, fixed-width fields, and the
// extra-field TLV sequence (§4.3/C3). The variant tag bytes of the
// input/output union are defined in types and written and read by tx.
package codec

import (
	"coinwallet/walleterr"
)

// MaxVarintLen bounds the total length in bytes of a varint; anything
// longer is rejected rather than read (§4.3).
const MaxVarintLen = 10

// WriteVarint appends the canonical (shortest) base-128 little-endian
// encoding of n to buf and returns the result.
//
// This is the single varint implementation all call sites route through.
// An earlier, buggy variant of this routine (ported verbatim from the
// reference staking path) looped while remaining >= 0x80 instead of
// remaining > 0 after emitting the first byte, which under-counts the
// continuation for values that are an exact multiple of 0x80 below the
// threshold — that form is never used here.
func WriteVarint(buf []byte, n uint64) []byte {
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n > 0 {
			buf = append(buf, b|0x80)
			continue
		}
		buf = append(buf, b)
		return buf
	}
}

// ReadVarint decodes a canonical varint from buf starting at offset off,
// returning the value and the offset just past it. It rejects encodings
// longer than MaxVarintLen bytes and non-canonical encodings (a trailing
// zero continuation group that a minimal encoding would have omitted).
func ReadVarint(buf []byte, off int) (uint64, int, error) {
	var result uint64
	shift := uint(0)
	start := off
	for {
		if off >= len(buf) {
			return 0, off, walleterr.New(walleterr.CodecInvalid, "truncated varint")
		}
		if off-start >= MaxVarintLen {
			return 0, off, walleterr.New(walleterr.CodecInvalid, "varint too long")
		}
		b := buf[off]
		off++
		chunk := uint64(b & 0x7f)
		if shift >= 64 || (shift == 63 && chunk > 1) {
			return 0, off, walleterr.New(walleterr.CodecInvalid, "varint overflow")
		}
		result |= chunk << shift
		if b&0x80 == 0 {
			if b == 0 && off-start > 1 {
				return 0, off, walleterr.New(walleterr.CodecInvalid, "non-canonical varint: trailing zero group")
			}
			return result, off, nil
		}
		shift += 7
	}
}

// VarintSize returns the number of bytes WriteVarint would emit for n.
func VarintSize(n uint64) int {
	size := 1
	for n >= 0x80 {
		n >>= 7
		size++
	}
	return size
}
