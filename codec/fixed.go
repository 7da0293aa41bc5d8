package codec

import "coinwallet/walleterr"

// WriteFixed appends a raw fixed-width field (a hash, key, or signature)
// verbatim — these are not varint-encoded.
func WriteFixed(buf []byte, b []byte) []byte {
	return append(buf, b...)
}

// ReadFixed reads n raw bytes from buf at offset off.
func ReadFixed(buf []byte, off int, n int) ([]byte, int, error) {
	if off+n > len(buf) {
		return nil, off, walleterr.New(walleterr.CodecInvalid, "truncated fixed-width field")
	}
	out := make([]byte, n)
	copy(out, buf[off:off+n])
	return out, off + n, nil
}

// PutUint64LE writes n as 8 little-endian bytes, for the fixed-width
// quantities outside transaction encoding (e.g. the staking signed
// message body, §6.3).
func PutUint64LE(n uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(n >> (8 * uint(i)))
	}
	return b
}

// PutUint32LE writes n as 4 little-endian bytes.
func PutUint32LE(n uint32) []byte {
	b := make([]byte, 4)
	for i := 0; i < 4; i++ {
		b[i] = byte(n >> (8 * uint(i)))
	}
	return b
}

// Uint64LE reads 8 little-endian bytes.
func Uint64LE(b []byte) uint64 {
	var n uint64
	for i := 0; i < 8; i++ {
		n |= uint64(b[i]) << (8 * uint(i))
	}
	return n
}

// Uint32LE reads 4 little-endian bytes.
func Uint32LE(b []byte) uint32 {
	var n uint32
	for i := 0; i < 4; i++ {
		n |= uint32(b[i]) << (8 * uint(i))
	}
	return n
}
