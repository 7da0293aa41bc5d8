// Package walletcrypto implements the scalar/point arithmetic (C1) and
// Schnorr-style signature primitive (C2) of §4.1/§4.2, built on
// filippo.io/edwards25519 for bit-exact Ed25519 group operations — the
// same low-level curve library the Go standard library's own
// crypto/ed25519 vendors internally.
package walletcrypto

import (
	"coinwallet/types"
	"coinwallet/walleterr"

	"filippo.io/edwards25519"
)

// Every Scalar operation below works modulo ℓ = 2^252 +
// 27742317777372353535851937790883648493, the Ed25519 group order
// referenced throughout §4.1; edwards25519 carries ℓ internally.

// Scalar is a reduced, canonical scalar mod ℓ.
type Scalar [32]byte

// reduceWide reduces an arbitrary little-endian integer (32 or 64 bytes)
// modulo ℓ by zero-extending to 64 bytes and running the library's wide
// reduction. This is reduce32/reduce64 from §4.1 unified into one path:
// reduce32 is reduceWide on a 32-byte input, logically zero-extended.
func reduceWide(b []byte) (Scalar, error) {
	wide := make([]byte, 64)
	copy(wide, b)
	s, err := edwards25519.NewScalar().SetUniformBytes(wide)
	if err != nil {
		return Scalar{}, walleterr.Wrap(walleterr.CryptoInvalidEncoding, "reduce scalar", err)
	}
	var out Scalar
	copy(out[:], s.Bytes())
	return out, nil
}

// Reduce32 implements reduce32(bytes[0..32]): interpret b little-endian,
// return the value mod ℓ as a canonical 32-byte scalar.
func Reduce32(b [32]byte) Scalar {
	s, err := reduceWide(b[:])
	if err != nil {
		// SetUniformBytes on a zero-extended 32-byte input cannot fail;
		// the error path exists only for malformed 64-byte callers.
		panic(err)
	}
	return s
}

// Reduce64 implements reduce64(bytes[0..64]): interpret b little-endian,
// return the value mod ℓ.
func Reduce64(b [64]byte) Scalar {
	s, err := reduceWide(b[:])
	if err != nil {
		panic(err)
	}
	return s
}

// RandomScalar draws 64 cryptographically secure bytes from rng and
// reduces them mod ℓ, per §4.1. rng MUST be backed by an OS-level source
// in production; tests may inject a deterministic stream.
func RandomScalar(rng RandReader) (Scalar, error) {
	var buf [64]byte
	if _, err := readFull(rng, buf[:]); err != nil {
		return Scalar{}, walleterr.Wrap(walleterr.CryptoInvalidEncoding, "draw random scalar", err)
	}
	return Reduce64(buf), nil
}

// HashToScalar implements hash_to_scalar(buf): reduce32(keccak256(buf))
// with the 32-byte digest logically zero-extended to 64 bytes before
// reduction. The reference implementation zero-pads the high half; this
// must match bit-exactly since it is part of the wire protocol.
func HashToScalar(buf ...[]byte) Scalar {
	digest := Keccak256(buf...)
	return Reduce32(digest)
}

func (s Scalar) toLibScalar() (*edwards25519.Scalar, error) {
	ls, err := edwards25519.NewScalar().SetCanonicalBytes(s[:])
	if err != nil {
		return nil, walleterr.Wrap(walleterr.CryptoInvalidEncoding, "non-canonical scalar", err)
	}
	return ls, nil
}

// Add returns a+b mod ℓ.
func (a Scalar) Add(b Scalar) (Scalar, error) {
	la, err := a.toLibScalar()
	if err != nil {
		return Scalar{}, err
	}
	lb, err := b.toLibScalar()
	if err != nil {
		return Scalar{}, err
	}
	var out Scalar
	copy(out[:], edwards25519.NewScalar().Add(la, lb).Bytes())
	return out, nil
}

// Subtract returns a-b mod ℓ.
func (a Scalar) Subtract(b Scalar) (Scalar, error) {
	la, err := a.toLibScalar()
	if err != nil {
		return Scalar{}, err
	}
	lb, err := b.toLibScalar()
	if err != nil {
		return Scalar{}, err
	}
	var out Scalar
	copy(out[:], edwards25519.NewScalar().Subtract(la, lb).Bytes())
	return out, nil
}

// Multiply returns a*b mod ℓ.
func (a Scalar) Multiply(b Scalar) (Scalar, error) {
	la, err := a.toLibScalar()
	if err != nil {
		return Scalar{}, err
	}
	lb, err := b.toLibScalar()
	if err != nil {
		return Scalar{}, err
	}
	var out Scalar
	copy(out[:], edwards25519.NewScalar().Multiply(la, lb).Bytes())
	return out, nil
}

// Equal reports whether two canonical scalars are identical.
func (a Scalar) Equal(b Scalar) bool { return a == b }
