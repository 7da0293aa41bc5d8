package walletcrypto

import (
	"coinwallet/walleterr"

	"filippo.io/edwards25519"
)

// Point is a 32-byte compressed Ed25519 curve element.
type Point [32]byte

func decodePoint(p Point) (*edwards25519.Point, error) {
	lp, err := edwards25519.NewIdentityPoint().SetBytes(p[:])
	if err != nil {
		return nil, walleterr.Wrap(walleterr.CryptoInvalidEncoding, "decode point", err)
	}
	return lp, nil
}

func encodePoint(lp *edwards25519.Point) Point {
	var out Point
	copy(out[:], lp.Bytes())
	return out
}

// ScalarMulBase returns k*G, where G is the standard Ed25519 basepoint.
func ScalarMulBase(k Scalar) (Point, error) {
	lk, err := k.toLibScalar()
	if err != nil {
		return Point{}, err
	}
	lp := edwards25519.NewIdentityPoint().ScalarBaseMult(lk)
	return encodePoint(lp), nil
}

// ScalarMul returns k*P.
func ScalarMul(k Scalar, p Point) (Point, error) {
	lk, err := k.toLibScalar()
	if err != nil {
		return Point{}, err
	}
	lp, err := decodePoint(p)
	if err != nil {
		return Point{}, err
	}
	result := edwards25519.NewIdentityPoint().ScalarMult(lk, lp)
	return encodePoint(result), nil
}

// PointAdd returns a+b.
func PointAdd(a, b Point) (Point, error) {
	la, err := decodePoint(a)
	if err != nil {
		return Point{}, err
	}
	lb, err := decodePoint(b)
	if err != nil {
		return Point{}, err
	}
	result := edwards25519.NewIdentityPoint().Add(la, lb)
	return encodePoint(result), nil
}

// ValidatePoint decodes p purely to confirm it is a canonical point
// encoding, per the §9 requirement that public keys be validated for
// canonicity before use.
func ValidatePoint(p Point) error {
	_, err := decodePoint(p)
	return err
}
