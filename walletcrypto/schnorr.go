package walletcrypto

import (
	"coinwallet/types"
	"coinwallet/walleterr"
)

// Sign implements the Schnorr-style scheme of §4.2, bit-exact with the
// reference implementation:
//
//	k  <- random_scalar()
//	R  <- k*G
//	c  <- hash_to_scalar(h || P || R)
//	s  <- k - c*priv  (mod ℓ)
//	return (c, s)
func Sign(rng RandReader, h types.Hash, pub types.PublicKey, priv types.PrivateKey) (types.Signature, error) {
	privScalar, err := validScalar(priv)
	if err != nil {
		return types.Signature{}, err
	}
	if err := ValidatePoint(Point(pub)); err != nil {
		return types.Signature{}, err
	}

	k, err := RandomScalar(rng)
	if err != nil {
		return types.Signature{}, err
	}
	r, err := ScalarMulBase(k)
	if err != nil {
		return types.Signature{}, err
	}
	c := HashToScalar(h[:], pub[:], r[:])
	cs, err := c.Multiply(privScalar)
	if err != nil {
		return types.Signature{}, err
	}
	s, err := k.Subtract(cs)
	if err != nil {
		return types.Signature{}, err
	}
	return types.NewSignature(c, s), nil
}

// Verify implements the matching verification half:
//
//	R' <- s*G + c*P
//	c' <- hash_to_scalar(h || P || R')
//	return c' == c
func Verify(h types.Hash, pub types.PublicKey, sig types.Signature) bool {
	if err := ValidatePoint(Point(pub)); err != nil {
		return false
	}
	c := Scalar(sig.C())
	s := Scalar(sig.S())
	if _, err := c.toLibScalar(); err != nil {
		return false
	}
	if _, err := s.toLibScalar(); err != nil {
		return false
	}

	sg, err := ScalarMulBase(s)
	if err != nil {
		return false
	}
	cp, err := ScalarMul(c, Point(pub))
	if err != nil {
		return false
	}
	rPrime, err := PointAdd(sg, cp)
	if err != nil {
		return false
	}
	cPrime := HashToScalar(h[:], pub[:], rPrime[:])
	return cPrime.Equal(c)
}

// DeriveKeyImage implements I = priv * (hash_to_scalar(pub) * G). This is
// the source's concrete construction, kept for wire compatibility even
// though it differs from Ed25519-native hash-to-curve (§4.2).
func DeriveKeyImage(priv types.PrivateKey, pub types.PublicKey) (types.KeyImage, error) {
	privScalar, err := validScalar(priv)
	if err != nil {
		return types.KeyImage{}, err
	}
	hp := HashToScalar(pub[:])
	hpG, err := ScalarMulBase(hp)
	if err != nil {
		return types.KeyImage{}, err
	}
	img, err := ScalarMul(privScalar, hpG)
	if err != nil {
		return types.KeyImage{}, err
	}
	return types.KeyImage(img), nil
}

func validScalar(priv types.PrivateKey) (Scalar, error) {
	s := Scalar(priv)
	if _, err := s.toLibScalar(); err != nil {
		return Scalar{}, walleterr.Wrap(walleterr.CryptoInvalidEncoding, "invalid private key", err)
	}
	return s, nil
}
