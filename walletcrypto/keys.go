package walletcrypto

import (
	"crypto/rand"

	"coinwallet/types"
)

// KeyPair is a private/public scalar pair with P = s*G.
type KeyPair struct {
	PrivateKey types.PrivateKey
	PublicKey  types.PublicKey
}

// GenerateKeyPair draws a fresh keypair from the OS RNG. This protocol is
// a transparent variant — there is no view/spend stealth-address split,
// address derivation itself is out of scope (§1), and the spend keypair
// returned here is the entire wallet identity the core operates on.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := RandomScalar(rand.Reader)
	if err != nil {
		return nil, err
	}
	pub, err := ScalarMulBase(priv)
	if err != nil {
		return nil, err
	}
	return &KeyPair{
		PrivateKey: types.PrivateKey(priv),
		PublicKey:  types.PublicKey(pub),
	}, nil
}

// KeyPairFromPrivate reconstructs the public half of a keypair from a
// previously generated private scalar.
func KeyPairFromPrivate(priv types.PrivateKey) (*KeyPair, error) {
	pub, err := ScalarMulBase(Scalar(priv))
	if err != nil {
		return nil, err
	}
	return &KeyPair{PrivateKey: priv, PublicKey: types.PublicKey(pub)}, nil
}
