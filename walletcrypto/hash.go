package walletcrypto

import (
	"coinwallet/types"

	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes buf with the Keccak-256 permutation used throughout
// this protocol (both as message digest and as hash-to-scalar input).
// This is the original Keccak padding, not the later NIST SHA3-256
// (sha3.NewLegacyKeccak256 matches the pre-standardization padding the
// reference implementation uses).
func Keccak256(parts ...[]byte) types.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out types.Hash
	copy(out[:], h.Sum(nil))
	return out
}
