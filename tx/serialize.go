// Package tx implements the transaction model and binary serializer
// (C4), the input selector (C5), and the transaction builder including
// the two-step staking form (C6).
package tx

import (
	"coinwallet/codec"
	"coinwallet/types"
	"coinwallet/walletcrypto"
	"coinwallet/walleterr"
)

// SerializePrefix encodes a TransactionPrefix exactly per §4.4's
// order-sensitive layout:
//
//	version ‖ unlock_time ‖ n_inputs ‖ [tag‖body]×n ‖
//	n_outputs ‖ [amount, 0x02, key]×n ‖ extra_len ‖ extra_bytes
func SerializePrefix(p types.TransactionPrefix) ([]byte, error) {
	var buf []byte
	buf = codec.WriteVarint(buf, p.Version)
	buf = codec.WriteVarint(buf, p.UnlockTime)

	buf = codec.WriteVarint(buf, uint64(len(p.Inputs)))
	for _, in := range p.Inputs {
		var err error
		buf, err = serializeInput(buf, in)
		if err != nil {
			return nil, err
		}
	}

	buf = codec.WriteVarint(buf, uint64(len(p.Outputs)))
	for _, out := range p.Outputs {
		var err error
		buf, err = serializeOutput(buf, out)
		if err != nil {
			return nil, err
		}
	}

	buf = codec.WriteVarint(buf, uint64(len(p.Extra)))
	buf = append(buf, p.Extra...)
	return buf, nil
}

func serializeInput(buf []byte, in types.TxInput) ([]byte, error) {
	switch v := in.(type) {
	case types.BaseInput:
		buf = append(buf, types.TagBaseVariant)
		buf = codec.WriteVarint(buf, v.Height)
		return buf, nil
	case types.KeyInput:
		buf = append(buf, types.TagKeyVariant)
		buf = codec.WriteVarint(buf, v.Amount)
		buf = codec.WriteVarint(buf, uint64(len(v.OutputIndexes)))
		for _, idx := range v.OutputIndexes {
			buf = codec.WriteVarint(buf, uint64(idx))
		}
		buf = codec.WriteFixed(buf, v.TxHash[:])
		buf = codec.WriteVarint(buf, uint64(v.OutIndex))
		return buf, nil
	default:
		return nil, walleterr.New(walleterr.CodecInvalid, "unknown input variant")
	}
}

func serializeOutput(buf []byte, out types.TxOutput) ([]byte, error) {
	buf = codec.WriteVarint(buf, out.Amount)
	switch target := out.Target.(type) {
	case types.KeyOutputTarget:
		buf = append(buf, types.TagKeyVariant)
		buf = codec.WriteFixed(buf, target.Key[:])
		return buf, nil
	default:
		return nil, walleterr.New(walleterr.CodecInvalid, "unknown output target variant")
	}
}

// ParsePrefix is the inverse of SerializePrefix.
func ParsePrefix(buf []byte) (types.TransactionPrefix, int, error) {
	var p types.TransactionPrefix
	off := 0
	var err error

	p.Version, off, err = codec.ReadVarint(buf, off)
	if err != nil {
		return p, off, err
	}
	p.UnlockTime, off, err = codec.ReadVarint(buf, off)
	if err != nil {
		return p, off, err
	}

	nInputs, off2, err := codec.ReadVarint(buf, off)
	if err != nil {
		return p, off, err
	}
	off = off2
	p.Inputs = make([]types.TxInput, 0, nInputs)
	for i := uint64(0); i < nInputs; i++ {
		var in types.TxInput
		in, off, err = parseInput(buf, off)
		if err != nil {
			return p, off, err
		}
		p.Inputs = append(p.Inputs, in)
	}

	nOutputs, off3, err := codec.ReadVarint(buf, off)
	if err != nil {
		return p, off, err
	}
	off = off3
	p.Outputs = make([]types.TxOutput, 0, nOutputs)
	for i := uint64(0); i < nOutputs; i++ {
		var out types.TxOutput
		out, off, err = parseOutput(buf, off)
		if err != nil {
			return p, off, err
		}
		p.Outputs = append(p.Outputs, out)
	}

	extraLen, off4, err := codec.ReadVarint(buf, off)
	if err != nil {
		return p, off, err
	}
	off = off4
	extra, off5, err := codec.ReadFixed(buf, off, int(extraLen))
	if err != nil {
		return p, off, err
	}
	off = off5
	p.Extra = extra

	return p, off, nil
}

func parseInput(buf []byte, off int) (types.TxInput, int, error) {
	if off >= len(buf) {
		return nil, off, walleterr.New(walleterr.CodecInvalid, "truncated input tag")
	}
	tag := buf[off]
	off++
	switch tag {
	case types.TagBaseVariant:
		height, next, err := codec.ReadVarint(buf, off)
		if err != nil {
			return nil, off, err
		}
		return types.BaseInput{Height: height}, next, nil
	case types.TagKeyVariant:
		amount, off2, err := codec.ReadVarint(buf, off)
		if err != nil {
			return nil, off, err
		}
		off = off2
		k, off3, err := codec.ReadVarint(buf, off)
		if err != nil {
			return nil, off, err
		}
		off = off3
		indexes := make([]uint32, 0, k)
		for i := uint64(0); i < k; i++ {
			var v uint64
			v, off, err = codec.ReadVarint(buf, off)
			if err != nil {
				return nil, off, err
			}
			indexes = append(indexes, uint32(v))
		}
		hashBytes, off4, err := codec.ReadFixed(buf, off, 32)
		if err != nil {
			return nil, off, err
		}
		off = off4
		var hash types.Hash
		copy(hash[:], hashBytes)
		outIndex, off5, err := codec.ReadVarint(buf, off)
		if err != nil {
			return nil, off, err
		}
		off = off5
		return types.KeyInput{
			Amount:        amount,
			OutputIndexes: indexes,
			TxHash:        hash,
			OutIndex:      uint32(outIndex),
		}, off, nil
	default:
		return nil, off, walleterr.New(walleterr.CodecInvalid, "unknown input tag in required slot")
	}
}

func parseOutput(buf []byte, off int) (types.TxOutput, int, error) {
	amount, off2, err := codec.ReadVarint(buf, off)
	if err != nil {
		return types.TxOutput{}, off, err
	}
	off = off2
	if off >= len(buf) {
		return types.TxOutput{}, off, walleterr.New(walleterr.CodecInvalid, "truncated output tag")
	}
	tag := buf[off]
	off++
	switch tag {
	case types.TagKeyVariant:
		keyBytes, next, err := codec.ReadFixed(buf, off, 32)
		if err != nil {
			return types.TxOutput{}, off, err
		}
		var key types.PublicKey
		copy(key[:], keyBytes)
		return types.TxOutput{Amount: amount, Target: types.KeyOutputTarget{Key: key}}, next, nil
	default:
		return types.TxOutput{}, off, walleterr.New(walleterr.CodecInvalid, "unknown output tag in required slot")
	}
}

// PrefixHash returns Keccak-256 of the exact serialized prefix bytes —
// the signing message for every per-input signature.
func PrefixHash(p types.TransactionPrefix) (types.Hash, error) {
	raw, err := SerializePrefix(p)
	if err != nil {
		return types.Hash{}, err
	}
	return walletcrypto.Keccak256(raw), nil
}

// SerializeFull encodes a complete transaction: prefix ‖ σ1 ‖ … ‖ σn.
func SerializeFull(t types.Transaction) ([]byte, error) {
	buf, err := SerializePrefix(t.Prefix)
	if err != nil {
		return nil, err
	}
	for _, sig := range t.Signatures {
		buf = append(buf, sig[:]...)
	}
	return buf, nil
}

// TxHash returns Keccak-256 over the full serialized transaction.
func TxHash(t types.Transaction) (types.Hash, error) {
	raw, err := SerializeFull(t)
	if err != nil {
		return types.Hash{}, err
	}
	return walletcrypto.Keccak256(raw), nil
}

// ParseTransaction parses a full transaction: the prefix followed by one
// 64-byte signature per input.
func ParseTransaction(buf []byte) (types.Transaction, error) {
	prefix, off, err := ParsePrefix(buf)
	if err != nil {
		return types.Transaction{}, err
	}
	sigs := make([]types.Signature, 0, len(prefix.Inputs))
	for range prefix.Inputs {
		sigBytes, next, err := codec.ReadFixed(buf, off, 64)
		if err != nil {
			return types.Transaction{}, err
		}
		off = next
		var sig types.Signature
		copy(sig[:], sigBytes)
		sigs = append(sigs, sig)
	}
	return types.Transaction{Prefix: prefix, Signatures: sigs}, nil
}
