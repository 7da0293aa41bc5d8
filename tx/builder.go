package tx

import (
	"coinwallet/codec"
	"coinwallet/types"
	"coinwallet/walletcrypto"
	"coinwallet/walleterr"
)

// DefaultVersion is the transaction prefix version emitted by this
// builder; the wire format has no other version in active use.
const DefaultVersion uint64 = 1

// Destination is one transfer target: a cleartext recipient spend key
// (this is a transparent variant — see §1) and an amount.
type Destination struct {
	Key    types.PublicKey
	Amount uint64
}

// TransferParams assembles a normal transfer (§4.6).
type TransferParams struct {
	Inputs       []*types.WalletOutput
	OwnerPub     types.PublicKey
	OwnerPriv    types.PrivateKey
	Destinations []Destination
	Fee          uint64
	UnlockTime   uint64 // 0 unless overridden
}

// BuildTransfer assembles and signs a normal transfer transaction per
// §4.6: a fresh ephemeral tx key, one input per selected UTXO, one output
// per destination plus an optional change output back to the sender, and
// one outer signature per input over the prefix hash. Every signature is
// self-verified immediately after generation; any failure is fatal.
func BuildTransfer(rng walletcrypto.RandReader, p TransferParams) (types.Transaction, error) {
	txPriv, err := walletcrypto.RandomScalar(rng)
	if err != nil {
		return types.Transaction{}, err
	}
	txPub, err := walletcrypto.ScalarMulBase(txPriv)
	if err != nil {
		return types.Transaction{}, err
	}

	var total uint64
	for _, in := range p.Inputs {
		total += in.Amount
	}

	inputs := make([]types.TxInput, 0, len(p.Inputs))
	for _, in := range p.Inputs {
		inputs = append(inputs, types.KeyInput{
			Amount:        in.Amount,
			OutputIndexes: []uint32{in.OutIndex},
			TxHash:        in.TxHash,
			OutIndex:      in.OutIndex,
		})
	}

	var targetSum uint64
	outputs := make([]types.TxOutput, 0, len(p.Destinations)+1)
	for _, d := range p.Destinations {
		outputs = append(outputs, types.TxOutput{
			Amount: d.Amount,
			Target: types.KeyOutputTarget{Key: d.Key},
		})
		targetSum += d.Amount
	}

	need := targetSum + p.Fee
	if total < need {
		return types.Transaction{}, walleterr.NewInsufficientFunds(need, total)
	}
	if change := total - need; change > 0 {
		outputs = append(outputs, types.TxOutput{
			Amount: change,
			Target: types.KeyOutputTarget{Key: p.OwnerPub},
		})
	}

	extra := codec.EncodeExtra([]types.ExtraField{codec.TxPubKeyField(types.PublicKey(txPub))})

	prefix := types.TransactionPrefix{
		Version:    DefaultVersion,
		UnlockTime: p.UnlockTime,
		Inputs:     inputs,
		Outputs:    outputs,
		Extra:      extra,
	}

	return signPrefix(rng, prefix, p.OwnerPub, p.OwnerPriv, len(inputs))
}

// signPrefix hashes prefix, produces one signature per input over that
// hash, and self-verifies each before returning. A verification failure
// is always fatal (§4.6/§7): no partial transaction is returned.
func signPrefix(rng walletcrypto.RandReader, prefix types.TransactionPrefix, pub types.PublicKey, priv types.PrivateKey, nInputs int) (types.Transaction, error) {
	h, err := PrefixHash(prefix)
	if err != nil {
		return types.Transaction{}, err
	}

	sigs := make([]types.Signature, 0, nInputs)
	for i := 0; i < nInputs; i++ {
		sig, err := walletcrypto.Sign(rng, h, pub, priv)
		if err != nil {
			return types.Transaction{}, err
		}
		if !walletcrypto.Verify(h, pub, sig) {
			return types.Transaction{}, walleterr.New(walleterr.CryptoInvalidEncoding, "self-verification of generated signature failed")
		}
		sigs = append(sigs, sig)
	}

	return types.Transaction{Prefix: prefix, Signatures: sigs}, nil
}
