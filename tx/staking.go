package tx

import (
	"coinwallet/codec"
	"coinwallet/types"
	"coinwallet/walletcrypto"
	"coinwallet/walleterr"
)

// StakePreparationParams assembles the first step of staking (§4.6): an
// ordinary self-transfer whose outputs are, in order, the stake amount,
// the staking transaction's own fee, and whatever change remains.
type StakePreparationParams struct {
	Inputs      []*types.WalletOutput
	OwnerPub    types.PublicKey
	OwnerPriv   types.PrivateKey
	StakeAmount uint64
	StakingFee  uint64
	NetworkFee  uint64
}

// BuildStakePreparation builds the preparation transaction. It is a plain
// transfer to the staker's own key with two fixed destinations ahead of
// whatever change BuildTransfer appends, so the three outputs land in the
// required [stake_amount, staking_fee, change] order.
func BuildStakePreparation(rng walletcrypto.RandReader, p StakePreparationParams) (types.Transaction, error) {
	return BuildTransfer(rng, TransferParams{
		Inputs:    p.Inputs,
		OwnerPub:  p.OwnerPub,
		OwnerPriv: p.OwnerPriv,
		Destinations: []Destination{
			{Key: p.OwnerPub, Amount: p.StakeAmount},
			{Key: p.OwnerPub, Amount: p.StakingFee},
		},
		Fee: p.NetworkFee,
	})
}

// StakingParams assembles the second step of staking (§4.6): the actual
// staking transaction consuming the two outputs produced by the
// preparation transaction.
type StakingParams struct {
	AmountInput      *types.WalletOutput
	FeeInput         *types.WalletOutput
	OwnerPub         types.PublicKey
	OwnerPriv        types.PrivateKey
	LockDays         uint64
	CurrentHeight    uint64
	BlockTimeSeconds uint64
}

// BuildStakingTransaction consumes exactly the amount and fee outputs
// from a preparation transaction and emits a single output of
// AmountInput.Amount back to the staker, carrying a TX_PUBKEY extra field
// and a STAKING extra field whose inner signature covers the fixed-width
// little-endian encoding of (amount, lock_days, unlock_time) — distinct
// from the varint framing used to store that same record in the extra
// blob (§6.3). Both the inner staking signature and the outer per-input
// signatures are self-verified before the transaction is returned.
func BuildStakingTransaction(rng walletcrypto.RandReader, p StakingParams) (types.Transaction, error) {
	if p.BlockTimeSeconds == 0 {
		return types.Transaction{}, walleterr.New(walleterr.CodecInvalid, "block time must be positive")
	}

	stakeAmount := p.AmountInput.Amount
	unlockTime := p.CurrentHeight + (p.LockDays*86400)/p.BlockTimeSeconds

	innerMsg := append(append([]byte{}, codec.PutUint64LE(stakeAmount)...), codec.PutUint32LE(uint32(p.LockDays))...)
	innerMsg = append(innerMsg, codec.PutUint64LE(unlockTime)...)
	innerHash := walletcrypto.Keccak256(innerMsg)

	innerSig, err := walletcrypto.Sign(rng, innerHash, p.OwnerPub, p.OwnerPriv)
	if err != nil {
		return types.Transaction{}, err
	}
	if !walletcrypto.Verify(innerHash, p.OwnerPub, innerSig) {
		return types.Transaction{}, walleterr.New(walleterr.CryptoInvalidEncoding, "self-verification of staking signature failed")
	}

	record := types.StakingRecord{
		Amount:     stakeAmount,
		UnlockTime: unlockTime,
		LockDays:   p.LockDays,
		Signature:  innerSig,
	}

	txPriv, err := walletcrypto.RandomScalar(rng)
	if err != nil {
		return types.Transaction{}, err
	}
	txPub, err := walletcrypto.ScalarMulBase(txPriv)
	if err != nil {
		return types.Transaction{}, err
	}

	extra := codec.EncodeExtra([]types.ExtraField{
		codec.TxPubKeyField(types.PublicKey(txPub)),
		codec.StakingField(record),
	})

	inputs := []types.TxInput{
		types.KeyInput{
			Amount:        p.AmountInput.Amount,
			OutputIndexes: []uint32{p.AmountInput.OutIndex},
			TxHash:        p.AmountInput.TxHash,
			OutIndex:      p.AmountInput.OutIndex,
		},
		types.KeyInput{
			Amount:        p.FeeInput.Amount,
			OutputIndexes: []uint32{p.FeeInput.OutIndex},
			TxHash:        p.FeeInput.TxHash,
			OutIndex:      p.FeeInput.OutIndex,
		},
	}
	outputs := []types.TxOutput{
		{Amount: stakeAmount, Target: types.KeyOutputTarget{Key: p.OwnerPub}},
	}

	prefix := types.TransactionPrefix{
		Version:    DefaultVersion,
		UnlockTime: unlockTime,
		Inputs:     inputs,
		Outputs:    outputs,
		Extra:      extra,
	}

	return signPrefix(rng, prefix, p.OwnerPub, p.OwnerPriv, len(inputs))
}
