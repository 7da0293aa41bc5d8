package wallet

import (
	"context"

	"coinwallet/tx"
	"coinwallet/types"
)

// CanFinalizeStake reports whether the current UTXO set carries, from a
// single preparation transaction, the exact (stakeAmount, stakingFee)
// output pair §4.5 requires to finalize a stake.
func (w *Wallet) CanFinalizeStake(stakeAmount, stakingFee uint64) bool {
	return tx.HasPreciseStakingOutputs(w.tracker.SpendableOutputs(nowUnix()), stakeAmount, stakingFee)
}

// PrepareStake builds, signs, and submits the staking preparation
// transaction: an ordinary self-transfer producing the
// [stakeAmount, stakingFee, change] outputs that FinalizeStake will later
// consume.
func (w *Wallet) PrepareStake(ctx context.Context, stakeAmount, stakingFee, networkFee uint64) (tx.SubmittedTransfer, error) {
	spendable := w.tracker.SpendableOutputs(nowUnix())
	sel, err := tx.SelectForTransfer(spendable, stakeAmount+stakingFee, networkFee)
	if err != nil {
		return tx.SubmittedTransfer{}, err
	}

	built, err := tx.BuildStakePreparation(w.rng, tx.StakePreparationParams{
		Inputs:      sel.Inputs,
		OwnerPub:    w.keys.PublicKey,
		OwnerPriv:   w.keys.PrivateKey,
		StakeAmount: stakeAmount,
		StakingFee:  stakingFee,
		NetworkFee:  networkFee,
	})
	if err != nil {
		return tx.SubmittedTransfer{}, err
	}

	return w.submit(ctx, built)
}

// FinalizeStake consumes the two outputs produced by a confirmed,
// matured preparation transaction and builds the staking transaction
// that locks stakeAmount for lockDays.
func (w *Wallet) FinalizeStake(ctx context.Context, prepTxHash types.Hash, stakeAmount, stakingFee, lockDays uint64) (tx.SubmittedTransfer, error) {
	spendable := w.tracker.SpendableOutputs(nowUnix())
	pair, err := tx.PickStakingInputs(spendable, stakeAmount, stakingFee, prepTxHash)
	if err != nil {
		return tx.SubmittedTransfer{}, err
	}

	built, err := tx.BuildStakingTransaction(w.rng, tx.StakingParams{
		AmountInput:      pair[0],
		FeeInput:         pair[1],
		OwnerPub:         w.keys.PublicKey,
		OwnerPriv:        w.keys.PrivateKey,
		LockDays:         lockDays,
		CurrentHeight:    w.tracker.CurrentHeight(),
		BlockTimeSeconds: w.blockTimeSeconds,
	})
	if err != nil {
		return tx.SubmittedTransfer{}, err
	}

	return w.submit(ctx, built)
}
