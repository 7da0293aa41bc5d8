package tx

import (
	"sort"

	"coinwallet/types"
	"coinwallet/walleterr"
)

// Selection is the result of picking inputs for a normal transfer: the
// chosen outputs, their total, and the resulting change.
type Selection struct {
	Inputs []*types.WalletOutput
	Total  uint64
	Change uint64
}

// SelectForTransfer implements the greedy largest-first selection of
// §4.5: sort spendable outputs by amount descending and walk in that
// order until the running sum covers target+fee. Ties are broken by the
// caller's input order (sort.SliceStable), which keeps selection
// deterministic for a given spendable set.
func SelectForTransfer(spendable []*types.WalletOutput, target, fee uint64) (Selection, error) {
	ordered := make([]*types.WalletOutput, len(spendable))
	copy(ordered, spendable)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Amount > ordered[j].Amount
	})

	need := target + fee
	var sum uint64
	var chosen []*types.WalletOutput
	for _, o := range ordered {
		if sum >= need {
			break
		}
		chosen = append(chosen, o)
		sum += o.Amount
	}

	if sum < need {
		var available uint64
		for _, o := range spendable {
			available += o.Amount
		}
		return Selection{}, walleterr.NewInsufficientFunds(need, available)
	}

	return Selection{Inputs: chosen, Total: sum, Change: sum - need}, nil
}

// HasPreciseStakingOutputs reports whether the spendable set contains,
// from a single preparation transaction, one output of exactly
// stakeAmount and a distinct one of exactly fee (§4.5).
func HasPreciseStakingOutputs(spendable []*types.WalletOutput, stakeAmount, fee uint64) bool {
	byTx := groupByTx(spendable)
	for _, outs := range byTx {
		if findPreciseStakingPair(outs, stakeAmount, fee) != nil {
			return true
		}
	}
	return false
}

// PickStakingInputs returns exactly the two outputs — the stakeAmount one
// and the fee one — produced by prepTxHash, in the fixed order
// [amount_input, fee_input]. It fails with NoPreciseStakingOutputs if
// either is missing.
func PickStakingInputs(spendable []*types.WalletOutput, stakeAmount, fee uint64, prepTxHash types.Hash) ([]*types.WalletOutput, error) {
	var fromTx []*types.WalletOutput
	for _, o := range spendable {
		if o.TxHash == prepTxHash {
			fromTx = append(fromTx, o)
		}
	}
	pair := findPreciseStakingPair(fromTx, stakeAmount, fee)
	if pair == nil {
		return nil, walleterr.New(walleterr.NoPreciseStakingOutputs, "preparation tx does not carry the exact (amount, fee) pair")
	}
	return pair, nil
}

// findPreciseStakingPair looks within one transaction's outputs for a
// distinct amount/fee pair, returning [amountOutput, feeOutput] or nil.
func findPreciseStakingPair(outs []*types.WalletOutput, stakeAmount, fee uint64) []*types.WalletOutput {
	var amountOut, feeOut *types.WalletOutput
	for _, o := range outs {
		if o.Amount == stakeAmount && amountOut == nil {
			amountOut = o
			continue
		}
		if o.Amount == fee && feeOut == nil && o != amountOut {
			feeOut = o
		}
	}
	if amountOut == nil || feeOut == nil || amountOut.OutIndex == feeOut.OutIndex {
		return nil
	}
	return []*types.WalletOutput{amountOut, feeOut}
}

func groupByTx(outs []*types.WalletOutput) map[types.Hash][]*types.WalletOutput {
	byTx := make(map[types.Hash][]*types.WalletOutput)
	for _, o := range outs {
		byTx[o.TxHash] = append(byTx[o.TxHash], o)
	}
	return byTx
}
