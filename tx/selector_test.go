package tx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"coinwallet/types"
)

func outputAt(amount uint64, outIndex uint32, txHash byte) *types.WalletOutput {
	var h types.Hash
	h[0] = txHash
	return &types.WalletOutput{Amount: amount, OutIndex: outIndex, TxHash: h}
}

func TestSelectForTransferGreedyLargestFirst(t *testing.T) {
	spendable := []*types.WalletOutput{
		outputAt(100, 0, 1),
		outputAt(500, 1, 1),
		outputAt(300, 2, 1),
	}
	sel, err := SelectForTransfer(spendable, 400, 10)
	require.NoError(t, err)
	require.Len(t, sel.Inputs, 1)
	require.Equal(t, uint64(500), sel.Inputs[0].Amount)
	require.Equal(t, uint64(500), sel.Total)
	require.Equal(t, uint64(90), sel.Change)
}

func TestSelectForTransferAccumulatesAcrossOutputs(t *testing.T) {
	spendable := []*types.WalletOutput{
		outputAt(100, 0, 1),
		outputAt(200, 1, 1),
		outputAt(50, 2, 1),
	}
	sel, err := SelectForTransfer(spendable, 250, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(300), sel.Total)
	require.Equal(t, uint64(40), sel.Change)
}

func TestSelectForTransferInsufficientFunds(t *testing.T) {
	spendable := []*types.WalletOutput{outputAt(100, 0, 1)}
	_, err := SelectForTransfer(spendable, 1000, 10)
	require.Error(t, err)
}

func TestHasPreciseStakingOutputs(t *testing.T) {
	spendable := []*types.WalletOutput{
		outputAt(5_000_000_000, 0, 1),
		outputAt(1000, 1, 1),
		outputAt(4_998_999_000, 2, 1),
	}
	require.True(t, HasPreciseStakingOutputs(spendable, 5_000_000_000, 1000))
	require.False(t, HasPreciseStakingOutputs(spendable, 5_000_000_000, 2000))
}

func TestPickStakingInputsReturnsFixedOrder(t *testing.T) {
	var prepHash types.Hash
	prepHash[0] = 0x42
	amountOut := &types.WalletOutput{Amount: 5_000_000_000, OutIndex: 0, TxHash: prepHash}
	feeOut := &types.WalletOutput{Amount: 1000, OutIndex: 1, TxHash: prepHash}
	changeOut := &types.WalletOutput{Amount: 4_998_999_000, OutIndex: 2, TxHash: prepHash}

	pair, err := PickStakingInputs([]*types.WalletOutput{changeOut, feeOut, amountOut}, 5_000_000_000, 1000, prepHash)
	require.NoError(t, err)
	require.Len(t, pair, 2)
	require.Equal(t, amountOut, pair[0])
	require.Equal(t, feeOut, pair[1])
}

func TestPickStakingInputsFailsWithoutExactPair(t *testing.T) {
	var prepHash types.Hash
	prepHash[0] = 0x42
	only := &types.WalletOutput{Amount: 5_000_000_000, OutIndex: 0, TxHash: prepHash}

	_, err := PickStakingInputs([]*types.WalletOutput{only}, 5_000_000_000, 1000, prepHash)
	require.Error(t, err)
}

func TestPickStakingInputsIgnoresOtherTransactions(t *testing.T) {
	var prepHash, otherHash types.Hash
	prepHash[0] = 0x42
	otherHash[0] = 0x43
	amountOut := &types.WalletOutput{Amount: 5_000_000_000, OutIndex: 0, TxHash: prepHash}
	feeOut := &types.WalletOutput{Amount: 1000, OutIndex: 1, TxHash: prepHash}
	decoy := &types.WalletOutput{Amount: 1000, OutIndex: 1, TxHash: otherHash}

	pair, err := PickStakingInputs([]*types.WalletOutput{decoy, amountOut, feeOut}, 5_000_000_000, 1000, prepHash)
	require.NoError(t, err)
	require.Equal(t, feeOut, pair[1])
}
