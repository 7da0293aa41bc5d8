package utxo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"coinwallet/types"
)

func TestSpendableOutputsExcludesImmatureAndSpent(t *testing.T) {
	owner := ownerKey(0xA1)
	tr := New([]types.PublicKey{owner}, Events{}, nil)

	require.NoError(t, tr.IngestBlock(singleOutputBlock(1, owner, 1000, txHash(0xA1))))
	require.Empty(t, tr.SpendableOutputs(0))

	for h := uint64(2); h <= MaturityBlocks+1; h++ {
		require.NoError(t, tr.IngestBlock(IngestBlock{Height: h, Hash: txHash(byte(h + 0xA0)), Timestamp: h}))
	}
	require.Len(t, tr.SpendableOutputs(0), 1)

	require.NoError(t, tr.IngestBlock(IngestBlock{
		Height: MaturityBlocks + 2, Hash: txHash(0xAE), Timestamp: MaturityBlocks + 2,
		Transactions: []IngestTx{{Hash: txHash(0xAE), Inputs: []IngestInput{{Amount: 1000, TxHash: txHash(0xA1), OutIndex: 0}}}},
	}))
	require.Empty(t, tr.SpendableOutputs(0))
}

func TestHistorySortedNewestFirstAndLimited(t *testing.T) {
	owner := ownerKey(0xB1)
	tr := New([]types.PublicKey{owner}, Events{}, nil)

	require.NoError(t, tr.IngestBlock(singleOutputBlock(1, owner, 1000, txHash(0xB1))))
	require.NoError(t, tr.IngestBlock(singleOutputBlock(2, owner, 2000, txHash(0xB2))))
	require.NoError(t, tr.IngestBlock(singleOutputBlock(3, owner, 3000, txHash(0xB3))))

	entries := tr.History(2)
	require.Len(t, entries, 2)
	require.Equal(t, uint64(3), entries[0].Height)
	require.Equal(t, uint64(2), entries[1].Height)
}

func TestHistoryIncludesSends(t *testing.T) {
	owner := ownerKey(0xC1)
	tr := New([]types.PublicKey{owner}, Events{}, nil)

	fundTx := txHash(0xC1)
	require.NoError(t, tr.IngestBlock(singleOutputBlock(1, owner, 1000, fundTx)))

	spendBlock := IngestBlock{
		Height:    2,
		Hash:      txHash(0xC2),
		Timestamp: 2,
		Transactions: []IngestTx{
			{Hash: txHash(0xC2), Inputs: []IngestInput{{Amount: 1000, TxHash: fundTx, OutIndex: 0}}},
		},
	}
	require.NoError(t, tr.IngestBlock(spendBlock))

	entries := tr.History(0)
	var sawSend, sawReceive bool
	for _, e := range entries {
		if e.Kind == "send" {
			sawSend = true
		}
		if e.Kind == "receive" {
			sawReceive = true
		}
	}
	require.True(t, sawSend)
	require.True(t, sawReceive)
}
