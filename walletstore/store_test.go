package walletstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"coinwallet/types"
	"coinwallet/utxo"
)

func TestSaveAndLoadSnapshotRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	var txHash types.Hash
	txHash[0] = 0x01
	snap := utxo.Snapshot{
		CurrentHeight: 42,
		Outputs: []types.WalletOutput{
			{Amount: 1000, TxHash: txHash, OutIndex: 0},
		},
		StakingTxHashes: []types.Hash{txHash},
	}

	require.NoError(t, store.SaveSnapshot(snap))

	got, found, err := store.LoadSnapshot()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, snap, got)
}

func TestLoadSnapshotWithoutPriorSaveReturnsNotFound(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	got, found, err := store.LoadSnapshot()
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, utxo.Snapshot{}, got)
}

func TestSaveSnapshotOverwritesPrevious(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SaveSnapshot(utxo.Snapshot{CurrentHeight: 1}))
	require.NoError(t, store.SaveSnapshot(utxo.Snapshot{CurrentHeight: 2}))

	got, found, err := store.LoadSnapshot()
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(2), got.CurrentHeight)
}
