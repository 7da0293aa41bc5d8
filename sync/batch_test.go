package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"coinwallet/noderpc"
	"coinwallet/types"
	"coinwallet/utxo"
)

func newTestDriver(ft *fakeTransport) *Driver {
	tracker := utxo.New(nil, utxo.Events{}, nil)
	return New(ft, tracker, 0, nil, nil)
}

func blockHash(b byte) types.Hash {
	var h types.Hash
	h[0] = b
	return h
}

func TestBatchIterationIngestsContiguousBlocks(t *testing.T) {
	ft := &fakeTransport{
		syncResponses: []noderpc.SyncDataResult{
			{
				Status: "OK",
				Blocks: []noderpc.Block{
					{Height: 1, Hash: blockHash(1)},
					{Height: 2, Hash: blockHash(2)},
				},
			},
		},
	}
	d := newTestDriver(ft)

	done, err := d.batchIteration(context.Background())
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, uint64(2), d.tracker.CurrentHeight())
}

func TestBatchIterationSyncedWithTopBlockAdopts(t *testing.T) {
	ft := &fakeTransport{
		syncResponses: []noderpc.SyncDataResult{
			{Status: "OK", Synced: true, TopBlock: &noderpc.TopBlock{Height: 500, Hash: blockHash(9)}},
		},
	}
	d := newTestDriver(ft)

	done, err := d.batchIteration(context.Background())
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, uint64(500), d.tracker.CurrentHeight())
}

func TestBatchIterationEmptyWithTopBlockAdoptsAndIsDone(t *testing.T) {
	ft := &fakeTransport{
		syncResponses: []noderpc.SyncDataResult{
			{Status: "OK", TopBlock: &noderpc.TopBlock{Height: 42, Hash: blockHash(3)}},
		},
	}
	d := newTestDriver(ft)

	done, err := d.batchIteration(context.Background())
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, uint64(42), d.tracker.CurrentHeight())
}

func TestBatchIterationNonContiguousClearsCheckpoints(t *testing.T) {
	ft := &fakeTransport{
		syncResponses: []noderpc.SyncDataResult{
			{Status: "OK", Blocks: []noderpc.Block{{Height: 1, Hash: blockHash(1)}}},
			{Status: "OK", Blocks: []noderpc.Block{{Height: 9, Hash: blockHash(9)}}}, // skips ahead
		},
	}
	d := newTestDriver(ft)

	_, err := d.batchIteration(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, d.tracker.Checkpoints())

	done, err := d.batchIteration(context.Background())
	require.NoError(t, err)
	require.False(t, done)
	require.Empty(t, d.tracker.Checkpoints())
	require.Equal(t, uint64(1), d.tracker.CurrentHeight()) // unchanged, bad block rejected
}

func TestBatchIterationPropagatesTransportError(t *testing.T) {
	ft := &fakeTransport{syncErr: errNoProgress}
	d := newTestDriver(ft)

	_, err := d.batchIteration(context.Background())
	require.Error(t, err)
}

func TestRecordErrorHalvesBatchSizeWithFloor(t *testing.T) {
	ft := &fakeTransport{}
	d := newTestDriver(ft)
	require.Equal(t, uint64(BlocksPerBatch), d.batchSize)

	d.recordError(errNoProgress)
	require.Equal(t, uint64(BlocksPerBatch/2), d.batchSize)

	for i := 0; i < 10; i++ {
		d.recordError(errNoProgress)
	}
	require.Equal(t, uint64(MinBlockCount), d.batchSize)

	state := d.GetSyncState()
	require.NotEmpty(t, state.Errors)
}

func TestNewestCheckpointsSortsDescendingAndTrims(t *testing.T) {
	cps := []types.Checkpoint{
		{Height: 10}, {Height: 50}, {Height: 30},
	}
	got := newestCheckpoints(cps)
	require.Equal(t, uint64(50), got[0].Height)
	require.Equal(t, uint64(30), got[1].Height)
	require.Equal(t, uint64(10), got[2].Height)

	many := make([]types.Checkpoint, maxCheckpointsSent+10)
	for i := range many {
		many[i] = types.Checkpoint{Height: uint64(i)}
	}
	trimmed := newestCheckpoints(many)
	require.Len(t, trimmed, maxCheckpointsSent)
	require.Equal(t, uint64(maxCheckpointsSent+9), trimmed[0].Height)
}
