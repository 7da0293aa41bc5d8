package wallet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coinwallet/noderpc"
	"coinwallet/tx"
	"coinwallet/types"
	"coinwallet/walletcrypto"
)

type fakeTransport struct {
	syncResponses []noderpc.SyncDataResult
	sendResult    noderpc.SendResult
	sendErr       error
	infoResult    noderpc.InfoResult
}

func (f *fakeTransport) Info(ctx context.Context) (noderpc.InfoResult, error) {
	return f.infoResult, nil
}

func (f *fakeTransport) GetWalletSyncData(ctx context.Context, req noderpc.SyncDataRequest) (noderpc.SyncDataResult, error) {
	if len(f.syncResponses) == 0 {
		return noderpc.SyncDataResult{Synced: true}, nil
	}
	resp := f.syncResponses[0]
	f.syncResponses = f.syncResponses[1:]
	return resp, nil
}

func (f *fakeTransport) SendRawTransaction(ctx context.Context, txHex string) (noderpc.SendResult, error) {
	return f.sendResult, f.sendErr
}

func newWalletForTest(ft *fakeTransport) *Wallet {
	kp, _ := walletcrypto.GenerateKeyPair()
	return New(Config{Transport: ft, Keys: *kp, PollInterval: time.Hour})
}

func TestWalletInitialBalancesAreZero(t *testing.T) {
	w := newWalletForTest(&fakeTransport{})
	require.Equal(t, uint64(0), w.GetAvailableBalance())
	require.Equal(t, uint64(0), w.GetLockedBalance())
	require.Equal(t, uint64(0), w.GetStakingLockedBalance())
}

func TestWalletPerformSyncIngestsBlocksIntoTracker(t *testing.T) {
	ft := &fakeTransport{
		syncResponses: []noderpc.SyncDataResult{
			{Status: "OK", Blocks: []noderpc.Block{{Height: 1, Hash: txHashFor(1)}}},
			{Status: "OK", Synced: true},
		},
	}
	w := newWalletForTest(ft)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = w.PerformSync(ctx)

	require.Equal(t, uint64(1), w.Tracker().CurrentHeight())
}

func TestWalletSendTransferInsufficientFunds(t *testing.T) {
	w := newWalletForTest(&fakeTransport{})
	recipient, _ := walletcrypto.GenerateKeyPair()

	_, err := w.SendTransfer(context.Background(), []tx.Destination{{Key: recipient.PublicKey, Amount: 100}}, 10)
	require.Error(t, err)
}

func TestWalletCanFinalizeStakeFalseWithoutOutputs(t *testing.T) {
	w := newWalletForTest(&fakeTransport{})
	require.False(t, w.CanFinalizeStake(5_000_000_000, 1000))
}

func TestWalletResyncFromHeightRollsBackTracker(t *testing.T) {
	ft := &fakeTransport{
		syncResponses: []noderpc.SyncDataResult{
			{Status: "OK", Blocks: []noderpc.Block{
				{Height: 1, Hash: txHashFor(1)},
				{Height: 2, Hash: txHashFor(2)},
			}},
			{Status: "OK", Synced: true},
		},
	}
	w := newWalletForTest(ft)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_ = w.PerformSync(ctx)
	require.Equal(t, uint64(2), w.Tracker().CurrentHeight())

	w.ResyncFromHeight(1)
	require.Equal(t, uint64(0), w.Tracker().CurrentHeight())
}

func txHashFor(b byte) types.Hash {
	var h types.Hash
	h[0] = b
	return h
}
