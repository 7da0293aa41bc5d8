package sync

import (
	"context"
	"sync"

	"coinwallet/noderpc"
)

// fakeTransport is a minimal in-memory noderpc.Transport double driven by a
// queue of canned GetWalletSyncData responses and a single Info response.
type fakeTransport struct {
	mu sync.Mutex

	syncResponses []noderpc.SyncDataResult
	syncErr       error
	syncCalls     []noderpc.SyncDataRequest

	infoResult noderpc.InfoResult
	infoErr    error
	infoCalls  int

	sendResult noderpc.SendResult
	sendErr    error
}

func (f *fakeTransport) Info(ctx context.Context) (noderpc.InfoResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infoCalls++
	return f.infoResult, f.infoErr
}

func (f *fakeTransport) GetWalletSyncData(ctx context.Context, req noderpc.SyncDataRequest) (noderpc.SyncDataResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.syncCalls = append(f.syncCalls, req)
	if f.syncErr != nil {
		return noderpc.SyncDataResult{}, f.syncErr
	}
	if len(f.syncResponses) == 0 {
		return noderpc.SyncDataResult{Synced: true}, nil
	}
	resp := f.syncResponses[0]
	f.syncResponses = f.syncResponses[1:]
	return resp, nil
}

func (f *fakeTransport) SendRawTransaction(ctx context.Context, txHex string) (noderpc.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sendResult, f.sendErr
}

func (f *fakeTransport) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.syncCalls)
}
