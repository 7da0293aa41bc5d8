package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"coinwallet/noderpc"
)

// TestHandleEmptyBatchExhaustsRetries drives three consecutive empty
// responses through batchIteration directly; the third crosses
// MaxEmptyRetries and must surface errNoProgress. This exercises the real
// RetryDelay between attempts, so it is not instantaneous.
func TestHandleEmptyBatchExhaustsRetries(t *testing.T) {
	ft := &fakeTransport{
		syncResponses: []noderpc.SyncDataResult{
			{Status: "OK"},
			{Status: "OK"},
			{Status: "OK"},
		},
	}
	d := newTestDriver(ft)

	var err error
	for i := 0; i < MaxEmptyRetries; i++ {
		_, err = d.batchIteration(context.Background())
	}
	require.ErrorIs(t, err, errNoProgress)
}

func TestHandleEmptyBatchAbortsOnContextCancel(t *testing.T) {
	ft := &fakeTransport{
		syncResponses: []noderpc.SyncDataResult{{Status: "OK"}},
	}
	d := newTestDriver(ft)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.batchIteration(ctx)
	require.Error(t, err)
}
