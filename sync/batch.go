package sync

import (
	"context"
	"time"

	"go.uber.org/zap"

	"coinwallet/noderpc"
	"coinwallet/utxo"
)

// batchIteration runs one pull-and-process cycle of §4.8 steps 1-6. It
// returns done=true once the node reports the caller fully synced.
func (d *Driver) batchIteration(ctx context.Context) (bool, error) {
	cps := newestCheckpoints(d.tracker.Checkpoints())

	d.mu.Lock()
	batchSize := d.batchSize
	d.mu.Unlock()

	req := noderpc.SyncDataRequest{
		CheckpointHashes: cps,
		StartHeight:      d.tracker.CurrentHeight(),
		StartTimestamp:   uint64(d.now().Unix()),
		BlockCount:       batchSize,
	}

	resp, err := d.transport.GetWalletSyncData(ctx, req)
	if err != nil {
		return false, err
	}

	if resp.Synced || (len(resp.Blocks) == 0 && resp.TopBlock != nil) {
		if resp.TopBlock != nil {
			d.tracker.AdoptHeight(resp.TopBlock.Height, resp.TopBlock.Hash)
		}
		d.resetEmptyRetries()
		return true, nil
	}

	if len(resp.Blocks) == 0 {
		return d.handleEmptyBatch(ctx)
	}
	d.resetEmptyRetries()

	for _, b := range resp.Blocks {
		if d.stopped() {
			return false, nil
		}
		if b.Height != d.tracker.CurrentHeight()+1 {
			d.log.Warn("non-contiguous block, widening next pull",
				zap.Uint64("got", b.Height), zap.Uint64("want", d.tracker.CurrentHeight()+1))
			d.tracker.ClearCheckpoints()
			return false, nil
		}
		if err := d.tracker.IngestBlock(toIngestBlock(b)); err != nil {
			d.tracker.ClearCheckpoints()
			return false, nil
		}
	}

	return false, nil
}

func (d *Driver) handleEmptyBatch(ctx context.Context) (bool, error) {
	d.mu.Lock()
	d.emptyRetries++
	retries := d.emptyRetries
	d.mu.Unlock()

	if retries >= MaxEmptyRetries {
		return false, errNoProgress
	}

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-time.After(RetryDelay):
	}
	return false, nil
}

func (d *Driver) resetEmptyRetries() {
	d.mu.Lock()
	d.emptyRetries = 0
	d.mu.Unlock()
}

func toIngestBlock(b noderpc.Block) utxo.IngestBlock {
	txs := make([]utxo.IngestTx, 0, len(b.Transactions))
	for _, t := range b.Transactions {
		outs := make([]utxo.IngestOutput, 0, len(t.Outputs))
		for _, o := range t.Outputs {
			outs = append(outs, utxo.IngestOutput{
				Key:               o.Key,
				Amount:            o.Amount,
				GlobalOutputIndex: o.GlobalOutputIndex,
			})
		}
		ins := make([]utxo.IngestInput, 0, len(t.Inputs))
		for _, in := range t.Inputs {
			ins = append(ins, utxo.IngestInput{
				Amount:        in.Amount,
				OutputIndexes: in.OutputIndexes,
				TxHash:        in.TxHash,
				OutIndex:      in.OutIndex,
			})
		}
		txs = append(txs, utxo.IngestTx{
			Hash:       t.Hash,
			TxPubKey:   t.TxPubKey,
			UnlockTime: t.UnlockTime,
			Outputs:    outs,
			Inputs:     ins,
			IsStaking:  t.IsStaking,
		})
	}
	return utxo.IngestBlock{
		Height:       b.Height,
		Hash:         b.Hash,
		Timestamp:    b.Timestamp,
		Transactions: txs,
	}
}
