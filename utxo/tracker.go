// Package utxo implements the UTXO tracker (C7): ownership matching,
// spend matching, maturity/unlock policy, reorg rollback, pruning, and
// balance accounting over a single owned-key wallet.
package utxo

import (
	"sync"

	"go.uber.org/zap"

	"coinwallet/types"
	"coinwallet/walleterr"
)

const (
	// MaturityBlocks is the depth below the tip at which an output
	// becomes eligible for spend.
	MaturityBlocks = 10
	// PruneInterval is how often, in blocks processed, spent-and-old
	// WalletOutputs are swept from memory.
	PruneInterval = 2880
	// MaxSyncedBlocks bounds how many SyncedBlock records are retained.
	MaxSyncedBlocks = 1000
	// MaxCheckpoints bounds how many recent checkpoints are retained
	// outside the divisible-by-5000 retention rule.
	MaxCheckpoints = 50
	// CheckpointModulus marks checkpoints that are retained forever.
	CheckpointModulus = 5000
	// UnlockTimeThreshold distinguishes a block-height unlock_time from
	// a Unix timestamp one (I4).
	UnlockTimeThreshold = 500_000_000
)

// Events are the optional callbacks the tracker fires while ingesting a
// block. Any field left nil is simply not called.
type Events struct {
	OnBlockProcessed   func(height uint64, hash types.Hash)
	OnTransactionFound func(out *types.WalletOutput)
	OnSpendFound       func(spend types.WalletSpend)
	OnReorg            func(rollbackToHeight uint64)
}

// IngestOutput is one normalized TxOutput as seen by the tracker, already
// decoded from whatever wire shape the transport produced (§6.1).
type IngestOutput struct {
	Key               types.PublicKey
	Amount            uint64
	GlobalOutputIndex *uint32
}

// IngestInput is one normalized KeyInput.
type IngestInput struct {
	Amount        uint64
	OutputIndexes []uint32
	TxHash        types.Hash
	OutIndex      uint32
}

// IngestTx is one normalized transaction embedded in an ingested block.
type IngestTx struct {
	Hash       types.Hash
	TxPubKey   types.PublicKey
	UnlockTime uint64
	Outputs    []IngestOutput
	Inputs     []IngestInput
	IsStaking  bool
}

// IngestBlock is one normalized block as handed to the tracker by the
// sync driver.
type IngestBlock struct {
	Height       uint64
	Hash         types.Hash
	Timestamp    uint64
	Transactions []IngestTx
}

// Tracker owns the UTXO set for a fixed group of spend keys. It is not
// internally concurrent — per §5 the core is a single logical actor, and
// the mutex here only guards against the library being called from
// multiple goroutines by mistake; it is not a concurrency model.
type Tracker struct {
	mu sync.Mutex

	log *zap.Logger

	ownedKeys map[types.PublicKey]struct{}

	outputs         map[types.OutputRef]*types.WalletOutput
	spends          []types.WalletSpend
	blocksByHeight  map[uint64]*types.SyncedBlock
	checkpoints     []types.Checkpoint
	stakingTxHashes map[types.Hash]struct{}

	currentHeight uint64
	events        Events
}

// New creates a tracker for the given set of owned spend keys. A nil
// logger is replaced with a no-op one.
func New(ownedKeys []types.PublicKey, events Events, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	owned := make(map[types.PublicKey]struct{}, len(ownedKeys))
	for _, k := range ownedKeys {
		owned[k] = struct{}{}
	}
	return &Tracker{
		log:             log,
		ownedKeys:       owned,
		outputs:         make(map[types.OutputRef]*types.WalletOutput),
		blocksByHeight:  make(map[uint64]*types.SyncedBlock),
		stakingTxHashes: make(map[types.Hash]struct{}),
		events:          events,
	}
}

// CurrentHeight returns the tip height the tracker has ingested.
func (t *Tracker) CurrentHeight() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentHeight
}

// IngestBlock applies one block (§4.7). A block at an already-known
// height with a different hash triggers a reorg rollback before the new
// block is processed; a block at the known height with the SAME hash is
// a no-op (ownership matches must be idempotent, I1). Any other height
// that isn't current_height+1 is an ordering violation (I5) — the sync
// driver is expected to have already enforced contiguity, so this is a
// defensive check, not the primary one.
func (t *Tracker) IngestBlock(b IngestBlock) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.blocksByHeight[b.Height]; ok {
		if existing.Hash == b.Hash {
			return nil
		}
		t.log.Warn("reorg detected", zap.Uint64("height", b.Height))
		t.rollbackLocked(b.Height)
		if t.events.OnReorg != nil {
			t.events.OnReorg(b.Height)
		}
	} else if b.Height != t.currentHeight+1 {
		return walleterr.New(walleterr.OrderingViolation, "block height is not contiguous with current height")
	}

	txHashes := make([]types.Hash, 0, len(b.Transactions))
	for _, tx := range b.Transactions {
		txHashes = append(txHashes, tx.Hash)

		for outIdx, o := range tx.Outputs {
			if _, owned := t.ownedKeys[o.Key]; !owned {
				continue
			}
			ref := types.OutputRef{TxHash: tx.Hash, OutIndex: uint32(outIdx)}
			if _, exists := t.outputs[ref]; exists {
				continue
			}
			wo := &types.WalletOutput{
				OwnerKey:          o.Key,
				Amount:            o.Amount,
				BlockHeight:       b.Height,
				BlockTimestamp:    b.Timestamp,
				TxHash:            tx.Hash,
				OutIndex:          uint32(outIdx),
				UnlockTime:        tx.UnlockTime,
				TxPubKey:          tx.TxPubKey,
				IsStakingOrigin:   tx.IsStaking,
				GlobalOutputIndex: o.GlobalOutputIndex,
			}
			t.outputs[ref] = wo
			if tx.IsStaking {
				t.stakingTxHashes[tx.Hash] = struct{}{}
			}
			if t.events.OnTransactionFound != nil {
				t.events.OnTransactionFound(wo)
			}
		}
	}

	for _, tx := range b.Transactions {
		for _, in := range tx.Inputs {
			wo, ok := t.matchSpendLocked(in)
			if !ok {
				continue
			}
			height := b.Height
			wo.SpentAtHeight = &height
			spend := types.WalletSpend{
				Amount:         wo.Amount,
				ParentTxHash:   wo.TxHash,
				ParentOutIndex: wo.OutIndex,
				BlockHeight:    b.Height,
				BlockTimestamp: b.Timestamp,
				SpendingTxHash: tx.Hash,
			}
			t.spends = append(t.spends, spend)
			if t.events.OnSpendFound != nil {
				t.events.OnSpendFound(spend)
			}
		}
	}

	t.blocksByHeight[b.Height] = &types.SyncedBlock{
		Height:    b.Height,
		Hash:      b.Hash,
		Timestamp: b.Timestamp,
		TxHashes:  txHashes,
	}
	t.currentHeight = b.Height
	t.appendCheckpointLocked(b.Height, b.Hash)

	if b.Height%PruneInterval == 0 {
		t.pruneLocked(b.Height)
	}
	t.pruneSyncedBlocksLocked()

	if t.events.OnBlockProcessed != nil {
		t.events.OnBlockProcessed(b.Height, b.Hash)
	}
	return nil
}

// matchSpendLocked implements the three-step spend-match order of §4.7.
func (t *Tracker) matchSpendLocked(in IngestInput) (*types.WalletOutput, bool) {
	if wo, ok := t.outputs[types.OutputRef{TxHash: in.TxHash, OutIndex: in.OutIndex}]; ok {
		if wo.SpentAtHeight == nil {
			return wo, true
		}
	}

	if len(in.OutputIndexes) > 0 {
		last := in.OutputIndexes[len(in.OutputIndexes)-1]
		for _, wo := range t.outputs {
			if wo.SpentAtHeight != nil || wo.GlobalOutputIndex == nil {
				continue
			}
			if *wo.GlobalOutputIndex == last {
				return wo, true
			}
		}
	}

	var best *types.WalletOutput
	for _, wo := range t.outputs {
		if wo.SpentAtHeight != nil || wo.Amount != in.Amount {
			continue
		}
		if best == nil || wo.BlockHeight < best.BlockHeight ||
			(wo.BlockHeight == best.BlockHeight && wo.OutIndex < best.OutIndex) {
			best = wo
		}
	}
	if best != nil {
		return best, true
	}
	return nil, false
}

// appendCheckpointLocked records the just-processed block as a
// checkpoint candidate and applies the retention rule (§4.7).
func (t *Tracker) appendCheckpointLocked(height uint64, hash types.Hash) {
	t.checkpoints = append(t.checkpoints, types.Checkpoint{Height: height, Hash: hash})
	t.pruneCheckpointsLocked()
}

func (t *Tracker) pruneCheckpointsLocked() {
	if len(t.checkpoints) <= MaxCheckpoints {
		return
	}
	cutoff := len(t.checkpoints) - MaxCheckpoints
	kept := t.checkpoints[:0:0]
	for i, cp := range t.checkpoints {
		if i >= cutoff || cp.Height%CheckpointModulus == 0 {
			kept = append(kept, cp)
		}
	}
	t.checkpoints = kept
}

func (t *Tracker) pruneSyncedBlocksLocked() {
	if len(t.blocksByHeight) <= MaxSyncedBlocks {
		return
	}
	excess := len(t.blocksByHeight) - MaxSyncedBlocks
	for excess > 0 {
		var lowest uint64
		found := false
		for h := range t.blocksByHeight {
			if !found || h < lowest {
				lowest = h
				found = true
			}
		}
		if !found {
			break
		}
		delete(t.blocksByHeight, lowest)
		excess--
	}
}

// pruneLocked removes WalletOutputs that are both spent and old enough
// (§4.7's retention rule), run every PruneInterval blocks.
func (t *Tracker) pruneLocked(h uint64) {
	if h < PruneInterval {
		return
	}
	floor := h - PruneInterval
	for ref, wo := range t.outputs {
		if wo.SpentAtHeight != nil && *wo.SpentAtHeight < floor {
			delete(t.outputs, ref)
		}
	}
}

// Checkpoints returns the retained checkpoints, newest last.
func (t *Tracker) Checkpoints() []types.Checkpoint {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]types.Checkpoint, len(t.checkpoints))
	copy(out, t.checkpoints)
	return out
}

// StakingTxHashes returns the set of transaction hashes known to have
// produced a staking-origin output (I6).
func (t *Tracker) StakingTxHashes() map[types.Hash]struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[types.Hash]struct{}, len(t.stakingTxHashes))
	for h := range t.stakingTxHashes {
		out[h] = struct{}{}
	}
	return out
}

// RollbackTo forces a rollback as if a reorg were observed at height h,
// for caller-driven resync (§6.4's resyncFromHeight).
func (t *Tracker) RollbackTo(h uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollbackLocked(h)
}

// ClearCheckpoints drops all retained checkpoints, widening the next
// getwalletsyncdata request (§4.8 step 5: an ordering violation mid-batch
// forces a wider re-pull).
func (t *Tracker) ClearCheckpoints() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.checkpoints = nil
}

// AdoptHeight fast-forwards current_height to match a node-reported top
// block when the sync response carries no new blocks to ingest (§4.8
// step 3). It records an empty SyncedBlock stub at that height, so a
// later block arriving at the same height with a different hash is
// treated as a reorg.
func (t *Tracker) AdoptHeight(height uint64, hash types.Hash) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if height <= t.currentHeight {
		return
	}
	t.blocksByHeight[height] = &types.SyncedBlock{Height: height, Hash: hash}
	t.currentHeight = height
	t.appendCheckpointLocked(height, hash)
}
