package utxo

import "coinwallet/types"

// Snapshot is the serializable state exposed for external persistence
// (§6.5): the full UTXO map, the spend map, current_height, and the
// staking-origin transaction hash set. Per-block bookkeeping
// (SyncedBlocks, checkpoints) is not part of the snapshot — reloading it
// must reproduce identical balances and classifications, which depends
// only on these four fields.
type Snapshot struct {
	CurrentHeight   uint64               `json:"current_height"`
	Outputs         []types.WalletOutput `json:"outputs"`
	Spends          []types.WalletSpend  `json:"spends"`
	StakingTxHashes []types.Hash         `json:"staking_tx_hashes"`
}

// Snapshot captures the tracker's current persistable state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	outs := make([]types.WalletOutput, 0, len(t.outputs))
	for _, o := range t.outputs {
		outs = append(outs, *o)
	}
	spends := make([]types.WalletSpend, len(t.spends))
	copy(spends, t.spends)
	staking := make([]types.Hash, 0, len(t.stakingTxHashes))
	for h := range t.stakingTxHashes {
		staking = append(staking, h)
	}

	return Snapshot{
		CurrentHeight:   t.currentHeight,
		Outputs:         outs,
		Spends:          spends,
		StakingTxHashes: staking,
	}
}

// LoadSnapshot replaces the tracker's state wholesale with a previously
// captured Snapshot. Per-block bookkeeping (SyncedBlocks, checkpoints) is
// cleared; the sync driver will rebuild it on the next batch pull.
func (t *Tracker) LoadSnapshot(s Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.outputs = make(map[types.OutputRef]*types.WalletOutput, len(s.Outputs))
	for i := range s.Outputs {
		o := s.Outputs[i]
		t.outputs[o.Ref()] = &o
	}

	t.spends = append([]types.WalletSpend(nil), s.Spends...)

	t.stakingTxHashes = make(map[types.Hash]struct{}, len(s.StakingTxHashes))
	for _, h := range s.StakingTxHashes {
		t.stakingTxHashes[h] = struct{}{}
	}

	t.blocksByHeight = make(map[uint64]*types.SyncedBlock)
	t.checkpoints = nil
	t.currentHeight = s.CurrentHeight
}
