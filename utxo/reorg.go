package utxo

// rollbackLocked undoes every effect of blocks at height >= h (P4): it
// drops WalletOutputs created at or after h, un-marks spends recorded at
// or after h on outputs that survive, drops those WalletSpend records,
// drops SyncedBlocks at or after h, truncates checkpoints at or after h,
// and rewinds current_height to h-1.
func (t *Tracker) rollbackLocked(h uint64) {
	for ref, wo := range t.outputs {
		if wo.BlockHeight >= h {
			delete(t.outputs, ref)
			continue
		}
		if wo.SpentAtHeight != nil && *wo.SpentAtHeight >= h {
			wo.SpentAtHeight = nil
		}
	}

	kept := t.spends[:0:0]
	for _, s := range t.spends {
		if s.BlockHeight < h {
			kept = append(kept, s)
		}
	}
	t.spends = kept

	for height := range t.blocksByHeight {
		if height >= h {
			delete(t.blocksByHeight, height)
		}
	}

	keptCps := t.checkpoints[:0:0]
	for _, cp := range t.checkpoints {
		if cp.Height < h {
			keptCps = append(keptCps, cp)
		}
	}
	t.checkpoints = keptCps

	if h == 0 {
		t.currentHeight = 0
		return
	}
	t.currentHeight = h - 1
}
