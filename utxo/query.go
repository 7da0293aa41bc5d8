package utxo

import (
	"sort"

	"coinwallet/types"
)

// Balances computes the three balance metrics of §4.7 as of the
// tracker's current height and the given wallclock time.
func (t *Tracker) Balances(now uint64) (available, locked, stakingLocked uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := t.currentHeight
	for _, o := range t.outputs {
		if o.SpentAtHeight != nil {
			continue
		}
		sp := spendable(o, h, now)
		switch {
		case sp:
			available += o.Amount
		case o.IsStakingOrigin:
			stakingLocked += o.Amount
		default:
			locked += o.Amount
		}
	}
	return
}

// SpendableOutputs returns every unspent, mature, unlocked WalletOutput —
// the candidate set for input selection.
func (t *Tracker) SpendableOutputs(now uint64) []*types.WalletOutput {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := t.currentHeight
	var out []*types.WalletOutput
	for _, o := range t.outputs {
		if spendable(o, h, now) {
			out = append(out, o)
		}
	}
	return out
}

// AllOutputs returns every WalletOutput the tracker currently retains,
// spent or not.
func (t *Tracker) AllOutputs() []*types.WalletOutput {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*types.WalletOutput, 0, len(t.outputs))
	for _, o := range t.outputs {
		out = append(out, o)
	}
	return out
}

// Spends returns every recorded WalletSpend.
func (t *Tracker) Spends() []types.WalletSpend {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]types.WalletSpend, len(t.spends))
	copy(out, t.spends)
	return out
}

// Entry is one line of derived transaction history: either a receive
// (from a matched owned output) or a send (from a matched spend).
type Entry struct {
	Kind      string // "receive" or "send"
	Amount    uint64
	Height    uint64
	Timestamp uint64
	TxHash    types.Hash
}

// History returns the most recent transaction activity, newest first,
// trimmed to limit (0 means unlimited).
func (t *Tracker) History(limit int) []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make([]Entry, 0, len(t.outputs)+len(t.spends))
	for _, o := range t.outputs {
		entries = append(entries, Entry{
			Kind:      "receive",
			Amount:    o.Amount,
			Height:    o.BlockHeight,
			Timestamp: o.BlockTimestamp,
			TxHash:    o.TxHash,
		})
	}
	for _, s := range t.spends {
		entries = append(entries, Entry{
			Kind:      "send",
			Amount:    s.Amount,
			Height:    s.BlockHeight,
			Timestamp: s.BlockTimestamp,
			TxHash:    s.SpendingTxHash,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Height > entries[j].Height
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
