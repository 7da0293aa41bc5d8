package utxo

import "coinwallet/types"

// mature reports whether o has cleared MaturityBlocks confirmations at
// height h.
func mature(o *types.WalletOutput, h uint64) bool {
	if h < MaturityBlocks {
		return false
	}
	return o.BlockHeight <= h-MaturityBlocks
}

// unlocked reports whether o's unlock_time has passed, interpreting it
// as a block height or a Unix timestamp per I4.
func unlocked(o *types.WalletOutput, h uint64, now uint64) bool {
	switch {
	case o.UnlockTime == 0:
		return true
	case o.UnlockTime < UnlockTimeThreshold:
		return h >= o.UnlockTime
	default:
		return now >= o.UnlockTime
	}
}

// spendable is the conjunction defining whether an output can be used as
// a transaction input right now.
func spendable(o *types.WalletOutput, h uint64, now uint64) bool {
	return o.SpentAtHeight == nil && mature(o, h) && unlocked(o, h, now)
}
