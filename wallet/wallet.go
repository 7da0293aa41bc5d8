// Package wallet implements the caller-facing façade (C10): it composes
// the UTXO tracker, the sync driver, and the transaction builder/selector
// behind the operations listed in §6.4.
package wallet

import (
	"context"
	"crypto/rand"
	"time"

	"go.uber.org/zap"

	"coinwallet/noderpc"
	"coinwallet/sync"
	"coinwallet/tx"
	"coinwallet/types"
	"coinwallet/utxo"
	"coinwallet/walletcrypto"
)

// DefaultBlockTimeSeconds is used to convert a staking lock duration in
// days into a block-height unlock_time when the caller doesn't override
// it.
const DefaultBlockTimeSeconds = 120

// Config assembles a Wallet.
type Config struct {
	Transport                noderpc.Transport
	Keys                     walletcrypto.KeyPair
	PollInterval             time.Duration
	BlockTimeSeconds         uint64
	OnConnectionStatusChange sync.ConnectionStatusFunc
	Logger                   *zap.Logger
}

// Wallet is the façade a caller embeds: it owns one spend keypair, the
// UTXO state derived from it, and the sync driver pulling new blocks.
type Wallet struct {
	transport noderpc.Transport
	keys      walletcrypto.KeyPair
	tracker   *utxo.Tracker
	driver    *sync.Driver
	rng       walletcrypto.RandReader

	blockTimeSeconds uint64
}

// New constructs a Wallet around a single spend keypair.
func New(cfg Config) *Wallet {
	blockTime := cfg.BlockTimeSeconds
	if blockTime == 0 {
		blockTime = DefaultBlockTimeSeconds
	}
	tracker := utxo.New([]types.PublicKey{cfg.Keys.PublicKey}, utxo.Events{}, cfg.Logger)
	driver := sync.New(cfg.Transport, tracker, cfg.PollInterval, cfg.OnConnectionStatusChange, cfg.Logger)
	return &Wallet{
		transport:        cfg.Transport,
		keys:             cfg.Keys,
		tracker:          tracker,
		driver:           driver,
		rng:              rand.Reader,
		blockTimeSeconds: blockTime,
	}
}

// Tracker exposes the underlying UTXO tracker, e.g. for snapshot
// persistence via walletstore.
func (w *Wallet) Tracker() *utxo.Tracker { return w.tracker }

// PerformSync runs the batch/poll sync loop until caught up and then
// continues polling until stopped or ctx is cancelled.
func (w *Wallet) PerformSync(ctx context.Context) error {
	return w.driver.PerformSync(ctx)
}

// StopSync requests the sync driver stop at its next cooperative
// checkpoint.
func (w *Wallet) StopSync() {
	w.driver.Stop()
}

// ResyncFromHeight forces a rollback to height h, as if a reorg had been
// observed there, so the next sync restarts ingestion from h.
func (w *Wallet) ResyncFromHeight(h uint64) {
	w.tracker.RollbackTo(h)
}

// GetSyncState returns the current sync progress and any recorded
// transport errors.
func (w *Wallet) GetSyncState() sync.State {
	return w.driver.GetSyncState()
}

func nowUnix() uint64 {
	return uint64(time.Now().Unix())
}

// GetAvailableOutputs returns the spendable UTXO set.
func (w *Wallet) GetAvailableOutputs() []*types.WalletOutput {
	return w.tracker.SpendableOutputs(nowUnix())
}

// GetAvailableBalance sums the spendable UTXO set.
func (w *Wallet) GetAvailableBalance() uint64 {
	available, _, _ := w.tracker.Balances(nowUnix())
	return available
}

// GetLockedBalance sums non-staking-origin outputs that are not yet
// spendable.
func (w *Wallet) GetLockedBalance() uint64 {
	_, locked, _ := w.tracker.Balances(nowUnix())
	return locked
}

// GetStakingLockedBalance sums staking-origin outputs that are not yet
// spendable.
func (w *Wallet) GetStakingLockedBalance() uint64 {
	_, _, stakingLocked := w.tracker.Balances(nowUnix())
	return stakingLocked
}

// GetTransactions returns the wallet's derived transaction history,
// newest first.
func (w *Wallet) GetTransactions(limit int) []utxo.Entry {
	return w.tracker.History(limit)
}
