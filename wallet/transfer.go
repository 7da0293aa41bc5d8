package wallet

import (
	"context"
	"encoding/hex"

	"coinwallet/tx"
	"coinwallet/types"
)

// SendTransfer selects inputs, builds and self-verifies a signed
// transfer, and submits it to the node.
func (w *Wallet) SendTransfer(ctx context.Context, destinations []tx.Destination, fee uint64) (tx.SubmittedTransfer, error) {
	var target uint64
	for _, d := range destinations {
		target += d.Amount
	}

	spendable := w.tracker.SpendableOutputs(nowUnix())
	sel, err := tx.SelectForTransfer(spendable, target, fee)
	if err != nil {
		return tx.SubmittedTransfer{}, err
	}

	built, err := tx.BuildTransfer(w.rng, tx.TransferParams{
		Inputs:       sel.Inputs,
		OwnerPub:     w.keys.PublicKey,
		OwnerPriv:    w.keys.PrivateKey,
		Destinations: destinations,
		Fee:          fee,
	})
	if err != nil {
		return tx.SubmittedTransfer{}, err
	}

	return w.submit(ctx, built)
}

// submit serializes and sends a built transaction, returning it paired
// with its hash once the node has accepted it.
func (w *Wallet) submit(ctx context.Context, built types.Transaction) (tx.SubmittedTransfer, error) {
	raw, err := tx.SerializeFull(built)
	if err != nil {
		return tx.SubmittedTransfer{}, err
	}
	if _, err := w.transport.SendRawTransaction(ctx, hex.EncodeToString(raw)); err != nil {
		return tx.SubmittedTransfer{}, err
	}
	txHash, err := tx.TxHash(built)
	if err != nil {
		return tx.SubmittedTransfer{}, err
	}
	return tx.SubmittedTransfer{Transaction: built, TxHash: txHash}, nil
}
