// Package noderpc implements the node transport (C9): the request/response
// façade the sync driver uses to pull wallet-relevant block data and
// submit signed transactions.
package noderpc

import (
	"context"

	"coinwallet/types"
)

// InfoResult is the normalized reply to GET /info.
type InfoResult struct {
	Height        uint64
	NetworkHeight uint64
	Synced        bool
}

// TopHeight returns the current top-block height: servers report the
// NEXT expected height, and prefer network_height over height when both
// are present (§6.1).
func (r InfoResult) TopHeight() uint64 {
	h := r.Height
	if r.NetworkHeight > 0 {
		h = r.NetworkHeight
	}
	if h == 0 {
		return 0
	}
	return h - 1
}

// SyncDataRequest is the normalized POST /getwalletsyncdata request body.
type SyncDataRequest struct {
	CheckpointHashes []types.Checkpoint
	StartHeight      uint64
	StartTimestamp   uint64
	BlockCount       uint64
}

// TopBlock is the reply's optional topBlock hint used when the server
// reports the caller as already synced.
type TopBlock struct {
	Hash   types.Hash
	Height uint64
}

// Block is one normalized block as decoded from the wire (§6.1), ready
// to be handed to the UTXO tracker by the sync driver.
type Block struct {
	Height       uint64
	Hash         types.Hash
	Timestamp    uint64
	Transactions []Tx
}

// Tx is one normalized transaction embedded in a Block.
type Tx struct {
	Hash       types.Hash
	TxPubKey   types.PublicKey
	UnlockTime uint64
	Outputs    []Output
	Inputs     []Input
	IsStaking  bool
}

// Output is one normalized TxOutput.
type Output struct {
	Key               types.PublicKey
	Amount            uint64
	GlobalOutputIndex *uint32
}

// Input is one normalized KeyInput.
type Input struct {
	Amount        uint64
	OutputIndexes []uint32
	TxHash        types.Hash
	OutIndex      uint32
}

// SyncDataResult is the normalized reply to POST /getwalletsyncdata.
type SyncDataResult struct {
	Status   string
	Blocks   []Block
	Synced   bool
	TopBlock *TopBlock
}

// SendResult is the normalized reply to POST /sendrawtransaction.
type SendResult struct {
	Status          string
	TransactionHash types.Hash
	Error           string
}

// Transport is the interface the sync driver and wallet façade depend on.
// A real implementation talks JSON over HTTP (see HTTPTransport); tests
// can substitute an in-memory fake.
type Transport interface {
	Info(ctx context.Context) (InfoResult, error)
	GetWalletSyncData(ctx context.Context, req SyncDataRequest) (SyncDataResult, error)
	SendRawTransaction(ctx context.Context, txHex string) (SendResult, error)
}
