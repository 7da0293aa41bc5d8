package tx

import "coinwallet/types"

// SubmittedTransfer is the result of building and successfully
// submitting a transaction: the transaction itself plus its hash, so the
// caller can track it without re-hashing.
type SubmittedTransfer struct {
	Transaction types.Transaction
	TxHash      types.Hash
}
