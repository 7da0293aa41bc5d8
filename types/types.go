// Package types defines the wire-level value types shared by the codec,
// crypto, transaction, and tracking packages: hashes, keys, signatures,
// and the transaction shapes described by the binary protocol.
package types

import "encoding/hex"

// Hash is a 32-byte Keccak-256 digest.
type Hash [32]byte

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// Bytes returns a copy of the underlying 32 bytes.
func (h Hash) Bytes() []byte {
	b := make([]byte, 32)
	copy(b, h[:])
	return b
}

// PublicKey is a 32-byte Ed25519 compressed point, always paired with a
// PrivateKey by P = s*G.
type PublicKey [32]byte

func (pk PublicKey) String() string { return hex.EncodeToString(pk[:]) }

// PrivateKey is a 32-byte scalar.
type PrivateKey [32]byte

func (sk PrivateKey) String() string { return hex.EncodeToString(sk[:]) }

// Signature is the 64-byte concatenation c || s, both canonical scalars.
type Signature [64]byte

// C returns the challenge half of the signature.
func (sig Signature) C() [32]byte {
	var c [32]byte
	copy(c[:], sig[:32])
	return c
}

// S returns the response half of the signature.
func (sig Signature) S() [32]byte {
	var s [32]byte
	copy(s[:], sig[32:])
	return s
}

// NewSignature assembles a Signature from its two scalar halves.
func NewSignature(c, s [32]byte) Signature {
	var sig Signature
	copy(sig[:32], c[:])
	copy(sig[32:], s[:])
	return sig
}

// KeyImage tags a spent output key; retained for wire compatibility with
// the underlying CryptoNote family even though this variant has no ring
// signatures.
type KeyImage [32]byte

// OutputRef identifies a single output uniquely within the chain.
type OutputRef struct {
	TxHash   Hash
	OutIndex uint32
}

// Discriminator tag bytes for the variant-tagged union encoding (§4.3/C3).
const (
	TagKeyVariant  byte = 0x02
	TagBaseVariant byte = 0xFF
)

// TxOutputTarget is the discriminated output-target union. This protocol
// recognizes exactly one variant (KeyOutputTarget); a sum type is kept
// here rather than a bare struct so an unrecognized tag decoded off the
// wire has nowhere to hide.
type TxOutputTarget interface {
	outputTag() byte
}

// KeyOutputTarget carries the recipient's spend public key in cleartext —
// this is a transparent variant, there are no stealth addresses.
type KeyOutputTarget struct {
	Key PublicKey
}

func (KeyOutputTarget) outputTag() byte { return TagKeyVariant }

// OutputTag returns the wire discriminator for a TxOutputTarget.
func OutputTag(t TxOutputTarget) byte { return t.outputTag() }

// TxOutput carries an amount and its target.
type TxOutput struct {
	Amount uint64
	Target TxOutputTarget
}

// TxInput is the discriminated input union: BaseInput (coinbase) or
// KeyInput (spends a prior output).
type TxInput interface {
	inputTag() byte
}

// BaseInput is a coinbase input; it consumes no prior value.
type BaseInput struct {
	Height uint64
}

func (BaseInput) inputTag() byte { return TagBaseVariant }

// KeyInput spends exactly one prior output, identified by (TxHash, OutIndex).
// OutputIndexes is retained for historical wire compatibility and always
// holds exactly one element equal to OutIndex.
type KeyInput struct {
	Amount        uint64
	OutputIndexes []uint32
	TxHash        Hash
	OutIndex      uint32
}

func (KeyInput) inputTag() byte { return TagKeyVariant }

// InputTag returns the wire discriminator for a TxInput.
func InputTag(in TxInput) byte { return in.inputTag() }

// Extra TLV tag bytes (§3).
const (
	ExtraTagTxPubKey byte = 0x01
	ExtraTagStaking  byte = 0x04
)

// ExtraField is one TLV record inside a transaction's extra blob. Unknown
// tags are preserved verbatim on parse/re-serialize round trips.
type ExtraField struct {
	Tag  byte
	Data []byte
}

// TransactionPrefix is the order-sensitive, signature-independent part of
// a transaction (§3/§4.4).
type TransactionPrefix struct {
	Version    uint64
	UnlockTime uint64
	Inputs     []TxInput
	Outputs    []TxOutput
	Extra      []byte // raw TLV blob; see codec.DecodeExtra/EncodeExtra
}

// Transaction is a prefix plus one signature per input, in input order.
type Transaction struct {
	Prefix     TransactionPrefix
	Signatures []Signature
}

// StakingRecordType is the fixed type discriminator carried inside the
// 0x04 staking extra field (§6.3).
const StakingRecordType uint64 = 101

// StakingRecord is the decoded body of the 0x04 STAKING extra tag.
type StakingRecord struct {
	Amount     uint64
	UnlockTime uint64
	LockDays   uint64
	Signature  Signature
}

// WalletOutput is the tracker's view of one owned TxOutput. The tuple
// (TxHash, OutIndex) is its identity (I1).
type WalletOutput struct {
	OwnerKey          PublicKey
	Amount            uint64
	BlockHeight       uint64
	BlockTimestamp    uint64
	TxHash            Hash
	OutIndex          uint32
	UnlockTime        uint64
	TxPubKey          PublicKey
	IsStakingOrigin   bool
	GlobalOutputIndex *uint32
	SpentAtHeight     *uint64
}

// Ref returns this output's identity.
func (o *WalletOutput) Ref() OutputRef { return OutputRef{TxHash: o.TxHash, OutIndex: o.OutIndex} }

// IsSpent reports whether a spend has been observed (I2).
func (o *WalletOutput) IsSpent() bool { return o.SpentAtHeight != nil }

// WalletSpend records a spend of a WalletOutput, linked to it by
// (ParentTxHash, ParentOutIndex).
type WalletSpend struct {
	Amount         uint64
	ParentTxHash   Hash
	ParentOutIndex uint32
	BlockHeight    uint64
	BlockTimestamp uint64
	SpendingTxHash Hash
}

// SyncedBlock is the tracker's minimal retained record of an ingested
// block, used for ordering checks and reorg detection.
type SyncedBlock struct {
	Height    uint64
	Hash      Hash
	Timestamp uint64
	TxHashes  []Hash
}

// Checkpoint is a (height, hash) pair used by the sync driver for fork
// detection and resync hinting (§6.2).
type Checkpoint struct {
	Height uint64
	Hash   Hash
}
