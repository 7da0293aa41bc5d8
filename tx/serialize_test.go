package tx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"coinwallet/codec"
	"coinwallet/types"
)

func samplePrefix() types.TransactionPrefix {
	var txHash types.Hash
	txHash[0] = 0x11
	var key types.PublicKey
	key[0] = 0x22
	var pub types.PublicKey
	pub[0] = 0x33

	extra := codec.EncodeExtra([]types.ExtraField{codec.TxPubKeyField(pub)})

	return types.TransactionPrefix{
		Version:    1,
		UnlockTime: 0,
		Inputs: []types.TxInput{
			types.KeyInput{
				Amount:        1000,
				OutputIndexes: []uint32{7},
				TxHash:        txHash,
				OutIndex:      7,
			},
		},
		Outputs: []types.TxOutput{
			{Amount: 500, Target: types.KeyOutputTarget{Key: key}},
			{Amount: 400, Target: types.KeyOutputTarget{Key: key}},
		},
		Extra: extra,
	}
}

func TestSerializePrefixRoundTrip(t *testing.T) {
	p := samplePrefix()
	raw, err := SerializePrefix(p)
	require.NoError(t, err)

	got, n, err := ParsePrefix(raw)
	require.NoError(t, err)
	require.Equal(t, len(raw), n)
	require.Equal(t, p, got)
}

func TestSerializeFullRoundTrip(t *testing.T) {
	p := samplePrefix()
	var sig types.Signature
	sig[0] = 0xAB
	txn := types.Transaction{Prefix: p, Signatures: []types.Signature{sig}}

	raw, err := SerializeFull(txn)
	require.NoError(t, err)

	got, err := ParseTransaction(raw)
	require.NoError(t, err)
	require.Equal(t, txn, got)
}

func TestPrefixHashDeterministic(t *testing.T) {
	p := samplePrefix()
	h1, err := PrefixHash(p)
	require.NoError(t, err)
	h2, err := PrefixHash(p)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestPrefixHashChangesWithContent(t *testing.T) {
	p1 := samplePrefix()
	p2 := samplePrefix()
	p2.UnlockTime = 5

	h1, err := PrefixHash(p1)
	require.NoError(t, err)
	h2, err := PrefixHash(p2)
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}

func TestParsePrefixRejectsUnknownInputTag(t *testing.T) {
	var buf []byte
	buf = codec.WriteVarint(buf, 1) // version
	buf = codec.WriteVarint(buf, 0) // unlock_time
	buf = codec.WriteVarint(buf, 1) // n_inputs
	buf = append(buf, 0x77)         // unrecognized tag
	_, _, err := ParsePrefix(buf)
	require.Error(t, err)
}

func TestParseTransactionRejectsTruncatedSignature(t *testing.T) {
	p := samplePrefix()
	raw, err := SerializePrefix(p)
	require.NoError(t, err)
	// missing the one required 64-byte signature entirely
	_, err = ParseTransaction(raw)
	require.Error(t, err)
}
