package codec

import (
	"coinwallet/types"
	"coinwallet/walleterr"
)

// EncodeExtra serializes a sequence of extra-field TLV records into the
// raw blob stored as TransactionPrefix.Extra. Known tags (tx pubkey,
// staking) are self-describing; any other tag is framed with an explicit
// varint length so it can be skipped and preserved verbatim on re-parse.
func EncodeExtra(fields []types.ExtraField) []byte {
	var buf []byte
	for _, f := range fields {
		buf = append(buf, f.Tag)
		switch f.Tag {
		case types.ExtraTagTxPubKey, types.ExtraTagStaking:
			buf = append(buf, f.Data...)
		default:
			buf = WriteVarint(buf, uint64(len(f.Data)))
			buf = append(buf, f.Data...)
		}
	}
	return buf
}

// DecodeExtra parses the raw extra blob into its TLV records. Unknown
// tags are preserved byte-for-byte in ExtraField.Data.
func DecodeExtra(buf []byte) ([]types.ExtraField, error) {
	var fields []types.ExtraField
	off := 0
	for off < len(buf) {
		tag := buf[off]
		off++
		switch tag {
		case types.ExtraTagTxPubKey:
			data, next, err := ReadFixed(buf, off, 32)
			if err != nil {
				return nil, err
			}
			off = next
			fields = append(fields, types.ExtraField{Tag: tag, Data: data})
		case types.ExtraTagStaking:
			start := off
			next, err := skipStakingBody(buf, off)
			if err != nil {
				return nil, err
			}
			data := make([]byte, next-start)
			copy(data, buf[start:next])
			off = next
			fields = append(fields, types.ExtraField{Tag: tag, Data: data})
		default:
			length, next, err := ReadVarint(buf, off)
			if err != nil {
				return nil, err
			}
			off = next
			data, next2, err := ReadFixed(buf, off, int(length))
			if err != nil {
				return nil, err
			}
			off = next2
			fields = append(fields, types.ExtraField{Tag: tag, Data: data})
		}
	}
	return fields, nil
}

// skipStakingBody advances past one staking-record body
// (staking_type, amount, unlock_time, lock_days: varint; signature: 64
// bytes) and returns the offset just past it.
func skipStakingBody(buf []byte, off int) (int, error) {
	var err error
	for i := 0; i < 4; i++ {
		_, off, err = ReadVarint(buf, off)
		if err != nil {
			return off, err
		}
	}
	_, off, err = ReadFixed(buf, off, 64)
	if err != nil {
		return off, err
	}
	return off, nil
}

// FindTxPubKey returns the tx public key carried in the extra fields, if
// present.
func FindTxPubKey(fields []types.ExtraField) (types.PublicKey, bool) {
	for _, f := range fields {
		if f.Tag == types.ExtraTagTxPubKey && len(f.Data) == 32 {
			var pk types.PublicKey
			copy(pk[:], f.Data)
			return pk, true
		}
	}
	return types.PublicKey{}, false
}

// TxPubKeyField builds the 0x01 TX_PUBKEY extra record.
func TxPubKeyField(pub types.PublicKey) types.ExtraField {
	return types.ExtraField{Tag: types.ExtraTagTxPubKey, Data: append([]byte{}, pub[:]...)}
}

// EncodeStakingBody serializes a staking record's self-describing body:
// staking_type, amount, unlock_time, lock_days (all varint), then the
// 64-byte signature (§6.3).
func EncodeStakingBody(rec types.StakingRecord) []byte {
	var buf []byte
	buf = WriteVarint(buf, types.StakingRecordType)
	buf = WriteVarint(buf, rec.Amount)
	buf = WriteVarint(buf, rec.UnlockTime)
	buf = WriteVarint(buf, rec.LockDays)
	buf = append(buf, rec.Signature[:]...)
	return buf
}

// DecodeStakingBody parses a staking record's body out of the raw bytes
// stored in an ExtraField (see skipStakingBody for the framing).
func DecodeStakingBody(data []byte) (types.StakingRecord, error) {
	var rec types.StakingRecord
	off := 0
	stakingType, off, err := ReadVarint(data, off)
	if err != nil {
		return rec, err
	}
	if stakingType != types.StakingRecordType {
		return rec, walleterr.New(walleterr.CodecInvalid, "unexpected staking record type")
	}
	rec.Amount, off, err = ReadVarint(data, off)
	if err != nil {
		return rec, err
	}
	rec.UnlockTime, off, err = ReadVarint(data, off)
	if err != nil {
		return rec, err
	}
	rec.LockDays, off, err = ReadVarint(data, off)
	if err != nil {
		return rec, err
	}
	sigBytes, off, err := ReadFixed(data, off, 64)
	if err != nil {
		return rec, err
	}
	_ = off
	copy(rec.Signature[:], sigBytes)
	return rec, nil
}

// StakingField builds the 0x04 STAKING extra record.
func StakingField(rec types.StakingRecord) types.ExtraField {
	return types.ExtraField{Tag: types.ExtraTagStaking, Data: EncodeStakingBody(rec)}
}

// FindStaking returns the decoded staking record carried in the extra
// fields, if present.
func FindStaking(fields []types.ExtraField) (types.StakingRecord, bool, error) {
	for _, f := range fields {
		if f.Tag == types.ExtraTagStaking {
			rec, err := DecodeStakingBody(f.Data)
			if err != nil {
				return rec, false, err
			}
			return rec, true, nil
		}
	}
	return types.StakingRecord{}, false, nil
}
