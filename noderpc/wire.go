package noderpc

import (
	"encoding/hex"

	"coinwallet/types"
	"coinwallet/walleterr"
)

// wireInfo is the raw /info response. network_height is a pointer so a
// genuinely absent field can be told apart from a present zero.
type wireInfo struct {
	Height        uint64  `json:"height"`
	NetworkHeight *uint64 `json:"network_height"`
	Synced        bool    `json:"synced"`
}

func (w wireInfo) normalize() InfoResult {
	r := InfoResult{Height: w.Height, Synced: w.Synced}
	if w.NetworkHeight != nil {
		r.NetworkHeight = *w.NetworkHeight
	}
	return r
}

type wireCheckpoint struct {
	Height uint64 `json:"height"`
	Hash   string `json:"hash"`
}

type wireSyncDataRequest struct {
	BlockHashCheckpoints []wireCheckpoint `json:"blockHashCheckpoints"`
	StartHeight          uint64           `json:"startHeight,omitempty"`
	StartTimestamp       uint64           `json:"startTimestamp,omitempty"`
	BlockCount           uint64           `json:"blockCount,omitempty"`
}

func buildWireRequest(req SyncDataRequest) wireSyncDataRequest {
	cps := make([]wireCheckpoint, 0, len(req.CheckpointHashes))
	for _, cp := range req.CheckpointHashes {
		cps = append(cps, wireCheckpoint{Height: cp.Height, Hash: cp.Hash.String()})
	}
	return wireSyncDataRequest{
		BlockHashCheckpoints: cps,
		StartHeight:          req.StartHeight,
		StartTimestamp:       req.StartTimestamp,
		BlockCount:           req.BlockCount,
	}
}

type wireOutput struct {
	Key               string  `json:"key"`
	Amount            uint64  `json:"amount"`
	GlobalOutputIndex *uint32 `json:"globalOutputIndex"`
}

type wireInputValue struct {
	KeyOffsets []uint32 `json:"keyOffsets"`
}

type wireInput struct {
	Amount          uint64          `json:"amount"`
	KeyOffsets      []uint32        `json:"keyOffsets"`
	Value           *wireInputValue `json:"value"`
	TransactionHash string          `json:"transactionHash"`
	OutputIndex     uint32          `json:"outputIndex"`
	KeyImage        string          `json:"keyImage"`
}

func (w wireInput) offsets() []uint32 {
	if len(w.KeyOffsets) > 0 {
		return w.KeyOffsets
	}
	if w.Value != nil {
		return w.Value.KeyOffsets
	}
	return nil
}

type wireTx struct {
	Hash                  string       `json:"hash"`
	Outputs               []wireOutput `json:"outputs"`
	KeyOutputs            []wireOutput `json:"keyOutputs"`
	Inputs                []wireInput  `json:"inputs"`
	KeyInputs             []wireInput  `json:"keyInputs"`
	TxPublicKey           string       `json:"txPublicKey"`
	TransactionPublicKey  string       `json:"transactionPublicKey"`
	UnlockTime            uint64       `json:"unlockTime"`
}

func (w wireTx) outputs() []wireOutput {
	if len(w.Outputs) > 0 {
		return w.Outputs
	}
	return w.KeyOutputs
}

func (w wireTx) inputs() []wireInput {
	if len(w.Inputs) > 0 {
		return w.Inputs
	}
	return w.KeyInputs
}

func (w wireTx) pubKey() string {
	if w.TxPublicKey != "" {
		return w.TxPublicKey
	}
	return w.TransactionPublicKey
}

func (w wireTx) normalize(isStaking bool) (Tx, error) {
	hash, err := decodeHash(w.Hash)
	if err != nil {
		return Tx{}, err
	}
	pub, err := decodePublicKey(w.pubKey())
	if err != nil {
		return Tx{}, err
	}

	outs := w.outputs()
	outputs := make([]Output, 0, len(outs))
	for _, o := range outs {
		key, err := decodePublicKey(o.Key)
		if err != nil {
			return Tx{}, err
		}
		outputs = append(outputs, Output{Key: key, Amount: o.Amount, GlobalOutputIndex: o.GlobalOutputIndex})
	}

	ins := w.inputs()
	inputs := make([]Input, 0, len(ins))
	for _, in := range ins {
		txHash, err := decodeHash(in.TransactionHash)
		if err != nil {
			return Tx{}, err
		}
		inputs = append(inputs, Input{
			Amount:        in.Amount,
			OutputIndexes: in.offsets(),
			TxHash:        txHash,
			OutIndex:      in.OutputIndex,
		})
	}

	return Tx{
		Hash:       hash,
		TxPubKey:   pub,
		UnlockTime: w.UnlockTime,
		Outputs:    outputs,
		Inputs:     inputs,
		IsStaking:  isStaking,
	}, nil
}

type wireTopBlock struct {
	Hash   string `json:"hash"`
	Height uint64 `json:"height"`
}

type wireBlock struct {
	BlockHeight         uint64  `json:"blockHeight"`
	BlockHash           string  `json:"blockHash"`
	BlockTimestamp      uint64  `json:"blockTimestamp"`
	CoinbaseTX          *wireTx `json:"coinbaseTX"`
	CoinbaseTransaction *wireTx `json:"coinbaseTransaction"`
	Transactions        []wireTx `json:"transactions"`
	StakingTX           []wireTx `json:"stakingTX"`
}

func (w wireBlock) coinbase() *wireTx {
	if w.CoinbaseTX != nil {
		return w.CoinbaseTX
	}
	return w.CoinbaseTransaction
}

func (w wireBlock) normalize() (Block, error) {
	hash, err := decodeHash(w.BlockHash)
	if err != nil {
		return Block{}, err
	}

	var txs []Tx
	if cb := w.coinbase(); cb != nil {
		t, err := cb.normalize(false)
		if err != nil {
			return Block{}, err
		}
		txs = append(txs, t)
	}
	for _, wt := range w.Transactions {
		t, err := wt.normalize(false)
		if err != nil {
			return Block{}, err
		}
		txs = append(txs, t)
	}
	for _, wt := range w.StakingTX {
		t, err := wt.normalize(true)
		if err != nil {
			return Block{}, err
		}
		txs = append(txs, t)
	}

	return Block{
		Height:       w.BlockHeight,
		Hash:         hash,
		Timestamp:    w.BlockTimestamp,
		Transactions: txs,
	}, nil
}

type wireSyncDataResponse struct {
	Status    string      `json:"status"`
	Items     []wireBlock `json:"items"`
	NewBlocks []wireBlock `json:"newBlocks"`
	Synced    bool        `json:"synced"`
	TopBlock  *wireTopBlock `json:"topBlock"`
}

func (w wireSyncDataResponse) blocks() []wireBlock {
	if len(w.Items) > 0 {
		return w.Items
	}
	return w.NewBlocks
}

func (w wireSyncDataResponse) normalize() (SyncDataResult, error) {
	raw := w.blocks()
	blocks := make([]Block, 0, len(raw))
	for _, rb := range raw {
		b, err := rb.normalize()
		if err != nil {
			return SyncDataResult{}, err
		}
		blocks = append(blocks, b)
	}

	result := SyncDataResult{Status: w.Status, Blocks: blocks, Synced: w.Synced}
	if w.TopBlock != nil {
		h, err := decodeHash(w.TopBlock.Hash)
		if err != nil {
			return SyncDataResult{}, err
		}
		result.TopBlock = &TopBlock{Hash: h, Height: w.TopBlock.Height}
	}
	return result, nil
}

type wireSendRequest struct {
	TxAsHex string `json:"tx_as_hex"`
}

type wireSendResponse struct {
	Status          string `json:"status"`
	TransactionHash string `json:"transactionHash"`
	Error           string `json:"error"`
}

func (w wireSendResponse) normalize() (SendResult, error) {
	result := SendResult{Status: w.Status, Error: w.Error}
	if w.TransactionHash != "" {
		h, err := decodeHash(w.TransactionHash)
		if err != nil {
			return SendResult{}, err
		}
		result.TransactionHash = h
	}
	return result, nil
}

func decodeHash(s string) (types.Hash, error) {
	var h types.Hash
	if s == "" {
		return h, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return h, walleterr.New(walleterr.CodecInvalid, "malformed 32-byte hex field: "+s)
	}
	copy(h[:], b)
	return h, nil
}

func decodePublicKey(s string) (types.PublicKey, error) {
	var k types.PublicKey
	if s == "" {
		return k, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		return k, walleterr.New(walleterr.CodecInvalid, "malformed 32-byte hex field: "+s)
	}
	copy(k[:], b)
	return k, nil
}
