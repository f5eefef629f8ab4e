package blockchain

import (
	cmn "github.com/herdius/herdius-savings/libs/common"
)

// Timestamp is the block creation time.
type Timestamp struct {
	Seconds int64
	Nanos   int64
}

// BaseHeader carries the chain position and the commitment roots of a block.
type BaseHeader struct {
	Height        uint64
	Time          *Timestamp
	LastBlockHash cmn.HexBytes
	StateRoot     cmn.HexBytes
	TxRoot        cmn.HexBytes
}

// BaseBlock is one sealed block: its header, its hash and the transactions
// applied in it.
type BaseBlock struct {
	Header    *BaseHeader
	BlockHash cmn.HexBytes
	Txs       [][]byte
}

// GetHeight returns the block height; zero for a nil block or header.
func (bb *BaseBlock) GetHeight() uint64 {
	if bb == nil || bb.Header == nil {
		return 0
	}
	return bb.Header.Height
}
