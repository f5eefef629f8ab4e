package blockchain

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	amino "github.com/tendermint/go-amino"

	"github.com/herdius/herdius-savings/crypto/herhash"
	"github.com/herdius/herdius-savings/storage/db"
)

var cdc = amino.NewCodec()

const lastBlockKey = "LastBlock"

// ServiceI is the blockchain service interface. It supplies the current
// chain height (the clock input of the savings ledger) and persists sealed
// blocks.
type ServiceI interface {
	CreateOrLoadGenesisBlock(stateRoot []byte) (*BaseBlock, error)
	GetBlockByHeight(height uint64) (*BaseBlock, error)
	GetLastBlock() (*BaseBlock, error)
	AddBaseBlock(bb *BaseBlock) error
	CurrentHeight() (uint64, error)
}

var _ ServiceI = (*Service)(nil)

// Service is the badger-backed block store.
type Service struct {
	db db.DB
}

// NewService returns a block store over d.
func NewService(d db.DB) *Service {
	return &Service{db: d}
}

// CreateOrLoadGenesisBlock returns the existing genesis block, or seals a
// fresh one at height 0 over the given state root.
func (s *Service) CreateOrLoadGenesisBlock(stateRoot []byte) (*BaseBlock, error) {
	genesisBlock, err := s.GetBlockByHeight(0)
	if err != nil {
		return nil, errors.Wrap(err, "failed while looking for the genesis block")
	}
	if genesisBlock != nil {
		return genesisBlock, nil
	}

	ts := time.Now().UTC()
	header := &BaseHeader{
		Height:    0,
		Time:      &Timestamp{Seconds: ts.Unix(), Nanos: ts.UnixNano()},
		StateRoot: stateRoot,
	}
	genesisBlock = &BaseBlock{Header: header}
	if err := sealBlockHash(genesisBlock); err != nil {
		return nil, err
	}
	if err := s.AddBaseBlock(genesisBlock); err != nil {
		return nil, err
	}
	return genesisBlock, nil
}

// NewBaseBlock assembles and seals a block from its header and the applied
// transactions.
func NewBaseBlock(header *BaseHeader, txs [][]byte) (*BaseBlock, error) {
	bb := &BaseBlock{Header: header, Txs: txs}
	if err := sealBlockHash(bb); err != nil {
		return nil, err
	}
	return bb, nil
}

// AddBaseBlock persists bb and advances the last-block pointer.
func (s *Service) AddBaseBlock(bb *BaseBlock) error {
	bz, err := cdc.MarshalJSON(bb)
	if err != nil {
		return errors.Wrap(err, "failed to marshal base block")
	}
	if err := s.db.Set(bb.BlockHash, bz); err != nil {
		return err
	}
	if err := s.db.Set(heightKey(bb.GetHeight()), bb.BlockHash); err != nil {
		return err
	}
	return s.db.Set([]byte(lastBlockKey), bz)
}

// GetBlockByHeight returns the block sealed at height, or nil when the chain
// has not reached it.
func (s *Service) GetBlockByHeight(height uint64) (*BaseBlock, error) {
	hash, err := s.db.Get(heightKey(height))
	if err != nil {
		return nil, err
	}
	if hash == nil {
		return nil, nil
	}
	return s.getBlockByHash(hash)
}

// GetLastBlock returns the most recently sealed block, or nil before genesis.
func (s *Service) GetLastBlock() (*BaseBlock, error) {
	bz, err := s.db.Get([]byte(lastBlockKey))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	bb := &BaseBlock{}
	if err := cdc.UnmarshalJSON(bz, bb); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal last block")
	}
	return bb, nil
}

// CurrentHeight reports the height of the last sealed block. It is
// monotonically non-decreasing for the lifetime of the chain.
func (s *Service) CurrentHeight() (uint64, error) {
	lastBlock, err := s.GetLastBlock()
	if err != nil {
		return 0, err
	}
	if lastBlock == nil {
		return 0, errors.New("blockchain: no genesis block")
	}
	return lastBlock.GetHeight(), nil
}

func (s *Service) getBlockByHash(hash []byte) (*BaseBlock, error) {
	bz, err := s.db.Get(hash)
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	bb := &BaseBlock{}
	if err := cdc.UnmarshalJSON(bz, bb); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal block %X", hash)
	}
	return bb, nil
}

// sealBlockHash computes and sets the block hash over the amino-encoded
// header.
func sealBlockHash(bb *BaseBlock) error {
	headerBz, err := cdc.MarshalJSON(bb.Header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal base header")
	}
	bb.BlockHash = herhash.Sum(headerBz)
	return nil
}

func heightKey(height uint64) []byte {
	return []byte(fmt.Sprintf("height:%d", height))
}
