package service

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/herdius/herdius-savings/aws"
	"github.com/herdius/herdius-savings/blockchain"
	"github.com/herdius/herdius-savings/crypto/merkle"
	"github.com/herdius/herdius-savings/libs/log"
	"github.com/herdius/herdius-savings/savings"
	"github.com/herdius/herdius-savings/storage/mempool"
	"github.com/herdius/herdius-savings/storage/state/statedb"
	txbyte "github.com/herdius/herdius-savings/tx"
)

// SupervisorI is the dispatch layer of the savings chain. It owns the order
// in which pending transactions hit the ledger and seals the result into a
// block.
type SupervisorI interface {
	SubmitTx(t txbyte.Tx) int
	ProcessTxs(lastBlock *blockchain.BaseBlock) (*blockchain.BaseBlock, error)
}

var _ SupervisorI = (*Supervisor)(nil)

// Supervisor applies savings transactions sequentially: one logical writer
// per account per block, ordered by mempool arrival.
type Supervisor struct {
	ledger  *savings.Service
	chain   blockchain.ServiceI
	state   *statedb.State
	memPool *mempool.MemPool
	env     string
	backup  bool
	mtx     sync.Mutex
}

// New wires a Supervisor. backup enables the S3 base-block backup after each
// sealed block.
func New(ledger *savings.Service, chain blockchain.ServiceI, state *statedb.State, memPool *mempool.MemPool, env string, backup bool) *Supervisor {
	return &Supervisor{
		ledger:  ledger,
		chain:   chain,
		state:   state,
		memPool: memPool,
		env:     env,
		backup:  backup,
	}
}

// SubmitTx queues a transaction for the next block and returns the number of
// pending transactions.
func (s *Supervisor) SubmitTx(t txbyte.Tx) int {
	return s.memPool.AddTx(t)
}

// ProcessTxs drains the mempool against the state at lastBlock and seals the
// next base block. A transaction that fails leaves no trace in state; the
// block is sealed from the ones that applied. The whole batch commits with a
// single trie commit, so a storage failure loses nothing but the block.
func (s *Supervisor) ProcessTxs(lastBlock *blockchain.BaseBlock) (*blockchain.BaseBlock, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	height := lastBlock.GetHeight() + 1
	pending := s.memPool.GetTxs()
	applied := make([][]byte, 0, len(pending))

	for _, raw := range pending {
		st, err := txbyte.Decode(raw)
		if err != nil {
			log.Error().Msgf("Failed to decode tx, dropping it: %v", err)
			continue
		}
		if err := s.applyTx(st, height); err != nil {
			log.Warn().
				Str("address", st.SenderAddress).
				Str("type", st.Type).
				Uint64("amount", st.Amount).
				Msgf("Tx rejected: %v", err)
			continue
		}
		applied = append(applied, raw)
	}

	stateRoot, err := s.state.Commit()
	if err != nil {
		return nil, errors.Wrap(err, "failed to commit state")
	}

	ts := time.Now().UTC()
	header := &blockchain.BaseHeader{
		Height:        height,
		Time:          &blockchain.Timestamp{Seconds: ts.Unix(), Nanos: ts.UnixNano()},
		LastBlockHash: lastBlock.BlockHash,
		StateRoot:     stateRoot,
		TxRoot:        merkle.SimpleHashFromByteSlices(applied),
	}
	baseBlock, err := blockchain.NewBaseBlock(header, applied)
	if err != nil {
		return nil, err
	}
	if err := s.chain.AddBaseBlock(baseBlock); err != nil {
		return nil, errors.Wrap(err, "failed to persist base block")
	}
	s.memPool.RemoveTxs(len(pending))

	log.Info().
		Uint64("height", height).
		Int("txs", len(applied)).
		Int("rejected", len(pending)-len(applied)).
		Msg("Sealed base block")

	if s.backup {
		if _, err := aws.TryBackupBaseBlock(s.env, lastBlock, baseBlock); err != nil {
			log.Warn().Msgf("nonfatal: failed to backup new block to S3: %v", err)
		}
	}
	return baseBlock, nil
}

// applyTx validates the nonce and routes the operation to the ledger. The
// ledger performs all of its checks before its first write, so a returned
// error means state is untouched.
func (s *Supervisor) applyTx(st *txbyte.SavingsTx, height uint64) error {
	account, _, err := s.state.Account(st.SenderAddress)
	if err != nil {
		return err
	}
	if st.Nonce <= account.Nonce {
		return errors.Errorf("stale nonce %d, account is at %d", st.Nonce, account.Nonce)
	}

	switch st.Type {
	case txbyte.TypeDeposit:
		_, err = s.ledger.Deposit(st.SenderAddress, st.Amount, height)
	case txbyte.TypeWithdraw:
		_, err = s.ledger.Withdraw(st.SenderAddress, st.Amount, height)
	default:
		return errors.Errorf("unknown tx type %q", st.Type)
	}
	if err != nil {
		return err
	}

	// Reload: the ledger just moved spendable funds for this account.
	account, _, err = s.state.Account(st.SenderAddress)
	if err != nil {
		return err
	}
	account.Address = st.SenderAddress
	account.Nonce = st.Nonce
	return s.state.SetAccount(account)
}

// EventLogger adapts the structured logger to the savings event recorder, the
// chain's equivalent of runtime event deposition.
type EventLogger struct{}

// Record logs one applied savings operation.
func (EventLogger) Record(e savings.Event) {
	log.Info().
		Str("event", string(e.Kind)).
		Str("address", e.Address).
		Uint64("amount", e.Amount).
		Uint64("interest", e.Interest).
		Uint64("principal", e.Principal).
		Uint64("height", e.Height).
		Msg("Savings event")
}
