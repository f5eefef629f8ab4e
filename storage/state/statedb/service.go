package statedb

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/pkg/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// Trie key prefixes. Spendable accounts and savings entries share the state
// trie but live in disjoint key spaces.
const (
	accountKeyPrefix = "account:"
	savingsKeyPrefix = "savings:"
)

// ErrInsufficientBalance is returned by Transfer when the debited account
// cannot cover the amount.
var ErrInsufficientBalance = errors.New("statedb: insufficient balance")

// ErrBalanceOverflow is returned when a credit would push a balance past the
// uint64 range.
var ErrBalanceOverflow = errors.New("statedb: balance overflow")

// State is the account state, a Merkle Patricia Trie over a backing database.
// Writes are buffered in the trie until Commit, so a block that fails mid-way
// is never observable on disk.
//
// mu serializes every trie access. The eth trie resolves and caches nodes on
// reads too, so lookups need the same exclusion as writes.
type State struct {
	mu   sync.Mutex
	trie *trie.Trie
	db   *trie.Database
}

// New opens the state at root over a LevelDB directory.
func New(root common.Hash, dir string) (*State, error) {
	ldb, err := ethdb.NewLDBDatabase(dir, 0, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open state leveldb")
	}
	return load(root, trie.NewDatabase(ldb))
}

// NewMemory opens an empty in-memory state, for tests.
func NewMemory() (*State, error) {
	return load(common.Hash{}, trie.NewDatabase(ethdb.NewMemDatabase()))
}

// At reopens the state at a different root over the same backing database.
func (s *State) At(root common.Hash) (*State, error) {
	return load(root, s.db)
}

func load(root common.Hash, triedb *trie.Database) (*State, error) {
	t, err := trie.New(root, triedb)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open state trie at %x", root)
	}
	return &State{trie: t, db: triedb}, nil
}

// Account loads the spendable account for addr. found is false when the
// address has never been credited.
func (s *State) Account(addr string) (Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account(addr)
}

func (s *State) account(addr string) (Account, bool, error) {
	bz, err := s.trie.TryGet(accountKey(addr))
	if err != nil {
		return Account{}, false, errors.Wrapf(err, "failed to read account %s", addr)
	}
	if len(bz) == 0 {
		return Account{}, false, nil
	}
	var a Account
	if err := cdc.UnmarshalJSON(bz, &a); err != nil {
		return Account{}, false, errors.Wrapf(err, "failed to unmarshal account %s", addr)
	}
	return a, true, nil
}

// SetAccount stores a spendable account.
func (s *State) SetAccount(a Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setAccount(a)
}

func (s *State) setAccount(a Account) error {
	bz, err := cdc.MarshalJSON(a)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal account %s", a.Address)
	}
	return errors.Wrapf(s.trie.TryUpdate(accountKey(a.Address), bz), "failed to write account %s", a.Address)
}

// SavingsEntry loads the savings ledger record for addr. The found flag
// distinguishes a never-created entry from one resting at zero principal.
func (s *State) SavingsEntry(addr string) (SavingsEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bz, err := s.trie.TryGet(savingsKey(addr))
	if err != nil {
		return SavingsEntry{}, false, errors.Wrapf(err, "failed to read savings entry %s", addr)
	}
	if len(bz) == 0 {
		return SavingsEntry{}, false, nil
	}
	var e SavingsEntry
	if err := cdc.UnmarshalJSON(bz, &e); err != nil {
		return SavingsEntry{}, false, errors.Wrapf(err, "failed to unmarshal savings entry %s", addr)
	}
	return e, true, nil
}

// SetSavingsEntry stores a savings ledger record.
func (s *State) SetSavingsEntry(addr string, e SavingsEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bz, err := cdc.MarshalJSON(e)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal savings entry %s", addr)
	}
	return errors.Wrapf(s.trie.TryUpdate(savingsKey(addr), bz), "failed to write savings entry %s", addr)
}

// Balance returns the spendable balance of addr; zero for unknown addresses.
func (s *State) Balance(addr string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, _, err := s.account(addr)
	if err != nil {
		return 0, err
	}
	return a.Balance, nil
}

// Transfer moves amount from one spendable balance to another.
func (s *State) Transfer(from, to string, amount uint64) error {
	if amount == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sender, _, err := s.account(from)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return ErrInsufficientBalance
	}
	sender.Address = from
	sender.Balance -= amount
	if err := s.setAccount(sender); err != nil {
		return err
	}
	return s.credit(to, amount)
}

// Issue mints amount into the spendable balance of addr. It is how settled
// interest enters circulation.
func (s *State) Issue(to string, amount uint64) error {
	if amount == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credit(to, amount)
}

func (s *State) credit(to string, amount uint64) error {
	receiver, _, err := s.account(to)
	if err != nil {
		return err
	}
	if receiver.Balance+amount < receiver.Balance {
		return ErrBalanceOverflow
	}
	receiver.Address = to
	receiver.Balance += amount
	return s.setAccount(receiver)
}

// Root returns the current (uncommitted) trie root.
func (s *State) Root() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trie.Hash().Bytes()
}

// Commit flushes buffered writes and returns the new state root.
func (s *State) Commit() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	root, err := s.trie.Commit(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to commit state trie")
	}
	if err := s.db.Commit(root, false); err != nil {
		return nil, errors.Wrap(err, "failed to flush trie database")
	}
	return root.Bytes(), nil
}

func accountKey(addr string) []byte {
	return []byte(accountKeyPrefix + addr)
}

func savingsKey(addr string) []byte {
	return []byte(savingsKeyPrefix + addr)
}
