package savings

import (
	"github.com/herdius/herdius-savings/libs/fixed"
	"github.com/herdius/herdius-savings/storage/state/statedb"
)

// PotAddress is the module-owned account holding all deposited savings funds.
// Its spendable balance equals the sum of all stored principals.
const PotAddress = "HxSavingsPot0000000000000000000000"

// EntryStore is the persistence capability for savings ledger records, keyed
// by account address. The found flag makes the first-deposit and
// account-not-found branches explicit.
type EntryStore interface {
	SavingsEntry(addr string) (statedb.SavingsEntry, bool, error)
	SetSavingsEntry(addr string, e statedb.SavingsEntry) error
}

// Currency is the value-transfer capability savings operations move funds
// through. It is consumed, not owned; *statedb.State implements it.
type Currency interface {
	Balance(addr string) (uint64, error)
	Transfer(from, to string, amount uint64) error
	Issue(to string, amount uint64) error
}

// Service is the savings ledger state machine. Every mutating operation
// settles pending interest through Accrue before applying its delta, so
// interest is neither lost nor double-counted. All validation happens before
// the first write; on any error the stored entry is untouched.
type Service struct {
	store    EntryStore
	currency Currency
	rate     fixed.Rate
	recorder Recorder
}

// NewService wires a savings ledger over its collaborators. recorder may be
// nil. The rate is fixed for the lifetime of the service.
func NewService(store EntryStore, currency Currency, rate fixed.Rate, recorder Recorder) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{
		store:    store,
		currency: currency,
		rate:     rate,
		recorder: recorder,
	}
}

// Rate returns the per-block interest rate the service was deployed with.
func (s *Service) Rate() fixed.Rate {
	return s.rate
}

// AccruedBalance returns the principal addr would hold once settled at
// height, without writing anything.
func (s *Service) AccruedBalance(addr string, height uint64) (uint64, error) {
	entry, found, err := s.store.SavingsEntry(addr)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, ErrAccountNotFound
	}
	return Accrue(entry.Principal, height-entry.LastUpdateHeight, s.rate)
}

// Deposit settles pending interest for addr and adds amount to the principal,
// funded from the account's spendable balance. A previously unknown account
// gets a fresh entry starting at height.
func (s *Service) Deposit(addr string, amount, height uint64) (statedb.SavingsEntry, error) {
	if amount == 0 {
		return statedb.SavingsEntry{}, ErrInvalidAmount
	}
	// The pot is module owned and never holds a savings entry of its own;
	// letting it operate would double count the pooled principals.
	if addr == PotAddress {
		return statedb.SavingsEntry{}, ErrAccountNotFound
	}
	entry, found, err := s.store.SavingsEntry(addr)
	if err != nil {
		return statedb.SavingsEntry{}, err
	}
	if !found {
		entry = statedb.SavingsEntry{Principal: 0, LastUpdateHeight: height}
	}
	accrued, err := Accrue(entry.Principal, height-entry.LastUpdateHeight, s.rate)
	if err != nil {
		return statedb.SavingsEntry{}, err
	}
	principal := accrued + amount
	if principal < accrued {
		return statedb.SavingsEntry{}, ErrOverflow
	}
	interest := accrued - entry.Principal
	spendable, err := s.currency.Balance(addr)
	if err != nil {
		return statedb.SavingsEntry{}, err
	}
	if spendable < amount {
		return statedb.SavingsEntry{}, ErrInsufficientFunds
	}
	if err := s.checkPotCapacity(interest, amount); err != nil {
		return statedb.SavingsEntry{}, err
	}

	// All checks passed; the writes below are buffered in the state trie and
	// only fail on storage errors, which abort the whole block before commit.
	if err := s.currency.Issue(PotAddress, interest); err != nil {
		return statedb.SavingsEntry{}, err
	}
	if err := s.currency.Transfer(addr, PotAddress, amount); err != nil {
		if err == statedb.ErrInsufficientBalance {
			err = ErrInsufficientFunds
		}
		return statedb.SavingsEntry{}, err
	}
	entry = statedb.SavingsEntry{Principal: principal, LastUpdateHeight: height}
	if err := s.store.SetSavingsEntry(addr, entry); err != nil {
		return statedb.SavingsEntry{}, err
	}
	s.recorder.Record(Event{
		Kind:      EventDeposited,
		Address:   addr,
		Amount:    amount,
		Interest:  interest,
		Principal: entry.Principal,
		Height:    height,
	})
	return entry, nil
}

// Withdraw settles pending interest for addr and releases amount back to the
// account's spendable balance. Withdrawing the full accrued balance leaves a
// zero-principal entry in place; it is never deleted.
func (s *Service) Withdraw(addr string, amount, height uint64) (statedb.SavingsEntry, error) {
	if amount == 0 {
		return statedb.SavingsEntry{}, ErrInvalidAmount
	}
	if addr == PotAddress {
		return statedb.SavingsEntry{}, ErrAccountNotFound
	}
	entry, found, err := s.store.SavingsEntry(addr)
	if err != nil {
		return statedb.SavingsEntry{}, err
	}
	if !found {
		return statedb.SavingsEntry{}, ErrAccountNotFound
	}
	accrued, err := Accrue(entry.Principal, height-entry.LastUpdateHeight, s.rate)
	if err != nil {
		return statedb.SavingsEntry{}, err
	}
	if amount > accrued {
		return statedb.SavingsEntry{}, ErrInsufficientFunds
	}
	interest := accrued - entry.Principal
	spendable, err := s.currency.Balance(addr)
	if err != nil {
		return statedb.SavingsEntry{}, err
	}
	if spendable+amount < spendable {
		return statedb.SavingsEntry{}, ErrOverflow
	}
	if err := s.checkPotCapacity(interest, 0); err != nil {
		return statedb.SavingsEntry{}, err
	}

	if err := s.currency.Issue(PotAddress, interest); err != nil {
		return statedb.SavingsEntry{}, err
	}
	// The pot holds the sum of all principals, so it covers amount here.
	if err := s.currency.Transfer(PotAddress, addr, amount); err != nil {
		if err == statedb.ErrInsufficientBalance {
			err = ErrInsufficientFunds
		}
		return statedb.SavingsEntry{}, err
	}
	entry = statedb.SavingsEntry{Principal: accrued - amount, LastUpdateHeight: height}
	if err := s.store.SetSavingsEntry(addr, entry); err != nil {
		return statedb.SavingsEntry{}, err
	}
	s.recorder.Record(Event{
		Kind:      EventWithdrawn,
		Address:   addr,
		Amount:    amount,
		Interest:  interest,
		Principal: entry.Principal,
		Height:    height,
	})
	return entry, nil
}

// checkPotCapacity guards the pot credits (settled interest plus an incoming
// deposit) against uint64 wrap before any write happens.
func (s *Service) checkPotCapacity(interest, deposit uint64) error {
	pot, err := s.currency.Balance(PotAddress)
	if err != nil {
		return err
	}
	if pot+interest < pot {
		return ErrOverflow
	}
	if pot+interest+deposit < pot+interest {
		return ErrOverflow
	}
	return nil
}
