package account

import (
	cmn "github.com/herdius/herdius-savings/libs/common"
	"github.com/herdius/herdius-savings/savings"
	"github.com/herdius/herdius-savings/storage/state/statedb"
	"github.com/pkg/errors"
)

// ServiceI is an account query service interface.
type ServiceI interface {
	GetAccountByAddress(address string, height uint64) (*Detail, error)
}

var _ ServiceI = (*Service)(nil)

// Service reads account details out of the committed state. The accrued
// savings balance is computed on the fly and leaves state untouched.
type Service struct {
	state  *statedb.State
	ledger *savings.Service
}

func NewService(state *statedb.State, ledger *savings.Service) *Service {
	return &Service{state: state, ledger: ledger}
}

// GetAccountByAddress returns the account view at the given chain height,
// or nil when the address has never been seen.
func (s *Service) GetAccountByAddress(address string, height uint64) (*Detail, error) {
	acc, foundAcc, err := s.state.Account(address)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to retrieve account detail of address %s", address)
	}
	entry, foundEntry, err := s.state.SavingsEntry(address)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to retrieve savings entry of address %s", address)
	}
	if !foundAcc && !foundEntry {
		return nil, nil
	}

	detail := &Detail{
		Address:   address,
		Nonce:     acc.Nonce,
		Balance:   acc.Balance,
		StateRoot: cmn.HexBytes(s.state.Root()).String(),
	}
	if foundEntry {
		accrued, err := s.ledger.AccruedBalance(address, height)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to accrue savings balance of address %s", address)
		}
		detail.SavingsPrincipal = entry.Principal
		detail.AccruedBalance = accrued
		detail.LastUpdateHeight = entry.LastUpdateHeight
	}
	return detail, nil
}
