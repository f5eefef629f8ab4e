package savings

import "github.com/pkg/errors"

// The four outcomes a failed savings operation can produce. They are detected
// before any state is written and returned to the dispatch layer as-is.
var (
	// ErrOverflow : the fixed-point range was exceeded during accrual or
	// balance arithmetic.
	ErrOverflow = errors.New("savings: fixed-point overflow")

	// ErrInsufficientFunds : a withdrawal exceeds the accrued balance, or a
	// deposit exceeds the spendable balance backing it.
	ErrInsufficientFunds = errors.New("savings: insufficient funds")

	// ErrAccountNotFound : a withdrawal against a never-created entry. A
	// zero-principal entry that exists does not produce this.
	ErrAccountNotFound = errors.New("savings: account not found")

	// ErrInvalidAmount : a zero-amount deposit or withdraw request.
	ErrInvalidAmount = errors.New("savings: invalid amount")
)
