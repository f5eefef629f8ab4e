package savings

import (
	"github.com/herdius/herdius-savings/libs/fixed"
)

// Accrue computes the balance principal grows to after elapsed blocks of
// compounding at rate: principal * (1 + rate)^elapsed, evaluated by checked
// fixed-point exponentiation-by-squaring. Accrue(p, 0, r) returns p exactly,
// and for a non-negative rate the result never decreases. It has no side
// effects; ErrOverflow is returned when the result leaves the uint64 range.
func Accrue(principal uint64, elapsed uint64, rate fixed.Rate) (uint64, error) {
	if elapsed == 0 || principal == 0 {
		return principal, nil
	}
	factor, ok := rate.Growth().Pow(elapsed)
	if !ok {
		return 0, ErrOverflow
	}
	accrued, ok := fixed.Apply(principal, factor)
	if !ok {
		return 0, ErrOverflow
	}
	return accrued, nil
}
