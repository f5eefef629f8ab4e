// Package fixed implements unsigned Q32.32 fixed-point arithmetic.
//
// Every operation is deterministic: results depend only on the operand bit
// patterns, never on platform floating-point behavior. Multiplications run
// through a 128-bit intermediate and truncate toward zero; overflow is
// reported, never wrapped.
package fixed

import (
	"fmt"
	"math/big"
	"math/bits"
	"strings"
)

// FracBits is the number of fractional bits in the Q32.32 representation.
const FracBits = 32

// One is the raw representation of 1.0.
const One = uint64(1) << FracBits

// Rate is a signed per-block growth fraction. Raw value is scaled by 2^32.
// A Rate must be greater than -1.0 so that the growth factor stays positive.
type Rate struct {
	raw int64
}

// Factor is an unsigned Q32.32 multiplier, typically (1 + rate)^n.
type Factor struct {
	raw uint64
}

// NewRate builds a Rate from a raw 2^32-scaled value.
func NewRate(raw int64) (Rate, error) {
	if raw <= -int64(One) {
		return Rate{}, fmt.Errorf("rate %d out of range: must be greater than -1.0", raw)
	}
	return Rate{raw: raw}, nil
}

// ParseRate parses a decimal string such as "0.01" or "-0.005" into a Rate,
// truncating toward zero at the 32nd fractional bit.
func ParseRate(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Rate{}, fmt.Errorf("malformed rate %q", s)
	}
	num := new(big.Int).Lsh(r.Num(), FracBits)
	raw := num.Quo(num, r.Denom())
	if !raw.IsInt64() {
		return Rate{}, fmt.Errorf("rate %q out of range", s)
	}
	return NewRate(raw.Int64())
}

// Raw returns the 2^32-scaled representation of r.
func (r Rate) Raw() int64 { return r.raw }

func (r Rate) String() string {
	return new(big.Rat).SetFrac64(r.raw, int64(One)).FloatString(10)
}

// Growth returns the per-block growth factor 1 + r. The Rate invariant
// guarantees the result is positive.
func (r Rate) Growth() Factor {
	return Factor{raw: uint64(int64(One) + r.raw)}
}

// Identity is the multiplicative identity factor.
func Identity() Factor { return Factor{raw: One} }

// Raw returns the 2^32-scaled representation of f.
func (f Factor) Raw() uint64 { return f.raw }

// Mul multiplies two factors, truncating toward zero. ok is false when the
// product does not fit the Q32.32 range.
func (f Factor) Mul(g Factor) (Factor, bool) {
	hi, lo := bits.Mul64(f.raw, g.raw)
	// The 128-bit product is Q64.64; shifting right by 32 yields Q32.32.
	if hi>>FracBits != 0 {
		return Factor{}, false
	}
	return Factor{raw: hi<<(64-FracBits) | lo>>FracBits}, true
}

// Pow raises f to the n-th power by exponentiation-by-squaring, checking for
// overflow at every multiplication. Pow(f, 0) is Identity exactly.
func (f Factor) Pow(n uint64) (Factor, bool) {
	result := Identity()
	base := f
	for n > 0 {
		if n&1 == 1 {
			var ok bool
			if result, ok = result.Mul(base); !ok {
				return Factor{}, false
			}
		}
		n >>= 1
		if n == 0 {
			break
		}
		var ok bool
		if base, ok = base.Mul(base); !ok {
			return Factor{}, false
		}
	}
	return result, true
}

// Apply scales an integer amount by f, truncating toward zero. ok is false
// when the result exceeds the uint64 range.
func Apply(amount uint64, f Factor) (uint64, bool) {
	hi, lo := bits.Mul64(amount, f.raw)
	if hi>>FracBits != 0 {
		return 0, false
	}
	return hi<<(64-FracBits) | lo>>FracBits, true
}
