package savings

import (
	"math"
	"testing"

	"github.com/herdius/herdius-savings/libs/fixed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onePercent(t *testing.T) fixed.Rate {
	r, err := fixed.ParseRate("0.01")
	require.NoError(t, err)
	return r
}

func TestAccrueIdentity(t *testing.T) {
	rate := onePercent(t)
	for _, p := range []uint64{0, 1, 100, math.MaxUint64} {
		got, err := Accrue(p, 0, rate)
		assert.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestAccrueZeroPrincipal(t *testing.T) {
	got, err := Accrue(0, 1000, onePercent(t))
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), got)
}

func TestAccrueCompoundTenBlocks(t *testing.T) {
	// 100 units of 10^6 base units each, 1% per block over 10 blocks:
	// 100 * 1.01^10 = 110.4622..., truncated per Q32.32 rules.
	got, err := Accrue(100000000, 10, onePercent(t))
	assert.NoError(t, err)
	assert.Equal(t, uint64(110462212), got)
}

func TestAccrueMonotonicInElapsed(t *testing.T) {
	rate := onePercent(t)
	prev := uint64(0)
	for elapsed := uint64(0); elapsed <= 200; elapsed++ {
		got, err := Accrue(5000000, elapsed, rate)
		require.NoError(t, err)
		require.True(t, got >= prev, "elapsed %d: %d < %d", elapsed, got, prev)
		prev = got
	}
}

func TestAccrueNeverBelowPrincipalForPositiveRate(t *testing.T) {
	rate := onePercent(t)
	for _, p := range []uint64{1, 3, 99, 12345} {
		got, err := Accrue(p, 1, rate)
		require.NoError(t, err)
		assert.True(t, got >= p)
	}
}

func TestAccrueCompoundingConsistency(t *testing.T) {
	rate := onePercent(t)
	p := uint64(100000000)

	whole, err := Accrue(p, 10, rate)
	require.NoError(t, err)

	half, err := Accrue(p, 5, rate)
	require.NoError(t, err)
	split, err := Accrue(half, 5, rate)
	require.NoError(t, err)

	// Each settlement truncates, so the split path may undershoot slightly.
	assert.True(t, split <= whole)
	assert.True(t, whole-split <= 10, "drift %d exceeds tolerance", whole-split)
}

func TestAccrueZeroRate(t *testing.T) {
	rate, err := fixed.ParseRate("0")
	require.NoError(t, err)
	got, err := Accrue(123456, 100000, rate)
	assert.NoError(t, err)
	assert.Equal(t, uint64(123456), got)
}

func TestAccrueNegativeRateDecays(t *testing.T) {
	rate, err := fixed.ParseRate("-0.5")
	require.NoError(t, err)
	got, err := Accrue(1024, 3, rate)
	assert.NoError(t, err)
	assert.Equal(t, uint64(128), got)
}

func TestAccrueOverflow(t *testing.T) {
	rate := onePercent(t)

	// 1.01^3000 far exceeds the Q32.32 factor range.
	_, err := Accrue(1000, 3000, rate)
	assert.Equal(t, ErrOverflow, err)

	// The factor fits but the scaled principal does not.
	_, err = Accrue(math.MaxUint64, 10, rate)
	assert.Equal(t, ErrOverflow, err)
}
