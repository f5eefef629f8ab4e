package fixed

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRate(t *testing.T) {
	r, err := ParseRate("0.01")
	assert.NoError(t, err)
	// floor(0.01 * 2^32)
	assert.Equal(t, int64(42949672), r.Raw())

	r, err = ParseRate("-0.5")
	assert.NoError(t, err)
	assert.Equal(t, -int64(One)/2, r.Raw())

	r, err = ParseRate("0")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), r.Raw())
	assert.Equal(t, One, r.Growth().Raw())
}

func TestParseRateRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "abc", "1.2.3", "--1"} {
		_, err := ParseRate(s)
		assert.Error(t, err, s)
	}
}

func TestParseRateRejectsOutOfRange(t *testing.T) {
	_, err := ParseRate("-1")
	assert.Error(t, err)
	_, err = ParseRate("-1.5")
	assert.Error(t, err)
	_, err = ParseRate("4294967296")
	assert.Error(t, err)
}

func TestNewRateBounds(t *testing.T) {
	_, err := NewRate(-int64(One))
	assert.Error(t, err)
	r, err := NewRate(-int64(One) + 1)
	assert.NoError(t, err)
	assert.True(t, r.Growth().Raw() > 0)
}

func TestMulExact(t *testing.T) {
	oneAndHalf := Factor{raw: One + One/2}
	got, ok := oneAndHalf.Mul(oneAndHalf)
	assert.True(t, ok)
	// 1.5 * 1.5 == 2.25 exactly in Q32.32
	assert.Equal(t, 2*One+One/4, got.Raw())
}

func TestMulOverflow(t *testing.T) {
	big := Factor{raw: math.MaxUint64}
	_, ok := big.Mul(big)
	assert.False(t, ok)
}

func TestPowIdentity(t *testing.T) {
	f := Factor{raw: One + 12345}
	got, ok := f.Pow(0)
	assert.True(t, ok)
	assert.Equal(t, Identity().Raw(), got.Raw())

	got, ok = f.Pow(1)
	assert.True(t, ok)
	assert.Equal(t, f.Raw(), got.Raw())
}

func TestPowExact(t *testing.T) {
	two := Factor{raw: 2 * One}
	got, ok := two.Pow(10)
	assert.True(t, ok)
	assert.Equal(t, 1024*One, got.Raw())

	// 2^31 is the largest power of two representable in Q32.32.
	got, ok = two.Pow(31)
	assert.True(t, ok)
	assert.Equal(t, uint64(1)<<63, got.Raw())

	_, ok = two.Pow(32)
	assert.False(t, ok)
}

func TestApply(t *testing.T) {
	oneAndHalf := Factor{raw: One + One/2}
	got, ok := Apply(100, oneAndHalf)
	assert.True(t, ok)
	assert.Equal(t, uint64(150), got)

	got, ok = Apply(100, Identity())
	assert.True(t, ok)
	assert.Equal(t, uint64(100), got)

	_, ok = Apply(math.MaxUint64, Factor{raw: 2 * One})
	assert.False(t, ok)
}

func TestApplyTruncates(t *testing.T) {
	// 1/3 in Q32.32 is truncated, so applying it stays below the true value.
	third := Factor{raw: One / 3}
	got, ok := Apply(3, third)
	assert.True(t, ok)
	assert.True(t, got <= 1)
}
