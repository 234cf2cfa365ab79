package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUpCents(t *testing.T) {
	assert.Equal(t, int64(100), RoundHalfUpCents(99.5))
	assert.Equal(t, int64(99), RoundHalfUpCents(99.4))
	assert.Equal(t, int64(-100), RoundHalfUpCents(-99.5))
	assert.Equal(t, int64(0), RoundHalfUpCents(0))
}

func TestApplyPercent(t *testing.T) {
	assert.Equal(t, int64(11000), ApplyPercent(10000, 10))
	assert.Equal(t, int64(9000), ApplyPercent(10000, -10))
	// 3333 * 1.15 = 3832.95, rounds to 3833
	assert.Equal(t, int64(3833), ApplyPercent(3333, 15))
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, int64(1500), PercentOf(10000, 15))
	// 15% of 3333 = 499.95, rounds to 500
	assert.Equal(t, int64(500), PercentOf(3333, 15))
}

func TestClampCents(t *testing.T) {
	assert.Equal(t, int64(30000), ClampCents(15000, 30000, 200000))
	assert.Equal(t, int64(200000), ClampCents(999999, 30000, 200000))
	assert.Equal(t, int64(50000), ClampCents(50000, 30000, 200000))
}
