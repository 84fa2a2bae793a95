package bigint

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	values := []string{
		"0",
		"1",
		"255",
		"256",
		"1000000000000000000",
		"115792089237316195423570985008687907853269984665640564039457584007913129639935", // 2^256-1
	}
	for _, s := range values {
		val, err := uint256.FromDecimal(s)
		require.NoError(t, err)

		data := ToBytes(val)
		require.True(t, len(data) <= MaxBytesLen)
		assert.Equal(t, val, FromBytes(data), s)
	}
}

func TestZeroIsEmpty(t *testing.T) {
	assert.Empty(t, ToBytes(new(uint256.Int)))
	assert.True(t, FromBytes(nil).IsZero())
	assert.True(t, FromBytes([]byte{}).IsZero())
}

func TestLittleEndianOrder(t *testing.T) {
	// 0x0102 serializes low byte first.
	assert.Equal(t, []byte{0x02, 0x01}, ToBytes(uint256.NewInt(0x0102)))
	assert.Equal(t, uint256.NewInt(0x0102), FromBytes([]byte{0x02, 0x01}))
}
