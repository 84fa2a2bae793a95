package address

import (
	"testing"

	"github.com/nspcc-dev/tokenmart/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint160DecodeEncodeAddress(t *testing.T) {
	addrs := []string{
		"AFsBXShNPGXJCSpxmFnTWEm3UHqyohhEgP",
		"AFxVQPY7SPPSavSvxruarbFzTymG6WH2hk",
	}
	for _, addr := range addrs {
		val, err := StringToUint160(addr)
		require.NoError(t, err)
		assert.Equal(t, addr, Uint160ToString(val))
	}
}

func TestRoundTrip(t *testing.T) {
	u, err := util.Uint160DecodeStringBE("2d3b96ae1bcc5a585e075e3b81920210dec16302")
	require.NoError(t, err)

	out, err := StringToUint160(Uint160ToString(u))
	require.NoError(t, err)
	assert.Equal(t, u, out)
}

func TestUint160DecodeKnownAddress(t *testing.T) {
	address := "AY3nEkyaDQ4F38uo6Php6q3oHZEjhCvVVw"

	val, err := StringToUint160(address)
	require.NoError(t, err)

	assert.Equal(t, "b28427088a3729b2536d10122960394e8be6721f", val.String())
}

func TestDecodeGarbage(t *testing.T) {
	_, err := StringToUint160("")
	assert.Error(t, err)

	_, err = StringToUint160("not an address at all")
	assert.Error(t, err)

	// Corrupted checksum.
	_, err = StringToUint160("AY3nEkyaDQ4F38uo6Php6q3oHZEjhCvVVM")
	assert.Error(t, err)
}
