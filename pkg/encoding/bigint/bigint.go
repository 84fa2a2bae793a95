// Package bigint implements serialization of 256-bit unsigned integers
// used for prices and account balances.
package bigint

import (
	"github.com/holiman/uint256"
)

// MaxBytesLen is the maximum length of a serialized integer.
const MaxBytesLen = 32 // 256-bit unsigned integer

// ToBytes converts an integer to a little-endian byte slice with all
// insignificant zeroes trimmed. Zero serializes to an empty slice.
func ToBytes(n *uint256.Int) []byte {
	be := n.Bytes()
	res := make([]byte, len(be))
	for i := range be {
		res[i] = be[len(be)-1-i]
	}
	return res
}

// FromBytes converts a little-endian byte slice into an integer. Nil and
// empty slices decode to zero.
func FromBytes(data []byte) *uint256.Int {
	be := make([]byte, len(data))
	for i := range data {
		be[i] = data[len(data)-1-i]
	}
	return new(uint256.Int).SetBytes(be)
}
