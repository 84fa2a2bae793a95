// Package address implements conversion of Uint160 identities to and from
// their base58check string form.
package address

import (
	"bytes"
	"errors"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/tokenmart/pkg/crypto/hash"
	"github.com/nspcc-dev/tokenmart/pkg/util"
)

// Prefix is the byte used to prepend to addresses when encoding them, it
// distinguishes marketplace addresses from raw hashes.
const Prefix = 0x17

// checksumSize is the number of double-sha256 bytes appended to the
// payload before base58 encoding.
const checksumSize = 4

var errInvalidChecksum = errors.New("invalid checksum")

// Uint160ToString returns the address string from the given Uint160.
func Uint160ToString(u util.Uint160) string {
	b := append([]byte{Prefix}, u.BytesBE()...)
	b = append(b, hash.DoubleSha256(b)[:checksumSize]...)
	return base58.Encode(b)
}

// StringToUint160 attempts to decode the given address string into
// an Uint160.
func StringToUint160(s string) (util.Uint160, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return util.Uint160{}, err
	}
	if len(b) != 1+util.Uint160Size+checksumSize {
		return util.Uint160{}, errors.New("invalid address length")
	}
	payload := b[:len(b)-checksumSize]
	if !bytes.Equal(hash.DoubleSha256(payload)[:checksumSize], b[len(b)-checksumSize:]) {
		return util.Uint160{}, errInvalidChecksum
	}
	if payload[0] != Prefix {
		return util.Uint160{}, errors.New("invalid address prefix")
	}
	return util.Uint160DecodeBytesBE(payload[1:])
}
