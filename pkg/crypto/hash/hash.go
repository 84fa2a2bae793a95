// Package hash contains hashing helpers used for identity derivation and
// address checksums.
package hash

import (
	"crypto/sha256"

	"github.com/nspcc-dev/tokenmart/pkg/util"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // address derivation format depends on it
)

// Sha256 hashes the incoming byte slice using the sha256 algorithm.
func Sha256(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// DoubleSha256 performs sha256 twice on the given data, it is used for
// address checksums.
func DoubleSha256(data []byte) []byte {
	return Sha256(Sha256(data))
}

// RipeMD160 performs the RIPEMD160 hash algorithm on the given data.
func RipeMD160(data []byte) []byte {
	hasher := ripemd160.New()
	_, _ = hasher.Write(data)
	return hasher.Sum(nil)
}

// Hash160 performs sha256 and then ripemd160 on the given data producing
// an Uint160 identity.
func Hash160(data []byte) util.Uint160 {
	u, _ := util.Uint160DecodeBytesBE(RipeMD160(Sha256(data)))
	return u
}
