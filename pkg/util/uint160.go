package util

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Uint160Size is the size of Uint160 in bytes.
const Uint160Size = 20

// Uint160 is a 20 byte long unsigned integer. It is used as an account and
// collection identity throughout the marketplace.
type Uint160 [Uint160Size]uint8

// Uint160DecodeStringBE attempts to decode the given big-endian hex string
// into an Uint160.
func Uint160DecodeStringBE(s string) (Uint160, error) {
	var u Uint160
	s = strings.TrimPrefix(s, "0x")
	if len(s) != Uint160Size*2 {
		return u, fmt.Errorf("expected string size of %d got %d", Uint160Size*2, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return u, err
	}
	return Uint160DecodeBytesBE(b)
}

// Uint160DecodeBytesBE attempts to decode the given big-endian bytes into
// an Uint160.
func Uint160DecodeBytesBE(b []byte) (Uint160, error) {
	var u Uint160
	if len(b) != Uint160Size {
		return u, fmt.Errorf("expected byte size of %d got %d", Uint160Size, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// BytesBE returns a big-endian byte representation of u.
func (u Uint160) BytesBE() []byte {
	return u[:]
}

// String implements the stringer interface.
func (u Uint160) String() string {
	return hex.EncodeToString(u.BytesBE())
}

// Equals returns true if both Uint160 values are the same.
func (u Uint160) Equals(other Uint160) bool {
	return u == other
}

// IsZero returns true if u holds the all-zero value that is never a valid
// account identity.
func (u Uint160) IsZero() bool {
	return u == Uint160{}
}

// Less returns true if this value is less than the given Uint160 value.
func (u Uint160) Less(other Uint160) bool {
	return bytes.Compare(u.BytesBE(), other.BytesBE()) == -1
}

// MarshalJSON implements the json marshaller interface.
func (u Uint160) MarshalJSON() ([]byte, error) {
	return []byte(`"0x` + u.String() + `"`), nil
}

// UnmarshalJSON implements the json unmarshaller interface.
func (u *Uint160) UnmarshalJSON(data []byte) (err error) {
	var js string
	if err = json.Unmarshal(data, &js); err != nil {
		return err
	}
	*u, err = Uint160DecodeStringBE(js)
	return err
}
