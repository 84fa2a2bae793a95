// Package storage contains the KV store abstraction used to keep
// marketplace state along with several backend implementations.
package storage

import (
	"errors"
	"fmt"
)

// KeyPrefix constants.
const (
	// STCollection is used for registered collection records.
	STCollection KeyPrefix = 0x10
	// STPrice is used for per-(collection, token) unit prices.
	STPrice KeyPrefix = 0x11
	// STPayout is used for per-collection seller payout addresses.
	STPayout KeyPrefix = 0x12
	// STTokenBalance is used for multi-token ledger balances.
	STTokenBalance KeyPrefix = 0x20
	// STAccount is used for native currency account balances.
	STAccount KeyPrefix = 0x30
	// STRole is used for owner/service role designations.
	STRole KeyPrefix = 0x40
	// SYSVersion is used for the storage scheme version.
	SYSVersion KeyPrefix = 0xf0
)

// KeyPrefix is a constant byte added as a prefix for each key stored.
type KeyPrefix uint8

// Bytes returns the bytes representation of KeyPrefix.
func (k KeyPrefix) Bytes() []byte {
	return []byte{byte(k)}
}

// AppendPrefix appends byteslice b to the given KeyPrefix.
func AppendPrefix(k KeyPrefix, b []byte) []byte {
	dest := make([]byte, len(b)+1)
	dest[0] = byte(k)
	copy(dest[1:], b)
	return dest
}

// ErrKeyNotFound is an error returned by Store implementations
// when a certain key is not found.
var ErrKeyNotFound = errors.New("key not found")

type (
	// Store is the underlying KV backend for the marketplace data, it's
	// not intended to be used directly, you wrap it with some memory cache
	// layer most of the time.
	Store interface {
		Batch() Batch
		Delete(k []byte) error
		Get([]byte) ([]byte, error)
		Put(k, v []byte) error
		PutBatch(Batch) error
		// Seek calls f for every key-value pair with the given prefix.
		// Plain backends enumerate in ascending key order; layered
		// stores merge their sources and give no global ordering.
		Seek(prefix []byte, f func(k, v []byte))
		Close() error
	}

	// Batch represents an abstraction on top of batch operations.
	// Each Store implementation is responsible of casting a Batch
	// to its appropriate type.
	Batch interface {
		Delete(k []byte)
		Put(k, v []byte)
	}
)

// NewStore creates storage with preselected in configuration database type.
func NewStore(cfg DBConfiguration) (Store, error) {
	var store Store
	var err error
	switch cfg.Type {
	case "leveldb":
		store, err = NewLevelDBStore(cfg.LevelDBOptions)
	case "inmemory":
		store = NewMemoryStore()
	case "boltdb":
		store, err = NewBoltDBStore(cfg.BoltDBOptions)
	default:
		return nil, fmt.Errorf("unknown storage: %s", cfg.Type)
	}
	return store, err
}
