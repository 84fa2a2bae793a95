// Package dao provides a typed data access object for marketplace state.
package dao

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/tokenmart/pkg/encoding/bigint"
	"github.com/nspcc-dev/tokenmart/pkg/io"
	"github.com/nspcc-dev/tokenmart/pkg/market/state"
	"github.com/nspcc-dev/tokenmart/pkg/market/storage"
	"github.com/nspcc-dev/tokenmart/pkg/util"
)

// Simple is a memCached wrapper around the DB, a simple DAO implementation.
// Changes accumulate in memory until Persist is called; dropping a Simple
// without persisting discards them, which gives call-level transactions
// when layered via GetWrapped.
type Simple struct {
	Store *storage.MemCachedStore
}

// NewSimple creates a new simple dao using the provided backend store.
func NewSimple(backend storage.Store) *Simple {
	return &Simple{Store: storage.NewMemCachedStore(backend)}
}

// GetWrapped returns a new DAO instance with another layer of wrapped
// MemCachedStore around the current DAO Store.
func (dao *Simple) GetWrapped() *Simple {
	return NewSimple(dao.Store)
}

// Persist flushes all the changes made into the underlying store.
func (dao *Simple) Persist() (int, error) {
	return dao.Store.Persist()
}

// GetAndDecode performs get operation and decoding with serializable
// structures.
func (dao *Simple) GetAndDecode(entity io.Serializable, key []byte) error {
	entityBytes, err := dao.Store.Get(key)
	if err != nil {
		return err
	}
	return io.FromByteArray(entity, entityBytes)
}

// Put performs put operation with serializable structures.
func (dao *Simple) Put(entity io.Serializable, key []byte) error {
	data, err := io.ToByteArray(entity)
	if err != nil {
		return err
	}
	return dao.Store.Put(key, data)
}

// -- start collections.

func makeCollectionKey(addr util.Uint160) []byte {
	return storage.AppendPrefix(storage.STCollection, addr.BytesBE())
}

// GetCollection returns the registration record of the given collection or
// storage.ErrKeyNotFound if it was never registered.
func (dao *Simple) GetCollection(addr util.Uint160) (*state.Collection, error) {
	collection := &state.Collection{}
	err := dao.GetAndDecode(collection, makeCollectionKey(addr))
	if err != nil {
		return nil, err
	}
	return collection, nil
}

// PutCollection saves the given collection record.
func (dao *Simple) PutCollection(c *state.Collection) error {
	return dao.Put(c, makeCollectionKey(c.Address))
}

// GetCollections returns all registered collection records.
func (dao *Simple) GetCollections() ([]*state.Collection, error) {
	var (
		cols []*state.Collection
		err  error
	)
	dao.Store.Seek(storage.STCollection.Bytes(), func(k, v []byte) {
		if err != nil {
			return
		}
		c := &state.Collection{}
		if decErr := io.FromByteArray(c, v); decErr != nil {
			err = decErr
			return
		}
		cols = append(cols, c)
	})
	return cols, err
}

// -- start price table.

func makePriceKey(col util.Uint160, tokenID uint64) []byte {
	key := make([]byte, 1+util.Uint160Size+8)
	key[0] = byte(storage.STPrice)
	copy(key[1:], col.BytesBE())
	binary.BigEndian.PutUint64(key[1+util.Uint160Size:], tokenID)
	return key
}

// GetPrice returns the unit price of the given token. It is total over all
// inputs, unknown entries yield zero which means "not for sale".
func (dao *Simple) GetPrice(col util.Uint160, tokenID uint64) *uint256.Int {
	data, err := dao.Store.Get(makePriceKey(col, tokenID))
	if err != nil {
		return new(uint256.Int)
	}
	return bigint.FromBytes(data)
}

// PutPrice saves the unit price for the given token.
func (dao *Simple) PutPrice(col util.Uint160, tokenID uint64, price *uint256.Int) error {
	return dao.Store.Put(makePriceKey(col, tokenID), bigint.ToBytes(price))
}

// -- start payout addresses.

func makePayoutKey(col util.Uint160) []byte {
	return storage.AppendPrefix(storage.STPayout, col.BytesBE())
}

// GetPayout returns the seller payout address of the given collection or
// storage.ErrKeyNotFound if it was never set.
func (dao *Simple) GetPayout(col util.Uint160) (util.Uint160, error) {
	data, err := dao.Store.Get(makePayoutKey(col))
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(data)
}

// PutPayout saves the seller payout address for the given collection.
func (dao *Simple) PutPayout(col util.Uint160, to util.Uint160) error {
	return dao.Store.Put(makePayoutKey(col), to.BytesBE())
}

// -- start roles.

func makeRoleKey(r state.Role) []byte {
	return []byte{byte(storage.STRole), byte(r)}
}

// GetRole returns the account designated for the given role or
// storage.ErrKeyNotFound if there is none.
func (dao *Simple) GetRole(r state.Role) (util.Uint160, error) {
	data, err := dao.Store.Get(makeRoleKey(r))
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(data)
}

// PutRole designates the given account for the given role.
func (dao *Simple) PutRole(r state.Role, acc util.Uint160) error {
	return dao.Store.Put(makeRoleKey(r), acc.BytesBE())
}

// -- start native currency accounts.

func makeAccountKey(acc util.Uint160) []byte {
	return storage.AppendPrefix(storage.STAccount, acc.BytesBE())
}

// GetAccountBalance returns the native currency balance of the given
// account, zero for accounts that were never credited.
func (dao *Simple) GetAccountBalance(acc util.Uint160) *uint256.Int {
	data, err := dao.Store.Get(makeAccountKey(acc))
	if err != nil {
		return new(uint256.Int)
	}
	return bigint.FromBytes(data)
}

// PutAccountBalance saves the native currency balance of the given account,
// removing the entry completely when the balance drops to zero.
func (dao *Simple) PutAccountBalance(acc util.Uint160, amount *uint256.Int) error {
	if amount.IsZero() {
		return dao.Store.Delete(makeAccountKey(acc))
	}
	return dao.Store.Put(makeAccountKey(acc), bigint.ToBytes(amount))
}

// -- start multi-token ledger balances.

func makeTokenBalanceKey(col util.Uint160, tokenID uint64, acc util.Uint160) []byte {
	key := make([]byte, 1+util.Uint160Size+8+util.Uint160Size)
	key[0] = byte(storage.STTokenBalance)
	copy(key[1:], col.BytesBE())
	binary.BigEndian.PutUint64(key[1+util.Uint160Size:], tokenID)
	copy(key[1+util.Uint160Size+8:], acc.BytesBE())
	return key
}

// GetTokenBalance returns the balance of the given token held by the given
// account, zero when there is none.
func (dao *Simple) GetTokenBalance(col util.Uint160, tokenID uint64, acc util.Uint160) uint64 {
	data, err := dao.Store.Get(makeTokenBalanceKey(col, tokenID, acc))
	if err != nil || len(data) != 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(data)
}

// PutTokenBalance saves the balance of the given token held by the given
// account, removing the entry completely when the balance drops to zero.
func (dao *Simple) PutTokenBalance(col util.Uint160, tokenID uint64, acc util.Uint160, amount uint64) error {
	key := makeTokenBalanceKey(col, tokenID, acc)
	if amount == 0 {
		return dao.Store.Delete(key)
	}
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, amount)
	return dao.Store.Put(key, data)
}
