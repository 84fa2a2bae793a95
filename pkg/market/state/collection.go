// Package state contains serializable records the marketplace keeps in its
// storage.
package state

import (
	"github.com/nspcc-dev/tokenmart/pkg/crypto/hash"
	"github.com/nspcc-dev/tokenmart/pkg/io"
	"github.com/nspcc-dev/tokenmart/pkg/util"
)

// Collection is a registration record of a sellable multi-token collection.
// It is created once by the factory and never mutated afterwards.
type Collection struct {
	// Address is the derived identity of the collection ledger.
	Address util.Uint160
	// Name is a human-readable collection name.
	Name string
	// MetadataURI locates off-chain collection metadata.
	MetadataURI string
	// Creator is the service account the collection was created by.
	Creator util.Uint160
}

// CreateCollectionHash derives a collection identity from the creator
// account and the collection name. Recreating a collection with the same
// name yields the same identity, which the factory rejects.
func CreateCollectionHash(creator util.Uint160, name string) util.Uint160 {
	data := make([]byte, 0, util.Uint160Size+len(name))
	data = append(data, creator.BytesBE()...)
	data = append(data, []byte(name)...)
	return hash.Hash160(data)
}

// EncodeBinary implements the io.Serializable interface.
func (c *Collection) EncodeBinary(w *io.BinWriter) {
	w.WriteBytes(c.Address.BytesBE())
	w.WriteString(c.Name)
	w.WriteString(c.MetadataURI)
	w.WriteBytes(c.Creator.BytesBE())
}

// DecodeBinary implements the io.Serializable interface.
func (c *Collection) DecodeBinary(r *io.BinReader) {
	var b [util.Uint160Size]byte
	r.ReadBytes(b[:])
	c.Address = util.Uint160(b)
	c.Name = r.ReadString()
	c.MetadataURI = r.ReadString()
	r.ReadBytes(b[:])
	c.Creator = util.Uint160(b)
}
