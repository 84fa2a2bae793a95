package market

import (
	"github.com/nspcc-dev/tokenmart/pkg/market/dao"
	"github.com/nspcc-dev/tokenmart/pkg/util"
)

// The marketplace registers itself as the receiver for its holding
// account, so every inbound token transfer to the escrow goes through the
// checks below. Transfers from collections the registry doesn't know are
// rejected to keep unrelated tokens from being silently absorbed into the
// settlement bookkeeping. The check runs against the in-flight DAO, which
// is how the factory's own initial mint passes: the record is stored
// earlier in the same call.

func (m *Marketplace) acceptInbound(d *dao.Simple, col util.Uint160) error {
	if _, err := d.GetCollection(col); err != nil {
		return ErrUnrecognizedSender
	}
	return nil
}

// OnTokenReceived implements the mtoken.Receiver interface.
func (m *Marketplace) OnTokenReceived(d *dao.Simple, col, _, _ util.Uint160, _, _ uint64) error {
	return m.acceptInbound(d, col)
}

// OnTokenBatchReceived implements the mtoken.Receiver interface.
func (m *Marketplace) OnTokenBatchReceived(d *dao.Simple, col, _, _ util.Uint160, _, _ []uint64) error {
	return m.acceptInbound(d, col)
}
