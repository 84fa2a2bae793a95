package market

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/tokenmart/pkg/market/state"
	"github.com/nspcc-dev/tokenmart/pkg/market/storage"
	"github.com/nspcc-dev/tokenmart/pkg/util"
	"go.uber.org/zap"
)

// CreateCollection creates a new multi-token collection: it derives the
// collection identity from the caller and the name, registers the record,
// mints the initial amounts of every token to the marketplace holding
// account, populates the price table and sets the seller payout address.
// All of it happens atomically; only the service role may call it.
func (m *Marketplace) CreateCollection(caller util.Uint160, name, metadataURI string,
	tokenIDs, amounts []uint64, prices []*uint256.Int, payout util.Uint160) (util.Uint160, error) {
	d, err := m.beginCall()
	if err != nil {
		return util.Uint160{}, err
	}
	defer m.endCall()

	if !m.hasRole(d, state.RoleService, caller) {
		return util.Uint160{}, ErrUnauthorized
	}
	if len(tokenIDs) != len(amounts) || len(tokenIDs) != len(prices) {
		return util.Uint160{}, ErrArityMismatch
	}
	if payout.IsZero() {
		return util.Uint160{}, ErrNoSeller
	}
	addr := state.CreateCollectionHash(caller, name)
	_, err = d.GetCollection(addr)
	if err == nil {
		return util.Uint160{}, ErrCollectionExists
	} else if !errors.Is(err, storage.ErrKeyNotFound) {
		return util.Uint160{}, err
	}

	// The record goes in first so that the holding account's receipt
	// validator recognizes the initial mint.
	c := &state.Collection{
		Address:     addr,
		Name:        name,
		MetadataURI: metadataURI,
		Creator:     caller,
	}
	if err := d.PutCollection(c); err != nil {
		return util.Uint160{}, err
	}
	for i := range tokenIDs {
		p := prices[i]
		if p == nil {
			p = new(uint256.Int)
		}
		if err := d.PutPrice(addr, tokenIDs[i], p); err != nil {
			return util.Uint160{}, err
		}
	}
	if err := d.PutPayout(addr, payout); err != nil {
		return util.Uint160{}, err
	}
	if err := m.ledger.MintBatch(d, addr, m.holding, tokenIDs, amounts); err != nil {
		return util.Uint160{}, err
	}
	if _, err := d.Persist(); err != nil {
		return util.Uint160{}, err
	}
	collectionsCreated.Inc()
	m.notify(Notification{
		Name:       CollectionCreated,
		Collection: addr,
		Actor:      caller,
	})
	m.log.Info("collection created",
		zap.Stringer("collection", addr),
		zap.String("name", name),
		zap.Int("tokens", len(tokenIDs)))
	return addr, nil
}
