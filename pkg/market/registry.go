package market

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/tokenmart/pkg/market/state"
	"github.com/nspcc-dev/tokenmart/pkg/market/storage"
	"github.com/nspcc-dev/tokenmart/pkg/util"
	"go.uber.org/zap"
)

// IsRegistered checks whether the given collection is known to the
// registry.
func (m *Marketplace) IsRegistered(col util.Uint160) bool {
	_, err := m.dao.GetCollection(col)
	return err == nil
}

// GetCollection returns the registration record of the given collection.
func (m *Marketplace) GetCollection(col util.Uint160) (*state.Collection, error) {
	c, err := m.dao.GetCollection(col)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, ErrUnknownCollection
		}
		return nil, err
	}
	return c, nil
}

// Collections returns all registered collection records.
func (m *Marketplace) Collections() ([]*state.Collection, error) {
	return m.dao.GetCollections()
}

// GetPrice returns the unit price of the given token. It is a pure read,
// total over all inputs: unknown collections and tokens yield zero, which
// means "not for sale".
func (m *Marketplace) GetPrice(col util.Uint160, tokenID uint64) *uint256.Int {
	return m.dao.GetPrice(col, tokenID)
}

// GetPayout returns the seller payout address of the given collection.
func (m *Marketplace) GetPayout(col util.Uint160) (util.Uint160, error) {
	payout, err := m.dao.GetPayout(col)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return util.Uint160{}, ErrNoSeller
		}
		return util.Uint160{}, err
	}
	return payout, nil
}

// SetPrice overwrites the unit price of an already registered token.
// Only the service role may call it and only when the marketplace is
// configured with AllowRepricing; tokens that were never priced above
// zero can be priced regardless.
func (m *Marketplace) SetPrice(caller, col util.Uint160, tokenID uint64, price *uint256.Int) error {
	d, err := m.beginCall()
	if err != nil {
		return err
	}
	defer m.endCall()
	if !m.hasRole(d, state.RoleService, caller) {
		return ErrUnauthorized
	}
	if _, err := d.GetCollection(col); err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return ErrUnknownCollection
		}
		return err
	}
	if !m.cfg.AllowRepricing && !d.GetPrice(col, tokenID).IsZero() {
		return ErrRepricingDisabled
	}
	if price == nil {
		price = new(uint256.Int)
	}
	if err := d.PutPrice(col, tokenID, price); err != nil {
		return err
	}
	if _, err := d.Persist(); err != nil {
		return err
	}
	m.log.Info("token re-priced",
		zap.Stringer("collection", col),
		zap.Uint64("token", tokenID),
		zap.String("price", price.Dec()))
	return nil
}
