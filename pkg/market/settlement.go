package market

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/tokenmart/pkg/market/state"
	"github.com/nspcc-dev/tokenmart/pkg/market/storage"
	"github.com/nspcc-dev/tokenmart/pkg/util"
	"go.uber.org/zap"
)

// Purchase settles a purchase of `amount` units of the given token: the
// buyer's `paid` value moves into the holding account, the seller and the
// platform receive their shares of the total cost and the tokens move
// from the holding account to the buyer. The whole settlement commits
// atomically; a failure at any point, including inside recipient hooks,
// leaves no state change behind. Excess payment above the total cost is
// not refunded and stays in the holding account.
func (m *Marketplace) Purchase(buyer, col util.Uint160, tokenID, amount uint64, paid *uint256.Int) error {
	d, err := m.beginCall()
	if err != nil {
		return err
	}
	defer m.endCall()
	err = func() error {
		if paid == nil || paid.IsZero() {
			return ErrNoPayment
		}
		if amount == 0 {
			return ErrZeroAmount
		}
		if _, err := d.GetCollection(col); err != nil {
			if errors.Is(err, storage.ErrKeyNotFound) {
				return ErrUnknownCollection
			}
			return err
		}
		payout, err := d.GetPayout(col)
		if err != nil {
			if errors.Is(err, storage.ErrKeyNotFound) {
				return ErrNoSeller
			}
			return err
		}
		unitPrice := d.GetPrice(col, tokenID)
		if unitPrice.IsZero() {
			return ErrNotForSale
		}
		total, overflow := new(uint256.Int).MulOverflow(unitPrice, uint256.NewInt(amount))
		if overflow {
			return ErrAmountOverflow
		}
		if paid.Lt(total) {
			return ErrInsufficientPayment
		}
		sellerShare, platformShare := m.splitProceeds(total)
		owner, err := d.GetRole(state.RoleOwner)
		if err != nil {
			return err
		}

		// Interactions, strictly last: every transfer below may run
		// recipient code the marketplace doesn't control.
		if err := m.bank.Transfer(d, buyer, m.holding, paid); err != nil {
			return err
		}
		if err := m.bank.Transfer(d, m.holding, payout, sellerShare); err != nil {
			return err
		}
		if err := m.bank.Transfer(d, m.holding, owner, platformShare); err != nil {
			return err
		}
		if err := m.ledger.Transfer(d, col, m.holding, buyer, tokenID, amount); err != nil {
			return err
		}
		_, err = d.Persist()
		return err
	}()
	if err != nil {
		purchasesFailed.Inc()
		return err
	}
	purchasesCompleted.Inc()
	updateEscrowMetric(m.bank.BalanceOf(m.dao, m.holding))
	m.notify(Notification{
		Name:       TokenPurchased,
		Collection: col,
		Actor:      buyer,
		TokenID:    tokenID,
		Amount:     amount,
	})
	m.log.Info("purchase settled",
		zap.Stringer("buyer", buyer),
		zap.Stringer("collection", col),
		zap.Uint64("token", tokenID),
		zap.Uint64("amount", amount),
		zap.String("paid", paid.Dec()))
	return nil
}

// splitProceeds divides the total cost between the seller and the
// platform. The seller gets the floored share, any rounding remainder
// goes to the platform, so the two shares always sum to the total
// exactly.
func (m *Marketplace) splitProceeds(total *uint256.Int) (sellerShare, platformShare *uint256.Int) {
	sellerShare, _ = new(uint256.Int).MulDivOverflow(total,
		uint256.NewInt(feeDenominator-m.feeBps), uint256.NewInt(feeDenominator))
	platformShare = new(uint256.Int).Sub(total, sellerShare)
	return
}
