// Package bank implements native currency accounts used to settle
// purchases. Transfers may invoke recipient hooks, so the value side of a
// settlement is a call into code the caller does not control.
package bank

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/tokenmart/pkg/market/dao"
	"github.com/nspcc-dev/tokenmart/pkg/util"
	"go.uber.org/zap"
)

// Receiver reacts to inbound payments. A registered receiver can run
// arbitrary logic and can reject the payment by returning an error, which
// aborts the transfer.
type Receiver interface {
	OnPaymentReceived(d *dao.Simple, from, to util.Uint160, amount *uint256.Int) error
}

// Various errors.
var (
	// ErrInsufficientFunds is returned when the sender's balance doesn't
	// cover the transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount is returned for nil amounts.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrBalanceOverflow is returned when a credit would overflow the
	// recipient's balance.
	ErrBalanceOverflow = errors.New("account balance overflow")
)

// Bank keeps native currency balances.
type Bank struct {
	log       *zap.Logger
	receivers map[util.Uint160]Receiver
}

// New creates a new Bank.
func New(log *zap.Logger) *Bank {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bank{
		log:       log,
		receivers: make(map[util.Uint160]Receiver),
	}
}

// RegisterReceiver registers a payment hook for the given account.
func (b *Bank) RegisterReceiver(acc util.Uint160, r Receiver) {
	b.receivers[acc] = r
}

// BalanceOf returns the balance of the given account.
func (b *Bank) BalanceOf(d *dao.Simple, acc util.Uint160) *uint256.Int {
	return d.GetAccountBalance(acc)
}

// Deposit credits the account with the given amount. It is the external
// on-ramp for native currency and doesn't run receiver hooks.
func (b *Bank) Deposit(d *dao.Simple, to util.Uint160, amount *uint256.Int) error {
	if amount == nil {
		return ErrInvalidAmount
	}
	balance := d.GetAccountBalance(to)
	res, overflow := new(uint256.Int).AddOverflow(balance, amount)
	if overflow {
		return ErrBalanceOverflow
	}
	return d.PutAccountBalance(to, res)
}

// Transfer moves the given amount between accounts. The recipient's hook
// (if any) runs after the balances are updated within the passed DAO; its
// error aborts the operation and the enclosing call is expected to discard
// the DAO.
func (b *Bank) Transfer(d *dao.Simple, from, to util.Uint160, amount *uint256.Int) error {
	if amount == nil {
		return ErrInvalidAmount
	}
	fromBalance := d.GetAccountBalance(from)
	if fromBalance.Lt(amount) {
		return ErrInsufficientFunds
	}
	if err := d.PutAccountBalance(from, new(uint256.Int).Sub(fromBalance, amount)); err != nil {
		return err
	}
	toBalance := d.GetAccountBalance(to)
	res, overflow := new(uint256.Int).AddOverflow(toBalance, amount)
	if overflow {
		return ErrBalanceOverflow
	}
	if err := d.PutAccountBalance(to, res); err != nil {
		return err
	}
	if r, ok := b.receivers[to]; ok {
		if err := r.OnPaymentReceived(d, from, to, amount); err != nil {
			return err
		}
	}
	b.log.Debug("payment transferred",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.String("amount", amount.Dec()))
	return nil
}
