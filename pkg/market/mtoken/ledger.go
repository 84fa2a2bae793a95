// Package mtoken implements the multi-token ledger that holds
// per-(collection, token, owner) balances and notifies receiving accounts
// about inbound transfers.
package mtoken

import (
	"errors"

	"github.com/nspcc-dev/tokenmart/pkg/market/dao"
	"github.com/nspcc-dev/tokenmart/pkg/util"
	"go.uber.org/zap"
)

// Receiver reacts to inbound token transfers. An account with a registered
// Receiver can reject a transfer by returning an error, which aborts the
// whole operation. The passed DAO is the one of the enclosing call, so a
// receiver observes the transfer it is asked to accept.
type Receiver interface {
	OnTokenReceived(d *dao.Simple, col, from, to util.Uint160, tokenID, amount uint64) error
	OnTokenBatchReceived(d *dao.Simple, col, from, to util.Uint160, tokenIDs, amounts []uint64) error
}

// Various errors.
var (
	// ErrArityMismatch is returned by batch operations when parallel
	// input sequences have different lengths.
	ErrArityMismatch = errors.New("token ids and amounts must have equal length")
	// ErrInsufficientBalance is returned when the sender doesn't hold
	// enough tokens.
	ErrInsufficientBalance = errors.New("insufficient token balance")
	// ErrBalanceOverflow is returned when a credit would overflow the
	// recipient's balance.
	ErrBalanceOverflow = errors.New("token balance overflow")
)

// Ledger keeps multi-token balances for all registered collections. A
// collection ledger instance is the keyspace scoped to the collection
// identity.
type Ledger struct {
	log       *zap.Logger
	receivers map[util.Uint160]Receiver
}

// NewLedger creates a new multi-token ledger.
func NewLedger(log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{
		log:       log,
		receivers: make(map[util.Uint160]Receiver),
	}
}

// RegisterReceiver registers a transfer acceptance hook for the given
// account. Subsequent transfers to the account succeed only if the hook
// does.
func (l *Ledger) RegisterReceiver(acc util.Uint160, r Receiver) {
	l.receivers[acc] = r
}

// BalanceOf returns the balance of the given token held by the account.
func (l *Ledger) BalanceOf(d *dao.Simple, col util.Uint160, tokenID uint64, acc util.Uint160) uint64 {
	return d.GetTokenBalance(col, tokenID, acc)
}

// BalanceOfBatch returns balances for parallel sequences of accounts and
// token ids.
func (l *Ledger) BalanceOfBatch(d *dao.Simple, col util.Uint160, tokenIDs []uint64, accs []util.Uint160) ([]uint64, error) {
	if len(tokenIDs) != len(accs) {
		return nil, ErrArityMismatch
	}
	res := make([]uint64, len(tokenIDs))
	for i := range tokenIDs {
		res[i] = d.GetTokenBalance(col, tokenIDs[i], accs[i])
	}
	return res, nil
}

// addTokens credits the account with the given amount checking for
// balance overflow.
func (l *Ledger) addTokens(d *dao.Simple, col util.Uint160, tokenID uint64, acc util.Uint160, amount uint64) error {
	old := d.GetTokenBalance(col, tokenID, acc)
	if old+amount < old {
		return ErrBalanceOverflow
	}
	return d.PutTokenBalance(col, tokenID, acc, old+amount)
}

// subTokens debits the account by the given amount.
func (l *Ledger) subTokens(d *dao.Simple, col util.Uint160, tokenID uint64, acc util.Uint160, amount uint64) error {
	old := d.GetTokenBalance(col, tokenID, acc)
	if old < amount {
		return ErrInsufficientBalance
	}
	return d.PutTokenBalance(col, tokenID, acc, old-amount)
}

// Mint creates the given amount of a token and credits it to the account.
// The recipient's receiver hook (if any) is consulted the same way as for
// regular transfers, with a zero `from` account.
func (l *Ledger) Mint(d *dao.Simple, col, to util.Uint160, tokenID, amount uint64) error {
	if err := l.addTokens(d, col, tokenID, to, amount); err != nil {
		return err
	}
	if r, ok := l.receivers[to]; ok {
		if err := r.OnTokenReceived(d, col, util.Uint160{}, to, tokenID, amount); err != nil {
			return err
		}
	}
	l.log.Debug("tokens minted",
		zap.Stringer("collection", col),
		zap.Stringer("to", to),
		zap.Uint64("token", tokenID),
		zap.Uint64("amount", amount))
	return nil
}

// MintBatch creates amounts[i] of tokenIDs[i] and credits them to the
// account, notifying its batch receiver hook once.
func (l *Ledger) MintBatch(d *dao.Simple, col, to util.Uint160, tokenIDs, amounts []uint64) error {
	if len(tokenIDs) != len(amounts) {
		return ErrArityMismatch
	}
	for i := range tokenIDs {
		if err := l.addTokens(d, col, tokenIDs[i], to, amounts[i]); err != nil {
			return err
		}
	}
	if r, ok := l.receivers[to]; ok {
		if err := r.OnTokenBatchReceived(d, col, util.Uint160{}, to, tokenIDs, amounts); err != nil {
			return err
		}
	}
	return nil
}

// Transfer moves the given amount of a token between accounts. The
// recipient's receiver hook (if any) runs after the balances are updated
// within the passed DAO; its error aborts the operation and the enclosing
// call is expected to discard the DAO.
func (l *Ledger) Transfer(d *dao.Simple, col, from, to util.Uint160, tokenID, amount uint64) error {
	if err := l.subTokens(d, col, tokenID, from, amount); err != nil {
		return err
	}
	if err := l.addTokens(d, col, tokenID, to, amount); err != nil {
		return err
	}
	if r, ok := l.receivers[to]; ok {
		if err := r.OnTokenReceived(d, col, from, to, tokenID, amount); err != nil {
			return err
		}
	}
	l.log.Debug("tokens transferred",
		zap.Stringer("collection", col),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Uint64("token", tokenID),
		zap.Uint64("amount", amount))
	return nil
}

// TransferBatch moves amounts[i] of tokenIDs[i] between accounts as one
// operation with a single batch receiver notification.
func (l *Ledger) TransferBatch(d *dao.Simple, col, from, to util.Uint160, tokenIDs, amounts []uint64) error {
	if len(tokenIDs) != len(amounts) {
		return ErrArityMismatch
	}
	for i := range tokenIDs {
		if err := l.subTokens(d, col, tokenIDs[i], from, amounts[i]); err != nil {
			return err
		}
		if err := l.addTokens(d, col, tokenIDs[i], to, amounts[i]); err != nil {
			return err
		}
	}
	if r, ok := l.receivers[to]; ok {
		if err := r.OnTokenBatchReceived(d, col, from, to, tokenIDs, amounts); err != nil {
			return err
		}
	}
	return nil
}
