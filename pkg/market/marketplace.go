// Package market implements the marketplace engine: a registry of sellable
// multi-token collections with escrowed purchase settlement.
package market

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/tokenmart/pkg/config"
	"github.com/nspcc-dev/tokenmart/pkg/crypto/hash"
	"github.com/nspcc-dev/tokenmart/pkg/encoding/address"
	"github.com/nspcc-dev/tokenmart/pkg/market/bank"
	"github.com/nspcc-dev/tokenmart/pkg/market/dao"
	"github.com/nspcc-dev/tokenmart/pkg/market/mtoken"
	"github.com/nspcc-dev/tokenmart/pkg/market/state"
	"github.com/nspcc-dev/tokenmart/pkg/market/storage"
	"github.com/nspcc-dev/tokenmart/pkg/util"
	"go.uber.org/zap"
)

// feeDenominator is the basis point scale of the platform fee.
const feeDenominator = 10000

// holdingSeed is the preimage of the marketplace's own holding account,
// the escrow identity initial mints go to and purchases are settled from.
var holdingSeed = []byte("tokenmart.holding")

// Marketplace is the engine tying together the collection registry, the
// multi-token ledger and the currency bank. It executes one external call
// at a time to completion; every mutator runs against a wrapped DAO that
// is persisted on success and dropped on any failure, so calls are
// all-or-nothing. It is not safe for concurrent use.
type Marketplace struct {
	cfg     config.MarketConfiguration
	dao     *dao.Simple
	bank    *bank.Bank
	ledger  *mtoken.Ledger
	log     *zap.Logger
	holding util.Uint160
	feeBps  uint64

	// inCall is set for the duration of a public mutator, so external
	// code invoked mid-call (payment and token receiver hooks) cannot
	// re-enter and observe inconsistent intermediate state.
	inCall bool

	notifications []Notification
}

// New returns a new Marketplace using the given backend store. The owner
// and service roles are seeded from the configuration on first start and
// read back from storage afterwards, so a service rotation survives a
// restart.
func New(st storage.Store, cfg config.MarketConfiguration, log *zap.Logger) (*Marketplace, error) {
	if log == nil {
		log = zap.NewNop()
	}
	feeBps := cfg.FeeBasisPoints
	if feeBps == 0 {
		feeBps = config.DefaultFeeBasisPoints
	}
	if feeBps > feeDenominator {
		return nil, fmt.Errorf("fee of %d basis points exceeds %d", feeBps, feeDenominator)
	}
	m := &Marketplace{
		cfg:     cfg,
		dao:     dao.NewSimple(st),
		bank:    bank.New(log),
		ledger:  mtoken.NewLedger(log),
		log:     log,
		holding: hash.Hash160(holdingSeed),
		feeBps:  feeBps,
	}
	if err := m.initRoles(); err != nil {
		return nil, err
	}
	m.ledger.RegisterReceiver(m.holding, m)
	return m, nil
}

// initRoles stores the configured owner and service accounts unless the
// roles are already present from a previous run.
func (m *Marketplace) initRoles() error {
	d := m.dao.GetWrapped()
	for _, r := range []struct {
		role state.Role
		addr string
		name string
	}{
		{state.RoleOwner, m.cfg.Owner, "owner"},
		{state.RoleService, m.cfg.Service, "service"},
	} {
		if _, err := d.GetRole(r.role); err == nil {
			continue
		} else if !errors.Is(err, storage.ErrKeyNotFound) {
			return err
		}
		acc, err := address.StringToUint160(r.addr)
		if err != nil {
			return fmt.Errorf("invalid %s address %q: %w", r.name, r.addr, err)
		}
		if acc.IsZero() {
			return fmt.Errorf("%s address must not be zero", r.name)
		}
		if err := d.PutRole(r.role, acc); err != nil {
			return err
		}
	}
	_, err := d.Persist()
	return err
}

// beginCall opens a call-scoped DAO layer. It fails for calls made from
// inside a pending call, which is the only way the single-call execution
// model can be violated.
func (m *Marketplace) beginCall() (*dao.Simple, error) {
	if m.inCall {
		return nil, ErrReentrantCall
	}
	m.inCall = true
	return m.dao.GetWrapped(), nil
}

func (m *Marketplace) endCall() {
	m.inCall = false
}

// Bank returns the currency bank the marketplace settles against.
func (m *Marketplace) Bank() *bank.Bank {
	return m.bank
}

// Ledger returns the multi-token ledger the marketplace trades on.
func (m *Marketplace) Ledger() *mtoken.Ledger {
	return m.ledger
}

// HoldingAccount returns the escrow identity owned by the marketplace.
func (m *Marketplace) HoldingAccount() util.Uint160 {
	return m.holding
}

// Deposit credits the given account with native currency. It is the
// external funding entry point for buyers.
func (m *Marketplace) Deposit(to util.Uint160, amount *uint256.Int) error {
	d, err := m.beginCall()
	if err != nil {
		return err
	}
	defer m.endCall()
	if err := m.bank.Deposit(d, to, amount); err != nil {
		return err
	}
	_, err = d.Persist()
	return err
}

// AccountBalance returns the committed native currency balance of the
// given account.
func (m *Marketplace) AccountBalance(acc util.Uint160) *uint256.Int {
	return m.bank.BalanceOf(m.dao, acc)
}

// TokenBalance returns the committed balance of the given token held by
// the account.
func (m *Marketplace) TokenBalance(col util.Uint160, tokenID uint64, acc util.Uint160) uint64 {
	return m.ledger.BalanceOf(m.dao, col, tokenID, acc)
}

// TokenBalanceBatch returns committed balances for parallel sequences of
// accounts and token ids.
func (m *Marketplace) TokenBalanceBatch(col util.Uint160, tokenIDs []uint64, accs []util.Uint160) ([]uint64, error) {
	res, err := m.ledger.BalanceOfBatch(m.dao, col, tokenIDs, accs)
	if err != nil {
		return nil, ErrArityMismatch
	}
	return res, nil
}

// Close flushes committed state to the backing store and releases it.
func (m *Marketplace) Close() error {
	if _, err := m.dao.Persist(); err != nil {
		return err
	}
	return m.dao.Store.Close()
}
