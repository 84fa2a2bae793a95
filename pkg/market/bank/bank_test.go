package bank

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/nspcc-dev/tokenmart/pkg/crypto/hash"
	"github.com/nspcc-dev/tokenmart/pkg/market/dao"
	"github.com/nspcc-dev/tokenmart/pkg/market/storage"
	"github.com/nspcc-dev/tokenmart/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	alice = hash.Hash160([]byte("alice"))
	bob   = hash.Hash160([]byte("bob"))
)

func newTestBank(t *testing.T) (*Bank, *dao.Simple) {
	return New(zaptest.NewLogger(t)), dao.NewSimple(storage.NewMemoryStore())
}

type paymentReceiver struct {
	rejectWith error
	received   []*uint256.Int
}

func (r *paymentReceiver) OnPaymentReceived(_ *dao.Simple, _, _ util.Uint160, amount *uint256.Int) error {
	r.received = append(r.received, amount)
	return r.rejectWith
}

func TestDeposit(t *testing.T) {
	b, d := newTestBank(t)

	assert.True(t, b.BalanceOf(d, alice).IsZero())
	require.NoError(t, b.Deposit(d, alice, uint256.NewInt(100)))
	assert.Equal(t, uint256.NewInt(100), b.BalanceOf(d, alice))

	// Deposits accumulate.
	require.NoError(t, b.Deposit(d, alice, uint256.NewInt(1)))
	assert.Equal(t, uint256.NewInt(101), b.BalanceOf(d, alice))

	require.ErrorIs(t, b.Deposit(d, alice, nil), ErrInvalidAmount)
}

func TestTransfer(t *testing.T) {
	b, d := newTestBank(t)
	require.NoError(t, b.Deposit(d, alice, uint256.NewInt(100)))

	require.NoError(t, b.Transfer(d, alice, bob, uint256.NewInt(40)))
	assert.Equal(t, uint256.NewInt(60), b.BalanceOf(d, alice))
	assert.Equal(t, uint256.NewInt(40), b.BalanceOf(d, bob))
}

func TestTransferInsufficientFunds(t *testing.T) {
	b, d := newTestBank(t)
	require.NoError(t, b.Deposit(d, alice, uint256.NewInt(10)))

	require.ErrorIs(t, b.Transfer(d, alice, bob, uint256.NewInt(11)), ErrInsufficientFunds)
	assert.Equal(t, uint256.NewInt(10), b.BalanceOf(d, alice))
	assert.True(t, b.BalanceOf(d, bob).IsZero())
}

func TestTransferHook(t *testing.T) {
	b, d := newTestBank(t)
	r := &paymentReceiver{}
	b.RegisterReceiver(bob, r)
	require.NoError(t, b.Deposit(d, alice, uint256.NewInt(100)))

	require.NoError(t, b.Transfer(d, alice, bob, uint256.NewInt(25)))
	require.Len(t, r.received, 1)
	assert.Equal(t, uint256.NewInt(25), r.received[0])
}

func TestTransferHookRejection(t *testing.T) {
	b, d := newTestBank(t)
	boom := errors.New("rejected")
	b.RegisterReceiver(bob, &paymentReceiver{rejectWith: boom})
	require.NoError(t, b.Deposit(d, alice, uint256.NewInt(100)))

	w := d.GetWrapped()
	require.ErrorIs(t, b.Transfer(w, alice, bob, uint256.NewInt(25)), boom)

	// The committed layer is untouched after the wrapper is dropped.
	assert.Equal(t, uint256.NewInt(100), b.BalanceOf(d, alice))
	assert.True(t, b.BalanceOf(d, bob).IsZero())
}

func TestDepositOverflow(t *testing.T) {
	b, d := newTestBank(t)
	max := new(uint256.Int).SetAllOne()
	require.NoError(t, b.Deposit(d, alice, max))

	require.ErrorIs(t, b.Deposit(d, alice, uint256.NewInt(1)), ErrBalanceOverflow)
	assert.Equal(t, max, b.BalanceOf(d, alice))
}
