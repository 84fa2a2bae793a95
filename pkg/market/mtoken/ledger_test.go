package mtoken

import (
	"errors"
	"math"
	"testing"

	"github.com/nspcc-dev/tokenmart/pkg/crypto/hash"
	"github.com/nspcc-dev/tokenmart/pkg/market/dao"
	"github.com/nspcc-dev/tokenmart/pkg/market/storage"
	"github.com/nspcc-dev/tokenmart/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	col   = hash.Hash160([]byte("collection"))
	alice = hash.Hash160([]byte("alice"))
	bob   = hash.Hash160([]byte("bob"))
)

func newTestLedger(t *testing.T) (*Ledger, *dao.Simple) {
	return NewLedger(zaptest.NewLogger(t)), dao.NewSimple(storage.NewMemoryStore())
}

// recordingReceiver remembers received transfers and can be told to reject
// them.
type recordingReceiver struct {
	rejectWith error
	singles    int
	batches    int
}

func (r *recordingReceiver) OnTokenReceived(_ *dao.Simple, _, _, _ util.Uint160, _, _ uint64) error {
	r.singles++
	return r.rejectWith
}

func (r *recordingReceiver) OnTokenBatchReceived(_ *dao.Simple, _, _, _ util.Uint160, _, _ []uint64) error {
	r.batches++
	return r.rejectWith
}

func TestMintAndBalance(t *testing.T) {
	l, d := newTestLedger(t)

	require.NoError(t, l.Mint(d, col, alice, 1, 100))
	assert.EqualValues(t, 100, l.BalanceOf(d, col, 1, alice))
	assert.EqualValues(t, 0, l.BalanceOf(d, col, 1, bob))
	assert.EqualValues(t, 0, l.BalanceOf(d, col, 2, alice))
}

func TestMintBatch(t *testing.T) {
	l, d := newTestLedger(t)

	require.NoError(t, l.MintBatch(d, col, alice, []uint64{1, 2, 3}, []uint64{10, 20, 30}))
	got, err := l.BalanceOfBatch(d, col, []uint64{1, 2, 3}, []util.Uint160{alice, alice, alice})
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 20, 30}, got)
}

func TestMintBatchArity(t *testing.T) {
	l, d := newTestLedger(t)

	err := l.MintBatch(d, col, alice, []uint64{1, 2}, []uint64{10})
	require.ErrorIs(t, err, ErrArityMismatch)
	assert.EqualValues(t, 0, l.BalanceOf(d, col, 1, alice))
}

func TestBalanceOfBatchArity(t *testing.T) {
	l, d := newTestLedger(t)

	_, err := l.BalanceOfBatch(d, col, []uint64{1}, []util.Uint160{alice, bob})
	require.ErrorIs(t, err, ErrArityMismatch)
}

func TestTransfer(t *testing.T) {
	l, d := newTestLedger(t)
	require.NoError(t, l.Mint(d, col, alice, 1, 100))

	require.NoError(t, l.Transfer(d, col, alice, bob, 1, 40))
	assert.EqualValues(t, 60, l.BalanceOf(d, col, 1, alice))
	assert.EqualValues(t, 40, l.BalanceOf(d, col, 1, bob))

	err := l.Transfer(d, col, alice, bob, 1, 61)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	assert.EqualValues(t, 60, l.BalanceOf(d, col, 1, alice))
}

func TestTransferBatch(t *testing.T) {
	l, d := newTestLedger(t)
	require.NoError(t, l.MintBatch(d, col, alice, []uint64{1, 2}, []uint64{10, 20}))

	require.NoError(t, l.TransferBatch(d, col, alice, bob, []uint64{1, 2}, []uint64{5, 20}))
	assert.EqualValues(t, 5, l.BalanceOf(d, col, 1, alice))
	assert.EqualValues(t, 0, l.BalanceOf(d, col, 2, alice))
	assert.EqualValues(t, 5, l.BalanceOf(d, col, 1, bob))
	assert.EqualValues(t, 20, l.BalanceOf(d, col, 2, bob))

	require.ErrorIs(t, l.TransferBatch(d, col, alice, bob, []uint64{1}, []uint64{1, 2}), ErrArityMismatch)
}

func TestMintOverflow(t *testing.T) {
	l, d := newTestLedger(t)
	require.NoError(t, l.Mint(d, col, alice, 1, math.MaxUint64))

	require.ErrorIs(t, l.Mint(d, col, alice, 1, 1), ErrBalanceOverflow)
	assert.EqualValues(t, uint64(math.MaxUint64), l.BalanceOf(d, col, 1, alice))
}

func TestReceiverHooks(t *testing.T) {
	l, d := newTestLedger(t)
	r := &recordingReceiver{}
	l.RegisterReceiver(bob, r)

	require.NoError(t, l.Mint(d, col, alice, 1, 100))
	assert.Equal(t, 0, r.singles) // alice has no hook

	require.NoError(t, l.Transfer(d, col, alice, bob, 1, 10))
	assert.Equal(t, 1, r.singles)

	require.NoError(t, l.MintBatch(d, col, bob, []uint64{2}, []uint64{5}))
	assert.Equal(t, 1, r.batches)
}

func TestReceiverRejection(t *testing.T) {
	l, d := newTestLedger(t)
	boom := errors.New("no thanks")
	l.RegisterReceiver(bob, &recordingReceiver{rejectWith: boom})

	require.NoError(t, l.Mint(d, col, alice, 1, 100))
	w := d.GetWrapped()
	require.ErrorIs(t, l.Transfer(w, col, alice, bob, 1, 10), boom)

	// The enclosing call drops the wrapped layer, so nothing changed.
	assert.EqualValues(t, 100, l.BalanceOf(d, col, 1, alice))
	assert.EqualValues(t, 0, l.BalanceOf(d, col, 1, bob))
}
