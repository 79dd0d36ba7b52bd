// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"
	"testing"

	"github.com/chronobank/lxmint/lvldb"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func M(a ...any) []any {
	return a
}

var (
	asset = lx.BytesToAddress([]byte("asset"))
	alice = lx.BytesToAddress([]byte("alice"))
	bob   = lx.BytesToAddress([]byte("bob"))
	carol = lx.BytesToAddress([]byte("carol"))
)

func newLedger(t *testing.T) (*Ledger, *state.State) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db).NewState()
	return New(asset, st), st
}

func TestMintAndTransfer(t *testing.T) {
	l, _ := newLedger(t)

	require.NoError(t, l.Mint(alice, big.NewInt(100)))
	assert.Equal(t, M(big.NewInt(100), nil), M(l.TotalSupply()))

	tests := []struct {
		from, to lx.Address
		amount   int64
		ok       bool
	}{
		{alice, bob, 30, true},
		{alice, bob, 71, false},
		{bob, carol, 30, true},
		{bob, carol, 1, false},
		{alice, alice, 70, true},
		{carol, alice, 0, true},
	}
	for i, tt := range tests {
		ok, err := l.Transfer(tt.from, tt.to, big.NewInt(tt.amount))
		require.NoError(t, err)
		assert.Equal(t, tt.ok, ok, "case %d", i)
	}

	assert.Equal(t, M(big.NewInt(70), nil), M(l.BalanceOf(alice)))
	assert.Equal(t, M(new(big.Int), nil), M(l.BalanceOf(bob)))
	assert.Equal(t, M(big.NewInt(30), nil), M(l.BalanceOf(carol)))
	assert.Equal(t, M(big.NewInt(100), nil), M(l.TotalSupply()))
}

func TestTransferFrom(t *testing.T) {
	l, _ := newLedger(t)
	require.NoError(t, l.Mint(alice, big.NewInt(100)))

	ok, err := l.TransferFrom(bob, alice, carol, big.NewInt(10))
	require.NoError(t, err)
	assert.False(t, ok, "no allowance")

	require.NoError(t, l.Approve(alice, bob, big.NewInt(40)))
	assert.Equal(t, M(big.NewInt(40), nil), M(l.Allowance(alice, bob)))

	ok, err = l.TransferFrom(bob, alice, carol, big.NewInt(25))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, M(big.NewInt(15), nil), M(l.Allowance(alice, bob)))
	assert.Equal(t, M(big.NewInt(25), nil), M(l.BalanceOf(carol)))

	ok, err = l.TransferFrom(bob, alice, carol, big.NewInt(16))
	require.NoError(t, err)
	assert.False(t, ok, "allowance exceeded")

	ok, err = l.TransferFrom(bob, alice, carol, big.NewInt(15))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, M(new(big.Int), nil), M(l.Allowance(alice, bob)))

	// spending own funds needs no allowance
	ok, err = l.TransferFrom(alice, alice, bob, big.NewInt(60))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResolverSharesState(t *testing.T) {
	l, st := newLedger(t)
	require.NoError(t, l.Mint(alice, big.NewInt(5)))

	tok := NewResolver(st)(asset)
	assert.Equal(t, asset, tok.Address())
	assert.Equal(t, M(big.NewInt(5), nil), M(tok.BalanceOf(alice)))
}
