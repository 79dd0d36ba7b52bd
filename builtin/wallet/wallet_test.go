// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wallet

import (
	"math/big"
	"testing"

	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/builtin/reverts"
	"github.com/chronobank/lxmint/builtin/token"
	"github.com/chronobank/lxmint/lvldb"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	asset    = lx.BytesToAddress([]byte("asset"))
	walletAt = lx.BytesToAddress([]byte("wallet"))
	owner    = lx.BytesToAddress([]byte("contract"))
	user     = lx.BytesToAddress([]byte("user"))
	miner    = lx.BytesToAddress([]byte("miner"))
)

func setup(t *testing.T) (*Wallet, *token.Ledger) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db).NewState()
	tok := token.New(asset, st)
	require.NoError(t, tok.Mint(user, big.NewInt(100)))
	return New(walletAt, owner, token.NewResolver(st)), tok
}

func TestOwnerOnly(t *testing.T) {
	w, _ := setup(t)

	_, err := w.Deposit(user, asset, user, walletAt, big.NewInt(1))
	code, ok := reverts.CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, errcode.Unauthorized, code)

	_, err = w.Withdraw(user, asset, walletAt, user, big.NewInt(1))
	code, _ = reverts.CodeOf(err)
	assert.Equal(t, errcode.Unauthorized, code)
}

func TestDepositAndWithdraw(t *testing.T) {
	w, tok := setup(t)

	ok, err := w.Deposit(owner, asset, user, walletAt, big.NewInt(10))
	require.NoError(t, err)
	assert.False(t, ok, "nothing approved")

	require.NoError(t, tok.Approve(user, walletAt, big.NewInt(60)))
	ok, err = w.Deposit(owner, asset, user, walletAt, big.NewInt(40))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = w.Deposit(owner, asset, user, miner, big.NewInt(20))
	require.NoError(t, err)
	assert.True(t, ok)

	bal, err := w.BalanceOf(asset)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(40), bal)

	ok, err = w.Withdraw(owner, asset, walletAt, user, big.NewInt(41))
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = w.Withdraw(owner, asset, walletAt, user, big.NewInt(40))
	require.NoError(t, err)
	assert.True(t, ok)

	// funds held by the miner need its allowance
	ok, err = w.Withdraw(owner, asset, miner, user, big.NewInt(20))
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, tok.Approve(miner, walletAt, big.NewInt(20)))
	ok, err = w.Withdraw(owner, asset, miner, user, big.NewInt(20))
	require.NoError(t, err)
	assert.True(t, ok)

	bal, err = tok.BalanceOf(user)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), bal)
}
