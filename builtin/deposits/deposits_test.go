// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deposits

import (
	"math/big"
	"testing"

	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/builtin/reverts"
	"github.com/chronobank/lxmint/builtin/token"
	"github.com/chronobank/lxmint/builtin/wallet"
	"github.com/chronobank/lxmint/lvldb"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func M(a ...any) []any {
	return a
}

const sharesBalance = 100000000

var (
	ledgerAddr = lx.BytesToAddress([]byte("ledger"))
	walletAddr = lx.BytesToAddress([]byte("ledger-wallet"))
	sharesAddr = lx.BytesToAddress([]byte("TIME"))
	asset1Addr = lx.BytesToAddress([]byte("asset1"))
	asset2Addr = lx.BytesToAddress([]byte("asset2"))

	owner    = lx.BytesToAddress([]byte("owner"))
	miner    = lx.BytesToAddress([]byte("miner"))
	user     = lx.BytesToAddress([]byte("user"))
	user2    = lx.BytesToAddress([]byte("user2"))
	stranger = lx.BytesToAddress([]byte("stranger"))
)

type miningRecorder struct {
	events []string
}

func (m *miningRecorder) MinerLocked(addr lx.Address) error {
	m.events = append(m.events, "lock:"+addr.String())
	return nil
}

func (m *miningRecorder) MinerUnlocked(addr lx.Address) error {
	m.events = append(m.events, "unlock:"+addr.String())
	return nil
}

type balanceRecorder struct {
	last  map[lx.Address]*big.Int
	total *big.Int
	calls int
}

func (b *balanceRecorder) BalanceChanged(holder lx.Address, balance, total *big.Int) error {
	b.last[holder] = balance
	b.total = total
	b.calls++
	return nil
}

type fixture struct {
	st       *state.State
	shares   *token.Ledger
	asset1   *token.Ledger
	asset2   *token.Ledger
	d        *Deposits
	mining   *miningRecorder
	balances *balanceRecorder
}

func newFixture(t *testing.T) *fixture {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db).NewState()

	tokens := token.NewResolver(st)
	f := &fixture{
		st:       st,
		shares:   token.New(sharesAddr, st),
		asset1:   token.New(asset1Addr, st),
		asset2:   token.New(asset2Addr, st),
		mining:   &miningRecorder{},
		balances: &balanceRecorder{last: make(map[lx.Address]*big.Int)},
	}
	f.d = New(ledgerAddr, st, owner, sharesAddr, wallet.New(walletAddr, ledgerAddr, tokens), tokens)
	f.d.SetMiningObserver(f.mining)
	f.d.SetBalanceObserver(f.balances)

	for _, tok := range []*token.Ledger{f.shares, f.asset1, f.asset2} {
		for _, holder := range []lx.Address{user, user2, stranger} {
			require.NoError(t, tok.Mint(holder, big.NewInt(sharesBalance)))
			require.NoError(t, tok.Approve(holder, walletAddr, big.NewInt(sharesBalance)))
		}
	}
	// the miner funds stake withdrawals through the wallet
	require.NoError(t, f.shares.Approve(miner, walletAddr, big.NewInt(10*sharesBalance)))
	return f
}

func (f *fixture) withMiner(t *testing.T) *fixture {
	code, err := f.d.SetPrimaryMiner(owner, miner)
	require.NoError(t, err)
	require.Equal(t, errcode.OK, code)
	return f
}

func (f *fixture) deposit(t *testing.T, holder lx.Address, amount int64) {
	code, err := f.d.Deposit(holder, sharesAddr, big.NewInt(amount))
	require.NoError(t, err)
	require.Equal(t, errcode.OK, code)
}

func requireRevert(t *testing.T, want errcode.Code, err error) {
	t.Helper()
	require.True(t, reverts.IsRevertErr(err), "want revert, got %v", err)
	code, _ := reverts.CodeOf(err)
	assert.Equal(t, want, code)
}

func TestDepositRequiresPrimaryMiner(t *testing.T) {
	f := newFixture(t)

	_, err := f.d.Deposit(user, sharesAddr, big.NewInt(100))
	requireRevert(t, errcode.MinerRequired, err)
	assert.Equal(t, M(new(big.Int), nil), M(f.d.DepositBalance(sharesAddr, user)))
}

func TestSetPrimaryMiner(t *testing.T) {
	f := newFixture(t)

	code, err := f.d.SetPrimaryMiner(stranger, user2)
	requireRevert(t, errcode.Unauthorized, err)
	assert.Equal(t, errcode.Unauthorized, code)

	f.withMiner(t)
	assert.Equal(t, M(miner, nil), M(f.d.PrimaryMiner()))

	code, err = f.d.SetPrimaryMiner(owner, user2)
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)
	assert.Equal(t, M(user2, nil), M(f.d.PrimaryMiner()))
}

func TestDepositForPrimaryMinerReverts(t *testing.T) {
	f := newFixture(t).withMiner(t)

	_, err := f.d.DepositFor(user, sharesAddr, miner, big.NewInt(100))
	assert.True(t, reverts.IsRevertErr(err))
}

func TestDeposit(t *testing.T) {
	f := newFixture(t).withMiner(t)

	f.deposit(t, user, 200)
	assert.Equal(t, M(big.NewInt(200), nil), M(f.d.DepositBalance(sharesAddr, user)))
	assert.Equal(t, M(big.NewInt(200), nil), M(f.d.SharesBalance(user)))
	assert.Equal(t, M(big.NewInt(200), nil), M(f.d.TotalDeposit(sharesAddr)))
	// stake is custodied by the primary miner
	assert.Equal(t, M(big.NewInt(200), nil), M(f.shares.BalanceOf(miner)))
	assert.Equal(t, M(big.NewInt(sharesBalance-200), nil), M(f.shares.BalanceOf(user)))

	assert.Equal(t, big.NewInt(200), f.balances.last[user])
	assert.Equal(t, big.NewInt(200), f.balances.total)

	code, err := f.d.DepositFor(user, sharesAddr, user2, big.NewInt(50))
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)
	assert.Equal(t, M(big.NewInt(50), nil), M(f.d.DepositBalance(sharesAddr, user2)))
	assert.Equal(t, M(big.NewInt(sharesBalance-250), nil), M(f.shares.BalanceOf(user)))
	assert.Equal(t, big.NewInt(250), f.balances.total)
}

func TestDepositTransferFailed(t *testing.T) {
	f := newFixture(t).withMiner(t)

	code, err := f.d.DepositFor(user, sharesAddr, user, big.NewInt(sharesBalance+1))
	require.NoError(t, err)
	assert.Equal(t, errcode.TransferFailed, code)
	assert.Equal(t, M(new(big.Int), nil), M(f.d.DepositBalance(sharesAddr, user)))
	assert.Equal(t, M(new(big.Int), nil), M(f.d.TotalDeposit(sharesAddr)))
	assert.Equal(t, 0, f.balances.calls)
}

func TestAllowList(t *testing.T) {
	f := newFixture(t).withMiner(t)

	for _, asset := range []lx.Address{asset1Addr, asset2Addr} {
		code, err := f.d.Deposit(user, asset, big.NewInt(200))
		require.NoError(t, err)
		assert.Equal(t, errcode.Unauthorized, code)
		assert.Equal(t, M(new(big.Int), nil), M(f.d.DepositBalance(asset, user)))
	}

	_, err := f.d.AllowShares(stranger, []lx.Address{asset1Addr}, []*big.Int{big.NewInt(0)})
	requireRevert(t, errcode.Unauthorized, err)

	code, err := f.d.AllowShares(owner,
		[]lx.Address{asset1Addr, asset2Addr},
		[]*big.Int{big.NewInt(sharesBalance), big.NewInt(sharesBalance)})
	require.NoError(t, err)
	require.Equal(t, errcode.OK, code)
	assert.Equal(t, M(true, nil), M(f.d.IsAllowed(asset1Addr)))

	code, err = f.d.Deposit(user, asset1Addr, big.NewInt(200))
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)
	code, err = f.d.Deposit(user, asset2Addr, big.NewInt(201))
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)
	assert.Equal(t, M(big.NewInt(200), nil), M(f.d.DepositBalance(asset1Addr, user)))
	assert.Equal(t, M(big.NewInt(201), nil), M(f.d.DepositBalance(asset2Addr, user)))
	// other assets stay in the ledger wallet, the balance observer sees stake only
	assert.Equal(t, M(big.NewInt(200), nil), M(f.asset1.BalanceOf(walletAddr)))
	assert.Equal(t, 0, f.balances.calls)

	code, err = f.d.DenyShares(owner, []lx.Address{asset1Addr, asset2Addr})
	require.NoError(t, err)
	require.Equal(t, errcode.OK, code)
	assert.Equal(t, M(false, nil), M(f.d.IsAllowed(asset1Addr)))
	code, err = f.d.Deposit(user, asset1Addr, big.NewInt(200))
	require.NoError(t, err)
	assert.Equal(t, errcode.Unauthorized, code)

	// denied assets can still be taken out
	code, err = f.d.WithdrawShares(user, asset1Addr, big.NewInt(200))
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)
	assert.Equal(t, M(big.NewInt(sharesBalance), nil), M(f.asset1.BalanceOf(user)))
}

func TestAllowListCeiling(t *testing.T) {
	f := newFixture(t).withMiner(t)

	_, err := f.d.AllowShares(owner, []lx.Address{asset1Addr}, []*big.Int{big.NewInt(300)})
	require.NoError(t, err)
	assert.Equal(t, M(big.NewInt(300), nil), M(f.d.Limit(asset1Addr)))

	tests := []struct {
		holder lx.Address
		amount int64
		want   errcode.Code
	}{
		{user, 200, errcode.OK},
		{user2, 101, errcode.Unauthorized},
		{user2, 100, errcode.OK},
		{user, 1, errcode.Unauthorized},
	}
	for i, tt := range tests {
		code, err := f.d.Deposit(tt.holder, asset1Addr, big.NewInt(tt.amount))
		require.NoError(t, err)
		assert.Equal(t, tt.want, code, "case %d", i)
	}
	assert.Equal(t, M(big.NewInt(300), nil), M(f.d.TotalDeposit(asset1Addr)))

	_, err = f.d.AllowShares(owner, []lx.Address{asset1Addr}, nil)
	assert.True(t, reverts.IsRevertErr(err), "length mismatch")
}

func TestWithdrawShares(t *testing.T) {
	f := newFixture(t).withMiner(t)
	f.deposit(t, user, 100)
	f.deposit(t, user, 100)

	code, err := f.d.WithdrawShares(user, sharesAddr, big.NewInt(201))
	require.NoError(t, err)
	assert.Equal(t, errcode.InsufficientBalance, code)

	code, err = f.d.WithdrawShares(user, sharesAddr, big.NewInt(50))
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)
	assert.Equal(t, M(big.NewInt(150), nil), M(f.d.DepositBalance(sharesAddr, user)))
	assert.Equal(t, M(big.NewInt(sharesBalance-150), nil), M(f.shares.BalanceOf(user)))
	assert.Equal(t, M(big.NewInt(150), nil), M(f.shares.BalanceOf(miner)))
	assert.Equal(t, big.NewInt(150), f.balances.last[user])
}

func TestWithdrawSharesWithoutMinerAllowance(t *testing.T) {
	f := newFixture(t).withMiner(t)
	f.deposit(t, user, 100)
	require.NoError(t, f.shares.Approve(miner, walletAddr, big.NewInt(0)))

	code, err := f.d.WithdrawShares(user, sharesAddr, big.NewInt(50))
	require.NoError(t, err)
	assert.Equal(t, errcode.TransferFailed, code)
	assert.Equal(t, M(big.NewInt(100), nil), M(f.d.DepositBalance(sharesAddr, user)))
}

func TestForceWithdrawShares(t *testing.T) {
	f := newFixture(t).withMiner(t)
	f.deposit(t, user, 100)

	_, err := f.d.ForceWithdrawShares(stranger, user, sharesAddr, big.NewInt(10))
	requireRevert(t, errcode.Unauthorized, err)

	code, err := f.d.ForceWithdrawShares(owner, user, sharesAddr, big.NewInt(60))
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)
	assert.Equal(t, M(big.NewInt(40), nil), M(f.d.DepositBalance(sharesAddr, user)))
	assert.Equal(t, M(big.NewInt(60), nil), M(f.shares.BalanceOf(owner)))
}

func TestWithdrawRequestFlow(t *testing.T) {
	f := newFixture(t).withMiner(t)
	f.deposit(t, user, 100)
	id := lx.BytesToBytes32([]byte{0x11, 0x11})

	assert.Equal(t, M(new(big.Int), nil), M(f.d.RequestedWithdrawAmount(sharesAddr, user)))

	code, err := f.d.RequestWithdrawShares(user, id, sharesAddr, big.NewInt(101))
	require.NoError(t, err)
	assert.Equal(t, errcode.WithdrawLimitExceeded, code)

	code, err = f.d.RequestWithdrawShares(user, id, sharesAddr, big.NewInt(40))
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)

	code, err = f.d.RequestWithdrawShares(user, id, sharesAddr, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, errcode.RegistrationIDExists, code)

	req, err := f.d.CheckRegisteredWithdrawRequest(id)
	require.NoError(t, err)
	assert.Equal(t, sharesAddr, req.Asset)
	assert.Equal(t, big.NewInt(40), req.Amount)
	assert.Equal(t, user, req.Target)
	assert.Equal(t, user, req.Receiver)

	assert.Equal(t, M(big.NewInt(40), nil), M(f.d.RequestedWithdrawAmount(sharesAddr, user)))
	assert.Equal(t, M(big.NewInt(60), nil), M(f.d.AvailableBalance(sharesAddr, user)))

	// the reserved part can not be requested twice
	code, err = f.d.RequestWithdrawShares(user, lx.BytesToBytes32([]byte{0x22}), sharesAddr, big.NewInt(61))
	require.NoError(t, err)
	assert.Equal(t, errcode.WithdrawLimitExceeded, code)

	// a resolver without approved funds can not pay
	code, err = f.d.ResolveWithdrawSharesRequest(lx.BytesToAddress([]byte("poor")), id)
	require.NoError(t, err)
	assert.Equal(t, errcode.InsufficientBalance, code)

	code, err = f.d.ResolveWithdrawSharesRequest(miner, id)
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)
	assert.Equal(t, M(big.NewInt(60), nil), M(f.shares.BalanceOf(miner)))
	assert.Equal(t, M(big.NewInt(sharesBalance-60), nil), M(f.shares.BalanceOf(user)))
	assert.Equal(t, M(big.NewInt(60), nil), M(f.d.DepositBalance(sharesAddr, user)))
	assert.Equal(t, M(new(big.Int), nil), M(f.d.RequestedWithdrawAmount(sharesAddr, user)))
	assert.Equal(t, M(big.NewInt(60), nil), M(f.d.TotalDeposit(sharesAddr)))

	req, err = f.d.CheckRegisteredWithdrawRequest(id)
	require.NoError(t, err)
	assert.False(t, req.Exists())
	assert.Equal(t, &WithdrawRequest{Amount: new(big.Int)}, req)

	code, err = f.d.ResolveWithdrawSharesRequest(miner, id)
	require.NoError(t, err)
	assert.Equal(t, errcode.NoRegisteredWithdrawalFound, code)
}

func TestCancelWithdrawRequest(t *testing.T) {
	f := newFixture(t).withMiner(t)
	f.deposit(t, user, 1000)
	id1 := lx.BytesToBytes32([]byte{0xff})
	id2 := lx.BytesToBytes32([]byte{0xee})

	for _, r := range []struct {
		id     lx.Bytes32
		amount int64
	}{{id1, 50}, {id2, 400}} {
		code, err := f.d.RequestWithdrawShares(user, r.id, sharesAddr, big.NewInt(r.amount))
		require.NoError(t, err)
		require.Equal(t, errcode.OK, code)
	}
	assert.Equal(t, M(big.NewInt(450), nil), M(f.d.RequestedWithdrawAmount(sharesAddr, user)))

	_, err := f.d.CancelWithdrawSharesRequest(stranger, id1)
	requireRevert(t, errcode.Unauthorized, err)

	code, err := f.d.CancelWithdrawSharesRequest(user, id1)
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)

	req, err := f.d.CheckRegisteredWithdrawRequest(id1)
	require.NoError(t, err)
	assert.False(t, req.Exists())
	assert.Equal(t, M(big.NewInt(400), nil), M(f.d.RequestedWithdrawAmount(sharesAddr, user)))
	assert.Equal(t, M(big.NewInt(1000), nil), M(f.d.DepositBalance(sharesAddr, user)))

	code, err = f.d.CancelWithdrawSharesRequest(user, id1)
	require.NoError(t, err)
	assert.Equal(t, errcode.NoRegisteredWithdrawalFound, code)
}

func TestForceRequestWithdraw(t *testing.T) {
	f := newFixture(t).withMiner(t)
	f.deposit(t, user2, 1000)
	id := lx.BytesToBytes32([]byte{0xff})

	_, err := f.d.ForceRequestWithdrawShares(stranger, id, user2, sharesAddr, big.NewInt(50), stranger)
	requireRevert(t, errcode.Unauthorized, err)

	code, err := f.d.ForceRequestWithdrawShares(owner, id, user2, sharesAddr, big.NewInt(50), owner)
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)
	assert.Equal(t, M(big.NewInt(50), nil), M(f.d.RequestedWithdrawAmount(sharesAddr, user2)))
	assert.Equal(t, M(new(big.Int), nil), M(f.d.RequestedWithdrawAmount(sharesAddr, owner)))

	code, err = f.d.ForceRequestWithdrawShares(owner, id, user2, sharesAddr, big.NewInt(50), owner)
	require.NoError(t, err)
	assert.Equal(t, errcode.RegistrationIDExists, code)

	// only the owner, who requested it, may cancel
	_, err = f.d.CancelWithdrawSharesRequest(user2, id)
	requireRevert(t, errcode.Unauthorized, err)

	code, err = f.d.ResolveWithdrawSharesRequest(miner, id)
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)
	assert.Equal(t, M(big.NewInt(50), nil), M(f.shares.BalanceOf(owner)))
	assert.Equal(t, M(big.NewInt(sharesBalance-1000), nil), M(f.shares.BalanceOf(user2)))
	assert.Equal(t, M(big.NewInt(950), nil), M(f.d.DepositBalance(sharesAddr, user2)))
	assert.Equal(t, M(new(big.Int), nil), M(f.d.DepositBalance(sharesAddr, owner)))
}

func TestResolveAllowListedRequest(t *testing.T) {
	f := newFixture(t).withMiner(t)
	_, err := f.d.AllowShares(owner, []lx.Address{asset1Addr}, []*big.Int{big.NewInt(0)})
	require.NoError(t, err)

	code, err := f.d.Deposit(user, asset1Addr, big.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, errcode.OK, code)
	id := lx.BytesToBytes32([]byte("asset1-out"))
	code, err = f.d.RequestWithdrawShares(user, id, asset1Addr, big.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, errcode.OK, code)

	// the wallet pays, whoever resolves
	code, err = f.d.ResolveWithdrawSharesRequest(stranger, id)
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)
	assert.Equal(t, M(big.NewInt(sharesBalance), nil), M(f.asset1.BalanceOf(user)))
	assert.Equal(t, M(big.NewInt(sharesBalance), nil), M(f.asset1.BalanceOf(stranger)))
	assert.Equal(t, M(new(big.Int), nil), M(f.asset1.BalanceOf(walletAddr)))
	assert.Equal(t, M(new(big.Int), nil), M(f.d.TotalDeposit(asset1Addr)))
	assert.Equal(t, M(new(big.Int), nil), M(f.d.DepositBalance(asset1Addr, user)))
}

func TestLockAndUnlock(t *testing.T) {
	f := newFixture(t).withMiner(t)
	f.deposit(t, user, 100)
	f.deposit(t, user2, 100)

	_, err := f.d.SetMiningDepositLimits(stranger, sharesAddr, big.NewInt(10))
	requireRevert(t, errcode.Unauthorized, err)
	_, err = f.d.SetMiningDepositLimits(owner, sharesAddr, big.NewInt(10))
	require.NoError(t, err)
	assert.Equal(t, M(big.NewInt(10), nil), M(f.d.MiningDepositLimits(sharesAddr)))

	delegate := lx.BytesToAddress([]byte("node"))
	tests := []struct {
		caller   lx.Address
		asset    lx.Address
		amount   int64
		delegate lx.Address
		want     errcode.Code
	}{
		{user, asset1Addr, 10, delegate, errcode.Unauthorized},
		{user, sharesAddr, 101, delegate, errcode.InsufficientBalance},
		{user, sharesAddr, 9, delegate, errcode.InsufficientBalance},
		{user, sharesAddr, 60, delegate, errcode.OK},
		{user2, sharesAddr, 60, delegate, errcode.Unauthorized},
		{user, sharesAddr, 10, user, errcode.Unauthorized},
		{user, sharesAddr, 10, delegate, errcode.OK},
		{user2, sharesAddr, 10, lx.Address{}, errcode.OK},
	}
	for i, tt := range tests {
		code, err := f.d.LockDepositAndBecomeMiner(tt.caller, tt.asset, big.NewInt(tt.amount), tt.delegate)
		require.NoError(t, err)
		assert.Equal(t, tt.want, code, "case %d", i)
	}
	assert.Equal(t, []string{
		"lock:" + delegate.String(),
		"lock:" + delegate.String(),
		"lock:" + user2.String(),
	}, f.mining.events)

	acc, err := f.d.GetAccount(sharesAddr, user)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(70), acc.Locked)
	assert.Equal(t, big.NewInt(30), acc.Available)
	assert.Equal(t, delegate, acc.Delegate)
	assert.Equal(t, M(user, nil), M(f.d.DelegateOf(delegate)))

	// locked stake is neither withdrawable nor requestable
	code, err := f.d.WithdrawShares(user, sharesAddr, big.NewInt(31))
	require.NoError(t, err)
	assert.Equal(t, errcode.InsufficientBalance, code)
	code, err = f.d.RequestWithdrawShares(user, lx.BytesToBytes32([]byte{1}), sharesAddr, big.NewInt(31))
	require.NoError(t, err)
	assert.Equal(t, errcode.WithdrawLimitExceeded, code)

	code, err = f.d.UnlockDepositAndResignMiner(user, sharesAddr)
	require.NoError(t, err)
	assert.Equal(t, errcode.OK, code)
	assert.Equal(t, "unlock:"+delegate.String(), f.mining.events[len(f.mining.events)-1])
	assert.Equal(t, M(new(big.Int), nil), M(f.d.LockedDepositBalance(sharesAddr, user)))
	assert.Equal(t, M(big.NewInt(100), nil), M(f.d.AvailableBalance(sharesAddr, user)))
	assert.Equal(t, M(lx.Address{}, nil), M(f.d.DelegateOf(delegate)))

	code, err = f.d.UnlockDepositAndResignMiner(user, sharesAddr)
	require.NoError(t, err)
	assert.Equal(t, errcode.InsufficientBalance, code)

	code, err = f.d.UnlockDepositAndResignMiner(user2, asset1Addr)
	require.NoError(t, err)
	assert.Equal(t, errcode.Unauthorized, code)
}
