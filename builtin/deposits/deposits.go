// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package deposits implements the stake ledger. It custodies the stake token
// and allow-listed assets per depositor, runs the two-phase withdrawal
// protocol and turns locked stake into validator candidacy.
package deposits

import (
	"math/big"

	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/builtin/reverts"
	"github.com/chronobank/lxmint/builtin/solidity"
	"github.com/chronobank/lxmint/builtin/token"
	"github.com/chronobank/lxmint/builtin/wallet"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/metrics"
	"github.com/chronobank/lxmint/state"
)

var (
	logger = log.WithContext("pkg", "deposits")

	metricOperations = metrics.LazyLoadCounterVec("ledger_operations_total", []string{"op", "code"})

	primaryMinerKey = lx.Blake2b([]byte("primary-miner"))
	totalsKey       = lx.Blake2b([]byte("totals"))
	allowListKey    = lx.Blake2b([]byte("allow-list"))
	requestsKey     = lx.Blake2b([]byte("withdraw-requests"))
	miningLimitsKey = lx.Blake2b([]byte("mining-limits"))
	delegatesKey    = lx.Blake2b([]byte("delegates"))
)

// Deposits is the stake ledger.
type Deposits struct {
	addr   lx.Address
	state  *state.State
	owner  lx.Address
	shares lx.Address
	wallet *wallet.Wallet
	tokens token.Resolver

	mining   MiningObserver
	balances BalanceObserver

	primaryMiner *solidity.Address
	totals       *solidity.Mapping[lx.Address, *big.Int]
	allowList    *solidity.Mapping[lx.Address, *allowance]
	requests     *solidity.Mapping[lx.Bytes32, *WithdrawRequest]
	miningLimits *solidity.Mapping[lx.Address, *big.Int]
	delegates    *solidity.Mapping[lx.Address, lx.Address]
}

// New creates the ledger at addr. shares is the stake token; w holds the
// allow-listed assets and must be owned by addr.
func New(addr lx.Address, st *state.State, owner, shares lx.Address, w *wallet.Wallet, tokens token.Resolver) *Deposits {
	ctx := solidity.NewContext(addr, st)
	return &Deposits{
		addr:         addr,
		state:        st,
		owner:        owner,
		shares:       shares,
		wallet:       w,
		tokens:       tokens,
		primaryMiner: solidity.NewAddress(ctx, primaryMinerKey),
		totals:       solidity.NewMapping[lx.Address, *big.Int](ctx, totalsKey),
		allowList:    solidity.NewMapping[lx.Address, *allowance](ctx, allowListKey),
		requests:     solidity.NewMapping[lx.Bytes32, *WithdrawRequest](ctx, requestsKey),
		miningLimits: solidity.NewMapping[lx.Address, *big.Int](ctx, miningLimitsKey),
		delegates:    solidity.NewMapping[lx.Address, lx.Address](ctx, delegatesKey),
	}
}

// SetMiningObserver registers the receiver of lock and unlock signals.
func (d *Deposits) SetMiningObserver(o MiningObserver) { d.mining = o }

// SetBalanceObserver registers the receiver of stake-token balance changes.
func (d *Deposits) SetBalanceObserver(o BalanceObserver) { d.balances = o }

func (d *Deposits) Address() lx.Address { return d.addr }

// Shares returns the stake token address.
func (d *Deposits) Shares() lx.Address { return d.shares }

func (d *Deposits) Wallet() *wallet.Wallet { return d.wallet }

func (d *Deposits) Owner() lx.Address { return d.owner }

func accountKey(asset, holder lx.Address) lx.Bytes32 {
	return lx.Blake2b([]byte("account"), asset.Bytes(), holder.Bytes())
}

func (d *Deposits) getAccount(asset, holder lx.Address) (*account, error) {
	var acc account
	if err := d.state.DecodeStorage(d.addr, accountKey(asset, holder), acc.decode); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (d *Deposits) setAccount(asset, holder lx.Address, acc *account) error {
	return d.state.EncodeStorage(d.addr, accountKey(asset, holder), acc.encode)
}

func (d *Deposits) checkOwner(caller lx.Address, op string) error {
	if caller != d.owner {
		return reverts.WithCode(errcode.Unauthorized, "%s by %v", op, caller)
	}
	return nil
}

func count(op string, code errcode.Code) errcode.Code {
	metricOperations().AddWithLabel(1, map[string]string{"op": op, "code": code.String()})
	return code
}

// GetAccount returns the full depositor record.
func (d *Deposits) GetAccount(asset, holder lx.Address) (*Account, error) {
	acc, err := d.getAccount(asset, holder)
	if err != nil {
		return nil, err
	}
	out := &Account{
		Balance:   acc.Balance,
		Locked:    acc.Locked,
		Requested: acc.Requested,
		Available: acc.Available(),
	}
	if acc.Delegate != nil {
		out.Delegate = *acc.Delegate
	}
	return out, nil
}

// DepositBalance returns the deposited amount of asset held for holder.
func (d *Deposits) DepositBalance(asset, holder lx.Address) (*big.Int, error) {
	acc, err := d.getAccount(asset, holder)
	if err != nil {
		return nil, err
	}
	return acc.Balance, nil
}

// SharesBalance is DepositBalance of the stake token.
func (d *Deposits) SharesBalance(holder lx.Address) (*big.Int, error) {
	return d.DepositBalance(d.shares, holder)
}

func (d *Deposits) LockedDepositBalance(asset, holder lx.Address) (*big.Int, error) {
	acc, err := d.getAccount(asset, holder)
	if err != nil {
		return nil, err
	}
	return acc.Locked, nil
}

func (d *Deposits) RequestedWithdrawAmount(asset, holder lx.Address) (*big.Int, error) {
	acc, err := d.getAccount(asset, holder)
	if err != nil {
		return nil, err
	}
	return acc.Requested, nil
}

func (d *Deposits) AvailableBalance(asset, holder lx.Address) (*big.Int, error) {
	acc, err := d.getAccount(asset, holder)
	if err != nil {
		return nil, err
	}
	return acc.Available(), nil
}

// TotalDeposit returns the amount of asset deposited by all holders.
func (d *Deposits) TotalDeposit(asset lx.Address) (*big.Int, error) {
	return d.totals.Get(asset)
}

// PrimaryMiner returns the custody party of the stake token.
func (d *Deposits) PrimaryMiner() (lx.Address, error) {
	return d.primaryMiner.Get()
}

// SetPrimaryMiner is owner-only.
func (d *Deposits) SetPrimaryMiner(caller, miner lx.Address) (errcode.Code, error) {
	if err := d.checkOwner(caller, "setPrimaryMiner"); err != nil {
		return errcode.Unauthorized, err
	}
	prev, err := d.primaryMiner.Get()
	if err != nil {
		return errcode.OK, err
	}
	d.primaryMiner.Set(miner)
	logger.Info("primary miner changed", "from", prev, "to", miner)
	return count("setPrimaryMiner", errcode.OK), nil
}

// applyDelta adjusts the balance of holder and the asset total by delta,
// then notifies the balance observer for the stake token.
func (d *Deposits) applyDelta(asset, holder lx.Address, acc *account, delta *big.Int) error {
	acc.Balance.Add(acc.Balance, delta)
	if err := d.setAccount(asset, holder, acc); err != nil {
		return err
	}
	total, err := d.totals.Get(asset)
	if err != nil {
		return err
	}
	total.Add(total, delta)
	if total.Sign() == 0 {
		d.totals.Delete(asset)
	} else if err := d.totals.Set(asset, total); err != nil {
		return err
	}
	if asset == d.shares && d.balances != nil {
		return d.balances.BalanceChanged(holder, new(big.Int).Set(acc.Balance), total)
	}
	return nil
}
