// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewards distributes externally funded rewards to stake holders in
// proportion to their deposit, period by period. Claims are computed lazily
// once a period is closed.
package rewards

import (
	"math/big"
	"sort"

	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/builtin/reverts"
	"github.com/chronobank/lxmint/builtin/solidity"
	"github.com/chronobank/lxmint/builtin/wallet"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/metrics"
	"github.com/chronobank/lxmint/state"
	"github.com/pkg/errors"
)

var (
	logger = log.WithContext("pkg", "rewards")

	metricPeriodsClosed = metrics.LazyLoadCounter("reward_periods_closed_total")
	metricWithdrawals   = metrics.LazyLoadCounterVec("reward_withdrawals_total", []string{"asset"})

	lastPeriodKey  = lx.Blake2b([]byte("last-period"))
	startKey       = lx.Blake2b([]byte("period-start"))
	totalKey       = lx.Blake2b([]byte("period-total"))
	uniqueKey      = lx.Blake2b([]byte("period-unique"))
	poolKey        = lx.Blake2b([]byte("period-pool"))
	rewardsLeftKey = lx.Blake2b([]byte("rewards-left"))
	balanceKey     = lx.Blake2b([]byte("balance-in-period"))
	changesKey     = lx.Blake2b([]byte("balance-changes"))
	calculatedKey  = lx.Blake2b([]byte("calculated"))
	accountKey     = lx.Blake2b([]byte("account"))
)

// Rewards is the period reward distributor.
type Rewards struct {
	addr          lx.Address
	state         *state.State
	ctx           *solidity.Context
	wallet        *wallet.Wallet
	assets        []lx.Address
	closeInterval uint64

	lastPeriod  *solidity.Uint256
	starts      *solidity.Mapping[solidity.Uint64Key, uint64]
	totals      *solidity.Mapping[solidity.Uint64Key, *big.Int]
	uniques     *solidity.Mapping[solidity.Uint64Key, uint64]
	pools       *solidity.Mapping[lx.Bytes32, *big.Int]
	rewardsLeft *solidity.Mapping[lx.Address, *big.Int]
	balances    *solidity.Mapping[lx.Bytes32, *big.Int]
	calculated  *solidity.Mapping[lx.Bytes32, bool]
}

// New creates the distributor at addr paying assets out of w. closeInterval
// is the minimum period length in seconds.
func New(addr lx.Address, st *state.State, w *wallet.Wallet, assets []lx.Address, closeInterval uint64) *Rewards {
	ctx := solidity.NewContext(addr, st)
	return &Rewards{
		addr:          addr,
		state:         st,
		ctx:           ctx,
		wallet:        w,
		assets:        assets,
		closeInterval: closeInterval,
		lastPeriod:    solidity.NewUint256(ctx, lastPeriodKey),
		starts:        solidity.NewMapping[solidity.Uint64Key, uint64](ctx, startKey),
		totals:        solidity.NewMapping[solidity.Uint64Key, *big.Int](ctx, totalKey),
		uniques:       solidity.NewMapping[solidity.Uint64Key, uint64](ctx, uniqueKey),
		pools:         solidity.NewMapping[lx.Bytes32, *big.Int](ctx, poolKey),
		rewardsLeft:   solidity.NewMapping[lx.Address, *big.Int](ctx, rewardsLeftKey),
		balances:      solidity.NewMapping[lx.Bytes32, *big.Int](ctx, balanceKey),
		calculated:    solidity.NewMapping[lx.Bytes32, bool](ctx, calculatedKey),
	}
}

func (r *Rewards) Address() lx.Address { return r.addr }

// Wallet returns the rewards wallet.
func (r *Rewards) Wallet() *wallet.Wallet { return r.wallet }

// Assets returns the reward assets.
func (r *Rewards) Assets() []lx.Address { return r.assets }

// CloseInterval returns the minimum period length in seconds.
func (r *Rewards) CloseInterval() uint64 { return r.closeInterval }

// Init opens period 0 at start.
func (r *Rewards) Init(start uint64) error {
	return r.starts.Set(0, start)
}

// LastPeriod returns the index of the open period.
func (r *Rewards) LastPeriod() (uint64, error) {
	v, err := r.lastPeriod.Get()
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

func (r *Rewards) PeriodStartDate(period uint64) (uint64, error) {
	return r.starts.Get(solidity.Uint64Key(period))
}

// TotalDepositInPeriod returns the total stake of the period, frozen once it
// is closed.
func (r *Rewards) TotalDepositInPeriod(period uint64) (*big.Int, error) {
	return r.totals.Get(solidity.Uint64Key(period))
}

// PeriodUnique returns the number of holders with a non-zero stake in period.
func (r *Rewards) PeriodUnique(period uint64) (uint64, error) {
	return r.uniques.Get(solidity.Uint64Key(period))
}

// AssetBalanceInPeriod returns the pool of asset captured when period closed.
func (r *Rewards) AssetBalanceInPeriod(asset lx.Address, period uint64) (*big.Int, error) {
	return r.pools.Get(solidity.Compose(asset, solidity.Uint64Key(period)))
}

// RewardsLeft returns the pool funds of asset not yet withdrawn.
func (r *Rewards) RewardsLeft(asset lx.Address) (*big.Int, error) {
	return r.rewardsLeft.Get(asset)
}

// GetPeriod summarizes period.
func (r *Rewards) GetPeriod(period uint64) (*Period, error) {
	last, err := r.LastPeriod()
	if err != nil {
		return nil, err
	}
	p := &Period{Index: period, Closed: period < last}
	if p.StartDate, err = r.PeriodStartDate(period); err != nil {
		return nil, err
	}
	if p.TotalDeposit, err = r.TotalDepositInPeriod(period); err != nil {
		return nil, err
	}
	if p.Unique, err = r.PeriodUnique(period); err != nil {
		return nil, err
	}
	return p, nil
}

// ClosePeriod captures the funds received since the last close as the pool of
// the open period and opens the next one.
func (r *Rewards) ClosePeriod(now uint64) (errcode.Code, error) {
	last, err := r.LastPeriod()
	if err != nil {
		return errcode.OK, err
	}
	start, err := r.PeriodStartDate(last)
	if err != nil {
		return errcode.OK, err
	}
	if now < start+r.closeInterval {
		return errcode.CloseIntervalNotElapsed, nil
	}
	for _, asset := range r.assets {
		bal, err := r.wallet.BalanceOf(asset)
		if err != nil {
			return errcode.OK, err
		}
		left, err := r.rewardsLeft.Get(asset)
		if err != nil {
			return errcode.OK, err
		}
		pool := bal.Sub(bal, left)
		if pool.Sign() < 0 {
			pool.SetUint64(0)
		}
		if err := r.pools.Set(solidity.Compose(asset, solidity.Uint64Key(last)), pool); err != nil {
			return errcode.OK, err
		}
		if err := r.rewardsLeft.Set(asset, left.Add(left, pool)); err != nil {
			return errcode.OK, err
		}
	}

	total, err := r.totals.Get(solidity.Uint64Key(last))
	if err != nil {
		return errcode.OK, err
	}
	unique, err := r.uniques.Get(solidity.Uint64Key(last))
	if err != nil {
		return errcode.OK, err
	}
	next := solidity.Uint64Key(last + 1)
	if err := r.totals.Set(next, total); err != nil {
		return errcode.OK, err
	}
	if err := r.uniques.Set(next, unique); err != nil {
		return errcode.OK, err
	}
	if err := r.starts.Set(next, now); err != nil {
		return errcode.OK, err
	}
	r.lastPeriod.Set(new(big.Int).SetUint64(last + 1))

	metricPeriodsClosed().Add(1)
	logger.Info("period closed", "period", last, "total", total, "unique", unique)
	return errcode.OK, nil
}

func (r *Rewards) changes(holder lx.Address) *solidity.Array[uint64] {
	return solidity.NewArray[uint64](r.ctx, solidity.Compose(changesKey, holder))
}

// DepositBalanceInPeriod returns the stake holder had in period. Periods
// without a change carry the balance of the latest change before them.
func (r *Rewards) DepositBalanceInPeriod(holder lx.Address, period uint64) (*big.Int, error) {
	changed, err := r.changes(holder).All()
	if err != nil {
		return nil, err
	}
	i := sort.Search(len(changed), func(i int) bool { return changed[i] > period })
	if i == 0 {
		return new(big.Int), nil
	}
	return r.balances.Get(solidity.Compose(holder, solidity.Uint64Key(changed[i-1])))
}

// BalanceChanged records the new stake of holder in the open period.
func (r *Rewards) BalanceChanged(holder lx.Address, balance, total *big.Int) error {
	last, err := r.LastPeriod()
	if err != nil {
		return err
	}
	prev, err := r.DepositBalanceInPeriod(holder, last)
	if err != nil {
		return err
	}
	changes := r.changes(holder)
	n, err := changes.Len()
	if err != nil {
		return err
	}
	latest := uint64(0)
	if n > 0 {
		if latest, err = changes.At(n - 1); err != nil {
			return err
		}
	}
	if n == 0 || latest != last {
		if err := changes.Push(last); err != nil {
			return err
		}
	}
	if err := r.balances.Set(solidity.Compose(holder, solidity.Uint64Key(last)), balance); err != nil {
		return err
	}

	if was, is := prev.Sign() > 0, balance.Sign() > 0; was != is {
		unique, err := r.uniques.Get(solidity.Uint64Key(last))
		if err != nil {
			return err
		}
		if is {
			unique++
		} else if unique > 0 {
			unique--
		}
		if err := r.uniques.Set(solidity.Uint64Key(last), unique); err != nil {
			return err
		}
	}
	return errors.WithMessage(r.totals.Set(solidity.Uint64Key(last), total), "set period total")
}

func (r *Rewards) claimKey(asset, holder lx.Address, period uint64) lx.Bytes32 {
	return solidity.Compose(asset, holder, solidity.Uint64Key(period))
}

func (r *Rewards) getAccount(asset, holder lx.Address) (*account, error) {
	var acc account
	if err := r.state.DecodeStorage(r.addr, solidity.Compose(accountKey, asset, holder), acc.decode); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *Rewards) setAccount(asset, holder lx.Address, acc *account) error {
	return r.state.EncodeStorage(r.addr, solidity.Compose(accountKey, asset, holder), acc.encode)
}

// share is floor(balance * pool / total) for a closed period.
func (r *Rewards) share(asset, holder lx.Address, period uint64) (*big.Int, error) {
	total, err := r.TotalDepositInPeriod(period)
	if err != nil || total.Sign() == 0 {
		return new(big.Int), err
	}
	bal, err := r.DepositBalanceInPeriod(holder, period)
	if err != nil {
		return nil, err
	}
	pool, err := r.AssetBalanceInPeriod(asset, period)
	if err != nil {
		return nil, err
	}
	amount := new(big.Int).Mul(bal, pool)
	return amount.Div(amount, total), nil
}

// IsCalculatedFor reports whether the claim of holder for period was added to
// its withdrawable rewards.
func (r *Rewards) IsCalculatedFor(asset, holder lx.Address, period uint64) (bool, error) {
	acc, err := r.getAccount(asset, holder)
	if err != nil {
		return false, err
	}
	if period < acc.Cursor {
		return true, nil
	}
	return r.calculated.Get(r.claimKey(asset, holder, period))
}

// CalculateRewardFor adds the claim of holder for a closed period to its
// withdrawable rewards. It is a no-op once calculated.
func (r *Rewards) CalculateRewardFor(asset, holder lx.Address, period uint64) (errcode.Code, error) {
	last, err := r.LastPeriod()
	if err != nil {
		return errcode.OK, err
	}
	if period >= last {
		return errcode.OK, reverts.New("rewards: period not closed")
	}
	done, err := r.IsCalculatedFor(asset, holder, period)
	if err != nil || done {
		return errcode.OK, err
	}
	amount, err := r.share(asset, holder, period)
	if err != nil {
		return errcode.OK, err
	}
	acc, err := r.getAccount(asset, holder)
	if err != nil {
		return errcode.OK, err
	}
	acc.Amount.Add(acc.Amount, amount)
	if err := r.setAccount(asset, holder, acc); err != nil {
		return errcode.OK, err
	}
	if err := r.calculated.Set(r.claimKey(asset, holder, period), true); err != nil {
		return errcode.OK, err
	}
	logger.Debug("reward calculated", "asset", asset, "holder", holder, "period", period, "amount", amount)
	return errcode.OK, nil
}

// pending walks the closed periods not yet folded into acc and sums the
// uncalculated claims. With commit it folds them in.
func (r *Rewards) pending(asset, holder lx.Address, acc *account, commit bool) (*big.Int, error) {
	last, err := r.LastPeriod()
	if err != nil {
		return nil, err
	}
	sum := new(big.Int)
	for p := acc.Cursor; p < last; p++ {
		key := r.claimKey(asset, holder, p)
		done, err := r.calculated.Get(key)
		if err != nil {
			return nil, err
		}
		if done {
			if commit {
				r.calculated.Delete(key)
			}
			continue
		}
		amount, err := r.share(asset, holder, p)
		if err != nil {
			return nil, err
		}
		sum.Add(sum, amount)
	}
	if commit {
		acc.Amount.Add(acc.Amount, sum)
		acc.Cursor = last
	}
	return sum, nil
}

// RewardsFor returns what holder can withdraw of asset, including closed
// periods not yet calculated.
func (r *Rewards) RewardsFor(asset, holder lx.Address) (*big.Int, error) {
	acc, err := r.getAccount(asset, holder)
	if err != nil {
		return nil, err
	}
	sum, err := r.pending(asset, holder, acc, false)
	if err != nil {
		return nil, err
	}
	return sum.Add(sum, acc.Amount), nil
}

// WithdrawReward pays amount of asset to the caller out of its rewards.
func (r *Rewards) WithdrawReward(caller, asset lx.Address, amount *big.Int) (errcode.Code, error) {
	available, err := r.RewardsFor(asset, caller)
	if err != nil {
		return errcode.OK, err
	}
	if amount.Sign() <= 0 || amount.Cmp(available) > 0 {
		return errcode.InsufficientBalance, nil
	}
	left, err := r.rewardsLeft.Get(asset)
	if err != nil {
		return errcode.OK, err
	}
	if amount.Cmp(left) > 0 {
		return errcode.InsufficientBalance, nil
	}
	moved, err := r.wallet.Withdraw(r.addr, asset, r.wallet.Address(), caller, amount)
	if err != nil {
		return errcode.OK, err
	}
	if !moved {
		return errcode.TransferFailed, nil
	}

	acc, err := r.getAccount(asset, caller)
	if err != nil {
		return errcode.OK, err
	}
	if _, err := r.pending(asset, caller, acc, true); err != nil {
		return errcode.OK, err
	}
	acc.Amount.Sub(acc.Amount, amount)
	if err := r.setAccount(asset, caller, acc); err != nil {
		return errcode.OK, err
	}
	if err := r.rewardsLeft.Set(asset, left.Sub(left, amount)); err != nil {
		return errcode.OK, err
	}
	metricWithdrawals().AddWithLabel(1, map[string]string{"asset": asset.String()})
	logger.Debug("reward withdrawn", "asset", asset, "holder", caller, "amount", amount)
	return errcode.OK, nil
}
