// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deposits

import (
	"math/big"

	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/lx"
)

// MiningDepositLimits returns the minimum locked balance of asset a
// candidate must hold.
func (d *Deposits) MiningDepositLimits(asset lx.Address) (*big.Int, error) {
	return d.miningLimits.Get(asset)
}

// SetMiningDepositLimits is owner-only.
func (d *Deposits) SetMiningDepositLimits(caller, asset lx.Address, limit *big.Int) (errcode.Code, error) {
	if err := d.checkOwner(caller, "setMiningDepositLimits"); err != nil {
		return errcode.Unauthorized, err
	}
	if limit.Sign() <= 0 {
		d.miningLimits.Delete(asset)
	} else if err := d.miningLimits.Set(asset, limit); err != nil {
		return errcode.OK, err
	}
	logger.Info("mining deposit limit changed", "asset", asset, "limit", limit)
	return count("setMiningDepositLimits", errcode.OK), nil
}

// DelegateOf returns the holder whose stake backs delegate.
func (d *Deposits) DelegateOf(delegate lx.Address) (lx.Address, error) {
	return d.delegates.Get(delegate)
}

// LockDepositAndBecomeMiner locks amount more of the caller's stake and makes
// delegate, the caller when zero, a validator candidate.
func (d *Deposits) LockDepositAndBecomeMiner(caller, asset lx.Address, amount *big.Int, delegate lx.Address) (errcode.Code, error) {
	const op = "lock"
	if asset != d.shares {
		return count(op, errcode.Unauthorized), nil
	}
	if delegate.IsZero() {
		delegate = caller
	}
	acc, err := d.getAccount(asset, caller)
	if err != nil {
		return errcode.OK, err
	}
	if amount.Sign() < 0 || amount.Cmp(acc.Available()) > 0 {
		return count(op, errcode.InsufficientBalance), nil
	}
	locked := new(big.Int).Add(acc.Locked, amount)
	limit, err := d.miningLimits.Get(asset)
	if err != nil {
		return errcode.OK, err
	}
	if locked.Sign() == 0 || locked.Cmp(limit) < 0 {
		return count(op, errcode.InsufficientBalance), nil
	}
	if acc.Delegate != nil && *acc.Delegate != delegate {
		return count(op, errcode.Unauthorized), nil
	}
	holder, err := d.delegates.Get(delegate)
	if err != nil {
		return errcode.OK, err
	}
	if !holder.IsZero() && holder != caller {
		return count(op, errcode.Unauthorized), nil
	}

	acc.Locked = locked
	acc.Delegate = &delegate
	if err := d.setAccount(asset, caller, acc); err != nil {
		return errcode.OK, err
	}
	if err := d.delegates.Set(delegate, caller); err != nil {
		return errcode.OK, err
	}
	if d.mining != nil {
		if err := d.mining.MinerLocked(delegate); err != nil {
			return errcode.OK, err
		}
	}
	logger.Debug("deposit locked", "holder", caller, "delegate", delegate, "locked", locked)
	return count(op, errcode.OK), nil
}

// UnlockDepositAndResignMiner releases the whole locked balance of the caller
// and withdraws its delegate from candidacy.
func (d *Deposits) UnlockDepositAndResignMiner(caller, asset lx.Address) (errcode.Code, error) {
	const op = "unlock"
	if asset != d.shares {
		return count(op, errcode.Unauthorized), nil
	}
	acc, err := d.getAccount(asset, caller)
	if err != nil {
		return errcode.OK, err
	}
	if acc.Locked.Sign() == 0 {
		return count(op, errcode.InsufficientBalance), nil
	}
	delegate := caller
	if acc.Delegate != nil {
		delegate = *acc.Delegate
	}
	acc.Locked = new(big.Int)
	acc.Delegate = nil
	if err := d.setAccount(asset, caller, acc); err != nil {
		return errcode.OK, err
	}
	d.delegates.Delete(delegate)
	if d.mining != nil {
		if err := d.mining.MinerUnlocked(delegate); err != nil {
			return errcode.OK, err
		}
	}
	logger.Debug("deposit unlocked", "holder", caller, "delegate", delegate)
	return count(op, errcode.OK), nil
}
