// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deposits

import (
	"math/big"

	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/builtin/reverts"
	"github.com/chronobank/lxmint/lx"
)

// custodian returns who holds deposited asset: the primary miner for the
// stake token, the wallet for everything else.
func (d *Deposits) custodian(asset lx.Address) (lx.Address, error) {
	if asset != d.shares {
		return d.wallet.Address(), nil
	}
	return d.primaryMiner.Get()
}

// Deposit credits amount of asset to the caller.
func (d *Deposits) Deposit(caller, asset lx.Address, amount *big.Int) (errcode.Code, error) {
	return d.DepositFor(caller, asset, caller, amount)
}

// DepositFor pulls amount of asset from caller and credits it to beneficiary.
// The caller must have approved the ledger wallet beforehand.
func (d *Deposits) DepositFor(caller, asset, beneficiary lx.Address, amount *big.Int) (errcode.Code, error) {
	miner, err := d.primaryMiner.Get()
	if err != nil {
		return errcode.OK, err
	}
	if miner.IsZero() {
		return errcode.MinerRequired, reverts.WithCode(errcode.MinerRequired, "no primary miner")
	}
	if beneficiary == miner {
		return errcode.Unauthorized, reverts.WithCode(errcode.Unauthorized, "deposit for primary miner %v", miner)
	}
	if amount.Sign() < 0 {
		return errcode.OK, reverts.New("deposits: negative amount")
	}
	ok, err := d.checkCeiling(asset, amount)
	if err != nil {
		return errcode.OK, err
	}
	if !ok {
		return count("deposit", errcode.Unauthorized), nil
	}
	to, err := d.custodian(asset)
	if err != nil {
		return errcode.OK, err
	}
	moved, err := d.wallet.Deposit(d.addr, asset, caller, to, amount)
	if err != nil {
		return errcode.OK, err
	}
	if !moved {
		return count("deposit", errcode.TransferFailed), nil
	}
	acc, err := d.getAccount(asset, beneficiary)
	if err != nil {
		return errcode.OK, err
	}
	if err := d.applyDelta(asset, beneficiary, acc, amount); err != nil {
		return errcode.OK, err
	}
	logger.Debug("deposited", "asset", asset, "holder", beneficiary, "from", caller, "amount", amount)
	return count("deposit", errcode.OK), nil
}

// WithdrawShares pays amount of the caller's available balance back to it.
func (d *Deposits) WithdrawShares(caller, asset lx.Address, amount *big.Int) (errcode.Code, error) {
	return d.withdraw("withdraw", asset, caller, caller, amount)
}

// ForceWithdrawShares moves amount of the depositor's available balance to
// the owner.
func (d *Deposits) ForceWithdrawShares(caller, depositor, asset lx.Address, amount *big.Int) (errcode.Code, error) {
	if err := d.checkOwner(caller, "forceWithdrawShares"); err != nil {
		return errcode.Unauthorized, err
	}
	return d.withdraw("forceWithdraw", asset, depositor, d.owner, amount)
}

func (d *Deposits) withdraw(op string, asset, depositor, receiver lx.Address, amount *big.Int) (errcode.Code, error) {
	if amount.Sign() < 0 {
		return errcode.OK, reverts.New("deposits: negative amount")
	}
	acc, err := d.getAccount(asset, depositor)
	if err != nil {
		return errcode.OK, err
	}
	if amount.Cmp(acc.Available()) > 0 {
		return count(op, errcode.InsufficientBalance), nil
	}
	from, err := d.custodian(asset)
	if err != nil {
		return errcode.OK, err
	}
	moved, err := d.wallet.Withdraw(d.addr, asset, from, receiver, amount)
	if err != nil {
		return errcode.OK, err
	}
	if !moved {
		return count(op, errcode.TransferFailed), nil
	}
	if err := d.applyDelta(asset, depositor, acc, new(big.Int).Neg(amount)); err != nil {
		return errcode.OK, err
	}
	logger.Debug("withdrawn", "asset", asset, "holder", depositor, "to", receiver, "amount", amount)
	return count(op, errcode.OK), nil
}
