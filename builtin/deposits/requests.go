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

// CheckRegisteredWithdrawRequest returns the request registered under id, or
// the zero request once it was resolved or cancelled.
func (d *Deposits) CheckRegisteredWithdrawRequest(id lx.Bytes32) (*WithdrawRequest, error) {
	req, err := d.requests.Get(id)
	if err != nil {
		return nil, err
	}
	if req.Amount == nil {
		req.Amount = new(big.Int)
	}
	return req, nil
}

// RequestWithdrawShares reserves amount of the caller's available balance
// until the request is resolved or cancelled.
func (d *Deposits) RequestWithdrawShares(caller lx.Address, id lx.Bytes32, asset lx.Address, amount *big.Int) (errcode.Code, error) {
	return d.request("requestWithdraw", id, &WithdrawRequest{
		Asset:     asset,
		Amount:    amount,
		Target:    caller,
		Receiver:  caller,
		Requester: caller,
	})
}

// ForceRequestWithdrawShares registers a request on behalf of depositor
// paying out to receiver. Owner-only.
func (d *Deposits) ForceRequestWithdrawShares(caller lx.Address, id lx.Bytes32, depositor, asset lx.Address, amount *big.Int, receiver lx.Address) (errcode.Code, error) {
	if err := d.checkOwner(caller, "forceRequestWithdrawShares"); err != nil {
		return errcode.Unauthorized, err
	}
	if receiver.IsZero() {
		receiver = caller
	}
	return d.request("forceRequestWithdraw", id, &WithdrawRequest{
		Asset:     asset,
		Amount:    amount,
		Target:    depositor,
		Receiver:  receiver,
		Requester: caller,
	})
}

func (d *Deposits) request(op string, id lx.Bytes32, req *WithdrawRequest) (errcode.Code, error) {
	if req.Amount.Sign() < 0 {
		return errcode.OK, reverts.New("deposits: negative amount")
	}
	exists, err := d.requests.Exists(id)
	if err != nil {
		return errcode.OK, err
	}
	if exists {
		return count(op, errcode.RegistrationIDExists), nil
	}
	acc, err := d.getAccount(req.Asset, req.Target)
	if err != nil {
		return errcode.OK, err
	}
	if req.Amount.Cmp(acc.Available()) > 0 {
		return count(op, errcode.WithdrawLimitExceeded), nil
	}
	acc.Requested.Add(acc.Requested, req.Amount)
	if err := d.setAccount(req.Asset, req.Target, acc); err != nil {
		return errcode.OK, err
	}
	if err := d.requests.Set(id, req); err != nil {
		return errcode.OK, err
	}
	logger.Debug("withdraw requested", "id", id, "asset", req.Asset, "holder", req.Target, "receiver", req.Receiver, "amount", req.Amount)
	return count(op, errcode.OK), nil
}

// ResolveWithdrawSharesRequest pays the request and settles the depositor's
// balance. Stake is paid out of the caller's funds, which must be approved to
// the ledger wallet; other assets are paid by the wallet that holds them.
// Resolution is final.
func (d *Deposits) ResolveWithdrawSharesRequest(caller lx.Address, id lx.Bytes32) (errcode.Code, error) {
	req, err := d.requests.Get(id)
	if err != nil {
		return errcode.OK, err
	}
	if !req.Exists() {
		return count("resolveWithdraw", errcode.NoRegisteredWithdrawalFound), nil
	}
	payer := caller
	if req.Asset != d.shares {
		payer = d.wallet.Address()
	}
	moved, err := d.wallet.Withdraw(d.addr, req.Asset, payer, req.Receiver, req.Amount)
	if err != nil {
		return errcode.OK, err
	}
	if !moved {
		return count("resolveWithdraw", errcode.InsufficientBalance), nil
	}
	acc, err := d.getAccount(req.Asset, req.Target)
	if err != nil {
		return errcode.OK, err
	}
	acc.Requested.Sub(acc.Requested, req.Amount)
	if err := d.applyDelta(req.Asset, req.Target, acc, new(big.Int).Neg(req.Amount)); err != nil {
		return errcode.OK, err
	}
	d.requests.Delete(id)
	logger.Debug("withdraw resolved", "id", id, "resolver", caller, "payer", payer, "amount", req.Amount)
	return count("resolveWithdraw", errcode.OK), nil
}

// CancelWithdrawSharesRequest drops the request and releases the reserved
// balance. Only the requester may cancel.
func (d *Deposits) CancelWithdrawSharesRequest(caller lx.Address, id lx.Bytes32) (errcode.Code, error) {
	req, err := d.requests.Get(id)
	if err != nil {
		return errcode.OK, err
	}
	if !req.Exists() {
		return count("cancelWithdraw", errcode.NoRegisteredWithdrawalFound), nil
	}
	if caller != req.Requester {
		return errcode.Unauthorized, reverts.WithCode(errcode.Unauthorized, "cancel of %v by %v", id, caller)
	}
	acc, err := d.getAccount(req.Asset, req.Target)
	if err != nil {
		return errcode.OK, err
	}
	acc.Requested.Sub(acc.Requested, req.Amount)
	if err := d.setAccount(req.Asset, req.Target, acc); err != nil {
		return errcode.OK, err
	}
	d.requests.Delete(id)
	logger.Debug("withdraw cancelled", "id", id, "amount", req.Amount)
	return count("cancelWithdraw", errcode.OK), nil
}
