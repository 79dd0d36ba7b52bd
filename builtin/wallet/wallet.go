// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package wallet implements custody accounts owned by a single contract.
// Both the stake ledger and the reward distributor keep their funds in one.
package wallet

import (
	"math/big"

	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/builtin/reverts"
	"github.com/chronobank/lxmint/builtin/token"
	"github.com/chronobank/lxmint/lx"
)

// Wallet moves funds on behalf of its owning contract. Pulling funds from a
// third party relies on the allowance that party granted to the wallet.
type Wallet struct {
	addr   lx.Address
	owner  lx.Address
	tokens token.Resolver
}

// New creates the wallet at addr, usable only by owner.
func New(addr, owner lx.Address, tokens token.Resolver) *Wallet {
	return &Wallet{addr, owner, tokens}
}

func (w *Wallet) Address() lx.Address { return w.addr }

func (w *Wallet) Owner() lx.Address { return w.owner }

// BalanceOf returns the amount of asset held by the wallet itself.
func (w *Wallet) BalanceOf(asset lx.Address) (*big.Int, error) {
	return w.tokens(asset).BalanceOf(w.addr)
}

func (w *Wallet) checkOwner(caller lx.Address) error {
	if caller != w.owner {
		return reverts.WithCode(errcode.Unauthorized, "wallet %v: caller %v is not the owner", w.addr, caller)
	}
	return nil
}

// Deposit pulls amount of asset from 'from' into 'to'. It reports false when
// the allowance or the balance of 'from' is short.
func (w *Wallet) Deposit(caller, asset, from, to lx.Address, amount *big.Int) (bool, error) {
	if err := w.checkOwner(caller); err != nil {
		return false, err
	}
	return w.tokens(asset).TransferFrom(w.addr, from, to, amount)
}

// Withdraw sends amount of asset from 'from' to 'to'. When 'from' is the wallet
// its own balance is spent, otherwise the allowance granted by 'from'.
func (w *Wallet) Withdraw(caller, asset, from, to lx.Address, amount *big.Int) (bool, error) {
	if err := w.checkOwner(caller); err != nil {
		return false, err
	}
	tok := w.tokens(asset)
	if from == w.addr {
		return tok.Transfer(w.addr, to, amount)
	}
	return tok.TransferFrom(w.addr, from, to, amount)
}
