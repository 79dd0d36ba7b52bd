// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token models the fungible assets the ledger and the distributor
// custody. Balances and allowances live in contract storage at the asset
// address.
package token

import (
	"math/big"

	"github.com/chronobank/lxmint/builtin/solidity"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
)

var (
	logger = log.WithContext("pkg", "token")

	balancesKey   = lx.Blake2b([]byte("balances"))
	allowancesKey = lx.Blake2b([]byte("allowances"))
	supplyKey     = lx.Blake2b([]byte("total-supply"))
)

// Token is the subset of a fungible token the contracts depend on.
// Transfer and TransferFrom report false, without error, when balance or
// allowance is short.
type Token interface {
	Address() lx.Address
	BalanceOf(holder lx.Address) (*big.Int, error)
	Allowance(owner, spender lx.Address) (*big.Int, error)
	Transfer(from, to lx.Address, amount *big.Int) (bool, error)
	TransferFrom(spender, from, to lx.Address, amount *big.Int) (bool, error)
	Approve(owner, spender lx.Address, amount *big.Int) error
}

// Resolver returns the token deployed at an asset address.
type Resolver func(asset lx.Address) Token

// NewResolver returns a resolver creating state-backed ledgers.
func NewResolver(st *state.State) Resolver {
	return func(asset lx.Address) Token {
		return New(asset, st)
	}
}

// Ledger is a state-backed Token.
type Ledger struct {
	addr       lx.Address
	balances   *solidity.Mapping[lx.Address, *big.Int]
	allowances *solidity.Mapping[lx.Bytes32, *big.Int]
	supply     *solidity.Uint256
}

var _ Token = (*Ledger)(nil)

// New creates the ledger of the asset at addr.
func New(addr lx.Address, st *state.State) *Ledger {
	ctx := solidity.NewContext(addr, st)
	return &Ledger{
		addr:       addr,
		balances:   solidity.NewMapping[lx.Address, *big.Int](ctx, balancesKey),
		allowances: solidity.NewMapping[lx.Bytes32, *big.Int](ctx, allowancesKey),
		supply:     solidity.NewUint256(ctx, supplyKey),
	}
}

func allowanceKey(owner, spender lx.Address) lx.Bytes32 {
	return solidity.Compose(owner, spender)
}

func (l *Ledger) Address() lx.Address { return l.addr }

func (l *Ledger) BalanceOf(holder lx.Address) (*big.Int, error) {
	return l.balances.Get(holder)
}

func (l *Ledger) Allowance(owner, spender lx.Address) (*big.Int, error) {
	return l.allowances.Get(allowanceKey(owner, spender))
}

// TotalSupply returns the amount minted so far.
func (l *Ledger) TotalSupply() (*big.Int, error) {
	return l.supply.Get()
}

// Mint credits amount to holder out of thin air.
func (l *Ledger) Mint(holder lx.Address, amount *big.Int) error {
	if amount.Sign() <= 0 {
		return nil
	}
	if err := l.getAndSetBalance(holder, func(bal *big.Int) bool {
		bal.Add(bal, amount)
		return true
	}); err != nil {
		return err
	}
	return l.supply.Add(amount)
}

func (l *Ledger) getAndSetBalance(holder lx.Address, cb func(bal *big.Int) bool) error {
	bal, err := l.balances.Get(holder)
	if err != nil {
		return err
	}
	if !cb(bal) {
		return nil
	}
	if bal.Sign() == 0 {
		l.balances.Delete(holder)
		return nil
	}
	return l.balances.Set(holder, bal)
}

func (l *Ledger) Transfer(from, to lx.Address, amount *big.Int) (bool, error) {
	if amount.Sign() < 0 {
		return false, nil
	}
	bal, err := l.balances.Get(from)
	if err != nil {
		return false, err
	}
	if bal.Cmp(amount) < 0 {
		return false, nil
	}
	if amount.Sign() == 0 || from == to {
		return true, nil
	}
	if err := l.getAndSetBalance(from, func(bal *big.Int) bool {
		bal.Sub(bal, amount)
		return true
	}); err != nil {
		return false, err
	}
	if err := l.getAndSetBalance(to, func(bal *big.Int) bool {
		bal.Add(bal, amount)
		return true
	}); err != nil {
		return false, err
	}
	logger.Trace("transfer", "asset", l.addr, "from", from, "to", to, "amount", amount)
	return true, nil
}

func (l *Ledger) TransferFrom(spender, from, to lx.Address, amount *big.Int) (bool, error) {
	if spender == from {
		return l.Transfer(from, to, amount)
	}
	key := allowanceKey(from, spender)
	allowed, err := l.allowances.Get(key)
	if err != nil {
		return false, err
	}
	if allowed.Cmp(amount) < 0 {
		return false, nil
	}
	ok, err := l.Transfer(from, to, amount)
	if err != nil || !ok {
		return ok, err
	}
	allowed.Sub(allowed, amount)
	if allowed.Sign() == 0 {
		l.allowances.Delete(key)
		return true, nil
	}
	return true, l.allowances.Set(key, allowed)
}

func (l *Ledger) Approve(owner, spender lx.Address, amount *big.Int) error {
	key := allowanceKey(owner, spender)
	if amount.Sign() <= 0 {
		l.allowances.Delete(key)
		return nil
	}
	return l.allowances.Set(key, new(big.Int).Set(amount))
}
