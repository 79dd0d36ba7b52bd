// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package deposits

import (
	"math/big"

	"github.com/chronobank/lxmint/lx"
	"github.com/ethereum/go-ethereum/rlp"
)

// account is the depositor record of one (asset, holder) pair.
type account struct {
	Balance   *big.Int
	Locked    *big.Int
	Requested *big.Int
	Delegate  *lx.Address `rlp:"nil"`
}

func newAccount() *account {
	return &account{
		Balance:   new(big.Int),
		Locked:    new(big.Int),
		Requested: new(big.Int),
	}
}

// Available is the balance neither locked nor requested for withdrawal.
func (a *account) Available() *big.Int {
	avail := new(big.Int).Sub(a.Balance, a.Locked)
	return avail.Sub(avail, a.Requested)
}

func (a *account) IsEmpty() bool {
	return a.Balance.Sign() == 0 && a.Locked.Sign() == 0 && a.Requested.Sign() == 0 && a.Delegate == nil
}

func (a *account) encode() ([]byte, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(a)
}

func (a *account) decode(data []byte) error {
	*a = *newAccount()
	if len(data) == 0 {
		return nil
	}
	return rlp.DecodeBytes(data, a)
}

// Account is the exported view of a depositor record.
type Account struct {
	Balance   *big.Int
	Locked    *big.Int
	Requested *big.Int
	Available *big.Int
	Delegate  lx.Address
}

// WithdrawRequest is a registered two-phase withdrawal.
type WithdrawRequest struct {
	Asset     lx.Address
	Amount    *big.Int
	Target    lx.Address
	Receiver  lx.Address
	Requester lx.Address
}

// Exists reports whether the request was found; lookups of resolved or
// cancelled ids return the zero value.
func (r *WithdrawRequest) Exists() bool {
	return r.Amount != nil && !r.Target.IsZero()
}

type allowance struct {
	Limit *big.Int
}

// MiningObserver receives lock and unlock signals for the candidate address.
type MiningObserver interface {
	MinerLocked(miner lx.Address) error
	MinerUnlocked(miner lx.Address) error
}

// BalanceObserver is notified after the stake-token deposit balance of holder
// changed. total is the stake-token total deposited after the change.
type BalanceObserver interface {
	BalanceChanged(holder lx.Address, balance, total *big.Int) error
}
