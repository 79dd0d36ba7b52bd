// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package validators keeps the two-phase validator set polled by the
// consensus client: a pending set driven by stake locks, and a finalized set
// adopted on finalizeChange.
package validators

import (
	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/builtin/reverts"
	"github.com/chronobank/lxmint/builtin/solidity"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/metrics"
	"github.com/chronobank/lxmint/state"
	"github.com/pkg/errors"
)

var (
	logger = log.WithContext("pkg", "validators")

	metricFinalized   = metrics.LazyLoadGauge("validators_finalized")
	metricTransitions = metrics.LazyLoadCounterVec("validator_transitions_total", []string{"status"})

	finalizedKey     = lx.Blake2b([]byte("finalized"))
	changePendingKey = lx.Blake2b([]byte("change-pending"))
)

// Validators is the validator-set coordinator.
type Validators struct {
	addr   lx.Address
	state  *state.State
	owner  lx.Address
	system lx.Address

	finalized     *solidity.Array[lx.Address]
	changePending *solidity.Bool
}

// New creates the coordinator at addr. owner may bootstrap entries, system
// finalizes changes.
func New(addr lx.Address, st *state.State, owner, system lx.Address) *Validators {
	ctx := solidity.NewContext(addr, st)
	return &Validators{
		addr:          addr,
		state:         st,
		owner:         owner,
		system:        system,
		finalized:     solidity.NewArray[lx.Address](ctx, finalizedKey),
		changePending: solidity.NewBool(ctx, changePendingKey),
	}
}

// Address returns the contract address.
func (v *Validators) Address() lx.Address { return v.addr }

// Status returns the membership state of addr.
func (v *Validators) Status(addr lx.Address) (Status, error) {
	e, err := v.getEntry(addr)
	if err != nil {
		return Absent, err
	}
	return e.Status, nil
}

// IsValidator reports whether addr is in the finalized set.
func (v *Validators) IsValidator(addr lx.Address) (bool, error) {
	s, err := v.Status(addr)
	if err != nil {
		return false, err
	}
	return s.IsValidator(), nil
}

// IsPending reports whether addr is in the pending set.
func (v *Validators) IsPending(addr lx.Address) (bool, error) {
	s, err := v.Status(addr)
	if err != nil {
		return false, err
	}
	return s.IsPending(), nil
}

// GetValidators returns the finalized set, in the order it was adopted.
func (v *Validators) GetValidators() ([]lx.Address, error) {
	return v.finalized.All()
}

// PendingValidators returns the set the next finalize adopts.
func (v *Validators) PendingValidators() ([]lx.Address, error) {
	all, err := v.All()
	if err != nil {
		return nil, err
	}
	var out []lx.Address
	for _, val := range all {
		if val.Status.IsPending() {
			out = append(out, val.Address)
		}
	}
	return out, nil
}

// ChangePending reports whether the pending set differs from what was last finalized.
func (v *Validators) ChangePending() (bool, error) {
	return v.changePending.Get()
}

func (v *Validators) transit(addr lx.Address, next func(Status) Status) error {
	e, err := v.getEntry(addr)
	if err != nil {
		return err
	}
	to := next(e.Status)
	if to == e.Status {
		return nil
	}
	logger.Debug("validator transition", "address", addr, "from", e.Status, "to", to)
	metricTransitions().AddWithLabel(1, map[string]string{"status": to.String()})

	if e.Status == Absent {
		if err := v.link(addr, e); err != nil {
			return err
		}
	} else if to == Absent {
		if err := v.unlink(e); err != nil {
			return err
		}
	}
	e.Status = to
	if err := v.setEntry(addr, e); err != nil {
		return err
	}
	v.changePending.Set(true)
	return nil
}

// MinerLocked moves miner into the pending set.
func (v *Validators) MinerLocked(miner lx.Address) error {
	return v.transit(miner, Status.onLock)
}

// MinerUnlocked drops miner from the pending set.
func (v *Validators) MinerUnlocked(miner lx.Address) error {
	return v.transit(miner, Status.onUnlock)
}

// AddValidator lets the owner put addr into the pending set without stake.
func (v *Validators) AddValidator(caller, addr lx.Address) error {
	if caller != v.owner {
		return reverts.WithCode(errcode.Unauthorized, "addValidator by %v", caller)
	}
	return v.transit(addr, Status.onLock)
}

// RemoveValidator lets the owner drop addr from the pending set.
func (v *Validators) RemoveValidator(caller, addr lx.Address) error {
	if caller != v.owner {
		return reverts.WithCode(errcode.Unauthorized, "removeValidator by %v", caller)
	}
	return v.transit(addr, Status.onUnlock)
}

// FinalizeChange adopts the pending set as the finalized set. Only the system
// address may call it, and only while a change is pending.
func (v *Validators) FinalizeChange(caller lx.Address) error {
	if caller != v.system {
		return reverts.WithCode(errcode.Unauthorized, "finalizeChange by %v", caller)
	}
	pending, err := v.changePending.Get()
	if err != nil {
		return err
	}
	if !pending {
		return reverts.New("validators: no change pending")
	}
	set, err := v.finalize()
	if err != nil {
		return errors.WithMessage(err, "finalize")
	}
	logger.Info("validator set finalized", "count", len(set))
	return nil
}

func (v *Validators) finalize() ([]lx.Address, error) {
	all, err := v.All()
	if err != nil {
		return nil, err
	}
	if err := v.finalized.Clear(); err != nil {
		return nil, err
	}
	var set []lx.Address
	for _, val := range all {
		if to := val.Status.onFinalize(); to != val.Status {
			if err := v.transit(val.Address, Status.onFinalize); err != nil {
				return nil, err
			}
		}
		if val.Status.IsPending() {
			if err := v.finalized.Push(val.Address); err != nil {
				return nil, err
			}
			set = append(set, val.Address)
		}
	}
	v.changePending.Set(false)
	metricFinalized().Set(int64(len(set)))
	return set, nil
}

// Init bootstraps the finalized set at genesis.
func (v *Validators) Init(initial []lx.Address) error {
	for _, addr := range initial {
		if err := v.transit(addr, Status.onLock); err != nil {
			return err
		}
	}
	_, err := v.finalize()
	return err
}
