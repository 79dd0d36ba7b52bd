// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validators

import (
	"github.com/chronobank/lxmint/lx"
	"github.com/ethereum/go-ethereum/rlp"
)

// Status is the membership state of an address. It tracks both the pending
// set, which the next finalize adopts, and the finalized set.
type Status uint8

const (
	Absent         Status = iota
	PendingAdd            // pending only
	Active                // pending and finalized
	PendingRemoval        // finalized only
)

var statusNames = [...]string{"absent", "pendingAdd", "active", "pendingRemoval"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// IsPending reports membership of the pending set.
func (s Status) IsPending() bool { return s == PendingAdd || s == Active }

// IsValidator reports membership of the finalized set.
func (s Status) IsValidator() bool { return s == Active || s == PendingRemoval }

// onLock is the status after a lock signal.
func (s Status) onLock() Status {
	switch s {
	case Absent:
		return PendingAdd
	case PendingRemoval:
		return Active
	}
	return s
}

// onUnlock is the status after an unlock signal.
func (s Status) onUnlock() Status {
	switch s {
	case PendingAdd:
		return Absent
	case Active:
		return PendingRemoval
	}
	return s
}

// onFinalize is the status after the consensus client adopts the pending set.
func (s Status) onFinalize() Status {
	switch s {
	case PendingAdd:
		return Active
	case PendingRemoval:
		return Absent
	}
	return s
}

type entry struct {
	Status Status
	Prev   *lx.Address `rlp:"nil"`
	Next   *lx.Address `rlp:"nil"`
}

func (e *entry) IsEmpty() bool {
	return e.Status == Absent && e.Prev == nil && e.Next == nil
}

func (e *entry) encode() ([]byte, error) {
	if e.IsEmpty() {
		return nil, nil
	}
	return rlp.EncodeToBytes(e)
}

func (e *entry) decode(data []byte) error {
	if len(data) == 0 {
		*e = entry{}
		return nil
	}
	return rlp.DecodeBytes(data, e)
}

// Validator is the exported view of an entry.
type Validator struct {
	Address lx.Address
	Status  Status
}
