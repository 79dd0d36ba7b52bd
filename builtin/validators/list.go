// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validators

import (
	"github.com/chronobank/lxmint/lx"
	"github.com/ethereum/go-ethereum/rlp"
)

var (
	headKey = lx.Blake2b([]byte("head"))
	tailKey = lx.Blake2b([]byte("tail"))
)

// entryKey places entries away from the fixed slots.
func entryKey(addr lx.Address) lx.Bytes32 {
	return lx.Blake2b([]byte("entry"), addr[:])
}

func (v *Validators) getEntry(addr lx.Address) (*entry, error) {
	var e entry
	if err := v.state.DecodeStorage(v.addr, entryKey(addr), e.decode); err != nil {
		return nil, err
	}
	return &e, nil
}

func (v *Validators) setEntry(addr lx.Address, e *entry) error {
	return v.state.EncodeStorage(v.addr, entryKey(addr), e.encode)
}

func (v *Validators) getAddressPtr(key lx.Bytes32) (addr *lx.Address, err error) {
	err = v.state.DecodeStorage(v.addr, key, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &addr)
	})
	return
}

func (v *Validators) setAddressPtr(key lx.Bytes32, addr *lx.Address) error {
	return v.state.EncodeStorage(v.addr, key, func() ([]byte, error) {
		if addr == nil {
			return nil, nil
		}
		return rlp.EncodeToBytes(addr)
	})
}

// link appends addr to the tail of the tracked list.
func (v *Validators) link(addr lx.Address, e *entry) error {
	tailPtr, err := v.getAddressPtr(tailKey)
	if err != nil {
		return err
	}
	e.Prev = tailPtr
	e.Next = nil

	if err := v.setAddressPtr(tailKey, &addr); err != nil {
		return err
	}
	if tailPtr == nil {
		return v.setAddressPtr(headKey, &addr)
	}
	tailEntry, err := v.getEntry(*tailPtr)
	if err != nil {
		return err
	}
	tailEntry.Next = &addr
	return v.setEntry(*tailPtr, tailEntry)
}

// unlink removes addr from the tracked list, keeping order of the rest.
func (v *Validators) unlink(e *entry) error {
	if e.Prev == nil {
		if err := v.setAddressPtr(headKey, e.Next); err != nil {
			return err
		}
	} else {
		prevEntry, err := v.getEntry(*e.Prev)
		if err != nil {
			return err
		}
		prevEntry.Next = e.Next
		if err := v.setEntry(*e.Prev, prevEntry); err != nil {
			return err
		}
	}

	if e.Next == nil {
		if err := v.setAddressPtr(tailKey, e.Prev); err != nil {
			return err
		}
	} else {
		nextEntry, err := v.getEntry(*e.Next)
		if err != nil {
			return err
		}
		nextEntry.Prev = e.Prev
		if err := v.setEntry(*e.Next, nextEntry); err != nil {
			return err
		}
	}
	e.Prev, e.Next = nil, nil
	return nil
}

// All returns every tracked address with its status, in insertion order.
func (v *Validators) All() ([]*Validator, error) {
	ptr, err := v.getAddressPtr(headKey)
	if err != nil {
		return nil, err
	}
	var out []*Validator
	for ptr != nil {
		e, err := v.getEntry(*ptr)
		if err != nil {
			return nil, err
		}
		out = append(out, &Validator{Address: *ptr, Status: e.Status})
		ptr = e.Next
	}
	return out, nil
}
