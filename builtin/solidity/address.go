// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/chronobank/lxmint/lx"
)

type Address struct {
	context *Context
	pos     lx.Bytes32
}

func NewAddress(context *Context, pos lx.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (lx.Address, error) {
	storage, err := a.context.state.GetStorage(a.context.address, a.pos)
	if err != nil {
		return lx.Address{}, err
	}
	return lx.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr lx.Address) {
	a.context.state.SetStorage(a.context.address, a.pos, lx.BytesToBytes32(addr.Bytes()))
}
