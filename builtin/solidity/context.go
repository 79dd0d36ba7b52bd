// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
)

// Context binds typed storage slots to a contract address in a state.
type Context struct {
	address lx.Address
	state   *state.State
}

func NewContext(address lx.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() lx.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
