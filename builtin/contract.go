// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/chronobank/lxmint/abi"
	"github.com/chronobank/lxmint/builtin/gen"
	"github.com/chronobank/lxmint/lx"
	"github.com/pkg/errors"
)

type contract struct {
	name    string
	Address lx.Address
	ABI     *abi.ABI
}

func mustLoadContract(name string, addr lx.Address) *contract {
	abi, err := abi.New(gen.MustABI(name))
	if err != nil {
		panic(errors.Wrapf(err, "load ABI for '%s'", name))
	}
	return &contract{
		name,
		addr,
		abi,
	}
}

func (c *contract) Name() string { return c.name }
