// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/pkg/errors"

	"github.com/chronobank/lxmint/abi"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
	"github.com/chronobank/lxmint/xenv"
)

var errNoNativeMethod = errors.New("native call: no such method")

type addressAndMethodID struct {
	lx.Address
	abi.MethodID
}

// nativeMethod describes a native call.
type nativeMethod struct {
	addr   lx.Address
	method *abi.Method
	run    func(c *Contracts, env *xenv.Environment) []any
}

func (c *contract) impl(name string, run func(c *Contracts, env *xenv.Environment) []any) *nativeMethod {
	method, found := c.ABI.MethodByName(name)
	if !found {
		panic(errors.Errorf("method '%s' not found in %s", name, c.name))
	}
	return &nativeMethod{c.Address, method, run}
}

// FindNativeCall returns the ABI method bound to input at to.
func (b *Builtin) FindNativeCall(to lx.Address, input []byte) (*abi.Method, bool) {
	id, err := abi.ExtractMethodID(input)
	if err != nil {
		return nil, false
	}
	m, ok := b.methods[addressAndMethodID{to, id}]
	if !ok {
		return nil, false
	}
	return m.method, true
}

// Call runs the native method selected by input on the contract at to.
// Readonly calls reject methods that are not constant.
func (b *Builtin) Call(st *state.State, blockCtx *xenv.BlockContext, caller, to lx.Address, input []byte, readonly bool) ([]byte, error) {
	id, err := abi.ExtractMethodID(input)
	if err != nil {
		return nil, err
	}
	m, ok := b.methods[addressAndMethodID{to, id}]
	if !ok {
		return nil, errNoNativeMethod
	}
	contracts := b.WithState(st)
	env := xenv.New(m.method, st, blockCtx, caller, to, input)
	return env.Call(func(env *xenv.Environment) []any {
		return m.run(contracts, env)
	}, readonly)()
}
