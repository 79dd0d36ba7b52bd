// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"github.com/chronobank/lxmint/abi"
	"github.com/chronobank/lxmint/builtin/reverts"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
	"github.com/pkg/errors"
)

// BlockContext block context.
type BlockContext struct {
	Number uint32
	Time   uint64
	Author lx.Address
}

type callError struct {
	cause error
}

// Environment an env to execute native method.
type Environment struct {
	abi      *abi.Method
	state    *state.State
	blockCtx *BlockContext
	caller   lx.Address
	to       lx.Address
	input    []byte
}

// New create a new env.
func New(
	abi *abi.Method,
	state *state.State,
	blockCtx *BlockContext,
	caller lx.Address,
	to lx.Address,
	input []byte,
) *Environment {
	return &Environment{
		abi:      abi,
		state:    state,
		blockCtx: blockCtx,
		caller:   caller,
		to:       to,
		input:    input,
	}
}

func (env *Environment) State() *state.State         { return env.state }
func (env *Environment) BlockContext() *BlockContext { return env.blockCtx }
func (env *Environment) Caller() lx.Address          { return env.caller }
func (env *Environment) To() lx.Address              { return env.to }
func (env *Environment) Method() *abi.Method         { return env.abi }

func (env *Environment) ParseArgs(val any) {
	if err := env.abi.DecodeInputTo(env.input, val); err != nil {
		panic(&callError{errors.WithMessage(err, "decode native input")})
	}
}

func (env *Environment) Require(cond bool) {
	if !cond {
		panic(&callError{reverts.New("execution reverted")})
	}
}

// Stop aborts the call with err.
func (env *Environment) Stop(err error) {
	panic(&callError{err})
}

func (env *Environment) Call(proc func(env *Environment) []any, readonly bool) func() ([]byte, error) {
	return func() (data []byte, err error) {
		if readonly && !env.abi.Const() {
			return nil, errors.New("write protection")
		}

		defer func() {
			if e := recover(); e != nil {
				if rec, ok := e.(*callError); ok {
					err = rec.cause
				} else {
					panic(e)
				}
			}
		}()
		output := proc(env)
		data, err = env.abi.EncodeOutput(output...)
		if err != nil {
			panic(errors.WithMessage(err, "encode native output"))
		}
		return
	}
}
