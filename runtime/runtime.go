// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes ledger operations and native calls against a state,
// each inside its own checkpoint.
package runtime

import (
	"github.com/pkg/errors"

	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/builtin/reverts"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
	"github.com/chronobank/lxmint/xenv"
)

var logger = log.WithContext("pkg", "runtime")

// Output is the outcome of one execution.
type Output struct {
	Data []byte
	Code errcode.Code
	// Revert is the abort cause, nil when the execution completed.
	Revert error
}

// Failed reports whether the changes of the execution were discarded.
func (o *Output) Failed() bool {
	return o.Revert != nil || o.Code != errcode.OK
}

// Runtime is to support operation execution.
type Runtime struct {
	builtin   *builtin.Builtin
	state     *state.State
	contracts *builtin.Contracts
	blockCtx  xenv.BlockContext
}

// New create a Runtime object.
func New(b *builtin.Builtin, st *state.State, blockCtx xenv.BlockContext) *Runtime {
	return &Runtime{
		builtin:   b,
		state:     st,
		contracts: b.WithState(st),
		blockCtx:  blockCtx,
	}
}

func (rt *Runtime) State() *state.State             { return rt.state }
func (rt *Runtime) Contracts() *builtin.Contracts   { return rt.contracts }
func (rt *Runtime) BlockContext() xenv.BlockContext { return rt.blockCtx }

// finish reverts the state to checkpoint unless out is a success. Storage
// failures are returned as errors, anything else aborts the execution only.
func (rt *Runtime) finish(checkpoint int, out *Output, err error) (*Output, error) {
	if err != nil {
		var stErr *state.Error
		if errors.As(err, &stErr) {
			rt.state.RevertTo(checkpoint)
			return nil, err
		}
		out.Revert = err
		if code, ok := reverts.CodeOf(err); ok {
			out.Code = code
		}
	}
	if out.Failed() {
		rt.state.RevertTo(checkpoint)
		logger.Trace("execution reverted", "code", out.Code, "err", out.Revert)
	}
	return out, nil
}

// Exec runs fn over the contracts. Its changes are discarded when it aborts
// or returns a code other than OK.
func (rt *Runtime) Exec(fn func(c *builtin.Contracts) (errcode.Code, error)) (*Output, error) {
	checkpoint := rt.state.NewCheckpoint()
	code, err := fn(rt.contracts)
	return rt.finish(checkpoint, &Output{Code: code}, err)
}

// Call executes the ABI encoded input on the builtin contract at to.
func (rt *Runtime) Call(caller, to lx.Address, input []byte, readonly bool) (*Output, error) {
	checkpoint := rt.state.NewCheckpoint()
	ctx := rt.blockCtx
	data, err := rt.builtin.Call(rt.state, &ctx, caller, to, input, readonly)
	return rt.finish(checkpoint, &Output{Data: data}, err)
}
