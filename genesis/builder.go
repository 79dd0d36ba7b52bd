// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/runtime"
	"github.com/chronobank/lxmint/state"
	"github.com/chronobank/lxmint/xenv"
)

// Builder helper to build genesis state.
type Builder struct {
	timestamp uint64

	stateProcs []func(state *state.State) error
	calls      []call
}

type call struct {
	name string
	fn   func(c *builtin.Contracts) (errcode.Code, error)
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process
func (b *Builder) State(proc func(state *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Call add a contract operation. It must complete with OK.
func (b *Builder) Call(name string, fn func(c *builtin.Contracts) (errcode.Code, error)) *Builder {
	b.calls = append(b.calls, call{name, fn})
	return b
}

// Build runs the presets over a fresh state of stater and commits it.
// It returns the hash of the committed changes.
func (b *Builder) Build(bi *builtin.Builtin, stater *state.Stater) (lx.Bytes32, error) {
	st := stater.NewState()

	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return lx.Bytes32{}, errors.Wrap(err, "state process")
		}
	}

	rt := runtime.New(bi, st, xenv.BlockContext{Time: b.timestamp})
	for _, call := range b.calls {
		out, err := rt.Exec(call.fn)
		if err != nil {
			return lx.Bytes32{}, errors.Wrap(err, call.name)
		}
		if out.Revert != nil {
			return lx.Bytes32{}, errors.Wrap(out.Revert, call.name)
		}
		if out.Code != errcode.OK {
			return lx.Bytes32{}, errors.Errorf("%s: %v", call.name, out.Code)
		}
	}

	hash, err := st.Stage().Commit()
	if err != nil {
		return lx.Bytes32{}, errors.Wrap(err, "commit state")
	}
	return hash, nil
}
