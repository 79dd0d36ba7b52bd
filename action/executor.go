// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package action

import (
	"github.com/pkg/errors"

	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/metrics"
	"github.com/chronobank/lxmint/runtime"
	"github.com/chronobank/lxmint/xenv"
)

var (
	logger        = log.WithContext("pkg", "action")
	metricActions = metrics.LazyLoadCounterVec("actions_total", []string{"action", "code"})
)

// Context carries what a handler may read besides the payload.
type Context struct {
	From  lx.Address
	Block xenv.BlockContext
}

// Handler performs one kind of action over the contracts.
type Handler func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error)

// Registry maps action kinds to their handlers.
type Registry struct {
	handlers map[Kind]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Kind]Handler)}
}

// DefaultRegistry holds the handlers of all ledger operations.
var DefaultRegistry = NewRegistry()

// Register binds h to kind, replacing any previous handler.
func (r *Registry) Register(kind Kind, h Handler) { r.handlers[kind] = h }

// Len returns the number of registered kinds.
func (r *Registry) Len() int { return len(r.handlers) }

// Execute runs a inside its own checkpoint of rt. Unknown kinds and malformed
// payloads are errors, and leave the state untouched.
func (r *Registry) Execute(rt *runtime.Runtime, a *Action) (*runtime.Output, error) {
	h, ok := r.handlers[a.Kind]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidAction, "unknown action %q", a.Kind)
	}
	ctx := &Context{From: a.From, Block: rt.BlockContext()}

	var decodeErr error
	out, err := rt.Exec(func(c *builtin.Contracts) (errcode.Code, error) {
		code, err := h(ctx, c, a)
		if errors.Is(err, ErrInvalidAction) {
			decodeErr = err
			return code, nil
		}
		return code, err
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	if err != nil {
		return nil, err
	}
	metricActions().AddWithLabel(1, map[string]string{"action": string(a.Kind), "code": out.Code.String()})
	logger.Debug("action executed", "action", a.Kind, "from", a.From, "code", out.Code, "reverted", out.Revert != nil)
	return out, nil
}

// Execute runs a with the default registry.
func Execute(rt *runtime.Runtime, a *Action) (*runtime.Output, error) {
	return DefaultRegistry.Execute(rt, a)
}
