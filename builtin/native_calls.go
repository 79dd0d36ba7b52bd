// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/xenv"
)

func toCommon(addrs []lx.Address) []common.Address {
	out := make([]common.Address, len(addrs))
	for i, a := range addrs {
		out[i] = common.Address(a)
	}
	return out
}

func (b *Builtin) initNativeMethods() {
	defines := []*nativeMethod{
		b.ValidatorSet.impl("getValidators", func(c *Contracts, env *xenv.Environment) []any {
			vals, err := c.Validators.GetValidators()
			if err != nil {
				env.Stop(err)
			}
			return []any{toCommon(vals)}
		}),
		b.ValidatorSet.impl("finalizeChange", func(c *Contracts, env *xenv.Environment) []any {
			if err := c.Validators.FinalizeChange(env.Caller()); err != nil {
				env.Stop(err)
			}
			return nil
		}),
		b.ValidatorSet.impl("isValidator", func(c *Contracts, env *xenv.Environment) []any {
			var addr common.Address
			env.ParseArgs(&addr)
			ok, err := c.Validators.IsValidator(lx.Address(addr))
			if err != nil {
				env.Stop(err)
			}
			return []any{ok}
		}),
		b.ValidatorSet.impl("isPending", func(c *Contracts, env *xenv.Environment) []any {
			var addr common.Address
			env.ParseArgs(&addr)
			ok, err := c.Validators.IsPending(lx.Address(addr))
			if err != nil {
				env.Stop(err)
			}
			return []any{ok}
		}),

		b.BlockReward.impl("reward", func(c *Contracts, env *xenv.Environment) []any {
			var args struct {
				Benefactors []common.Address
				Kind        []uint16
			}
			env.ParseArgs(&args)
			benefactors := make([]lx.Address, len(args.Benefactors))
			for i, a := range args.Benefactors {
				benefactors[i] = lx.Address(a)
			}
			receivers, amounts, err := c.BlockReward.Reward(env.Caller(), benefactors, args.Kind)
			if err != nil {
				env.Stop(err)
			}
			return []any{toCommon(receivers), amounts}
		}),
	}
	for _, m := range defines {
		b.methods[addressAndMethodID{m.addr, m.method.ID()}] = m
	}
}
