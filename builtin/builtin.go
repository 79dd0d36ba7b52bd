// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the ledger contracts to their configured addresses and
// exposes the consensus-facing ones through their ABI.
package builtin

import (
	"github.com/chronobank/lxmint/builtin/blockreward"
	"github.com/chronobank/lxmint/builtin/deposits"
	"github.com/chronobank/lxmint/builtin/rewards"
	"github.com/chronobank/lxmint/builtin/token"
	"github.com/chronobank/lxmint/builtin/validators"
	"github.com/chronobank/lxmint/builtin/wallet"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
)

// Builtin contracts binding.
type Builtin struct {
	config Config

	ValidatorSet *contract
	BlockReward  *contract

	methods map[addressAndMethodID]*nativeMethod
}

// New binds the contracts described by cfg.
func New(cfg *Config) *Builtin {
	b := &Builtin{
		config:       *cfg,
		ValidatorSet: mustLoadContract("ValidatorSet", cfg.ValidatorSet),
		BlockReward:  mustLoadContract("BlockReward", cfg.BlockReward),
		methods:      make(map[addressAndMethodID]*nativeMethod),
	}
	b.initNativeMethods()
	return b
}

// Config returns a copy of the binding config.
func (b *Builtin) Config() Config { return b.config }

// Contracts is the set of contracts operating on one state.
type Contracts struct {
	Tokens      token.Resolver
	Validators  *validators.Validators
	Deposits    *deposits.Deposits
	Rewards     *rewards.Rewards
	BlockReward *blockreward.BlockReward
}

// WithState wires the contracts over st. The ledger signals lock changes to
// the validator set and stake changes to the distributor.
func (b *Builtin) WithState(st *state.State) *Contracts {
	cfg := &b.config
	tokens := token.NewResolver(st)

	vals := validators.New(cfg.ValidatorSet, st, cfg.Owner, cfg.System)
	deps := deposits.New(cfg.Deposits, st, cfg.Owner, cfg.Shares,
		wallet.New(cfg.DepositsWallet, cfg.Deposits, tokens), tokens)
	rws := rewards.New(cfg.Rewards, st,
		wallet.New(cfg.RewardsWallet, cfg.Rewards, tokens), cfg.RewardAssets, cfg.CloseInterval)
	deps.SetMiningObserver(vals)
	deps.SetBalanceObserver(rws)

	return &Contracts{
		Tokens:      tokens,
		Validators:  vals,
		Deposits:    deps,
		Rewards:     rws,
		BlockReward: blockreward.New(cfg.BlockReward, st, cfg.System, cfg.RewardUnit, vals),
	}
}

// Token returns the ledger of asset over st.
func (c *Contracts) Token(asset lx.Address) token.Token {
	return c.Tokens(asset)
}
