// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis describes the initial ledger state: token allocations,
// allow-listed assets, the primary miner and the bootstrap validators.
package genesis

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/builtin/token"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
)

var logger = log.WithContext("pkg", "genesis")

// Genesis to build the genesis state.
type Genesis struct {
	builder *Builder
	config  *builtin.Config
	name    string
}

// Build commits the genesis state into stater. It returns the hash of the
// genesis changes.
func (g *Genesis) Build(stater *state.Stater) (lx.Bytes32, error) {
	hash, err := g.builder.Build(builtin.New(g.config), stater)
	if err != nil {
		return lx.Bytes32{}, err
	}
	logger.Info("genesis built", "name", g.name, "hash", hash)
	return hash, nil
}

// Config returns the contract bindings of the genesis.
func (g *Genesis) Config() *builtin.Config {
	return g.config
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// Allocation credits Balance of Asset to Address.
type Allocation struct {
	Address lx.Address
	Asset   lx.Address
	Balance *big.Int
}

// AllowedAsset is an allow-list entry of the ledger. A zero limit means no
// ceiling.
type AllowedAsset struct {
	Asset lx.Address
	Limit *big.Int
}

// newGenesis assembles the builder shared by every network: allocations,
// custody approval, ledger parameters, validator bootstrap and the first
// reward period.
func newGenesis(name string, launchTime uint64, cfg *builtin.Config, allocs []Allocation, allowed []AllowedAsset, validators []lx.Address) *Genesis {
	builder := new(Builder).
		Timestamp(launchTime).
		State(func(st *state.State) error {
			for _, a := range allocs {
				if err := token.New(a.Asset, st).Mint(a.Address, a.Balance); err != nil {
					return err
				}
			}
			if cfg.PrimaryMiner.IsZero() {
				return nil
			}
			// stake withdrawals are paid from the miner through the ledger wallet
			return token.New(cfg.Shares, st).Approve(cfg.PrimaryMiner, cfg.DepositsWallet, math.MaxBig256)
		})

	if !cfg.PrimaryMiner.IsZero() {
		builder.Call("setPrimaryMiner", func(c *builtin.Contracts) (errcode.Code, error) {
			return c.Deposits.SetPrimaryMiner(cfg.Owner, cfg.PrimaryMiner)
		})
	}
	if len(allowed) > 0 {
		builder.Call("allowShares", func(c *builtin.Contracts) (errcode.Code, error) {
			assets := make([]lx.Address, len(allowed))
			limits := make([]*big.Int, len(allowed))
			for i, a := range allowed {
				assets[i] = a.Asset
				limits[i] = a.Limit
				if limits[i] == nil {
					limits[i] = new(big.Int)
				}
			}
			return c.Deposits.AllowShares(cfg.Owner, assets, limits)
		})
	}
	if cfg.MiningDepositLimit != nil {
		builder.Call("setMiningDepositLimits", func(c *builtin.Contracts) (errcode.Code, error) {
			return c.Deposits.SetMiningDepositLimits(cfg.Owner, cfg.Shares, cfg.MiningDepositLimit)
		})
	}
	builder.Call("initValidators", func(c *builtin.Contracts) (errcode.Code, error) {
		return errcode.OK, c.Validators.Init(validators)
	})
	builder.Call("initRewards", func(c *builtin.Contracts) (errcode.Code, error) {
		return errcode.OK, c.Rewards.Init(launchTime)
	})

	return &Genesis{builder, cfg, name}
}
