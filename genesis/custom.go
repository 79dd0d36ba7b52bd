// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/lx"
)

// CustomGenesis is user customized genesis, read from yaml.
type CustomGenesis struct {
	Name       string     `yaml:"name"`
	LaunchTime uint64     `yaml:"launchTime"`
	Owner      lx.Address `yaml:"owner"`
	// System defaults to the well-known system address.
	System       *lx.Address  `yaml:"system"`
	Shares       lx.Address   `yaml:"shares"`
	PrimaryMiner lx.Address   `yaml:"primaryMiner"`
	Contracts    Contracts    `yaml:"contracts"`
	Params       Params       `yaml:"params"`
	Accounts     []Account    `yaml:"accounts"`
	Allowed      []Allowed    `yaml:"allowed"`
	Validators   []lx.Address `yaml:"validators"`
}

// Contracts overrides the default contract addresses.
type Contracts struct {
	ValidatorSet   *lx.Address `yaml:"validatorSet"`
	BlockReward    *lx.Address `yaml:"blockReward"`
	Deposits       *lx.Address `yaml:"deposits"`
	DepositsWallet *lx.Address `yaml:"depositsWallet"`
	Rewards        *lx.Address `yaml:"rewards"`
	RewardsWallet  *lx.Address `yaml:"rewardsWallet"`
}

// Params overrides the default contract parameters.
type Params struct {
	RewardUnit         *math.HexOrDecimal256 `yaml:"rewardUnit"`
	MiningDepositLimit *math.HexOrDecimal256 `yaml:"miningDepositLimit"`
	// CloseInterval is in seconds.
	CloseInterval *uint64      `yaml:"closeInterval"`
	RewardAssets  []lx.Address `yaml:"rewardAssets"`
}

// Account is a token allocation. Asset defaults to the stake token.
type Account struct {
	Address lx.Address            `yaml:"address"`
	Asset   *lx.Address           `yaml:"asset"`
	Balance *math.HexOrDecimal256 `yaml:"balance"`
}

// Allowed is an allow-list entry.
type Allowed struct {
	Asset lx.Address            `yaml:"asset"`
	Limit *math.HexOrDecimal256 `yaml:"limit"`
}

// LoadCustomGenesis reads a yaml genesis file.
func LoadCustomGenesis(path string) (*CustomGenesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	return ParseCustomGenesis(data)
}

// ParseCustomGenesis decodes a yaml genesis.
func ParseCustomGenesis(data []byte) (*CustomGenesis, error) {
	var gen CustomGenesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &gen, nil
}

func override(dst *lx.Address, v *lx.Address) {
	if v != nil {
		*dst = *v
	}
}

// Config derives the contract bindings of gen over the defaults.
func (gen *CustomGenesis) Config() (*builtin.Config, error) {
	cfg := builtin.DefaultConfig()
	cfg.Owner = gen.Owner
	cfg.Shares = gen.Shares
	cfg.PrimaryMiner = gen.PrimaryMiner
	override(&cfg.System, gen.System)
	override(&cfg.ValidatorSet, gen.Contracts.ValidatorSet)
	override(&cfg.BlockReward, gen.Contracts.BlockReward)
	override(&cfg.Deposits, gen.Contracts.Deposits)
	override(&cfg.DepositsWallet, gen.Contracts.DepositsWallet)
	override(&cfg.Rewards, gen.Contracts.Rewards)
	override(&cfg.RewardsWallet, gen.Contracts.RewardsWallet)

	p := gen.Params
	if p.RewardUnit != nil {
		cfg.RewardUnit = (*big.Int)(p.RewardUnit)
	}
	if p.MiningDepositLimit != nil {
		cfg.MiningDepositLimit = (*big.Int)(p.MiningDepositLimit)
	}
	if p.CloseInterval != nil {
		cfg.CloseInterval = *p.CloseInterval
	}
	if len(p.RewardAssets) > 0 {
		cfg.RewardAssets = p.RewardAssets
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewCustomNet creates the genesis described by gen.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	cfg, err := gen.Config()
	if err != nil {
		return nil, err
	}
	if gen.LaunchTime == 0 {
		return nil, errors.New("launchTime required")
	}

	allocs := make([]Allocation, 0, len(gen.Accounts))
	for _, acc := range gen.Accounts {
		if acc.Balance == nil || (*big.Int)(acc.Balance).Sign() < 0 {
			return nil, errors.Errorf("invalid balance of %v", acc.Address)
		}
		asset := cfg.Shares
		override(&asset, acc.Asset)
		allocs = append(allocs, Allocation{acc.Address, asset, (*big.Int)(acc.Balance)})
	}
	allowed := make([]AllowedAsset, 0, len(gen.Allowed))
	for _, a := range gen.Allowed {
		entry := AllowedAsset{Asset: a.Asset}
		if a.Limit != nil {
			entry.Limit = (*big.Int)(a.Limit)
		}
		allowed = append(allowed, entry)
	}

	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	return newGenesis(name, gen.LaunchTime, cfg, allocs, allowed, gen.Validators), nil
}
