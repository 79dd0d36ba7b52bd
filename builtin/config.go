// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"math/big"

	"github.com/chronobank/lxmint/lx"
	"github.com/pkg/errors"
)

// Config is where the builtin contracts live and how they are parameterized.
type Config struct {
	Owner        lx.Address
	System       lx.Address
	Shares       lx.Address
	PrimaryMiner lx.Address

	ValidatorSet   lx.Address
	BlockReward    lx.Address
	Deposits       lx.Address
	DepositsWallet lx.Address
	Rewards        lx.Address
	RewardsWallet  lx.Address

	RewardUnit         *big.Int
	MiningDepositLimit *big.Int
	// CloseInterval is the minimum reward period length in seconds.
	CloseInterval uint64
	RewardAssets  []lx.Address
}

// DefaultConfig returns the well-known addresses with default parameters.
// Owner, Shares and PrimaryMiner are left for the genesis to fill in.
func DefaultConfig() *Config {
	return &Config{
		System:             lx.SystemAddress,
		ValidatorSet:       lx.ValidatorSetAddress,
		BlockReward:        lx.BlockRewardAddress,
		Deposits:           lx.BytesToAddress([]byte("Deposits")),
		DepositsWallet:     lx.BytesToAddress([]byte("DepositsWallet")),
		Rewards:            lx.BytesToAddress([]byte("Rewards")),
		RewardsWallet:      lx.BytesToAddress([]byte("RewardsWallet")),
		RewardUnit:         new(big.Int).Set(lx.DefaultRewardUnit),
		MiningDepositLimit: big.NewInt(1),
		CloseInterval:      uint64(lx.DefaultCloseInterval.Seconds()),
		RewardAssets:       []lx.Address{lx.NativeAsset},
	}
}

// Validate checks the config is usable.
func (c *Config) Validate() error {
	if c.Owner.IsZero() {
		return errors.New("owner required")
	}
	if c.Shares.IsZero() {
		return errors.New("stake token required")
	}
	if c.RewardUnit == nil || c.RewardUnit.Sign() < 0 {
		return errors.New("invalid reward unit")
	}
	seen := make(map[lx.Address]string)
	for name, addr := range map[string]lx.Address{
		"validatorSet":   c.ValidatorSet,
		"blockReward":    c.BlockReward,
		"deposits":       c.Deposits,
		"depositsWallet": c.DepositsWallet,
		"rewards":        c.Rewards,
		"rewardsWallet":  c.RewardsWallet,
	} {
		if addr.IsZero() {
			return errors.Errorf("%s address required", name)
		}
		if other, ok := seen[addr]; ok {
			return errors.Errorf("%s and %s share address %v", name, other, addr)
		}
		seen[addr] = name
	}
	return nil
}
