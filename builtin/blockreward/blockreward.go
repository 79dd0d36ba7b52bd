// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package blockreward implements the reward oracle queried by the consensus
// engine once per block.
package blockreward

import (
	"math/big"

	"github.com/chronobank/lxmint/builtin/reverts"
	"github.com/chronobank/lxmint/builtin/solidity"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/metrics"
	"github.com/chronobank/lxmint/state"
)

var (
	logger = log.WithContext("pkg", "blockreward")

	metricAuthored = metrics.LazyLoadCounter("blocks_authored_total")

	mintedKey   = lx.Blake2b([]byte("minted"))
	authoredKey = lx.Blake2b([]byte("authored"))
)

// Kind classifies a benefactor passed to Reward.
type Kind uint16

const (
	Author Kind = iota
	Uncle
	EmptyStep
	External
)

func (k Kind) String() string {
	switch k {
	case Author:
		return "author"
	case Uncle:
		return "uncle"
	case EmptyStep:
		return "emptyStep"
	case External:
		return "external"
	}
	return "unknown"
}

// ValidatorChecker reports membership of the finalized validator set.
type ValidatorChecker interface {
	IsValidator(addr lx.Address) (bool, error)
}

// BlockReward is the reward oracle.
type BlockReward struct {
	addr       lx.Address
	system     lx.Address
	unit       *big.Int
	validators ValidatorChecker

	minted   *solidity.Uint256
	authored *solidity.Mapping[lx.Address, uint64]
}

// New creates the oracle at addr paying unit per authored block.
func New(addr lx.Address, st *state.State, system lx.Address, unit *big.Int, validators ValidatorChecker) *BlockReward {
	ctx := solidity.NewContext(addr, st)
	return &BlockReward{
		addr:       addr,
		system:     system,
		unit:       new(big.Int).Set(unit),
		validators: validators,
		minted:     solidity.NewUint256(ctx, mintedKey),
		authored:   solidity.NewMapping[lx.Address, uint64](ctx, authoredKey),
	}
}

func (b *BlockReward) Address() lx.Address { return b.addr }

// RewardUnit returns the amount paid per authored block.
func (b *BlockReward) RewardUnit() *big.Int { return new(big.Int).Set(b.unit) }

// Minted returns the total amount rewarded so far.
func (b *BlockReward) Minted() (*big.Int, error) {
	return b.minted.Get()
}

// AuthoredBlocks returns the number of rewarded blocks authored by addr.
func (b *BlockReward) AuthoredBlocks(addr lx.Address) (uint64, error) {
	return b.authored.Get(addr)
}

// Reward returns the amount each benefactor receives. Only the system address
// gets non-zero amounts, and only for finalized validators rewarded as block
// authors.
func (b *BlockReward) Reward(caller lx.Address, benefactors []lx.Address, kinds []uint16) ([]lx.Address, []*big.Int, error) {
	if len(benefactors) != len(kinds) {
		return nil, nil, reverts.New("blockreward: benefactors and kinds length mismatch")
	}
	amounts := make([]*big.Int, len(benefactors))
	for i := range amounts {
		amounts[i] = new(big.Int)
	}
	if caller != b.system {
		return benefactors, amounts, nil
	}

	for i, addr := range benefactors {
		if Kind(kinds[i]) != Author {
			continue
		}
		ok, err := b.validators.IsValidator(addr)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			logger.Debug("author is not a validator", "author", addr)
			continue
		}
		amounts[i].Set(b.unit)

		n, err := b.authored.Get(addr)
		if err != nil {
			return nil, nil, err
		}
		if err := b.authored.Set(addr, n+1); err != nil {
			return nil, nil, err
		}
		if err := b.minted.Add(b.unit); err != nil {
			return nil, nil, err
		}
		metricAuthored().Add(1)
	}
	return benefactors, amounts, nil
}
