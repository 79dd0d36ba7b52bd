// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lx

import (
	"math/big"
	"time"
)

// Well-known addresses shared with the consensus client.
var (
	// SystemAddress is the caller the consensus engine uses for privileged calls.
	SystemAddress = MustParseAddress("0xfffffffffffffffffffffffffffffffffffffffe")
	// ValidatorSetAddress hosts getValidators/finalizeChange.
	ValidatorSetAddress = MustParseAddress("0x0000000000000000000000000000000000000011")
	// BlockRewardAddress hosts reward(address[],uint16[]).
	BlockRewardAddress = MustParseAddress("0x0000000000000000000000000000000000000042")
	// NativeAsset is the token address the native coin is accounted under.
	// Block rewards are minted in it.
	NativeAsset = MustParseAddress("0x0000000000000000000000000000000000004c58")
)

// Defaults of chain parameters.
const (
	BlockInterval        = 5 * time.Second
	DefaultCloseInterval = 24 * time.Hour
)

var (
	// DefaultRewardUnit is the fixed amount paid per authored block, 1e18.
	DefaultRewardUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)
