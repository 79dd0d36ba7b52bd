// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"math/big"

	"github.com/chronobank/lxmint/action"
	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/lx"
)

// Head is the latest committed block.
type Head struct {
	Number uint32
	Time   uint64
	Author lx.Address
	// Hash digests the storage changes of the block.
	Hash lx.Bytes32
}

// Receipt is the outcome of one action.
type Receipt struct {
	ID          lx.Bytes32
	Action      *action.Action
	BlockNumber uint32
	Code        errcode.Code
	Reverted    bool
	// Error describes why the action was rejected or aborted.
	Error string
}

// Payout is a block reward credited in the native asset.
type Payout struct {
	Recipient lx.Address
	Amount    *big.Int
}

// Block summarizes one packed block.
type Block struct {
	Head
	Payouts  []Payout
	Receipts []*Receipt
	// Finalized is set when the validator set changed at the end of the block.
	Finalized bool
}
