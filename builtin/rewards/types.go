// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
)

// account tracks what one holder can claim of one reward asset. Every closed
// period below Cursor has been added to Amount.
type account struct {
	Amount *big.Int
	Cursor uint64
}

func (a *account) encode() ([]byte, error) {
	if a.Amount.Sign() == 0 && a.Cursor == 0 {
		return nil, nil
	}
	return rlp.EncodeToBytes(a)
}

func (a *account) decode(data []byte) error {
	*a = account{Amount: new(big.Int)}
	if len(data) == 0 {
		return nil
	}
	return rlp.DecodeBytes(data, a)
}

// Period is the exported view of a period.
type Period struct {
	Index        uint64
	StartDate    uint64
	TotalDeposit *big.Int
	Unique       uint64
	Closed       bool
}
