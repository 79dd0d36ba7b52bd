// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/lx"
)

// DevAccount account for development.
type DevAccount struct {
	Address    lx.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for solo mode.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{lx.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// DevShares is the stake token of the devnet.
var DevShares = lx.BytesToAddress([]byte("TIME"))

// NewDevnet create genesis for solo mode. The first dev account owns the
// contracts, the second is the primary miner and the only initial validator.
// Every dev account gets 1e8 of the stake token.
func NewDevnet() *Genesis {
	launchTime := uint64(1526400000) // 'Wed May 16 2018 00:00:00 GMT+0800 (CST)'

	accs := DevAccounts()
	cfg := builtin.DefaultConfig()
	cfg.Owner = accs[0].Address
	cfg.Shares = DevShares
	cfg.PrimaryMiner = accs[1].Address

	allocs := make([]Allocation, 0, len(accs))
	for _, acc := range accs {
		allocs = append(allocs, Allocation{acc.Address, DevShares, big.NewInt(100000000)})
	}
	return newGenesis("devnet", launchTime, cfg, allocs, nil, []lx.Address{accs[1].Address})
}
