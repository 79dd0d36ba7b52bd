// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]
	stringArgs     = func() ethabi.Arguments {
		typ, _ := ethabi.NewType("string", "", nil)
		return ethabi.Arguments{{Type: typ}}
	}()
)

// PackRevert encodes reason as Error(string) revert data.
func PackRevert(reason string) []byte {
	data, _ := stringArgs.Pack(reason)
	return append(append([]byte{}, revertSelector...), data...)
}

// UnpackRevert resolves the reason of revert data.
func UnpackRevert(data []byte) (string, error) {
	return ethabi.UnpackRevert(data)
}
