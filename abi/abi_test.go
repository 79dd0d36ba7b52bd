// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testABI = `[
	{"type":"function","name":"getValidators","stateMutability":"view","inputs":[],
	 "outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"reward","stateMutability":"nonpayable",
	 "inputs":[{"name":"benefactors","type":"address[]"},{"name":"kind","type":"uint16[]"}],
	 "outputs":[{"name":"","type":"address[]"},{"name":"","type":"uint256[]"}]}
]`

func TestMethodIDs(t *testing.T) {
	a, err := New([]byte(testABI))
	require.NoError(t, err)

	m, ok := a.MethodByName("getValidators")
	require.True(t, ok)
	assert.Equal(t, MethodID{0xb7, 0xab, 0x4d, 0xb5}, m.ID())
	assert.True(t, m.Const())

	r, ok := a.MethodByName("reward")
	require.True(t, ok)
	assert.Equal(t, "reward(address[],uint16[])", r.Signature())
	assert.False(t, r.Const())
	assert.Len(t, a.Methods(), 2)
}

func TestEncodeDecode(t *testing.T) {
	a := MustNew([]byte(testABI))
	reward, _ := a.MethodByName("reward")

	authors := []common.Address{common.HexToAddress("0x01"), common.HexToAddress("0x02")}
	kinds := []uint16{0, 2}
	input, err := reward.EncodeInput(authors, kinds)
	require.NoError(t, err)

	found, err := a.MethodByInput(input)
	require.NoError(t, err)
	assert.Equal(t, reward, found)

	args, err := reward.DecodeInput(input)
	require.NoError(t, err)
	assert.Equal(t, authors, args[0])
	assert.Equal(t, kinds, args[1])

	var parsed struct {
		Benefactors []common.Address
		Kind        []uint16
	}
	require.NoError(t, reward.DecodeInputTo(input, &parsed))
	assert.Equal(t, authors, parsed.Benefactors)
	assert.Equal(t, kinds, parsed.Kind)

	out, err := reward.EncodeOutput(authors, []*big.Int{big.NewInt(1), big.NewInt(3)})
	require.NoError(t, err)
	vals, err := reward.DecodeOutput(out)
	require.NoError(t, err)
	assert.Equal(t, authors, vals[0])
	assert.Equal(t, []*big.Int{big.NewInt(1), big.NewInt(3)}, vals[1])

	_, err = a.MethodByInput([]byte{1, 2})
	assert.Error(t, err)
	_, err = a.MethodByInput([]byte{1, 2, 3, 4})
	assert.Error(t, err)
}

func TestRevert(t *testing.T) {
	data := PackRevert("MINER_REQUIRED")
	assert.Equal(t, "08c379a0", common.Bytes2Hex(data[:4]))
	reason, err := UnpackRevert(data)
	require.NoError(t, err)
	assert.Equal(t, "MINER_REQUIRED", reason)
}
