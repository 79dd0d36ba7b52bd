// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"0xfffffffffffffffffffffffffffffffffffffffe", false},
		{"fffffffffffffffffffffffffffffffffffffffe", false},
		{"0Xfffffffffffffffffffffffffffffffffffffffe", false},
		{"1xfffffffffffffffffffffffffffffffffffffffe", true},
		{"0xfffe", true},
		{"0xzzffffffffffffffffffffffffffffffffffffff", true},
	}
	for _, tt := range tests {
		_, err := ParseAddress(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
		} else {
			assert.NoError(t, err, tt.in)
		}
	}
}

func TestAddressJSON(t *testing.T) {
	addr := MustParseAddress("0x0000000000000000000000000000000000000011")
	data, err := json.Marshal(&addr)
	require.NoError(t, err)
	assert.Equal(t, `"0x0000000000000000000000000000000000000011"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ValidatorSetAddress, decoded)

	m := map[Address]int{BlockRewardAddress: 1}
	data, err = json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"0x0000000000000000000000000000000000000042":1}`, string(data))
}

func TestKeccak256(t *testing.T) {
	// selector of getValidators()
	h := Keccak256([]byte("getValidators()"))
	assert.Equal(t, "0xb7ab4db5", "0x"+h.String()[2:10])
	assert.False(t, Blake2b([]byte("a"), []byte("b")).IsZero())
	assert.Equal(t, Blake2b([]byte("ab")), Blake2b([]byte("a"), []byte("b")))
}
