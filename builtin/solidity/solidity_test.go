// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/chronobank/lxmint/lvldb"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Balance *big.Int
	Owner   lx.Address
}

func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewContext(lx.Address{1}, state.NewStater(db).NewState())
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[lx.Address, *entry](ctx, lx.Bytes32{1})
	key := lx.Address{2}

	got, err := m.Get(key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Balance)

	exists, err := m.Exists(key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, m.Set(key, &entry{big.NewInt(10), lx.Address{3}}))
	got, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Balance.Int64())
	assert.Equal(t, lx.Address{3}, got.Owner)

	m.Delete(key)
	exists, err = m.Exists(key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMappingValueTypes(t *testing.T) {
	ctx := newTestContext(t)
	amounts := NewMapping[lx.Bytes32, *big.Int](ctx, lx.Bytes32{2})
	k := Compose(lx.Address{1}, Uint64Key(7))

	v, err := amounts.Get(k)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	require.NoError(t, amounts.Set(k, big.NewInt(99)))
	v, err = amounts.Get(k)
	require.NoError(t, err)
	assert.Equal(t, int64(99), v.Int64())

	// composed keys are order sensitive
	assert.NotEqual(t, k, Compose(Uint64Key(7), lx.Address{1}))
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint256(ctx, lx.Bytes32{3})

	require.NoError(t, u.Add(big.NewInt(5)))
	require.NoError(t, u.Add(big.NewInt(7)))
	v, err := u.Get()
	require.NoError(t, err)
	assert.Equal(t, int64(12), v.Int64())

	require.NoError(t, u.Sub(big.NewInt(20)))
	v, err = u.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())
}

func TestAddressAndBool(t *testing.T) {
	ctx := newTestContext(t)
	a := NewAddress(ctx, lx.Bytes32{4})
	b := NewBool(ctx, lx.Bytes32{5})

	got, err := a.Get()
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	a.Set(lx.SystemAddress)
	got, err = a.Get()
	require.NoError(t, err)
	assert.Equal(t, lx.SystemAddress, got)

	b.Set(true)
	ok, err := b.Get()
	require.NoError(t, err)
	assert.True(t, ok)
	b.Set(false)
	ok, err = b.Get()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArray(t *testing.T) {
	ctx := newTestContext(t)
	arr := NewArray[lx.Address](ctx, lx.Bytes32{6})

	for i := byte(1); i <= 3; i++ {
		require.NoError(t, arr.Push(lx.Address{i}))
	}
	n, err := arr.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), n)

	require.NoError(t, arr.Set(1, lx.Address{9}))
	all, err := arr.All()
	require.NoError(t, err)
	assert.Equal(t, []lx.Address{{1}, {9}, {3}}, all)

	require.NoError(t, arr.Clear())
	all, err = arr.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}
