// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/chronobank/lxmint/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	disk, err := New(filepath.Join(t.TempDir(), "db"), Options{16, 16})
	require.NoError(t, err)
	defer disk.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{disk, mem} {
		require.NoError(t, db.Put(key, value))

		got, err := db.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has(inValidKey)
		assert.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, db.Delete(key))
		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestLevelDBBulk(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Put([]byte("a0"), []byte("old")))

	bulk := kv.Bucket("a").NewBulk(db.Bulk())
	require.NoError(t, bulk.Put([]byte("0"), []byte("new")))
	require.NoError(t, bulk.Put([]byte("1"), []byte("v1")))
	require.NoError(t, bulk.Delete([]byte("1")))
	require.NoError(t, bulk.Put([]byte("2"), []byte("v2")))

	// not visible before write
	_, err = db.Get([]byte("a2"))
	assert.True(t, db.IsNotFound(err))
	require.NoError(t, bulk.Write())

	got, err := db.Get([]byte("a0"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	has, err := db.Has([]byte("a1"))
	require.NoError(t, err)
	assert.False(t, has)

	got, err = kv.Bucket("a").NewGetter(db).Get([]byte("2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}
