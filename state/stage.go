// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"slices"

	"github.com/chronobank/lxmint/kv"
	"github.com/chronobank/lxmint/lx"
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
)

// Stage holds the net storage changes of a state, ordered by key.
type Stage struct {
	db      kv.Store
	cache   *lru.Cache
	keys    [][]byte
	values  []rlp.RawValue
	changed int
}

func newStage(db kv.Store, cache *lru.Cache, changes map[storageKey]rlp.RawValue) *Stage {
	st := &Stage{db: db, cache: cache}
	for k := range changes {
		st.keys = append(st.keys, k.dbKey())
	}
	slices.SortFunc(st.keys, bytes.Compare)
	for _, k := range st.keys {
		var sk storageKey
		copy(sk.addr[:], k[:lx.AddressLength])
		copy(sk.key[:], k[lx.AddressLength:])
		st.values = append(st.values, changes[sk])
	}
	st.changed = len(st.keys)
	return st
}

// Len returns count of changed storage entries.
func (s *Stage) Len() int { return s.changed }

// Hash computes the digest of all changes. Equal change sets give equal hashes.
func (s *Stage) Hash() lx.Bytes32 {
	return lx.Blake2bFn(func(w io.Writer) {
		for i, k := range s.keys {
			w.Write(k)
			w.Write(s.values[i])
		}
	})
}

// Commit writes all changes into the kv store atomically.
func (s *Stage) Commit() (lx.Bytes32, error) {
	bulk := storageBucket.NewBulk(s.db.Bulk())
	for i, k := range s.keys {
		var err error
		if len(s.values[i]) == 0 {
			err = bulk.Delete(k)
		} else {
			err = bulk.Put(k, s.values[i])
		}
		if err != nil {
			return lx.Bytes32{}, &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return lx.Bytes32{}, &Error{err}
	}
	for i, k := range s.keys {
		s.cache.Add(string(k), s.values[i])
	}
	return s.Hash(), nil
}
