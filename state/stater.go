// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/chronobank/lxmint/kv"
	lru "github.com/hashicorp/golang-lru"
)

const storageCacheSize = 4096

// Stater is the state creator. States created by one stater share a read cache
// of committed storage.
type Stater struct {
	db    kv.Store
	cache *lru.Cache
}

// NewStater create a new stater.
func NewStater(db kv.Store) *Stater {
	cache, _ := lru.New(storageCacheSize)
	return &Stater{db, cache}
}

// NewState create a new state object on top of the committed storage.
func (s *Stater) NewState() *State {
	return newState(s.db, s.cache)
}
