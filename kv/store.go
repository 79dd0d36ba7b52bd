// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Getter reads values by key.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

// Putter writes or removes values by key.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Bulk collects writes. Nothing is visible until Write.
type Bulk interface {
	Putter
	Len() int
	Write() error
}

// Store is the backing store of the ledger state and the block head.
type Store interface {
	Getter
	Putter
	Bulk() Bulk
}
