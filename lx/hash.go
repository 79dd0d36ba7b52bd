// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lx

import (
	"hash"
	"io"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
)

var blake2bPool = sync.Pool{
	New: func() any {
		h, _ := blake2b.New256(nil)
		return h
	},
}

// Blake2b digests the concatenation of data. It identifies actions and
// state changes.
func Blake2b(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	return Blake2bFn(func(w io.Writer) {
		for _, b := range data {
			w.Write(b)
		}
	})
}

// Blake2bFn digests whatever fn writes.
func Blake2bFn(fn func(w io.Writer)) (h Bytes32) {
	hasher := blake2bPool.Get().(hash.Hash)
	defer func() {
		hasher.Reset()
		blake2bPool.Put(hasher)
	}()

	fn(hasher)
	hasher.Sum(h[:0])
	return
}

// Keccak256 is the legacy keccak digest used for ABI selectors.
func Keccak256(data ...[]byte) Bytes32 {
	return Bytes32(crypto.Keccak256Hash(data...))
}
