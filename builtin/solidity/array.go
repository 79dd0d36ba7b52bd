// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"

	"github.com/chronobank/lxmint/lx"
)

// Array is a dynamic array: its length at pos, elements keyed by index.
type Array[V any] struct {
	length *Uint256
	items  *Mapping[Uint64Key, V]
}

func NewArray[V any](context *Context, pos lx.Bytes32) *Array[V] {
	return &Array[V]{
		length: NewUint256(context, pos),
		items:  NewMapping[Uint64Key, V](context, lx.Blake2b(pos.Bytes(), []byte("items"))),
	}
}

func (a *Array[V]) Len() (uint64, error) {
	n, err := a.length.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (a *Array[V]) At(i uint64) (V, error) {
	return a.items.Get(Uint64Key(i))
}

func (a *Array[V]) Set(i uint64, v V) error {
	return a.items.Set(Uint64Key(i), v)
}

func (a *Array[V]) Push(v V) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	if err := a.items.Set(Uint64Key(n), v); err != nil {
		return err
	}
	a.length.Set(new(big.Int).SetUint64(n + 1))
	return nil
}

// Clear empties the array.
func (a *Array[V]) Clear() error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	for i := range n {
		a.items.Delete(Uint64Key(i))
	}
	a.length.Set(new(big.Int))
	return nil
}

// All returns all elements in order.
func (a *Array[V]) All() ([]V, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	out := make([]V, 0, n)
	for i := range n {
		v, err := a.items.Get(Uint64Key(i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
