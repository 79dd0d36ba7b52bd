// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/binary"
	"reflect"

	"github.com/chronobank/lxmint/lx"
	"github.com/ethereum/go-ethereum/rlp"
)

// Key is a mapping key.
type Key interface {
	Bytes() []byte
}

// Uint64Key uses an integer, e.g. a period index, as mapping key.
type Uint64Key uint64

func (k Uint64Key) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(k))
}

// Compose derives a single key from several, like nested solidity mappings.
func Compose(keys ...Key) lx.Bytes32 {
	data := make([][]byte, 0, len(keys))
	for _, k := range keys {
		data = append(data, k.Bytes())
	}
	return lx.Blake2b(data...)
}

// Mapping is a key => value map whose values are stored RLP encoded.
type Mapping[K Key, V any] struct {
	context *Context
	basePos lx.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos lx.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) lx.Bytes32 {
	return lx.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value for key, or the zero value when absent.
// Pointer values are never nil.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Delete clears the entry of key.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}

// Exists returns whether a value is stored for key.
func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	raw, err := m.context.state.GetRawStorage(m.context.address, m.position(key))
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}
