// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/chronobank/lxmint/kv"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/stackedmap"
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
)

// storageBucket prefixes every contract storage entry in the kv store.
const storageBucket = kv.Bucket("s")

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.cause }

// State manages contract storage of builtin contracts, journaled by
// checkpoints and flushed to kv by Stage.
type State struct {
	db    kv.Store
	cache *lru.Cache
	sm    *stackedmap.StackedMap
}

func newState(db kv.Store, cache *lru.Cache) *State {
	s := &State{db: db, cache: cache}
	s.sm = stackedmap.New(s.cacheGetter)
	return s
}

type storageKey struct {
	addr lx.Address
	key  lx.Bytes32
}

func (k storageKey) dbKey() []byte {
	return append(append(make([]byte, 0, lx.AddressLength+32), k.addr[:]...), k.key[:]...)
}

// cacheGetter implements stackedmap.MapGetter.
func (s *State) cacheGetter(key any) (any, bool, error) {
	k, ok := key.(storageKey)
	if !ok {
		panic(fmt.Errorf("unexpected key type %+v", key))
	}
	dbKey := string(k.dbKey())
	if v, ok := s.cache.Get(dbKey); ok {
		return v.(rlp.RawValue), true, nil
	}
	val, err := storageBucket.NewGetter(s.db).Get([]byte(dbKey))
	if err != nil {
		if !s.db.IsNotFound(err) {
			return nil, false, err
		}
		val = nil
	}
	s.cache.Add(dbKey, rlp.RawValue(val))
	return rlp.RawValue(val), true, nil
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr lx.Address, key lx.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return data.(rlp.RawValue), nil
}

// SetRawStorage set storage value in rlp raw. Empty raw deletes the entry.
func (s *State) SetRawStorage(addr lx.Address, key lx.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr lx.Address, key lx.Bytes32) (lx.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return lx.Bytes32{}, err
	}
	if len(raw) == 0 {
		return lx.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return lx.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// structured value, expose its hash
		return lx.Blake2b(raw), nil
	}
	return lx.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr lx.Address, key, value lx.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(addr lx.Address, key lx.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(addr lx.Address, key lx.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object to compute hash of changes or commit them.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey]rlp.RawValue)
	s.sm.Journal(func(k, v any) bool {
		changes[k.(storageKey)] = v.(rlp.RawValue)
		return true
	})
	return newStage(s.db, s.cache, changes)
}
