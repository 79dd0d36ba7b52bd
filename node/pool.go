// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/chronobank/lxmint/action"
	"github.com/chronobank/lxmint/lx"
)

var (
	// ErrPoolFull is returned when the pool holds its limit of actions.
	ErrPoolFull = errors.New("action pool full")
	// ErrKnownAction is returned for an action already queued or executed.
	ErrKnownAction = errors.New("known action")
)

// Pool queues submitted actions until the next block.
type Pool struct {
	lock    sync.Mutex
	limit   int
	pending []*action.Action
	ids     map[lx.Bytes32]struct{}
}

// NewPool creates a pool holding up to limit actions.
func NewPool(limit int) *Pool {
	return &Pool{
		limit: limit,
		ids:   make(map[lx.Bytes32]struct{}),
	}
}

// ActionID identifies an encoded action, nonce included.
func ActionID(a *action.Action) (lx.Bytes32, error) {
	data, err := action.Encode(a)
	if err != nil {
		return lx.Bytes32{}, err
	}
	return lx.Blake2b(data), nil
}

// Add queues a. Re-submitting a queued action fails with ErrKnownAction.
func (p *Pool) Add(a *action.Action) (lx.Bytes32, error) {
	id, err := ActionID(a)
	if err != nil {
		return lx.Bytes32{}, err
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	if _, ok := p.ids[id]; ok {
		return id, ErrKnownAction
	}
	if len(p.pending) >= p.limit {
		return lx.Bytes32{}, ErrPoolFull
	}
	p.pending = append(p.pending, a)
	p.ids[id] = struct{}{}
	return id, nil
}

// Drain removes and returns all queued actions in submission order.
func (p *Pool) Drain() []*action.Action {
	p.lock.Lock()
	defer p.lock.Unlock()

	out := p.pending
	p.pending = nil
	p.ids = make(map[lx.Bytes32]struct{})
	return out
}

// Len returns the count of queued actions.
func (p *Pool) Len() int {
	p.lock.Lock()
	defer p.lock.Unlock()
	return len(p.pending)
}
