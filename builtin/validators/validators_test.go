// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validators

import (
	"testing"

	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/builtin/reverts"
	"github.com/chronobank/lxmint/lvldb"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func M(a ...any) []any {
	return a
}

var (
	owner = lx.BytesToAddress([]byte("owner"))
	v1    = lx.BytesToAddress([]byte("v1"))
	v2    = lx.BytesToAddress([]byte("v2"))
	v3    = lx.BytesToAddress([]byte("v3"))
)

func newValidators(t *testing.T) *Validators {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := state.NewStater(db).NewState()
	return New(lx.ValidatorSetAddress, st, owner, lx.SystemAddress)
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from                   Status
		lock, unlock, finalize Status
		isPending, isValidator bool
	}{
		{Absent, PendingAdd, Absent, Absent, false, false},
		{PendingAdd, PendingAdd, Absent, Active, true, false},
		{Active, Active, PendingRemoval, Active, true, true},
		{PendingRemoval, Active, PendingRemoval, Absent, false, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.lock, tt.from.onLock(), tt.from.String())
		assert.Equal(t, tt.unlock, tt.from.onUnlock(), tt.from.String())
		assert.Equal(t, tt.finalize, tt.from.onFinalize(), tt.from.String())
		assert.Equal(t, tt.isPending, tt.from.IsPending(), tt.from.String())
		assert.Equal(t, tt.isValidator, tt.from.IsValidator(), tt.from.String())
	}
}

func TestLockFinalizeUnlock(t *testing.T) {
	vs := newValidators(t)

	require.NoError(t, vs.MinerLocked(v1))
	assert.Equal(t, M(true, nil), M(vs.IsPending(v1)))
	assert.Equal(t, M(false, nil), M(vs.IsValidator(v1)))
	assert.Equal(t, M([]lx.Address{}, nil), M(vs.GetValidators()))

	require.NoError(t, vs.FinalizeChange(lx.SystemAddress))
	assert.Equal(t, M(true, nil), M(vs.IsPending(v1)))
	assert.Equal(t, M(true, nil), M(vs.IsValidator(v1)))
	assert.Equal(t, M([]lx.Address{v1}, nil), M(vs.GetValidators()))

	require.NoError(t, vs.MinerUnlocked(v1))
	assert.Equal(t, M(false, nil), M(vs.IsPending(v1)))
	assert.Equal(t, M(true, nil), M(vs.IsValidator(v1)))
	assert.Equal(t, M([]lx.Address{v1}, nil), M(vs.GetValidators()))

	require.NoError(t, vs.FinalizeChange(lx.SystemAddress))
	assert.Equal(t, M(false, nil), M(vs.IsPending(v1)))
	assert.Equal(t, M(false, nil), M(vs.IsValidator(v1)))
	assert.Equal(t, M([]lx.Address{}, nil), M(vs.GetValidators()))

	all, err := vs.All()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFinalizeRequiresSystemAndPendingChange(t *testing.T) {
	vs := newValidators(t)

	err := vs.FinalizeChange(lx.SystemAddress)
	assert.True(t, reverts.IsRevertErr(err), "nothing pending")

	require.NoError(t, vs.MinerLocked(v1))
	err = vs.FinalizeChange(owner)
	code, ok := reverts.CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, errcode.Unauthorized, code)

	pending, err := vs.ChangePending()
	require.NoError(t, err)
	assert.True(t, pending)

	require.NoError(t, vs.FinalizeChange(lx.SystemAddress))
	pending, err = vs.ChangePending()
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestFinalizeOrderAndRemoval(t *testing.T) {
	vs := newValidators(t)
	require.NoError(t, vs.Init([]lx.Address{v1, v2, v3}))
	assert.Equal(t, M([]lx.Address{v1, v2, v3}, nil), M(vs.GetValidators()))

	// remove the middle one, order of the rest is kept
	require.NoError(t, vs.MinerUnlocked(v2))
	assert.Equal(t, M([]lx.Address{v1, v3}, nil), M(vs.PendingValidators()))
	require.NoError(t, vs.FinalizeChange(lx.SystemAddress))
	assert.Equal(t, M([]lx.Address{v1, v3}, nil), M(vs.GetValidators()))

	// re-added entries go last
	require.NoError(t, vs.MinerLocked(v2))
	require.NoError(t, vs.FinalizeChange(lx.SystemAddress))
	assert.Equal(t, M([]lx.Address{v1, v3, v2}, nil), M(vs.GetValidators()))
}

func TestRelockCancelsRemoval(t *testing.T) {
	vs := newValidators(t)
	require.NoError(t, vs.Init([]lx.Address{v1}))

	require.NoError(t, vs.MinerUnlocked(v1))
	assert.Equal(t, M(PendingRemoval, nil), M(vs.Status(v1)))
	require.NoError(t, vs.MinerLocked(v1))
	assert.Equal(t, M(Active, nil), M(vs.Status(v1)))

	require.NoError(t, vs.FinalizeChange(lx.SystemAddress))
	assert.Equal(t, M([]lx.Address{v1}, nil), M(vs.GetValidators()))
}

func TestOwnerBootstrap(t *testing.T) {
	vs := newValidators(t)

	err := vs.AddValidator(v1, v1)
	code, _ := reverts.CodeOf(err)
	assert.Equal(t, errcode.Unauthorized, code)

	require.NoError(t, vs.AddValidator(owner, v1))
	require.NoError(t, vs.AddValidator(owner, v2))
	require.NoError(t, vs.FinalizeChange(lx.SystemAddress))
	assert.Equal(t, M([]lx.Address{v1, v2}, nil), M(vs.GetValidators()))

	err = vs.RemoveValidator(v2, v1)
	code, _ = reverts.CodeOf(err)
	assert.Equal(t, errcode.Unauthorized, code)

	require.NoError(t, vs.RemoveValidator(owner, v1))
	require.NoError(t, vs.FinalizeChange(lx.SystemAddress))
	assert.Equal(t, M([]lx.Address{v2}, nil), M(vs.GetValidators()))
}
