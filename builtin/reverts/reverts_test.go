// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"testing"

	"github.com/chronobank/lxmint/abi"
	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevert(t *testing.T) {
	err := WithCode(errcode.MinerRequired, "")
	assert.Equal(t, "MINER_REQUIRED", err.Error())

	wrapped := errors.Wrap(err, "deposit")
	assert.True(t, IsRevertErr(wrapped))
	code, ok := CodeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, errcode.MinerRequired, code)

	reason, uerr := abi.UnpackRevert(err.Bytes())
	require.NoError(t, uerr)
	assert.Equal(t, "MINER_REQUIRED", reason)

	plain := New("builtin: no change pending")
	_, ok = CodeOf(plain)
	assert.False(t, ok)
	assert.True(t, IsRevertErr(plain))

	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(errors.New("x")))
	assert.Equal(t, "UNAUTHORIZED: caller 0x01", WithCode(errcode.Unauthorized, "caller %s", "0x01").Error())
}
