// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"bytes"
	"log/slog"
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

var sink []byte

func BenchmarkAppendInt64(b *testing.B) {
	buf := make([]byte, 100)
	b.ReportAllocs()
	for b.Loop() {
		sink = appendInt64(buf, rand.Int64()) //#nosec G404
	}
}

func BenchmarkAppendUint64(b *testing.B) {
	buf := make([]byte, 100)
	b.ReportAllocs()
	for b.Loop() {
		sink = appendUint64(buf, rand.Uint64(), false) //#nosec G404
	}
}

func TestPrettyBigInt(t *testing.T) {
	tests := []struct {
		n    string
		want string
	}{
		{"111222333444555678999", "111,222,333,444,555,678,999"},
		{"-111222333444555678999", "-111,222,333,444,555,678,999"},
		{"11122233344455567899900", "11,122,233,344,455,567,899,900"},
		{"12345", "12345"},
	}
	for _, tt := range tests {
		v, _ := new(big.Int).SetString(tt.n, 10)
		assert.Equal(t, tt.want, string(appendBigInt(nil, v)))
	}
}

func TestTerminalHandler(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	l := NewLogger(NewTerminalHandlerWithLevel(&buf, lvl, false))

	l.Debug("hidden")
	l.Info("deposit accepted", "amount", big.NewInt(1_000_000), "code", "OK")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO ")
	assert.Contains(t, out, "deposit accepted")
	assert.Contains(t, out, "amount=1,000,000")
	assert.Contains(t, out, "code=OK")
}

func TestWithContextFollowsRoot(t *testing.T) {
	var buf bytes.Buffer
	pkgLogger := WithContext("pkg", "deposits")

	prev := Root()
	defer SetDefault(prev)
	SetDefault(NewLogger(JSONHandler(&buf)))

	pkgLogger.Warn("limit exceeded", "asset", "0x01")
	out := buf.String()
	assert.Contains(t, out, `"pkg":"deposits"`)
	assert.Contains(t, out, `"lvl":"warn"`)
	assert.Contains(t, out, `"msg":"limit exceeded"`)
}
