// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"

	"github.com/chronobank/lxmint/abi"
	"github.com/chronobank/lxmint/builtin/errcode"
)

// ErrRevert aborts a call. Every state change of the call is discarded.
type ErrRevert struct {
	code    errcode.Code
	message string
}

// New creates a revert with a free-form message.
func New(message string) *ErrRevert {
	return &ErrRevert{message: message}
}

// WithCode creates a revert classified by code. The message defaults to the code name.
func WithCode(code errcode.Code, format string, args ...any) *ErrRevert {
	msg := code.String()
	if format != "" {
		msg = msg + ": " + fmt.Sprintf(format, args...)
	}
	return &ErrRevert{code: code, message: msg}
}

func (e *ErrRevert) Error() string {
	return e.message
}

// Code returns the classification, OK when the revert carries none.
func (e *ErrRevert) Code() errcode.Code {
	return e.code
}

// Bytes returns the Error(string) encoded revert data.
func (e *ErrRevert) Bytes() []byte {
	if e == nil {
		return nil
	}
	return abi.PackRevert(e.message)
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// CodeOf extracts the code of a revert found in the err chain.
func CodeOf(err error) (errcode.Code, bool) {
	var ve *ErrRevert
	if errors.As(err, &ve) && ve.code != errcode.OK {
		return ve.code, true
	}
	return errcode.OK, false
}
