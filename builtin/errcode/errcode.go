// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package errcode defines the result codes returned by ledger and distributor
// operations. A non-OK code always means the call left state untouched.
package errcode

import (
	"fmt"
)

// Code is the outcome of a business operation.
type Code uint8

const (
	OK Code = iota
	Unauthorized
	MinerRequired
	InsufficientBalance
	WithdrawLimitExceeded
	TransferFailed
	RegistrationIDExists
	NoRegisteredWithdrawalFound
	CloseIntervalNotElapsed
)

var names = [...]string{
	OK:                          "OK",
	Unauthorized:                "UNAUTHORIZED",
	MinerRequired:               "MINER_REQUIRED",
	InsufficientBalance:         "INSUFFICIENT_BALANCE",
	WithdrawLimitExceeded:       "WITHDRAW_LIMIT_EXCEEDED",
	TransferFailed:              "TRANSFER_FAILED",
	RegistrationIDExists:        "REGISTRATION_ID_EXISTS",
	NoRegisteredWithdrawalFound: "NO_REGISTERED_WITHDRAWAL_FOUND",
	CloseIntervalNotElapsed:     "CLOSE_INTERVAL_NOT_ELAPSED",
}

func (c Code) String() string {
	if int(c) < len(names) {
		return names[c]
	}
	return fmt.Sprintf("CODE(%d)", uint8(c))
}

// OK reports whether c is OK.
func (c Code) OK() bool { return c == OK }

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, ok := Parse(string(text))
	if !ok {
		return fmt.Errorf("unknown result code %q", text)
	}
	*c = parsed
	return nil
}

// Parse resolves a code by its name.
func Parse(name string) (Code, bool) {
	for i, n := range names {
		if n == name {
			return Code(i), true
		}
	}
	return 0, false
}
