// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package action

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/chronobank/lxmint/lx"
)

// ErrInvalidAction is returned when data cannot be decoded as an Action.
var ErrInvalidAction = errors.New("invalid action")

// Decode parses an Action from raw bytes.
func Decode(data []byte) (*Action, error) {
	if len(data) == 0 {
		return nil, errors.WithMessage(ErrInvalidAction, "empty data")
	}
	var a Action
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.Wrap(ErrInvalidAction, err.Error())
	}
	if a.Kind == "" {
		return nil, errors.WithMessage(ErrInvalidAction, "missing action field")
	}
	return &a, nil
}

// DecodePayload unmarshals the payload of a into dst.
func DecodePayload(a *Action, dst any) error {
	if len(a.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(a.Payload, dst); err != nil {
		return errors.Wrapf(ErrInvalidAction, "%s payload: %v", a.Kind, err)
	}
	return nil
}

// Encode serializes a to JSON.
func Encode(a *Action) ([]byte, error) {
	return json.Marshal(a)
}

// Make creates an Action of kind from caller. Payload should be a pointer to
// one of the payload types.
func Make(from lx.Address, kind Kind, payload any) (*Action, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	return &Action{From: from, Kind: kind, Payload: raw}, nil
}

// Amount wraps v for use in a payload.
func Amount(v *big.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(new(big.Int).Set(v))
}

func toBig(v *math.HexOrDecimal256) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set((*big.Int)(v))
}
