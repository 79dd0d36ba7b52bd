// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package action implements the envelope of ledger operations submitted to a
// node. The envelope carries the declared caller, the operation kind and a JSON
// payload, and is dispatched to the contract operation of that kind.
package action

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/chronobank/lxmint/lx"
)

// Kind identifies the operation of an action.
type Kind string

const (
	// Stake ledger
	KindDeposit              Kind = "DEPOSIT"
	KindDepositFor           Kind = "DEPOSIT_FOR"
	KindWithdrawShares       Kind = "WITHDRAW_SHARES"
	KindForceWithdrawShares  Kind = "FORCE_WITHDRAW_SHARES"
	KindRequestWithdraw      Kind = "REQUEST_WITHDRAW"
	KindForceRequestWithdraw Kind = "FORCE_REQUEST_WITHDRAW"
	KindResolveWithdraw      Kind = "RESOLVE_WITHDRAW"
	KindCancelWithdraw       Kind = "CANCEL_WITHDRAW"
	KindLockDeposit          Kind = "LOCK_DEPOSIT"
	KindUnlockDeposit        Kind = "UNLOCK_DEPOSIT"
	KindSetPrimaryMiner      Kind = "SET_PRIMARY_MINER"
	KindAllowShares          Kind = "ALLOW_SHARES"
	KindDenyShares           Kind = "DENY_SHARES"
	KindSetMiningLimit       Kind = "SET_MINING_LIMIT"

	// Validator set
	KindAddValidator    Kind = "ADD_VALIDATOR"
	KindRemoveValidator Kind = "REMOVE_VALIDATOR"

	// Period rewards
	KindClosePeriod     Kind = "CLOSE_PERIOD"
	KindCalculateReward Kind = "CALCULATE_REWARD"
	KindWithdrawReward  Kind = "WITHDRAW_REWARD"

	// Tokens
	KindApprove  Kind = "TOKEN_APPROVE"
	KindTransfer Kind = "TOKEN_TRANSFER"
)

// Action is the envelope of one operation. Nonce tells apart otherwise equal
// actions of the same sender; an action is executed at most once.
type Action struct {
	From    lx.Address      `json:"from"`
	Nonce   uint64          `json:"nonce"`
	Kind    Kind            `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// AmountPayload is the payload of DEPOSIT, WITHDRAW_SHARES and WITHDRAW_REWARD.
type AmountPayload struct {
	Asset  lx.Address            `json:"asset"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// DepositForPayload is the payload of DEPOSIT_FOR.
type DepositForPayload struct {
	Asset       lx.Address            `json:"asset"`
	Beneficiary lx.Address            `json:"beneficiary"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
}

// ForceWithdrawPayload is the payload of FORCE_WITHDRAW_SHARES.
type ForceWithdrawPayload struct {
	Depositor lx.Address            `json:"depositor"`
	Asset     lx.Address            `json:"asset"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
}

// RequestPayload is the payload of REQUEST_WITHDRAW and FORCE_REQUEST_WITHDRAW.
// Depositor and Receiver are only read by the forced variant.
type RequestPayload struct {
	ID        lx.Bytes32            `json:"id"`
	Depositor lx.Address            `json:"depositor"`
	Asset     lx.Address            `json:"asset"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Receiver  lx.Address            `json:"receiver"`
}

// RequestIDPayload is the payload of RESOLVE_WITHDRAW and CANCEL_WITHDRAW.
type RequestIDPayload struct {
	ID lx.Bytes32 `json:"id"`
}

// LockPayload is the payload of LOCK_DEPOSIT.
type LockPayload struct {
	Asset    lx.Address            `json:"asset"`
	Amount   *math.HexOrDecimal256 `json:"amount"`
	Delegate lx.Address            `json:"delegate"`
}

// AssetPayload is the payload of UNLOCK_DEPOSIT.
type AssetPayload struct {
	Asset lx.Address `json:"asset"`
}

// AddressPayload is the payload of SET_PRIMARY_MINER, ADD_VALIDATOR and
// REMOVE_VALIDATOR.
type AddressPayload struct {
	Address lx.Address `json:"address"`
}

// AllowSharesPayload is the payload of ALLOW_SHARES and DENY_SHARES. Omitted
// limits allow every asset without a ceiling.
type AllowSharesPayload struct {
	Assets []lx.Address            `json:"assets"`
	Limits []*math.HexOrDecimal256 `json:"limits,omitempty"`
}

// LimitPayload is the payload of SET_MINING_LIMIT.
type LimitPayload struct {
	Asset lx.Address            `json:"asset"`
	Limit *math.HexOrDecimal256 `json:"limit"`
}

// CalculatePayload is the payload of CALCULATE_REWARD.
type CalculatePayload struct {
	Asset  lx.Address `json:"asset"`
	Holder lx.Address `json:"holder"`
	Period uint64     `json:"period"`
}

// TokenPayload is the payload of TOKEN_APPROVE and TOKEN_TRANSFER. To is the
// spender for approvals.
type TokenPayload struct {
	Asset  lx.Address            `json:"asset"`
	To     lx.Address            `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}
