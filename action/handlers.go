// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package action

import (
	"math/big"

	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/builtin/errcode"
)

func init() {
	r := DefaultRegistry

	r.Register(KindDeposit, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p AmountPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.Deposit(ctx.From, p.Asset, toBig(p.Amount))
	})
	r.Register(KindDepositFor, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p DepositForPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.DepositFor(ctx.From, p.Asset, p.Beneficiary, toBig(p.Amount))
	})
	r.Register(KindWithdrawShares, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p AmountPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.WithdrawShares(ctx.From, p.Asset, toBig(p.Amount))
	})
	r.Register(KindForceWithdrawShares, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p ForceWithdrawPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.ForceWithdrawShares(ctx.From, p.Depositor, p.Asset, toBig(p.Amount))
	})
	r.Register(KindRequestWithdraw, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p RequestPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.RequestWithdrawShares(ctx.From, p.ID, p.Asset, toBig(p.Amount))
	})
	r.Register(KindForceRequestWithdraw, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p RequestPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.ForceRequestWithdrawShares(ctx.From, p.ID, p.Depositor, p.Asset, toBig(p.Amount), p.Receiver)
	})
	r.Register(KindResolveWithdraw, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p RequestIDPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.ResolveWithdrawSharesRequest(ctx.From, p.ID)
	})
	r.Register(KindCancelWithdraw, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p RequestIDPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.CancelWithdrawSharesRequest(ctx.From, p.ID)
	})
	r.Register(KindLockDeposit, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p LockPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.LockDepositAndBecomeMiner(ctx.From, p.Asset, toBig(p.Amount), p.Delegate)
	})
	r.Register(KindUnlockDeposit, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p AssetPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.UnlockDepositAndResignMiner(ctx.From, p.Asset)
	})
	r.Register(KindSetPrimaryMiner, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p AddressPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.SetPrimaryMiner(ctx.From, p.Address)
	})
	r.Register(KindAllowShares, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p AllowSharesPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		limits := make([]*big.Int, len(p.Limits))
		for i, l := range p.Limits {
			limits[i] = toBig(l)
		}
		// no limits: every asset is allowed without a ceiling
		if len(limits) == 0 {
			limits = make([]*big.Int, len(p.Assets))
		}
		return c.Deposits.AllowShares(ctx.From, p.Assets, limits)
	})
	r.Register(KindDenyShares, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p AllowSharesPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.DenyShares(ctx.From, p.Assets)
	})
	r.Register(KindSetMiningLimit, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p LimitPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Deposits.SetMiningDepositLimits(ctx.From, p.Asset, toBig(p.Limit))
	})

	r.Register(KindAddValidator, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p AddressPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return errcode.OK, c.Validators.AddValidator(ctx.From, p.Address)
	})
	r.Register(KindRemoveValidator, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p AddressPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return errcode.OK, c.Validators.RemoveValidator(ctx.From, p.Address)
	})

	r.Register(KindClosePeriod, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		return c.Rewards.ClosePeriod(ctx.Block.Time)
	})
	r.Register(KindCalculateReward, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p CalculatePayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Rewards.CalculateRewardFor(p.Asset, p.Holder, p.Period)
	})
	r.Register(KindWithdrawReward, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p AmountPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return c.Rewards.WithdrawReward(ctx.From, p.Asset, toBig(p.Amount))
	})

	r.Register(KindApprove, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p TokenPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		return errcode.OK, c.Token(p.Asset).Approve(ctx.From, p.To, toBig(p.Amount))
	})
	r.Register(KindTransfer, func(ctx *Context, c *builtin.Contracts, a *Action) (errcode.Code, error) {
		var p TokenPayload
		if err := DecodePayload(a, &p); err != nil {
			return errcode.OK, err
		}
		ok, err := c.Token(p.Asset).Transfer(ctx.From, p.To, toBig(p.Amount))
		if err != nil {
			return errcode.OK, err
		}
		if !ok {
			return errcode.TransferFailed, nil
		}
		return errcode.OK, nil
	})
}
