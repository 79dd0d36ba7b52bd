// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/chronobank/lxmint/api/utils"
	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/lx"
)

type Ledger struct {
	viewer utils.Viewer
}

func New(viewer utils.Viewer) *Ledger {
	return &Ledger{viewer}
}

type Account struct {
	Balance   *math.HexOrDecimal256 `json:"balance"`
	Locked    *math.HexOrDecimal256 `json:"locked"`
	Requested *math.HexOrDecimal256 `json:"requested"`
	Available *math.HexOrDecimal256 `json:"available"`
	Delegate  lx.Address            `json:"delegate"`
}

type WithdrawRequest struct {
	ID        lx.Bytes32            `json:"id"`
	Asset     lx.Address            `json:"asset"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	Target    lx.Address            `json:"target"`
	Receiver  lx.Address            `json:"receiver"`
	Requester lx.Address            `json:"requester"`
}

type Asset struct {
	Asset              lx.Address            `json:"asset"`
	Allowed            bool                  `json:"allowed"`
	Limit              *math.HexOrDecimal256 `json:"limit"`
	TotalDeposit       *math.HexOrDecimal256 `json:"totalDeposit"`
	MiningDepositLimit *math.HexOrDecimal256 `json:"miningDepositLimit"`
}

type Info struct {
	Owner        lx.Address `json:"owner"`
	Shares       lx.Address `json:"shares"`
	PrimaryMiner lx.Address `json:"primaryMiner"`
	Wallet       lx.Address `json:"wallet"`
}

func (l *Ledger) handleGetInfo(w http.ResponseWriter, req *http.Request) error {
	info := &Info{}
	if err := l.viewer.View(func(c *builtin.Contracts) error {
		d := c.Deposits
		info.Owner = d.Owner()
		info.Shares = d.Shares()
		info.Wallet = d.Wallet().Address()
		var err error
		info.PrimaryMiner, err = d.PrimaryMiner()
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, info)
}

func (l *Ledger) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	holder, err := utils.AddressVar(req, "holder")
	if err != nil {
		return err
	}
	var acc *Account
	if err := l.viewer.View(func(c *builtin.Contracts) error {
		a, err := c.Deposits.GetAccount(asset, holder)
		if err != nil {
			return err
		}
		acc = &Account{
			Balance:   utils.Big(a.Balance),
			Locked:    utils.Big(a.Locked),
			Requested: utils.Big(a.Requested),
			Available: utils.Big(a.Available),
			Delegate:  a.Delegate,
		}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, acc)
}

func (l *Ledger) handleGetRequest(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	var wr *WithdrawRequest
	if err := l.viewer.View(func(c *builtin.Contracts) error {
		r, err := c.Deposits.CheckRegisteredWithdrawRequest(id)
		if err != nil || !r.Exists() {
			return err
		}
		wr = &WithdrawRequest{
			ID:        id,
			Asset:     r.Asset,
			Amount:    utils.Big(r.Amount),
			Target:    r.Target,
			Receiver:  r.Receiver,
			Requester: r.Requester,
		}
		return nil
	}); err != nil {
		return err
	}
	if wr == nil {
		return utils.NotFound(errors.New("withdraw request not found"))
	}
	return utils.WriteJSON(w, wr)
}

func (l *Ledger) handleGetAsset(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	asset := &Asset{Asset: addr}
	if err := l.viewer.View(func(c *builtin.Contracts) error {
		d := c.Deposits
		var err error
		if asset.Allowed, err = d.IsAllowed(addr); err != nil {
			return err
		}
		limit, err := d.Limit(addr)
		if err != nil {
			return err
		}
		total, err := d.TotalDeposit(addr)
		if err != nil {
			return err
		}
		mining, err := d.MiningDepositLimits(addr)
		if err != nil {
			return err
		}
		asset.Limit, asset.TotalDeposit, asset.MiningDepositLimit = utils.Big(limit), utils.Big(total), utils.Big(mining)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, asset)
}

func (l *Ledger) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /ledger").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetInfo))
	sub.Path("/accounts/{asset}/{holder}").
		Methods(http.MethodGet).
		Name("GET /ledger/accounts/{asset}/{holder}").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetAccount))
	sub.Path("/requests/{id}").
		Methods(http.MethodGet).
		Name("GET /ledger/requests/{id}").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetRequest))
	sub.Path("/assets/{asset}").
		Methods(http.MethodGet).
		Name("GET /ledger/assets/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(l.handleGetAsset))
}
