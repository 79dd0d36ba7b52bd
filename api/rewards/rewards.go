// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/chronobank/lxmint/api/utils"
	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/lx"
)

type Rewards struct {
	viewer utils.Viewer
}

func New(viewer utils.Viewer) *Rewards {
	return &Rewards{viewer}
}

type Period struct {
	Index        uint64                `json:"index"`
	StartDate    uint64                `json:"startDate"`
	TotalDeposit *math.HexOrDecimal256 `json:"totalDeposit"`
	Unique       uint64                `json:"unique"`
	Closed       bool                  `json:"closed"`
	// Pools maps each reward asset to the funds captured at close.
	Pools map[string]*math.HexOrDecimal256 `json:"pools"`
}

type Asset struct {
	Asset         lx.Address            `json:"asset"`
	RewardsLeft   *math.HexOrDecimal256 `json:"rewardsLeft"`
	WalletBalance *math.HexOrDecimal256 `json:"walletBalance"`
}

type Holder struct {
	Holder  lx.Address            `json:"holder"`
	Asset   lx.Address            `json:"asset"`
	Rewards *math.HexOrDecimal256 `json:"rewards"`
}

type HolderPeriod struct {
	Period     uint64                `json:"period"`
	Balance    *math.HexOrDecimal256 `json:"balance"`
	Calculated bool                  `json:"calculated"`
}

func (r *Rewards) handleGetPeriod(w http.ResponseWriter, req *http.Request) error {
	index := mux.Vars(req)["index"]
	var period *Period
	if err := r.viewer.View(func(c *builtin.Contracts) error {
		last, err := c.Rewards.LastPeriod()
		if err != nil {
			return err
		}
		n := last
		if index != "last" {
			if n, err = strconv.ParseUint(index, 10, 64); err != nil {
				return utils.BadRequest(errors.WithMessage(err, "index"))
			}
			if n > last {
				return utils.NotFound(errors.New("period not found"))
			}
		}
		p, err := c.Rewards.GetPeriod(n)
		if err != nil {
			return err
		}
		period = &Period{
			Index:        p.Index,
			StartDate:    p.StartDate,
			TotalDeposit: utils.Big(p.TotalDeposit),
			Unique:       p.Unique,
			Closed:       p.Closed,
			Pools:        make(map[string]*math.HexOrDecimal256),
		}
		for _, asset := range c.Rewards.Assets() {
			pool, err := c.Rewards.AssetBalanceInPeriod(asset, n)
			if err != nil {
				return err
			}
			period.Pools[asset.String()] = utils.Big(pool)
		}
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, period)
}

func (r *Rewards) handleGetAsset(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	asset := &Asset{Asset: addr}
	if err := r.viewer.View(func(c *builtin.Contracts) error {
		left, err := c.Rewards.RewardsLeft(addr)
		if err != nil {
			return err
		}
		bal, err := c.Rewards.Wallet().BalanceOf(addr)
		if err != nil {
			return err
		}
		asset.RewardsLeft, asset.WalletBalance = utils.Big(left), utils.Big(bal)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, asset)
}

func (r *Rewards) handleGetHolder(w http.ResponseWriter, req *http.Request) error {
	holder, err := utils.AddressVar(req, "holder")
	if err != nil {
		return err
	}
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	h := &Holder{Holder: holder, Asset: asset}
	if err := r.viewer.View(func(c *builtin.Contracts) error {
		v, err := c.Rewards.RewardsFor(asset, holder)
		h.Rewards = utils.Big(v)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, h)
}

func (r *Rewards) handleGetHolderPeriod(w http.ResponseWriter, req *http.Request) error {
	holder, err := utils.AddressVar(req, "holder")
	if err != nil {
		return err
	}
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	period, err := strconv.ParseUint(mux.Vars(req)["period"], 10, 64)
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "period"))
	}
	hp := &HolderPeriod{Period: period}
	if err := r.viewer.View(func(c *builtin.Contracts) error {
		bal, err := c.Rewards.DepositBalanceInPeriod(holder, period)
		if err != nil {
			return err
		}
		hp.Balance = utils.Big(bal)
		hp.Calculated, err = c.Rewards.IsCalculatedFor(asset, holder, period)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, hp)
}

func (r *Rewards) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/periods/{index}").
		Methods(http.MethodGet).
		Name("GET /rewards/periods/{index}").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetPeriod))
	sub.Path("/assets/{asset}").
		Methods(http.MethodGet).
		Name("GET /rewards/assets/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetAsset))
	sub.Path("/holders/{holder}/{asset}").
		Methods(http.MethodGet).
		Name("GET /rewards/holders/{holder}/{asset}").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetHolder))
	sub.Path("/holders/{holder}/{asset}/{period}").
		Methods(http.MethodGet).
		Name("GET /rewards/holders/{holder}/{asset}/{period}").
		HandlerFunc(utils.WrapHandlerFunc(r.handleGetHolderPeriod))
}
