// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package validators

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chronobank/lxmint/api/utils"
	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/lx"
)

type Validators struct {
	viewer utils.Viewer
}

func New(viewer utils.Viewer) *Validators {
	return &Validators{viewer}
}

// Set lists the finalized and pending validators.
type Set struct {
	Validators []lx.Address `json:"validators"`
	Pending    []lx.Address `json:"pending"`
}

// Validator is the membership of one address.
type Validator struct {
	Address        lx.Address `json:"address"`
	Status         string     `json:"status"`
	IsValidator    bool       `json:"isValidator"`
	IsPending      bool       `json:"isPending"`
	AuthoredBlocks uint64     `json:"authoredBlocks"`
	// Backer is the depositor whose locked stake backs the address.
	Backer lx.Address `json:"backer"`
}

func (v *Validators) handleGetSet(w http.ResponseWriter, req *http.Request) error {
	var set Set
	if err := v.viewer.View(func(c *builtin.Contracts) error {
		var err error
		if set.Validators, err = c.Validators.GetValidators(); err != nil {
			return err
		}
		set.Pending, err = c.Validators.PendingValidators()
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, &set)
}

func (v *Validators) handleGetValidator(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	val := &Validator{Address: addr}
	if err := v.viewer.View(func(c *builtin.Contracts) error {
		status, err := c.Validators.Status(addr)
		if err != nil {
			return err
		}
		val.Status = status.String()
		val.IsValidator = status.IsValidator()
		val.IsPending = status.IsPending()
		if val.AuthoredBlocks, err = c.BlockReward.AuthoredBlocks(addr); err != nil {
			return err
		}
		val.Backer, err = c.Deposits.DelegateOf(addr)
		return err
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, val)
}

func (v *Validators) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /validators").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetSet))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /validators/{address}").
		HandlerFunc(utils.WrapHandlerFunc(v.handleGetValidator))
}
