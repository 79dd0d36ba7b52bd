// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package actions

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/chronobank/lxmint/action"
	"github.com/chronobank/lxmint/api/utils"
	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/node"
)

// maxActionSize bounds the body of a submitted action.
const maxActionSize = 64 * 1024

// Backend queues actions and reports their outcome.
type Backend interface {
	Submit(a *action.Action) (lx.Bytes32, error)
	Receipt(id lx.Bytes32) (*node.Receipt, bool)
}

type Actions struct {
	backend Backend
}

func New(backend Backend) *Actions {
	return &Actions{backend}
}

type Submitted struct {
	ID lx.Bytes32 `json:"id"`
}

type Receipt struct {
	ID          lx.Bytes32     `json:"id"`
	Action      *action.Action `json:"action"`
	BlockNumber uint32         `json:"blockNumber"`
	Code        errcode.Code   `json:"code"`
	Reverted    bool           `json:"reverted"`
	Error       string         `json:"error,omitempty"`
}

func (a *Actions) handleSubmit(w http.ResponseWriter, req *http.Request) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxActionSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return utils.HTTPError(errors.WithMessage(err, "body"), http.StatusRequestEntityTooLarge)
		}
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	act, err := action.Decode(data)
	if err != nil {
		return utils.BadRequest(err)
	}
	id, err := a.backend.Submit(act)
	if err != nil {
		switch {
		case errors.Is(err, node.ErrPoolFull):
			return utils.HTTPError(err, http.StatusServiceUnavailable)
		case errors.Is(err, node.ErrKnownAction):
			return utils.HTTPError(errors.WithMessagef(err, "%v", id), http.StatusConflict)
		}
		return err
	}
	return utils.WriteJSON(w, &Submitted{id})
}

func (a *Actions) handleGetReceipt(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Bytes32Var(req, "id")
	if err != nil {
		return err
	}
	r, ok := a.backend.Receipt(id)
	if !ok {
		return utils.NotFound(errors.New("receipt not found"))
	}
	return utils.WriteJSON(w, &Receipt{
		ID:          r.ID,
		Action:      r.Action,
		BlockNumber: r.BlockNumber,
		Code:        r.Code,
		Reverted:    r.Reverted,
		Error:       r.Error,
	})
}

func (a *Actions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /actions").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSubmit))
	sub.Path("/{id}/receipt").
		Methods(http.MethodGet).
		Name("GET /actions/{id}/receipt").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetReceipt))
}
