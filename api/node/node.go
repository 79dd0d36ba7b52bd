// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"

	"github.com/chronobank/lxmint/api/utils"
	"github.com/chronobank/lxmint/builtin"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/node"
)

// Backend is the node state exposed over the API.
type Backend interface {
	Head() node.Head
	Pool() *node.Pool
	Builtin() *builtin.Builtin
}

type Node struct {
	backend Backend
}

func New(backend Backend) *Node {
	return &Node{backend}
}

type Head struct {
	Number uint32     `json:"number"`
	Time   uint64     `json:"timestamp"`
	Author lx.Address `json:"author"`
	Hash   lx.Bytes32 `json:"hash"`
}

type Contracts struct {
	ValidatorSet   lx.Address `json:"validatorSet"`
	BlockReward    lx.Address `json:"blockReward"`
	Deposits       lx.Address `json:"deposits"`
	DepositsWallet lx.Address `json:"depositsWallet"`
	Rewards        lx.Address `json:"rewards"`
	RewardsWallet  lx.Address `json:"rewardsWallet"`
}

type Info struct {
	Head           Head                  `json:"head"`
	PendingActions int                   `json:"pendingActions"`
	Owner          lx.Address            `json:"owner"`
	System         lx.Address            `json:"system"`
	Shares         lx.Address            `json:"shares"`
	Contracts      Contracts             `json:"contracts"`
	RewardUnit     *math.HexOrDecimal256 `json:"rewardUnit"`
	CloseInterval  uint64                `json:"closeInterval"`
	RewardAssets   []lx.Address          `json:"rewardAssets"`
}

func (n *Node) handleGetInfo(w http.ResponseWriter, req *http.Request) error {
	head := n.backend.Head()
	cfg := n.backend.Builtin().Config()
	return utils.WriteJSON(w, &Info{
		Head:           Head{head.Number, head.Time, head.Author, head.Hash},
		PendingActions: n.backend.Pool().Len(),
		Owner:          cfg.Owner,
		System:         cfg.System,
		Shares:         cfg.Shares,
		Contracts: Contracts{
			ValidatorSet:   cfg.ValidatorSet,
			BlockReward:    cfg.BlockReward,
			Deposits:       cfg.Deposits,
			DepositsWallet: cfg.DepositsWallet,
			Rewards:        cfg.Rewards,
			RewardsWallet:  cfg.RewardsWallet,
		},
		RewardUnit:    utils.Big(cfg.RewardUnit),
		CloseInterval: cfg.CloseInterval,
		RewardAssets:  cfg.RewardAssets,
	})
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/info").
		Methods(http.MethodGet).
		Name("GET /node/info").
		HandlerFunc(utils.WrapHandlerFunc(n.handleGetInfo))
}
