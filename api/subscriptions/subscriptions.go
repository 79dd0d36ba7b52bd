// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/chronobank/lxmint/api/utils"
	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/metrics"
	"github.com/chronobank/lxmint/node"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 7 / 10
	// blocks buffered per subscriber before it is dropped
	backlogSize = 32
)

var (
	logger = log.WithContext("pkg", "subscriptions")

	metricActiveSubscriptions = metrics.LazyLoadGauge("api_active_websocket_count")
)

// Backend publishes packed blocks.
type Backend interface {
	SubscribeBlocks(ch chan *node.Block) event.Subscription
}

type Subscriptions struct {
	backend  Backend
	upgrader *websocket.Upgrader
}

type Payout struct {
	Recipient lx.Address            `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
}

type Outcome struct {
	ID       lx.Bytes32   `json:"id"`
	Action   string       `json:"action"`
	Code     errcode.Code `json:"code"`
	Reverted bool         `json:"reverted"`
}

// BlockMessage is pushed once per packed block.
type BlockMessage struct {
	Number    uint32     `json:"number"`
	Time      uint64     `json:"time"`
	Author    lx.Address `json:"author"`
	Hash      lx.Bytes32 `json:"hash"`
	Finalized bool       `json:"finalized"`
	Payouts   []Payout   `json:"payouts"`
	Outcomes  []Outcome  `json:"outcomes"`
}

func New(backend Backend, allowedOrigins []string) *Subscriptions {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &Subscriptions{
		backend: backend,
		upgrader: &websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || origins["*"] {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				return origins[origin] || origins[u.Hostname()]
			},
		},
	}
}

func convertBlock(b *node.Block) *BlockMessage {
	msg := &BlockMessage{
		Number:    b.Number,
		Time:      b.Time,
		Author:    b.Author,
		Hash:      b.Hash,
		Finalized: b.Finalized,
		Payouts:   make([]Payout, 0, len(b.Payouts)),
		Outcomes:  make([]Outcome, 0, len(b.Receipts)),
	}
	for _, p := range b.Payouts {
		msg.Payouts = append(msg.Payouts, Payout{p.Recipient, (*math.HexOrDecimal256)(p.Amount)})
	}
	for _, r := range b.Receipts {
		o := Outcome{ID: r.ID, Code: r.Code, Reverted: r.Reverted}
		if r.Action != nil {
			o.Action = string(r.Action.Kind)
		}
		msg.Outcomes = append(msg.Outcomes, o)
	}
	return msg
}

func (s *Subscriptions) handleSubscribeBlocks(w http.ResponseWriter, req *http.Request) error {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// the upgrader has already replied
		logger.Debug("upgrade failed", "err", err)
		return nil
	}
	defer conn.Close()

	metricActiveSubscriptions().Add(1)
	defer metricActiveSubscriptions().Add(-1)

	blocks := make(chan *node.Block)
	sub := s.backend.SubscribeBlocks(blocks)
	defer sub.Unsubscribe()

	// the relay never blocks the feed, a subscriber that falls behind is closed
	backlog := make(chan *node.Block, backlogSize)
	overflow := make(chan struct{})
	go func() {
		defer close(backlog)
		for {
			select {
			case b := <-blocks:
				select {
				case backlog <- b:
				default:
					close(overflow)
					return
				}
			case <-sub.Err():
				return
			}
		}
	}()

	closed := make(chan struct{})
	go s.readLoop(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case b, ok := <-backlog:
			if !ok {
				return nil
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(convertBlock(b)); err != nil {
				return nil
			}
		case <-overflow:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "subscriber too slow"))
			return nil
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-closed:
			return nil
		}
	}
}

// readLoop consumes control frames until the peer goes away.
func (s *Subscriptions) readLoop(conn *websocket.Conn, closed chan struct{}) {
	defer close(closed)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("subscriber read error", "err", errors.WithMessage(err, "read"))
			}
			return
		}
	}
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/blocks").
		Methods(http.MethodGet).
		Name("WS /subscriptions/blocks").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeBlocks))
}
