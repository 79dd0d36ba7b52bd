// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronobank/lxmint/action"
	"github.com/chronobank/lxmint/builtin/errcode"
	"github.com/chronobank/lxmint/lx"
	"github.com/chronobank/lxmint/node"
)

type feedBackend struct {
	feed event.Feed
}

func (b *feedBackend) SubscribeBlocks(ch chan *node.Block) event.Subscription {
	return b.feed.Subscribe(ch)
}

func newServer(t *testing.T, origins ...string) (*httptest.Server, *feedBackend) {
	backend := &feedBackend{}
	router := mux.NewRouter()
	New(backend, origins).Mount(router, "/subscriptions")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, backend
}

func wsURL(ts *httptest.Server) string {
	u := url.URL{Scheme: "ws", Host: strings.TrimPrefix(ts.URL, "http://"), Path: "/subscriptions/blocks"}
	return u.String()
}

// send retries until the subscriber goroutine has registered on the feed.
func send(t *testing.T, b *feedBackend, blk *node.Block) {
	require.Eventually(t, func() bool {
		return b.feed.Send(blk) > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubscribeBlocks(t *testing.T) {
	ts, backend := newServer(t, "*")

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	author := lx.BytesToAddress([]byte("miner"))
	id := lx.BytesToBytes32([]byte("action"))
	send(t, backend, &node.Block{
		Head:    node.Head{Number: 7, Time: 1526400070, Author: author, Hash: lx.BytesToBytes32([]byte{7})},
		Payouts: []node.Payout{{Recipient: author, Amount: big.NewInt(1e8)}},
		Receipts: []*node.Receipt{
			{ID: id, Action: &action.Action{From: author, Kind: action.KindDeposit}, Code: errcode.MinerRequired, Reverted: true},
		},
		Finalized: true,
	})

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg BlockMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, uint32(7), msg.Number)
	assert.Equal(t, author, msg.Author)
	assert.True(t, msg.Finalized)
	require.Len(t, msg.Payouts, 1)
	assert.Equal(t, int64(1e8), (*big.Int)(msg.Payouts[0].Amount).Int64())
	require.Len(t, msg.Outcomes, 1)
	assert.Equal(t, Outcome{ID: id, Action: "DEPOSIT", Code: errcode.MinerRequired, Reverted: true}, msg.Outcomes[0])
}

func TestSubscribeOrigin(t *testing.T) {
	ts, _ := newServer(t, "example.org")

	header := http.Header{"Origin": []string{"http://evil.org"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts), header)
	assert.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header = http.Header{"Origin": []string{"http://example.org"}}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), header)
	require.NoError(t, err)
	conn.Close()
}
