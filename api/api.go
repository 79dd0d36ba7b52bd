// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/chronobank/lxmint/api/actions"
	"github.com/chronobank/lxmint/api/ledger"
	apinode "github.com/chronobank/lxmint/api/node"
	"github.com/chronobank/lxmint/api/rewards"
	"github.com/chronobank/lxmint/api/subscriptions"
	"github.com/chronobank/lxmint/api/validators"
	"github.com/chronobank/lxmint/log"
	"github.com/chronobank/lxmint/metrics"
	"github.com/chronobank/lxmint/node"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EnableReqLogger bool
	EnableMetrics   bool
}

// New return api router
func New(n *node.Node, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	validators.New(n).
		Mount(router, "/validators")
	ledger.New(n).
		Mount(router, "/ledger")
	rewards.New(n).
		Mount(router, "/rewards")
	actions.New(n).
		Mount(router, "/actions")
	apinode.New(n).
		Mount(router, "/node")
	subscriptions.New(n, origins).
		Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Path("/metrics").Handler(metrics.HTTPHandler())
		router.Use(metricsHandler)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}
	return handler.ServeHTTP
}
