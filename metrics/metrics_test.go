// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	server := httptest.NewServer(HTTPHandler())
	t.Cleanup(server.Close)

	Counter("noop_count").Add(1)
	CounterVec("noop_count_vec", []string{"code"}).AddWithLabel(1, map[string]string{"code": "ok"})
	Gauge("noop_gauge").Set(3)
	Histogram("noop_hist", nil).Observe(7)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPromMetrics(t *testing.T) {
	lazyCounter := LazyLoadCounter("lazy_count")
	metrics = defaultNoopMetrics()
	InitializePrometheusMetrics()

	Counter("deposits").Add(1)
	Counter("deposits").Add(2)
	vec := CounterVec("ledger_calls", []string{"code"})
	for i := range 4 {
		vec.AddWithLabel(1, map[string]string{"code": strconv.Itoa(i % 2)})
	}
	Gauge("validators").Set(5)
	Gauge("validators").Add(-1)
	GaugeVec("pending", []string{"state"}).SetWithLabel(2, map[string]string{"state": "add"})
	Histogram("latency", BucketHTTPReqs).Observe(10)
	lazyCounter().Add(1)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	byName := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}

	require.Equal(t, float64(3), byName["lxmint_deposits"].Metric[0].GetCounter().GetValue())
	require.Len(t, byName["lxmint_ledger_calls"].Metric, 2)
	require.Equal(t, float64(4), byName["lxmint_validators"].Metric[0].GetGauge().GetValue())
	require.Equal(t, float64(2), byName["lxmint_pending"].Metric[0].GetGauge().GetValue())
	require.Equal(t, uint64(1), byName["lxmint_latency"].Metric[0].GetHistogram().GetSampleCount())
	require.Equal(t, float64(1), byName["lxmint_lazy_count"].Metric[0].GetCounter().GetValue())
	require.IsType(t, &promCountMeter{}, lazyCounter())
}
