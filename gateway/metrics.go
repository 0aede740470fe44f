// Copyright 2025 Mosaic
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus metrics
var (
	promRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mosaic_gateway_requests_total",
			Help: "Total number of HTTP requests handled by the gateway",
		},
		[]string{"route", "status"},
	)
	promRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mosaic_gateway_request_duration_milliseconds",
			Help:    "Request duration in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"route"},
	)
	promCompositionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mosaic_gateway_compositions_total",
			Help: "Total number of page compositions",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(promRequestsTotal)
	prometheus.MustRegister(promRequestDuration)
	prometheus.MustRegister(promCompositionsTotal)
}

// routeLabel keeps metric cardinality bounded: only the fixed route set gets
// its own label, everything else is folded into "unmatched".
func routeLabel(path string) string {
	switch path {
	case "/health", "/hello", "/productdetails", "/metrics":
		return path
	default:
		return "unmatched"
	}
}
