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
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"mosaic/platform/registry"
)

// Gateway serves composed pages from a registry and template loaded once at
// startup. The pair is immutable for the life of the process; handlers only
// read it, which keeps the request path free of locks. Picking up registry
// or template changes requires a new deployment.
type Gateway struct {
	registry *registry.Registry
	template []byte
	log      zerolog.Logger
}

// NewGateway builds a gateway around an already loaded (registry, template)
// pair. Construction is the only write; there is no way to swap the pair
// afterwards.
func NewGateway(reg *registry.Registry, template []byte, log zerolog.Logger) *Gateway {
	return &Gateway{
		registry: reg,
		template: template,
		log:      log,
	}
}

// Router returns the HTTP handler tree: fixed routes, a fixed 404 for
// everything else, and the request-ID / logging / recovery chain around all
// of it.
func (g *Gateway) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", g.handleHealth).Methods("GET")
	r.HandleFunc("/hello", g.handleHello).Methods("GET")
	r.HandleFunc("/productdetails", g.handleProductDetails).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.NotFoundHandler = http.HandlerFunc(g.handleNotFound)

	// recoverer sits inside observe so a panic is recorded with status 500.
	return g.withRequestID(g.observe(g.recoverer(r)))
}
