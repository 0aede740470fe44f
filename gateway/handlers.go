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
	"encoding/json"
	"net/http"

	"mosaic/platform/composer"
)

// Fixed response bodies. Error pages never carry diagnostics; details stay
// in the logs.
const (
	notFoundPage = `<!DOCTYPE html>
<html>
<head><title>Not Found</title></head>
<body><h1>Page not found</h1><p>The page you requested does not exist.</p></body>
</html>
`
	errorPage = `<!DOCTYPE html>
<html>
<head><title>Error</title></head>
<body><h1>Something went wrong</h1><p>Please try again later.</p></body>
</html>
`
)

// handleHealth reports liveness. It never touches the cached composition
// state, so it answers even while startup is still in flight elsewhere.
func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]bool{"healthy": true}); err != nil {
		g.log.Error().Err(err).Msg("Failed to encode health response")
	}
}

func (g *Gateway) handleHello(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"message": "Hello from Mosaic"}); err != nil {
		g.log.Error().Err(err).Msg("Failed to encode hello response")
	}
}

// handleProductDetails composes the page from the cached (registry,
// template) pair. Composition completes before the first byte is written so
// a failure never leaks partial output.
func (g *Gateway) handleProductDetails(w http.ResponseWriter, r *http.Request) {
	page, err := composer.Transform(g.template, g.registry)
	if err != nil {
		promCompositionsTotal.WithLabelValues("error").Inc()
		g.log.Error().
			Str("request_id", requestIDFrom(r.Context())).
			Err(err).
			Msg("Composition failed")
		g.serveErrorPage(w)
		return
	}

	promCompositionsTotal.WithLabelValues("success").Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page); err != nil {
		// Client went away mid-stream; nothing to salvage.
		g.log.Warn().Err(err).Msg("Response write interrupted")
	}
}

func (g *Gateway) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(notFoundPage))
}

func (g *Gateway) serveErrorPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(errorPage))
}
