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

// Package main is the entry point for the Mosaic composition gateway.
//
// The gateway is the origin service behind the edge router. At startup it:
// - Loads the micro-frontend registry from AWS SSM Parameter Store
// - Fetches the page template from S3 and caches it for the process lifetime
// - Serves composed HTML on /productdetails, liveness on /health
//
// Usage:
//
//	./gateway
//
// Environment Variables:
//
//	PORT - HTTP server port (default: 3000)
//	AWS_REGION - region for parameter store and template bucket (default: us-east-1)
//	SSM_PREFIX - parameter path prefix (default: /mosaic)
//	REGISTRY_FILE - local YAML registry for development (optional)
package main

import (
	"mosaic/platform/gateway"
)

func main() {
	gateway.Run()
}
