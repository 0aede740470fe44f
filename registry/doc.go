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

// Package registry defines the micro-frontend registry and its loaders.
//
// The registry is the ordered list of micro-frontend entries plus the
// location of the page template and a pair of opaque downstream resource
// identifiers. It is loaded exactly once at process startup, either from
// AWS SSM Parameter Store (production) or from a local YAML file
// (development), and is immutable afterwards.
package registry
