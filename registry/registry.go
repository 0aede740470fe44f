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

package registry

import (
	"context"
	"errors"
	"fmt"
)

// ErrConfigUnavailable is returned when a required registry key is missing
// or the configuration backend cannot be reached. Startup treats it as fatal.
var ErrConfigUnavailable = errors.New("registry configuration unavailable")

// MicroFrontend describes one independently deployed UI fragment to be
// referenced from the composed page.
type MicroFrontend struct {
	Name          string `json:"name" yaml:"name"`
	MountSelector string `json:"mountSelector" yaml:"mountSelector"`
	RemoteURL     string `json:"remoteUrl" yaml:"remoteUrl"`
}

// Downstream holds opaque resource identifiers used only for authorization
// wiring by the surrounding infrastructure. The composer never reads them.
type Downstream struct {
	FunctionARN string `json:"functionArn" yaml:"functionArn"`
	WorkflowARN string `json:"workflowArn" yaml:"workflowArn"`
}

// Registry is the full set of micro-frontend entries plus the location of
// the page template. It is loaded once at startup and immutable afterwards;
// picking up registry changes requires a new deployment.
type Registry struct {
	MicroFrontends []MicroFrontend
	TemplateBucket string
	TemplateKey    string
	Downstream     Downstream
}

// Loader loads the registry from a configuration backend. Implementations
// are read-only and do not retry internally; retry policy belongs to the
// startup sequence.
type Loader interface {
	Load(ctx context.Context) (*Registry, error)
}

// Validate checks that the registry carries everything the gateway needs to
// start. Violations are reported as ErrConfigUnavailable so they share the
// fail-fast path with a missing backend.
func (r *Registry) Validate() error {
	if r.TemplateBucket == "" {
		return fmt.Errorf("%w: template bucket is empty", ErrConfigUnavailable)
	}
	if r.TemplateKey == "" {
		return fmt.Errorf("%w: template key is empty", ErrConfigUnavailable)
	}
	if len(r.MicroFrontends) == 0 {
		return fmt.Errorf("%w: micro-frontend list is empty", ErrConfigUnavailable)
	}
	for i, mfe := range r.MicroFrontends {
		if mfe.Name == "" {
			return fmt.Errorf("%w: micro-frontend %d has no name", ErrConfigUnavailable, i)
		}
		if mfe.MountSelector == "" {
			return fmt.Errorf("%w: micro-frontend %q has no mount selector", ErrConfigUnavailable, mfe.Name)
		}
		if mfe.RemoteURL == "" {
			return fmt.Errorf("%w: micro-frontend %q has no remote URL", ErrConfigUnavailable, mfe.Name)
		}
	}
	return nil
}
