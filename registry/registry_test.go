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
	"errors"
	"testing"
)

func createTestRegistry() *Registry {
	return &Registry{
		MicroFrontends: []MicroFrontend{
			{Name: "reviews", MountSelector: "#reviews", RemoteURL: "https://cdn.example.com/reviews.js"},
		},
		TemplateBucket: "mosaic-templates",
		TemplateKey:    "productdetails.html",
	}
}

func TestValidateAcceptsCompleteRegistry(t *testing.T) {
	if err := createTestRegistry().Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidateRejectsIncompleteRegistry(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Registry)
	}{
		{"empty template bucket", func(r *Registry) { r.TemplateBucket = "" }},
		{"empty template key", func(r *Registry) { r.TemplateKey = "" }},
		{"no micro-frontends", func(r *Registry) { r.MicroFrontends = nil }},
		{"entry without name", func(r *Registry) { r.MicroFrontends[0].Name = "" }},
		{"entry without selector", func(r *Registry) { r.MicroFrontends[0].MountSelector = "" }},
		{"entry without URL", func(r *Registry) { r.MicroFrontends[0].RemoteURL = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := createTestRegistry()
			tc.mutate(reg)

			err := reg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrConfigUnavailable) {
				t.Errorf("expected ErrConfigUnavailable, got %v", err)
			}
		})
	}
}
