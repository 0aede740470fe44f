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
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mosaic/platform/registry"
	"mosaic/platform/shared/logger"
	"mosaic/platform/templatestore"
)

type stubLoader struct {
	reg *registry.Registry
	err error
}

func (s *stubLoader) Load(ctx context.Context) (*registry.Registry, error) {
	return s.reg, s.err
}

type stubStore struct {
	template []byte
	err      error
	fetched  []string
}

func (s *stubStore) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	s.fetched = append(s.fetched, fmt.Sprintf("%s/%s", bucket, key))
	if s.err != nil {
		return nil, s.err
	}
	return s.template, nil
}

func TestBuildGatewaySequence(t *testing.T) {
	loader := &stubLoader{reg: &registry.Registry{
		MicroFrontends: []registry.MicroFrontend{
			{Name: "reviews", MountSelector: "#reviews", RemoteURL: "https://cdn.example.com/reviews.js"},
		},
		TemplateBucket: "mosaic-templates",
		TemplateKey:    "productdetails.html",
	}}
	store := &stubStore{template: []byte(testShell)}

	g, err := buildGateway(context.Background(), loader, store, logger.New("gateway-test"))
	require.NoError(t, err)
	require.NotNil(t, g)

	// The fetch uses the location the registry named.
	assert.Equal(t, []string{"mosaic-templates/productdetails.html"}, store.fetched)
	assert.Equal(t, []byte(testShell), g.template)
}

func TestBuildGatewayRegistryFailureIsFatal(t *testing.T) {
	loader := &stubLoader{err: fmt.Errorf("%w: parameter /mosaic/registry", registry.ErrConfigUnavailable)}
	store := &stubStore{template: []byte(testShell)}

	g, err := buildGateway(context.Background(), loader, store, logger.New("gateway-test"))
	require.Error(t, err)
	assert.Nil(t, g)
	assert.True(t, errors.Is(err, registry.ErrConfigUnavailable))

	// The template store is never consulted after a registry failure.
	assert.Empty(t, store.fetched)
}

func TestBuildGatewayTemplateFailureIsFatal(t *testing.T) {
	loader := &stubLoader{reg: &registry.Registry{
		MicroFrontends: []registry.MicroFrontend{
			{Name: "reviews", MountSelector: "#reviews", RemoteURL: "https://cdn.example.com/reviews.js"},
		},
		TemplateBucket: "mosaic-templates",
		TemplateKey:    "missing.html",
	}}
	store := &stubStore{err: templatestore.ErrObjectNotFound}

	g, err := buildGateway(context.Background(), loader, store, logger.New("gateway-test"))
	require.Error(t, err)
	assert.Nil(t, g)
	assert.True(t, errors.Is(err, templatestore.ErrObjectNotFound))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("MOSAIC_TEST_KEY", "value")
	assert.Equal(t, "value", getEnv("MOSAIC_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("MOSAIC_TEST_ABSENT", "fallback"))
}
