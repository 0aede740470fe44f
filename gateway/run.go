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
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"mosaic/platform/registry"
	"mosaic/platform/shared/logger"
	"mosaic/platform/templatestore"
)

// startupTimeout bounds each configuration and template read at startup.
// An unbounded hang there would block process start entirely.
const startupTimeout = 10 * time.Second

// shutdownTimeout bounds draining of in-flight requests on SIGTERM.
const shutdownTimeout = 15 * time.Second

// Run is the exported entry point for the gateway service.
//
// It loads the micro-frontend registry, fetches and caches the page
// template, then serves HTTP until shut down. Any startup failure is fatal:
// the process exits non-zero without ever opening the listening socket,
// rather than serving masked errors on every request.
//
// Environment variables used:
//   - PORT: HTTP server port (default: 3000)
//   - AWS_REGION: region for the parameter store and template bucket (default: us-east-1)
//   - SSM_PREFIX: parameter path prefix (default: /mosaic)
//   - REGISTRY_FILE: local YAML registry; switches to file-backed loaders
//   - TEMPLATE_DIR: template directory in file mode (default: registry file's directory)
//   - S3_ENDPOINT, S3_FORCE_PATH_STYLE: S3-compatible store support
func Run() {
	// Best-effort .env load for local development.
	_ = godotenv.Load()

	log := logger.New("gateway")
	log.Info().Msg("Starting Mosaic gateway...")

	port := getEnv("PORT", "3000")
	region := getEnv("AWS_REGION", "us-east-1")

	ctx := context.Background()
	loader, store := buildCollaborators(ctx, region, log)

	g, err := buildGateway(ctx, loader, store, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Startup failed; refusing to serve")
	}

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"}, // Configure for production
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(g.Router()),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info().Str("port", port).Msg("Mosaic gateway listening")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal().Err(err).Msg("Server failed")
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown did not complete cleanly")
		}
	}
}

// buildCollaborators picks the registry and template store backends:
// parameter store + S3 normally, local files when REGISTRY_FILE is set.
func buildCollaborators(ctx context.Context, region string, log zerolog.Logger) (registry.Loader, templatestore.Client) {
	if file := os.Getenv("REGISTRY_FILE"); file != "" {
		root := getEnv("TEMPLATE_DIR", filepath.Dir(file))
		log.Info().Str("registry_file", file).Str("template_dir", root).Msg("Using file-backed configuration")
		return registry.NewFileLoader(file), templatestore.NewFileClient(root)
	}

	loader, err := registry.NewParameterStoreLoader(ctx, registry.ParameterStoreOptions{
		Region: region,
		Prefix: getEnv("SSM_PREFIX", "/mosaic"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Parameter store client init failed")
	}

	store, err := templatestore.NewS3Client(ctx, templatestore.S3Options{
		Region:         region,
		Endpoint:       os.Getenv("S3_ENDPOINT"),
		ForcePathStyle: os.Getenv("S3_FORCE_PATH_STYLE") == "true",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Template store client init failed")
	}

	return loader, store
}

// buildGateway runs the startup sequence: registry load, then template
// fetch, then construction of the immutable gateway. Each step gets its own
// timeout; the first failure aborts the sequence. There is no retry loop --
// a gateway that cannot load its configuration is better replaced than left
// retrying with nothing to serve.
func buildGateway(ctx context.Context, loader registry.Loader, store templatestore.Client, log zerolog.Logger) (*Gateway, error) {
	loadCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	reg, err := loader.Load(loadCtx)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()

	template, err := store.Fetch(fetchCtx, reg.TemplateBucket, reg.TemplateKey)
	if err != nil {
		return nil, fmt.Errorf("fetch template %s/%s: %w", reg.TemplateBucket, reg.TemplateKey, err)
	}

	log.Info().
		Int("micro_frontends", len(reg.MicroFrontends)).
		Int("template_bytes", len(template)).
		Msg("Composition state ready")

	return NewGateway(reg, template, log), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
