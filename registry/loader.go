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
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/rs/zerolog"

	"mosaic/platform/shared/logger"
)

// Parameter names under the configured prefix.
const (
	paramMicroFrontends = "registry"
	paramTemplateBucket = "template-bucket"
	paramTemplateKey    = "template-key"
	paramFunctionARN    = "function-arn"
	paramWorkflowARN    = "workflow-arn"
)

// ssmAPI is the slice of the SSM client the loader uses.
type ssmAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ParameterStoreLoader reads the registry from AWS Systems Manager Parameter
// Store. The micro-frontend list lives in a single JSON parameter; template
// location and downstream identifiers are plain string parameters.
type ParameterStoreLoader struct {
	client ssmAPI
	prefix string
	log    zerolog.Logger
}

// ParameterStoreOptions holds options for creating a ParameterStoreLoader.
type ParameterStoreOptions struct {
	// Region overrides the default AWS region resolution.
	Region string
	// Prefix is the parameter path prefix, e.g. "/mosaic".
	Prefix string
}

// NewParameterStoreLoader creates a loader backed by AWS SSM Parameter Store
// using the default credential chain.
func NewParameterStoreLoader(ctx context.Context, opts ParameterStoreOptions) (*ParameterStoreLoader, error) {
	cfgOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		cfgOpts = append(cfgOpts, awsconfig.WithRegion(opts.Region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: load AWS config: %v", ErrConfigUnavailable, err)
	}

	return &ParameterStoreLoader{
		client: ssm.NewFromConfig(cfg),
		prefix: opts.Prefix,
		log:    logger.New("registry"),
	}, nil
}

// Load reads all registry parameters. Any missing required parameter or
// backend failure yields ErrConfigUnavailable; there are no internal
// retries.
func (l *ParameterStoreLoader) Load(ctx context.Context) (*Registry, error) {
	rawList, err := l.get(ctx, paramMicroFrontends)
	if err != nil {
		return nil, err
	}
	bucket, err := l.get(ctx, paramTemplateBucket)
	if err != nil {
		return nil, err
	}
	key, err := l.get(ctx, paramTemplateKey)
	if err != nil {
		return nil, err
	}

	var mfes []MicroFrontend
	if err := json.Unmarshal([]byte(rawList), &mfes); err != nil {
		return nil, fmt.Errorf("%w: parameter %s is not a JSON micro-frontend list: %v",
			ErrConfigUnavailable, l.name(paramMicroFrontends), err)
	}

	reg := &Registry{
		MicroFrontends: mfes,
		TemplateBucket: bucket,
		TemplateKey:    key,
		Downstream: Downstream{
			FunctionARN: l.getOptional(ctx, paramFunctionARN),
			WorkflowARN: l.getOptional(ctx, paramWorkflowARN),
		},
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}

	l.log.Info().
		Int("micro_frontends", len(reg.MicroFrontends)).
		Str("template_bucket", reg.TemplateBucket).
		Str("template_key", reg.TemplateKey).
		Msg("Registry loaded from parameter store")

	return reg, nil
}

// get fetches a required parameter value.
func (l *ParameterStoreLoader) get(ctx context.Context, param string) (string, error) {
	name := l.name(param)

	out, err := l.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("%w: parameter %s: %v", ErrConfigUnavailable, name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil || *out.Parameter.Value == "" {
		return "", fmt.Errorf("%w: parameter %s is empty", ErrConfigUnavailable, name)
	}
	return *out.Parameter.Value, nil
}

// getOptional fetches a parameter that may legitimately be absent. A missing
// parameter yields the empty string; any other failure is logged and treated
// the same since these identifiers never gate startup.
func (l *ParameterStoreLoader) getOptional(ctx context.Context, param string) string {
	name := l.name(param)

	out, err := l.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name: aws.String(name),
	})
	if err != nil {
		var notFound *ssmtypes.ParameterNotFound
		if !errors.As(err, &notFound) {
			l.log.Warn().Str("parameter", name).Err(err).Msg("Optional parameter read failed")
		}
		return ""
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return ""
	}
	return *out.Parameter.Value
}

func (l *ParameterStoreLoader) name(param string) string {
	return path.Join(l.prefix, param)
}

var _ Loader = (*ParameterStoreLoader)(nil)
