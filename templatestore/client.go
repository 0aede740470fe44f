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

package templatestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"

	"mosaic/platform/shared/logger"
)

var (
	// ErrObjectNotFound is returned when the template object does not exist.
	ErrObjectNotFound = errors.New("template object not found")
	// ErrStoreUnavailable is returned on transport or auth failure.
	ErrStoreUnavailable = errors.New("template store unavailable")
)

// Client fetches the raw page template as a single blob. The template is a
// small page shell, so no streamed decode happens at this layer.
type Client interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

// s3API is the slice of the S3 client used here.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Client fetches templates from Amazon S3 or an S3-compatible store such
// as MinIO or Cloudflare R2.
type S3Client struct {
	client s3API
	log    zerolog.Logger
}

// S3Options holds options for creating an S3Client.
type S3Options struct {
	// Region overrides the default AWS region resolution.
	Region string
	// Endpoint points the client at an S3-compatible service.
	Endpoint string
	// ForcePathStyle switches to path-style addressing, required by most
	// S3-compatible services.
	ForcePathStyle bool
	// AccessKeyID, SecretAccessKey and SessionToken select static
	// credentials. Left empty, the default credential chain applies.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// NewS3Client creates a template store client backed by S3.
func NewS3Client(ctx context.Context, opts S3Options) (*S3Client, error) {
	cfgOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		cfgOpts = append(cfgOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, opts.SessionToken)
		cfgOpts = append(cfgOpts, awsconfig.WithCredentialsProvider(creds))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: load AWS config: %v", ErrStoreUnavailable, err)
	}

	s3Opts := []func(*s3.Options){}
	if opts.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		})
	}
	if opts.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return &S3Client{
		client: s3.NewFromConfig(cfg, s3Opts...),
		log:    logger.New("templatestore"),
	}, nil
}

// Fetch returns the full content of the object at (bucket, key).
func (c *S3Client) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: s3://%s/%s", ErrObjectNotFound, bucket, key)
		}
		return nil, fmt.Errorf("%w: get s3://%s/%s: %v", ErrStoreUnavailable, bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read s3://%s/%s: %v", ErrStoreUnavailable, bucket, key, err)
	}

	c.log.Info().
		Str("bucket", bucket).
		Str("key", key).
		Int("bytes", len(data)).
		Msg("Template fetched")

	return data, nil
}

// FileClient reads templates from a local directory, keyed the same way the
// S3 client is. The bucket is ignored; the key names a file under Root.
// It exists for development and tests.
type FileClient struct {
	Root string
}

// NewFileClient creates a template client reading from the given directory.
func NewFileClient(root string) *FileClient {
	return &FileClient{Root: root}
}

// Fetch reads the template file named by key.
func (c *FileClient) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	path := filepath.Join(c.Root, key)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, path)
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrStoreUnavailable, path, err)
	}
	return data, nil
}

var (
	_ Client = (*S3Client)(nil)
	_ Client = (*FileClient)(nil)
)
