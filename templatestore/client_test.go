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
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mosaic/platform/shared/logger"
)

// fakeS3 serves objects from a map keyed "bucket/key".
type fakeS3 struct {
	objects map[string][]byte
	err     error
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func newTestS3Client(api s3API) *S3Client {
	return &S3Client{client: api, log: logger.New("templatestore-test")}
}

func TestS3ClientFetch(t *testing.T) {
	shell := []byte(`<html><body><div id="reviews"></div></body></html>`)
	client := newTestS3Client(&fakeS3{objects: map[string][]byte{
		"mosaic-templates/productdetails.html": shell,
	}})

	data, err := client.Fetch(context.Background(), "mosaic-templates", "productdetails.html")
	require.NoError(t, err)
	assert.Equal(t, shell, data)
}

func TestS3ClientFetchMissingKey(t *testing.T) {
	client := newTestS3Client(&fakeS3{objects: map[string][]byte{}})

	_, err := client.Fetch(context.Background(), "mosaic-templates", "absent.html")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}

func TestS3ClientFetchTransportFailure(t *testing.T) {
	client := newTestS3Client(&fakeS3{err: errors.New("dial tcp: i/o timeout")})

	_, err := client.Fetch(context.Background(), "mosaic-templates", "productdetails.html")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStoreUnavailable))
	assert.False(t, errors.Is(err, ErrObjectNotFound))
}

func TestFileClientFetch(t *testing.T) {
	dir := t.TempDir()
	shell := []byte("<html><body></body></html>")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shell.html"), shell, 0o644))

	client := NewFileClient(dir)

	data, err := client.Fetch(context.Background(), "ignored-bucket", "shell.html")
	require.NoError(t, err)
	assert.Equal(t, shell, data)
}

func TestFileClientFetchMissingFile(t *testing.T) {
	client := NewFileClient(t.TempDir())

	_, err := client.Fetch(context.Background(), "ignored-bucket", "absent.html")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrObjectNotFound))
}
