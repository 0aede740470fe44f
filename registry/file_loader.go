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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// registryFile is the on-disk YAML shape consumed by FileLoader.
type registryFile struct {
	MicroFrontends []MicroFrontend `yaml:"microFrontends"`
	Template       struct {
		Bucket string `yaml:"bucket"`
		Key    string `yaml:"key"`
	} `yaml:"template"`
	Downstream Downstream `yaml:"downstream"`
}

// FileLoader loads the registry from a local YAML file. It exists for
// development and tests, where no parameter store is available.
type FileLoader struct {
	Path string
}

// NewFileLoader creates a loader reading the given YAML file.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// Load reads and validates the registry file.
func (l *FileLoader) Load(ctx context.Context) (*Registry, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read registry file %s: %v", ErrConfigUnavailable, l.Path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse registry file %s: %v", ErrConfigUnavailable, l.Path, err)
	}

	reg := &Registry{
		MicroFrontends: file.MicroFrontends,
		TemplateBucket: file.Template.Bucket,
		TemplateKey:    file.Template.Key,
		Downstream:     file.Downstream,
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

var _ Loader = (*FileLoader)(nil)
