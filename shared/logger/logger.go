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

package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a component-scoped logger writing structured JSON to stdout.
//
// Every entry carries a "component" field so lines from the gateway, the
// registry loader and the template store can be told apart in a single log
// stream. Behavior is controlled by environment:
//
//	LOG_LEVEL  - trace|debug|info|warn|error (default: info)
//	LOG_FORMAT - "console" for human-readable output (default: json)
func New(component string) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "console") {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		zl = zerolog.New(os.Stdout)
	}

	return zl.Level(level).With().
		Timestamp().
		Str("component", component).
		Logger()
}
