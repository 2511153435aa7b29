// Copyright 2025 walteh LLC
//
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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Pattern matches the project config file in a project directory.
const Pattern = ".composer-switch.{yaml,yml,hcl,json}"

// 🔍 Discover returns the project config file in dir, or "" when there is none.
// More than one candidate is an error.
func Discover(dir string) (string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), Pattern)
	if err != nil {
		return "", errors.Errorf("searching for config in %s: %w", dir, err)
	}

	switch len(matches) {
	case 0:
		return "", nil
	case 1:
		return filepath.Join(dir, matches[0]), nil
	default:
		return "", errors.Errorf("multiple config files in %s: %s", dir, strings.Join(matches, ", "))
	}
}

// 🎯 LoadProject resolves the config for a project directory. An explicit
// path wins, then a discovered file, then the defaults.
func LoadProject(ctx context.Context, dir, explicit string) (*Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Errorf("resolving project dir: %w", err)
	}

	path := explicit
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	if path == "" {
		path, err = Discover(dir)
		if err != nil {
			return nil, err
		}
	}

	if path == "" {
		zerolog.Ctx(ctx).Debug().Str("dir", dir).Msg("no config file, using defaults")
		return Default(dir), nil
	}

	return Load(ctx, path)
}
