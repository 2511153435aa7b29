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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Default locations, relative to the project directory.
const (
	DefaultMain = "composer.json"
	DefaultProd = "composer/composer-prod.json"
	DefaultDev  = "composer/dev-config.json"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 Config names the three manifests of a project
type Config struct {
	Main string `json:"main,omitempty" yaml:"main,omitempty"`
	Prod string `json:"prod,omitempty" yaml:"prod,omitempty"`
	Dev  string `json:"dev,omitempty" yaml:"dev,omitempty"`

	location string
}

// 🏭 Default returns the default layout rooted at dir
func Default(dir string) *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.Resolve(dir)
	return cfg
}

// Location is the file the config was loaded from, empty for defaults.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🎯 Load loads the configuration from a file. Relative paths are
// resolved against the directory of that file.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	cfg.Resolve(filepath.Dir(path))
	cfg.location = path

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.Main) == "" {
		cfg.Main = DefaultMain
	}
	if strings.TrimSpace(cfg.Prod) == "" {
		cfg.Prod = DefaultProd
	}
	if strings.TrimSpace(cfg.Dev) == "" {
		cfg.Dev = DefaultDev
	}
}

// Resolve makes relative paths absolute against dir.
func (cfg *Config) Resolve(dir string) {
	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(dir, p)
	}
	cfg.Main = resolve(cfg.Main)
	cfg.Prod = resolve(cfg.Prod)
	cfg.Dev = resolve(cfg.Dev)
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Main == "" || cfg.Prod == "" || cfg.Dev == "" {
		return errors.Errorf("main, prod and dev are required")
	}

	if cfg.Main == cfg.Prod {
		return errors.Errorf("main and prod must be different files: %s", cfg.Main)
	}
	if cfg.Main == cfg.Dev || cfg.Prod == cfg.Dev {
		return errors.Errorf("dev must be different from main and prod: %s", cfg.Dev)
	}

	// the status file is derived from dev by swapping the extension
	if strings.EqualFold(filepath.Ext(cfg.Dev), ".status") {
		return errors.Errorf("dev must not use the .status extension: %s", cfg.Dev)
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("main=%s prod=%s dev=%s", cfg.Main, cfg.Prod, cfg.Dev)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		// an empty document is a valid, all-defaults config
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}
