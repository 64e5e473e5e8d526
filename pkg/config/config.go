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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
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

// 💾 Profile is one preconfigured backup job
type Profile struct {
	Source       string   `yaml:"source"`
	Destination  string   `yaml:"destination"`
	ExcludeFiles []string `yaml:"exclude_files,omitempty"`
	ExcludeDirs  []string `yaml:"exclude_dirs,omitempty"`
	Retries      int      `yaml:"retries,omitempty"`
	RetryWait    int      `yaml:"retry_wait,omitempty"`
	LogPath      string   `yaml:"log_path,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// ✅ Validate checks that every profile is usable
func (c *Config) Validate() error {
	for name, p := range c.Profiles {
		if p.Source == "" {
			return errors.Errorf("profile %s: source is required", name)
		}
		if p.Destination == "" {
			return errors.Errorf("profile %s: destination is required", name)
		}
		if p.Retries < 0 || p.RetryWait < 0 {
			return errors.Errorf("profile %s: retry settings must not be negative", name)
		}
	}
	return nil
}

// 🎯 Profile returns a named profile
func (c *Config) Profile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, errors.Errorf("profile %s not found", name)
	}
	return p, nil
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
