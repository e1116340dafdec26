// Copyright 2025 refx authors
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

// Package config loads and persists refx settings, saved expressions, saved
// groups, and expression library definitions.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/refx-sh/refx/pkg/store"
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

// 🔧 Settings holds the persisted dialog toggles and last-used texts. The
// engine never reads these implicitly; callers assemble an explicit
// engine.Settings value per invocation.
type Settings struct {
	FindText             string `json:"find_text,omitempty" yaml:"find_text,omitempty"`
	ReplaceText          string `json:"replace_text,omitempty" yaml:"replace_text,omitempty"`
	UseRegex             bool   `json:"use_regex" yaml:"use_regex"`
	SelectionOnly        bool   `json:"selection_only" yaml:"selection_only"`
	CaseInsensitive      bool   `json:"case_insensitive" yaml:"case_insensitive"`
	ExpandLineBreak      bool   `json:"expand_line_break" yaml:"expand_line_break"`
	ExpandTab            bool   `json:"expand_tab" yaml:"expand_tab"`
	PrefillFromSelection bool   `json:"prefill_from_selection" yaml:"prefill_from_selection"`
}

// 📦 Library names a remote expression library to sync from
type Library struct {
	Provider       string   `json:"provider" yaml:"provider"`                                   // provider name (e.g. github)
	Repo           string   `json:"repo" yaml:"repo"`                                           // full repo URL (e.g. github.com/org/repo)
	Ref            string   `json:"ref,omitempty" yaml:"ref,omitempty"`                         // branch or tag
	Path           string   `json:"path" yaml:"path"`                                           // path within repo holding library files
	IgnorePatterns []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"` // glob patterns for library files to skip
}

// 📚 Config represents the complete configuration
type Config struct {
	Settings    Settings           `json:"settings" yaml:"settings"`
	Expressions []store.Expression `json:"expressions,omitempty" yaml:"expressions,omitempty"`
	Groups      []store.Group      `json:"groups,omitempty" yaml:"groups,omitempty"`
	Libraries   []Library          `json:"libraries,omitempty" yaml:"libraries,omitempty"`
}

// 🏭 Default returns the configuration used when no file exists yet.
func Default() *Config {
	return &Config{
		Settings: Settings{UseRegex: true},
	}
}

// 🎯 Load loads the configuration from a file. A missing file yields the
// default configuration rather than an error.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("no config file, using defaults")
			return Default(), nil
		}
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

// 💾 Save writes the configuration back as YAML. Persistence is best-effort:
// callers log failures and move on, they do not retry.
func Save(ctx context.Context, path string, cfg *Config) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("saving configuration")

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Errorf("writing config file: %w", err)
	}

	return nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	for i, expr := range cfg.Expressions {
		if expr.Name == "" {
			return errors.Errorf("expression %d: name is required", i)
		}
		if expr.Pattern == "" {
			return errors.Errorf("expression %q: pattern is required", expr.Name)
		}
	}

	for i, group := range cfg.Groups {
		if group.Name == "" {
			return errors.Errorf("group %d: name is required", i)
		}
	}

	for i := range cfg.Libraries {
		lib := &cfg.Libraries[i]
		if lib.Repo == "" {
			return errors.Errorf("library %d: repo is required", i)
		}
		if lib.Path == "" {
			return errors.Errorf("library %d: path is required", i)
		}

		// Set defaults
		if lib.Provider == "" {
			lib.Provider = "github"
		}
		if lib.Ref == "" {
			lib.Ref = "main"
		}
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%d expressions, %d groups, %d libraries",
		len(cfg.Expressions), len(cfg.Groups), len(cfg.Libraries))
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
		return nil, errors.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}
