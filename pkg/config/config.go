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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/text"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 📄 RCFileName is the config file tried as YAML, then HCL
const RCFileName = ".patchrc"

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

// 📦 SourceArgs locates a replacement template held by a provider
type SourceArgs struct {
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"` // provider name, github by default
	Repo     string `json:"repo,omitempty" yaml:"repo,omitempty"`         // full repo URL (e.g. github.com/org/repo)
	Ref      string `json:"ref,omitempty" yaml:"ref,omitempty"`           // branch or tag
	Path     string `json:"path" yaml:"path"`                             // path within repo
}

// 🔄 Rule describes one region to find and what replaces it
type Rule struct {
	Name               string `json:"name,omitempty" yaml:"name,omitempty"`
	Start              string `json:"start" yaml:"start"`
	End                string `json:"end" yaml:"end"`
	FlexibleWhitespace bool   `json:"flexible_whitespace,omitempty" yaml:"flexible_whitespace,omitempty"`
	Wildcard           string `json:"wildcard,omitempty" yaml:"wildcard,omitempty"`
	SingleLine         bool   `json:"single_line,omitempty" yaml:"single_line,omitempty"`
	Count              string `json:"count,omitempty" yaml:"count,omitempty"`
	Files              string `json:"files,omitempty" yaml:"files,omitempty"`

	// exactly one of the three below
	Replacement     *string     `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	ReplacementFile string      `json:"replacement_file,omitempty" yaml:"replacement_file,omitempty"`
	Source          *SourceArgs `json:"source,omitempty" yaml:"source,omitempty"`
}

// 📚 Config represents a complete patch definition
type Config struct {
	Target       string `json:"target" yaml:"target"`
	Notice       string `json:"notice,omitempty" yaml:"notice,omitempty"`
	RequireMatch bool   `json:"require_match,omitempty" yaml:"require_match,omitempty"`
	Rules        []Rule `json:"rules" yaml:"rules"`

	location string
	rulePath string
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := parse(ctx, path, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg.location = path
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("target", cfg.Target).Int("rules", len(cfg.Rules)).Msg("configuration loaded")

	return cfg, nil
}

func parse(ctx context.Context, path string, data []byte) (*Config, error) {
	if filepath.Base(path) == RCFileName || filepath.Ext(path) == RCFileName {
		cfg, yamlErr := (&YAMLParser{}).Parse(ctx, data)
		if yamlErr == nil {
			return cfg, nil
		}
		cfg, hclErr := (&HCLParser{}).Parse(ctx, data)
		if hclErr == nil {
			return cfg, nil
		}
		zerolog.Ctx(ctx).Debug().AnErr("yaml", yamlErr).AnErr("hcl", hclErr).Msg("rc file is neither YAML nor HCL")
		return nil, errors.Errorf("failed to parse %s as YAML or HCL: %w", RCFileName, hclErr)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}
	return p.Parse(ctx, data)
}

// 📍 Location returns the file the config was loaded from, if any
func (cfg *Config) Location() string {
	return cfg.location
}

// 🧭 RulePath returns the target as written in the config, before it was
// joined onto the config's directory. Rule files globs match against it.
func (cfg *Config) RulePath() string {
	if cfg.rulePath == "" {
		return cfg.Target
	}
	return cfg.rulePath
}

// 🎯 SetTarget replaces the target, e.g. from a command line override
func (cfg *Config) SetTarget(path string) {
	cfg.Target = path
	cfg.rulePath = filepath.Clean(path)
}

// 🔍 Validate checks if the configuration is valid and normalizes paths
func (cfg *Config) Validate() error {
	if cfg.Target == "" {
		return errors.Errorf("target is required")
	}
	if len(cfg.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}

	dir := ""
	if cfg.location != "" {
		dir = filepath.Dir(cfg.location)
	}

	if cfg.rulePath == "" {
		cfg.rulePath = filepath.Clean(cfg.Target)
	}
	cfg.Target = resolve(dir, cfg.Target)

	for i := range cfg.Rules {
		rule := &cfg.Rules[i]
		if err := rule.validate(); err != nil {
			return errors.Errorf("rule %d (%s): %w", i, rule.Name, err)
		}
		if rule.ReplacementFile != "" {
			rule.ReplacementFile = resolve(dir, rule.ReplacementFile)
		}
		if rule.Source != nil {
			if rule.Source.Provider == "" {
				rule.Source.Provider = "github"
			}
			if rule.Source.Ref == "" {
				rule.Source.Ref = "main"
			}
		}
	}

	return nil
}

func (r *Rule) validate() error {
	if r.Start == "" {
		return errors.Errorf("start is required")
	}
	if r.End == "" {
		return errors.Errorf("end is required")
	}
	if _, err := r.Pattern(); err != nil {
		return err
	}
	if _, err := text.ParseCountPolicy(r.Count); err != nil {
		return err
	}
	if r.Files != "" && !doublestar.ValidatePattern(r.Files) {
		return errors.Errorf("invalid files glob %q", r.Files)
	}

	sources := 0
	if r.Replacement != nil {
		sources++
	}
	if r.ReplacementFile != "" {
		sources++
	}
	if r.Source != nil {
		sources++
		if r.Source.Path == "" {
			return errors.Errorf("source.path is required")
		}
		if r.Source.Repo == "" && (r.Source.Provider == "" || r.Source.Provider == "github") {
			return errors.Errorf("source.repo is required")
		}
	}
	if sources != 1 {
		return errors.Errorf("exactly one of replacement, replacement_file or source is required, got %d", sources)
	}

	return nil
}

// 🧩 Pattern converts the rule's anchors and modes into a text.Pattern
func (r Rule) Pattern() (text.Pattern, error) {
	wildcard, err := text.ParseWildcardMode(r.Wildcard)
	if err != nil {
		return text.Pattern{}, err
	}

	anchor := text.Literal
	if r.FlexibleWhitespace {
		anchor = text.Flexible
	}

	p := text.Pattern{
		Start:    anchor(r.Start),
		End:      anchor(r.End),
		Wildcard: wildcard,
	}
	if r.SingleLine {
		p.Lines = text.LinesSingle
	}

	if err := p.Validate(); err != nil {
		return text.Pattern{}, err
	}
	return p, nil
}

// 📑 Template returns the inline replacement, or where to fetch it from.
// A replacement_file is reported as a source held by the local provider.
func (r Rule) Template() (*string, *SourceArgs) {
	switch {
	case r.Replacement != nil:
		return r.Replacement, nil
	case r.ReplacementFile != "":
		return nil, &SourceArgs{Provider: "local", Path: r.ReplacementFile}
	default:
		return nil, r.Source
	}
}

// 🔁 ReplacementRule builds the text rule with a resolved replacement
func (r Rule) ReplacementRule(replacement string) (text.ReplacementRule, error) {
	p, err := r.Pattern()
	if err != nil {
		return text.ReplacementRule{}, err
	}
	count, err := text.ParseCountPolicy(r.Count)
	if err != nil {
		return text.ReplacementRule{}, err
	}
	return text.ReplacementRule{
		Name:           r.Name,
		Pattern:        p,
		Replacement:    replacement,
		Count:          count,
		FileFilterGlob: r.Files,
	}, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	names := make([]string, 0, len(cfg.Rules))
	for i, r := range cfg.Rules {
		if r.Name == "" {
			names = append(names, fmt.Sprintf("#%d", i))
			continue
		}
		names = append(names, r.Name)
	}
	return fmt.Sprintf("%s [%s]", cfg.Target, strings.Join(names, ", "))
}

func resolve(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

// 📝 Parse parses the config from YAML
func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
