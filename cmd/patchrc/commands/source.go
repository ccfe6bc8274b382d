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

package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/preset"
	"gitlab.com/tozd/go/errors"
)

// ruleFromFlags names the single rule built from --start/--end
const ruleFromFlags = "cli"

// 🎯 SourceFlags select where a patch definition comes from: a config file,
// a preset, or a single rule spelled out on the command line
type SourceFlags struct {
	Preset          string
	Target          string
	Start           string
	End             string
	Replacement     string
	ReplacementFile string
	Flexible        bool
	Greedy          bool
	SingleLine      bool
	First           bool
	RequireMatch    bool
}

func (f *SourceFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.Preset, "preset", "", "run a built-in preset (see 'patchrc presets')")
	fl.StringVar(&f.Target, "target", "", "file to patch, overrides the config or preset target")
	fl.StringVar(&f.Start, "start", "", "literal text opening the region")
	fl.StringVar(&f.End, "end", "", "literal text closing the region")
	fl.StringVar(&f.Replacement, "replacement", "", "literal replacement text")
	fl.StringVar(&f.ReplacementFile, "replacement-file", "", "file holding the literal replacement text")
	fl.BoolVar(&f.Flexible, "flexible", false, "let whitespace inside --start and --end match any amount of whitespace")
	fl.BoolVar(&f.Greedy, "greedy", false, "extend the region to the last --end instead of the first")
	fl.BoolVar(&f.SingleLine, "single-line", false, "do not let the region cross line breaks")
	fl.BoolVar(&f.First, "first", false, "replace only the first region")
	fl.BoolVar(&f.RequireMatch, "require-match", false, "fail when a rule finds no region")
}

// 📚 Load builds the config the flags describe
func (f *SourceFlags) Load(ctx context.Context, cmd *cobra.Command, root *opts.RootOpts) (*config.Config, error) {
	cfg, err := f.load(ctx, cmd, root)
	if err != nil {
		return nil, err
	}
	if f.RequireMatch {
		cfg.RequireMatch = true
	}
	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("patch definition ready")
	return cfg, nil
}

func (f *SourceFlags) load(ctx context.Context, cmd *cobra.Command, root *opts.RootOpts) (*config.Config, error) {
	inline := f.Start != "" || f.End != ""

	switch {
	case f.Preset != "" && inline:
		return nil, errors.Errorf("--preset cannot be combined with --start/--end")

	case f.Preset != "":
		p, err := preset.Get(f.Preset)
		if err != nil {
			return nil, err
		}
		cfg := p.Config(f.Target)
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("validating preset %s: %w", p.Name, err)
		}
		return cfg, nil

	case inline:
		if f.Target == "" {
			return nil, errors.Errorf("--target is required with --start/--end")
		}
		rule := config.Rule{
			Name:               ruleFromFlags,
			Start:              f.Start,
			End:                f.End,
			FlexibleWhitespace: f.Flexible,
			SingleLine:         f.SingleLine,
			ReplacementFile:    f.ReplacementFile,
		}
		if f.Greedy {
			rule.Wildcard = "greedy"
		}
		if f.First {
			rule.Count = "first"
		}
		if cmd.Flags().Changed("replacement") {
			r := f.Replacement
			rule.Replacement = &r
		}
		cfg := &config.Config{Target: f.Target, Rules: []config.Rule{rule}}
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("validating flags: %w", err)
		}
		return cfg, nil
	}

	if !cmd.Flags().Changed("config") {
		exists, err := root.Files().FileExists(ctx, root.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("looking for %s: %w", config.RCFileName, err)
		}
		if !exists {
			return nil, errors.Errorf("no %s found: pass --config, --preset or --start/--end", config.RCFileName)
		}
	}

	cfg, err := config.Load(ctx, root.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	if f.Target != "" {
		cfg.SetTarget(f.Target)
	}
	return cfg, nil
}
