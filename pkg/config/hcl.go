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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

type hclSource struct {
	Provider string `hcl:"provider,optional"`
	Repo     string `hcl:"repo,optional"`
	Ref      string `hcl:"ref,optional"`
	Path     string `hcl:"path"`
}

type hclRule struct {
	Name               string     `hcl:"name,label"`
	Start              string     `hcl:"start"`
	End                string     `hcl:"end"`
	FlexibleWhitespace bool       `hcl:"flexible_whitespace,optional"`
	Wildcard           string     `hcl:"wildcard,optional"`
	SingleLine         bool       `hcl:"single_line,optional"`
	Count              string     `hcl:"count,optional"`
	Files              string     `hcl:"files,optional"`
	Replacement        *string    `hcl:"replacement,optional"`
	ReplacementFile    string     `hcl:"replacement_file,optional"`
	Source             *hclSource `hcl:"source,block"`
}

type hclConfig struct {
	Target       string    `hcl:"target"`
	Notice       string    `hcl:"notice,optional"`
	RequireMatch bool      `hcl:"require_match,optional"`
	Rules        []hclRule `hcl:"rule,block"`
}

// 📝 Parse parses the config from HCL. Expressions may read the process
// environment through the env object, e.g. "${env.HOME}/page.tsx".
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envValue(),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Target:       hclCfg.Target,
		Notice:       hclCfg.Notice,
		RequireMatch: hclCfg.RequireMatch,
	}

	for _, r := range hclCfg.Rules {
		rule := Rule{
			Name:               r.Name,
			Start:              r.Start,
			End:                r.End,
			FlexibleWhitespace: r.FlexibleWhitespace,
			Wildcard:           r.Wildcard,
			SingleLine:         r.SingleLine,
			Count:              r.Count,
			Files:              r.Files,
			Replacement:        r.Replacement,
			ReplacementFile:    r.ReplacementFile,
		}
		if r.Source != nil {
			rule.Source = &SourceArgs{
				Provider: r.Source.Provider,
				Repo:     r.Source.Repo,
				Ref:      r.Source.Ref,
				Path:     r.Source.Path,
			}
		}
		cfg.Rules = append(cfg.Rules, rule)
	}

	return cfg, nil
}

func envValue() cty.Value {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}
