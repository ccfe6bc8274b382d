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

// Package preset holds built-in patch definitions that ship with the binary.
package preset

import (
	"embed"
	"sort"

	"github.com/walteh/patchrc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// ErrUnknownPreset is returned by Get for names with no preset
var ErrUnknownPreset = errors.Base("unknown preset")

//go:embed templates/*.tmpl
var templates embed.FS

// 📦 Preset is a named, ready to run patch definition
type Preset struct {
	Name        string
	Description string
	Target      string
	Notice      string
	Rules       []config.Rule
}

// 📚 Config returns a fresh config for the preset. targetOverride replaces
// the default target when non-empty.
func (p Preset) Config(targetOverride string) *config.Config {
	target := p.Target
	if targetOverride != "" {
		target = targetOverride
	}

	rules := make([]config.Rule, len(p.Rules))
	for i, r := range p.Rules {
		rules[i] = r
		if r.Replacement != nil {
			s := *r.Replacement
			rules[i].Replacement = &s
		}
	}

	return &config.Config{
		Target: target,
		Notice: p.Notice,
		Rules:  rules,
	}
}

var presets = map[string]Preset{}

func register(p Preset) {
	presets[p.Name] = p
}

// template returns an embedded template, nil when it is missing. A rule
// left without a replacement fails config validation.
func template(name string) *string {
	data, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}

func init() {
	register(Preset{
		Name:        "earnings-mobile",
		Description: "Split the referrer earnings table into a desktop table and mobile cards",
		Target:      "frontend/src/pages/ReferrerEarningsPage.tsx",
		Notice:      "Mobile-friendly cards added to ReferrerEarningsPage.tsx",
		Rules: []config.Rule{
			{
				Name:               "earnings-table",
				Start:              `<div className="overflow-x-auto -mx-4 sm:mx-0">`,
				End:                `</div> )}`,
				FlexibleWhitespace: true,
				Wildcard:           "lazy",
				Count:              "all",
				Replacement:        template("earnings-mobile.tsx.tmpl"),
			},
		},
	})
}

// 🎯 Get returns the preset registered under name
func Get(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, errors.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return p, nil
}

// 📋 List returns all presets sorted by name
func List() []Preset {
	out := make([]Preset, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
