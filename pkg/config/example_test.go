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

package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/patchrc/pkg/config"
)

// Example_load demonstrates loading a patch definition from YAML
func Example_load() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "patchrc-example")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configYAML := `
target: frontend/src/pages/ReferrerEarningsPage.tsx
notice: Mobile-friendly cards added to ReferrerEarningsPage.tsx
rules:
  - name: earnings-table
    start: '<div className="overflow-x-auto -mx-4 sm:mx-0">'
    end: '</div> )}'
    flexible_whitespace: true
    replacement_file: cards.tsx
`

	configPath := filepath.Join(dir, "patch.yaml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0o644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	rel, _ := filepath.Rel(dir, cfg.Target)
	fmt.Printf("Target: %s\n", filepath.ToSlash(rel))
	fmt.Printf("Rules: %d\n", len(cfg.Rules))
	fmt.Printf("Notice: %s\n", cfg.Notice)
	// Output:
	// Target: frontend/src/pages/ReferrerEarningsPage.tsx
	// Rules: 1
	// Notice: Mobile-friendly cards added to ReferrerEarningsPage.tsx
}

// ExampleRule_Pattern shows the expression a rule compiles to
func ExampleRule_Pattern() {
	rule := config.Rule{
		Start:              "<main>",
		End:                "</main> )}",
		FlexibleWhitespace: true,
	}

	p, err := rule.Pattern()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println(p.String())
	// Output:
	// (?s)<main>.*?</main>\s*\)\}
}
