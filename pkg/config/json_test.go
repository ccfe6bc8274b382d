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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 🧪 TestJSONParsing tests JSON config parsing
func TestJSONParsing(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_minimal_json",
			config: `{
				"target": "frontend/src/pages/ReferrerEarningsPage.tsx",
				"rules": [
					{
						"start": "<div className=\"overflow-x-auto -mx-4 sm:mx-0\">",
						"end": "</div> )}",
						"flexible_whitespace": true,
						"replacement_file": "cards.tsx"
					}
				]
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "frontend/src/pages/ReferrerEarningsPage.tsx", cfg.Target)
				require.Len(t, cfg.Rules, 1)
				assert.Equal(t, `<div className="overflow-x-auto -mx-4 sm:mx-0">`, cfg.Rules[0].Start)
				assert.True(t, cfg.Rules[0].FlexibleWhitespace)
				assert.Equal(t, "cards.tsx", cfg.Rules[0].ReplacementFile)
				assert.False(t, cfg.RequireMatch)
			},
		},
		{
			name: "valid_full_json",
			config: `{
				"target": "page.tsx",
				"notice": "patched",
				"require_match": true,
				"rules": [
					{
						"name": "cards",
						"start": "<a>",
						"end": "</a>",
						"wildcard": "greedy",
						"single_line": true,
						"count": "first",
						"files": "**/*.tsx",
						"source": {
							"provider": "github",
							"repo": "github.com/walteh/templates",
							"ref": "v1.0.0",
							"path": "cards.tsx"
						}
					}
				]
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "patched", cfg.Notice)
				assert.True(t, cfg.RequireMatch)
				require.Len(t, cfg.Rules, 1)
				rule := cfg.Rules[0]
				assert.Equal(t, "cards", rule.Name)
				assert.Equal(t, "greedy", rule.Wildcard)
				assert.True(t, rule.SingleLine)
				assert.Equal(t, "first", rule.Count)
				require.NotNil(t, rule.Source)
				assert.Equal(t, SourceArgs{Provider: "github", Repo: "github.com/walteh/templates", Ref: "v1.0.0", Path: "cards.tsx"}, *rule.Source)
			},
		},
		{
			name:        "invalid_json_syntax",
			config:      `{"target": "page.tsx",}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "unknown_field",
			config:      `{"target": "page.tsx", "destination": "/tmp"}`,
			wantErr:     true,
			errContains: "unknown field",
		},
	}

	parser := &JSONParser{}
	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parser.Parse(ctx, []byte(tt.config))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
