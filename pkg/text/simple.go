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

package text

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var _ TextReplacer = (*SpanReplacer)(nil)

// SpanReplacer implements TextReplacer with anchor-delimited span replacement
type SpanReplacer struct{}

// NewSpanReplacer creates a new SpanReplacer
func NewSpanReplacer() *SpanReplacer {
	return &SpanReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *SpanReplacer) ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	if err := r.ValidateRules(rules); err != nil {
		return nil, err
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
		Rules:           make([]RuleResult, 0, len(rules)),
	}

	current := string(originalContent)
	for _, rule := range rules {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("replacing text: %w", err)
		}

		next, spans := Replace(current, rule.Pattern, rule.Replacement, rule.Count)

		zerolog.Ctx(ctx).Debug().
			Str("rule", rule.Name).
			Str("pattern", rule.Pattern.String()).
			Int("matches", len(spans)).
			Msg("applied rule")

		result.Rules = append(result.Rules, RuleResult{Name: rule.Name, Spans: spans})
		result.ReplacementCount += len(spans)
		current = next
	}

	// a replacement identical to its span still counts, but is not a modification
	result.ModifiedContent = []byte(current)
	result.WasModified = current != string(originalContent)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *SpanReplacer) ValidateRules(rules []ReplacementRule) error {
	seen := make(map[string]int, len(rules))
	for i, rule := range rules {
		if err := rule.Pattern.Validate(); err != nil {
			return errors.Errorf("rule %d: %w", i, err)
		}
		if rule.Count != CountAll && rule.Count != CountFirst {
			return errors.Errorf("rule %d: unknown count policy %d", i, rule.Count)
		}
		if rule.Name == "" {
			continue
		}
		if prev, ok := seen[rule.Name]; ok {
			return errors.Errorf("rule %d: name %q already used by rule %d", i, rule.Name, prev)
		}
		seen[rule.Name] = i
	}
	return nil
}
