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
)

// ReplacementRule defines a single span replacement
type ReplacementRule struct {
	// Name identifies the rule in logs and reports
	Name string

	// Pattern locates the region to replace
	Pattern Pattern

	// Replacement is inserted literally in place of each matched span
	Replacement string

	// Count selects the first match or all matches
	Count CountPolicy

	// FileFilterGlob limits the rule to target paths matching the glob; empty matches any path
	FileFilterGlob string
}

// RuleResult records what a single rule did
type RuleResult struct {
	Name  string
	Spans []Span
}

// Count returns the number of replaced spans
func (r RuleResult) Count() int {
	return len(r.Spans)
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte

	// Rules holds one entry per applied rule, in order. Span offsets refer
	// to the content the rule was applied to.
	Rules []RuleResult
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies the rules to the content in order
	ReplaceText(ctx context.Context, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
