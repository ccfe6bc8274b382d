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
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidPattern is returned when a pattern cannot be used for matching.
var ErrInvalidPattern = errors.Base("invalid pattern")

// 🎯 WildcardMode controls how much text the wildcard between two anchors consumes
type WildcardMode int

const (
	WildcardLazy   WildcardMode = iota // shortest span, ends at the nearest end anchor
	WildcardGreedy                     // longest span, ends at the last end anchor
)

// String returns the config spelling of the mode
func (m WildcardMode) String() string {
	switch m {
	case WildcardLazy:
		return "lazy"
	case WildcardGreedy:
		return "greedy"
	default:
		return "unknown"
	}
}

// ParseWildcardMode parses "lazy" or "greedy". An empty string is lazy.
func ParseWildcardMode(s string) (WildcardMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lazy", "non-greedy":
		return WildcardLazy, nil
	case "greedy":
		return WildcardGreedy, nil
	default:
		return 0, errors.Errorf("%w: unknown wildcard mode %q", ErrInvalidPattern, s)
	}
}

// 📏 LineMode controls whether the wildcard may cross line boundaries
type LineMode int

const (
	LinesAny    LineMode = iota // wildcard matches newlines too
	LinesSingle                 // wildcard stops at newlines
)

// 🔗 Anchor is a literal that delimits one side of a span.
//
// When Flex is set, every run of whitespace inside Text matches zero or more
// whitespace characters in the source, and leading or trailing whitespace in
// Text is ignored. "</div> )}" with Flex matches "</div>)}" as well as
// "</div>\n    )}".
type Anchor struct {
	Text string
	Flex bool
}

// Literal returns an exact anchor
func Literal(s string) Anchor {
	return Anchor{Text: s}
}

// Flexible returns an anchor whose whitespace runs match any amount of whitespace
func Flexible(s string) Anchor {
	return Anchor{Text: s, Flex: true}
}

func (a Anchor) fragments() []string {
	if !a.Flex {
		return []string{a.Text}
	}
	return strings.FieldsFunc(a.Text, isSpace)
}

// IsZero reports whether the anchor can never match anything
func (a Anchor) IsZero() bool {
	return a.Text == "" || len(a.fragments()) == 0
}

// matchAt reports where the anchor ends if it matches src at i
func (a Anchor) matchAt(src string, i int) (int, bool) {
	frags := a.fragments()
	pos := i
	for n, frag := range frags {
		if n > 0 {
			pos = skipSpace(src, pos)
		}
		if !strings.HasPrefix(src[pos:], frag) {
			return 0, false
		}
		pos += len(frag)
	}
	return pos, true
}

// find returns the leftmost match of the anchor at or after from
func (a Anchor) find(src string, from int) (Span, bool) {
	frags := a.fragments()
	if len(frags) == 0 {
		return Span{}, false
	}
	for from <= len(src) {
		idx := strings.Index(src[from:], frags[0])
		if idx < 0 {
			return Span{}, false
		}
		start := from + idx
		if end, ok := a.matchAt(src, start); ok {
			return Span{Start: start, End: end}, true
		}
		from = start + 1
	}
	return Span{}, false
}

// expr renders the anchor as an RE2 fragment
func (a Anchor) expr() string {
	frags := a.fragments()
	quoted := make([]string, len(frags))
	for i, f := range frags {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return strings.Join(quoted, `\s*`)
}

// 📐 Pattern describes a region to find: a start anchor, a wildcard and an end anchor.
//
// The zero values of Wildcard and Lines give a lazy wildcard that crosses lines.
type Pattern struct {
	Start    Anchor
	End      Anchor
	Wildcard WildcardMode
	Lines    LineMode
}

// Validate checks that both anchors can match
func (p Pattern) Validate() error {
	if p.Start.IsZero() {
		return errors.Errorf("%w: start anchor is empty", ErrInvalidPattern)
	}
	if p.End.IsZero() {
		return errors.Errorf("%w: end anchor is empty", ErrInvalidPattern)
	}
	if p.Wildcard != WildcardLazy && p.Wildcard != WildcardGreedy {
		return errors.Errorf("%w: unknown wildcard mode %d", ErrInvalidPattern, p.Wildcard)
	}
	if p.Lines != LinesAny && p.Lines != LinesSingle {
		return errors.Errorf("%w: unknown line mode %d", ErrInvalidPattern, p.Lines)
	}
	return nil
}

// String returns the equivalent RE2 expression
func (p Pattern) String() string {
	var b strings.Builder
	if p.Lines == LinesAny {
		b.WriteString("(?s)")
	}
	b.WriteString(p.Start.expr())
	b.WriteString(".*")
	if p.Wildcard == WildcardLazy {
		b.WriteString("?")
	}
	b.WriteString(p.End.expr())
	return b.String()
}

// Regexp compiles the equivalent regular expression
func (p Pattern) Regexp() (*regexp.Regexp, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	re, err := regexp.Compile(p.String())
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrInvalidPattern, err.Error())
	}
	return re, nil
}

// whitespace as RE2 defines \s
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func skipSpace(src string, i int) int {
	for i < len(src) && isSpace(rune(src[i])) {
		i++
	}
	return i
}
