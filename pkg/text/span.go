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
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📍 Span is a matched region in byte offsets, both anchors included
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered
func (s Span) Len() int {
	return s.End - s.Start
}

// 🔢 CountPolicy selects how many matches are replaced
type CountPolicy int

const (
	CountAll   CountPolicy = iota // every non-overlapping match, left to right
	CountFirst                    // the leftmost match only
)

// String returns the config spelling of the policy
func (c CountPolicy) String() string {
	switch c {
	case CountAll:
		return "all"
	case CountFirst:
		return "first"
	default:
		return "unknown"
	}
}

// limit converts the policy into a FindAll limit
func (c CountPolicy) limit() int {
	if c == CountFirst {
		return 1
	}
	return -1
}

// ParseCountPolicy parses "all" or "first". An empty string is all.
func ParseCountPolicy(s string) (CountPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return CountAll, nil
	case "first", "1":
		return CountFirst, nil
	default:
		return 0, errors.Errorf("unknown count policy %q", s)
	}
}

// 🔍 Find returns the leftmost span of p in src that starts at or after from
func Find(src string, p Pattern, from int) (Span, bool) {
	for from <= len(src) {
		start, ok := p.Start.find(src, from)
		if !ok {
			return Span{}, false
		}

		end, ok := p.findEnd(src, start.End)
		if ok {
			return Span{Start: start.Start, End: end.End}, true
		}

		// a later start only sees a suffix of what this one saw, so unless
		// the line limit cut the search short there is nothing left to find
		if p.Lines == LinesAny {
			return Span{}, false
		}
		from = start.Start + 1
	}
	return Span{}, false
}

// findEnd locates the end anchor for a wildcard that begins at from
func (p Pattern) findEnd(src string, from int) (Span, bool) {
	limit := len(src)
	if p.Lines == LinesSingle {
		if nl := strings.IndexByte(src[from:], '\n'); nl >= 0 {
			limit = from + nl
		}
	}

	first, ok := p.End.find(src, from)
	if !ok || first.Start > limit {
		return Span{}, false
	}
	if p.Wildcard == WildcardLazy {
		return first, true
	}

	last := first
	for {
		next, ok := p.End.find(src, last.Start+1)
		if !ok || next.Start > limit {
			return last, true
		}
		last = next
	}
}

// FindAll returns up to n non-overlapping spans, scanning left to right. A
// negative n returns every span.
func FindAll(src string, p Pattern, n int) []Span {
	var spans []Span
	from := 0
	for n < 0 || len(spans) < n {
		span, ok := Find(src, p, from)
		if !ok {
			break
		}
		spans = append(spans, span)
		from = span.End
	}
	return spans
}

// 🔄 Replace substitutes replacement for the spans of p chosen by count.
//
// The replacement is inserted literally. Bytes outside the returned spans are
// copied unchanged, and src is returned as is when nothing matches.
func Replace(src string, p Pattern, replacement string, count CountPolicy) (string, []Span) {
	spans := FindAll(src, p, count.limit())
	if len(spans) == 0 {
		return src, nil
	}

	var b strings.Builder
	b.Grow(len(src) + len(spans)*len(replacement))
	prev := 0
	for _, span := range spans {
		b.WriteString(src[prev:span.Start])
		b.WriteString(replacement)
		prev = span.End
	}
	b.WriteString(src[prev:])

	return b.String(), spans
}
