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

package operation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numberedLines(n int, change map[int]string) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if s, ok := change[i]; ok {
			b.WriteString(s + "\n")
			continue
		}
		fmt.Fprintf(&b, "l%d\n", i)
	}
	return b.String()
}

func TestUnifiedDiff(t *testing.T) {
	tests := []struct {
		name    string
		before  string
		after   string
		context int
		want    string
	}{
		{
			name:    "equal",
			before:  "a\nb\n",
			after:   "a\nb\n",
			context: DefaultContext,
			want:    "",
		},
		{
			name:    "single_line",
			before:  "a\nb\nc\n",
			after:   "a\nB\nc\n",
			context: DefaultContext,
			want:    "--- a/page.tsx\n+++ b/page.tsx\n@@ -1,3 +1,3 @@\n a\n-b\n+B\n c\n",
		},
		{
			name:    "trimmed_context",
			before:  numberedLines(10, nil),
			after:   numberedLines(10, map[int]string{5: "L5"}),
			context: 1,
			want:    "--- a/page.tsx\n+++ b/page.tsx\n@@ -4,3 +4,3 @@\n l4\n-l5\n+L5\n l6\n",
		},
		{
			name:    "no_trailing_newline",
			before:  "x",
			after:   "y",
			context: DefaultContext,
			want:    "--- a/page.tsx\n+++ b/page.tsx\n@@ -1,1 +1,1 @@\n-x\n+y\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnifiedDiff("page.tsx", tt.before, tt.after, tt.context))
		})
	}
}

func TestUnifiedDiff_SeparateHunks(t *testing.T) {
	before := numberedLines(10, nil)
	after := numberedLines(10, map[int]string{2: "L2", 9: "L9"})

	got := UnifiedDiff("page.tsx", before, after, 1)
	assert.Equal(t, 2, strings.Count(got, "@@ -"), "distant changes should give two hunks")
	assert.Contains(t, got, "@@ -1,3 +1,3 @@")
	assert.Contains(t, got, "@@ -8,3 +8,3 @@")
	assert.NotContains(t, got, " l5\n", "lines far from changes should be omitted")
}

func TestUnifiedDiff_RegionReplacement(t *testing.T) {
	before := "head\n<div>\n  old\n</div>\n)}\ntail\n"
	after := "head\n<new/>\ntail\n"

	got := UnifiedDiff("page.tsx", before, after, DefaultContext)
	assert.Contains(t, got, "@@ -1,6 +1,3 @@")
	assert.Contains(t, got, "-  old\n")
	assert.Contains(t, got, "+<new/>\n")
	assert.Contains(t, got, " tail\n")
}
