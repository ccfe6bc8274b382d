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

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around each change
const DefaultContext = 3

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

func diffLines(before, after string) []diffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []diffLine
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out = append(out, diffLine{op: d.Type, text: line})
		}
	}
	return out
}

// 📝 UnifiedDiff renders a line diff of before and after in unified format,
// with contextLines unchanged lines around each hunk. Equal inputs give "".
func UnifiedDiff(name, before, after string, contextLines int) string {
	if before == after {
		return ""
	}

	lines := diffLines(before, after)

	oldNo := make([]int, len(lines))
	newNo := make([]int, len(lines))
	o, n := 1, 1
	for i, l := range lines {
		oldNo[i], newNo[i] = o, n
		switch l.op {
		case diffmatchpatch.DiffEqual:
			o++
			n++
		case diffmatchpatch.DiffDelete:
			o++
		case diffmatchpatch.DiffInsert:
			n++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", name, name)

	i := 0
	for i < len(lines) {
		for i < len(lines) && lines[i].op == diffmatchpatch.DiffEqual {
			i++
		}
		if i == len(lines) {
			break
		}

		start := max(0, i-contextLines)
		end := i
		for end < len(lines) {
			if lines[end].op != diffmatchpatch.DiffEqual {
				end++
				continue
			}
			j := end
			for j < len(lines) && lines[j].op == diffmatchpatch.DiffEqual {
				j++
			}
			if j == len(lines) || j-end > 2*contextLines {
				end = min(j, end+contextLines)
				break
			}
			end = j
		}

		oldLen, newLen := 0, 0
		for _, l := range lines[start:end] {
			switch l.op {
			case diffmatchpatch.DiffEqual:
				oldLen++
				newLen++
			case diffmatchpatch.DiffDelete:
				oldLen++
			case diffmatchpatch.DiffInsert:
				newLen++
			}
		}

		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", oldNo[start], oldLen, newNo[start], newLen)
		for _, l := range lines[start:end] {
			switch l.op {
			case diffmatchpatch.DiffEqual:
				b.WriteString(" ")
			case diffmatchpatch.DiffDelete:
				b.WriteString("-")
			case diffmatchpatch.DiffInsert:
				b.WriteString("+")
			}
			b.WriteString(l.text)
			b.WriteString("\n")
		}

		i = end
	}

	return b.String()
}
