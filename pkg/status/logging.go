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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent   = 4  // spaces to indent file entries
	nameWidth    = 35 // Base width for filename
	statusWidth  = 12 // Width for status text
	changesWidth = 15 // Width for replacement count
)

// 🎯 FormatFileOperation formats a file outcome for display
func FormatFileOperation(info FileInfo) string {
	var prefix string
	switch {
	case info.Error != nil:
		prefix = color.RedString("✗")
	case info.Status == StatusModified:
		prefix = color.GreenString("✓")
	case info.Status == StatusPending:
		prefix = color.YellowString("⟳")
	default:
		prefix = color.HiBlackString("-")
	}

	changes := fmt.Sprintf("%d replacement", info.Replacements)
	if info.Replacements != 1 {
		changes += "s"
	}

	statusText := info.Status.String()
	if info.Error != nil {
		statusText = "error"
	}

	return fmt.Sprintf("%s%s %s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		fmt.Sprintf("%-*s", nameWidth, info.Path),
		fmt.Sprintf("%-*s", statusWidth, statusText),
		fmt.Sprintf("%-*s", changesWidth, changes),
	)
}
