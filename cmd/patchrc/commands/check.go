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

package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/operation"
	"github.com/walteh/patchrc/pkg/status"
	"github.com/walteh/patchrc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrChangesPending is returned by check --exit-code when apply would modify the target
var ErrChangesPending = errors.Base("changes pending")

// maxListedSpans caps the spans printed per rule
const maxListedSpans = 4

// NewCheckCmd creates a new check command
func NewCheckCmd(root *opts.RootOpts) *cobra.Command {
	flags := &SourceFlags{}
	var exitCode bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Show what apply would change without writing",
		Long: `Check runs the same rules as apply but never writes the target.
It prints a diff of the pending change and a table of the regions each
rule matched. The exit status is non-zero only on errors, or when
--exit-code is set and the target would change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "check").Logger().WithContext(cmd.Context())

			cfg, err := flags.Load(ctx, cmd, root)
			if err != nil {
				return err
			}

			run, err := runPatch(ctx, cmd.OutOrStdout(), root, cfg, true)
			if err != nil {
				return errors.Errorf("checking patch: %w", err)
			}

			run.Console.LogNewline()
			if err := renderSpans(cmd.OutOrStdout(), run.Report); err != nil {
				return err
			}

			run.Console.LogNewline()
			run.Console.Info(status.NewDefaultFileFormatter().FormatOutcome(run.Outcome))

			if exitCode && run.Outcome.Status == status.StatusPending {
				return errors.Errorf("%w: %s", ErrChangesPending, run.Outcome.Path)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "exit non-zero when apply would change the target")

	return cmd
}

// 📊 renderSpans prints one row per rule with the regions it matched
func renderSpans(w io.Writer, report *operation.Report) error {
	data := pterm.TableData{{"Rule", "Matches", "Spans"}}
	for _, rr := range report.Rules {
		data = append(data, []string{rr.Name, strconv.Itoa(rr.Count()), formatSpans(rr.Spans)})
	}
	for _, name := range report.Skipped {
		data = append(data, []string{name, "-", "skipped by files glob"})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Errorf("rendering span table: %w", err)
	}
	fmt.Fprintln(w, table)
	return nil
}

func formatSpans(spans []text.Span) string {
	if len(spans) == 0 {
		return "-"
	}
	parts := make([]string, 0, maxListedSpans+1)
	for i, s := range spans {
		if i == maxListedSpans {
			parts = append(parts, fmt.Sprintf("+%d more", len(spans)-maxListedSpans))
			break
		}
		parts = append(parts, fmt.Sprintf("%d..%d", s.Start, s.End))
	}
	return strings.Join(parts, ", ")
}
