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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(root *opts.RootOpts) *cobra.Command {
	flags := &SourceFlags{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Replace matching regions in the target file",
		Long: `Apply rewrites the target file in place.
It will:
1. Read the whole target
2. Find each region running from a start literal to the nearest end literal
3. Replace every region with the literal replacement
4. Write the file back only if it changed, then print the completion notice

A target with no matching region is left untouched and is not an error
unless --require-match is set.`,
		Example: `  patchrc apply
  patchrc apply -c page.patchrc.yaml
  patchrc apply --preset earnings-mobile
  patchrc apply --target page.tsx --start '<main>' --end '</main>' --replacement-file main.tsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())

			cfg, err := flags.Load(ctx, cmd, root)
			if err != nil {
				return err
			}

			run, err := runPatch(ctx, cmd.OutOrStdout(), root, cfg, false)
			if err != nil {
				return errors.Errorf("applying patch: %w", err)
			}

			notice := cfg.Notice
			if notice == "" {
				notice = status.NewDefaultFileFormatter().FormatOutcome(run.Outcome)
			}
			run.Console.LogNewline()
			run.Console.Success(notice)

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
