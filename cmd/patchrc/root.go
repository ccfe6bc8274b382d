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

package main

import (
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/commands"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// newRootCmd creates the patchrc command tree
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "patchrc",
		Short: "Replace delimited regions of a source file with fixed content",
		Long: `patchrc finds regions that run from a start literal to the nearest
end literal and replaces them with a literal template. Everything outside
the regions is kept byte for byte, and a file with no region is left alone.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if rootOpts.Chdir != "" {
				if err := os.Chdir(rootOpts.Chdir); err != nil {
					return errors.Errorf("changing directory: %w", err)
				}
			}

			if err := loadDotEnv(); err != nil {
				return err
			}

			logger := setupLogging(cmd.ErrOrStderr(), rootOpts.Debug)
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}

	addRootFlags(cmd, rootOpts)

	cmd.AddCommand(
		commands.NewApplyCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewPresetsCmd(),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", config.RCFileName, "config file path")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&o.Async, "async", false, "run the operation in the background and honor interrupts")
	cmd.PersistentFlags().StringVar(&o.Chdir, "chdir", "", "change to this directory before doing anything")
}

// setupLogging configures zerolog based on flags. Console output goes
// through pkg/log, so the structured log stays quiet unless --debug is set.
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log := zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
	return log
}

// loadDotEnv reads .env from the working directory when present, e.g. for GITHUB_TOKEN
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return errors.Errorf("loading .env: %w", err)
}
