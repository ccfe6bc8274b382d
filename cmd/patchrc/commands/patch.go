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
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/operation"
	"github.com/walteh/patchrc/pkg/status"
	"gitlab.com/tozd/go/errors"

	_ "github.com/walteh/patchrc/pkg/provider/github"
	_ "github.com/walteh/patchrc/pkg/provider/local"
)

// patchRun is what a patch command needs after the operation finished
type patchRun struct {
	Report  *operation.Report
	Outcome status.FileInfo
	Console *log.Logger
}

// runPatch executes one patch operation and returns its report together
// with the outcome the file manager recorded for the target
func runPatch(ctx context.Context, out io.Writer, root *opts.RootOpts, cfg *config.Config, dryRun bool) (*patchRun, error) {
	console := log.NewWithLogger(out, *zerolog.Ctx(ctx))
	ctx = log.NewContext(ctx, console)

	if dryRun {
		console.Header("checking " + cfg.Target)
	} else {
		console.Header("patching " + cfg.Target)
	}

	files := root.Files()

	op, err := operation.NewPatchOperation(operation.Options{
		Config: cfg,
		Files:  files,
		DryRun: dryRun,
		Logger: console,
	})
	if err != nil {
		return nil, errors.Errorf("creating patch operation: %w", err)
	}

	if err := root.Runner(ctx).Run(ctx, op); err != nil {
		return nil, err
	}

	info, err := files.GetFileInfo(ctx, cfg.Target)
	if err != nil {
		return nil, errors.Errorf("reading outcome: %w", err)
	}

	return &patchRun{Report: op.Report(), Outcome: info, Console: console}, nil
}
