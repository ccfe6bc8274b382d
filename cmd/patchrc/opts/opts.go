package opts

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/operation"
	"github.com/walteh/patchrc/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool
	Async      bool
	Chdir      string
}

// Runner returns the operation runner selected by --async
func (o *RootOpts) Runner(ctx context.Context) *operation.OperationRunner {
	return operation.NewRunner(zerolog.Ctx(ctx), o.Async)
}

// Files returns the file manager targets are read from and written to.
// Relative paths resolve against the working directory, after --chdir.
func (o *RootOpts) Files() *status.Manager {
	return status.New(".")
}
