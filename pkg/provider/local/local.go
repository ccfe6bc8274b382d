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

package local

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/provider"
	"gitlab.com/tozd/go/errors"
)

func init() {
	provider.Register("local", New)
}

// 📂 Provider reads templates from the local filesystem. Args.Repo, when
// set, is the directory relative paths are resolved against.
type Provider struct {
	BaseDir string
}

// 🏭 New creates a local provider rooted at the working directory
func New(ctx context.Context) (provider.Provider, error) {
	return &Provider{}, nil
}

func (p *Provider) path(args provider.Args) string {
	if filepath.IsAbs(args.Path) {
		return args.Path
	}
	return filepath.Join(p.BaseDir, args.Repo, args.Path)
}

// 📄 Fetch implements provider.Provider.Fetch
func (p *Provider) Fetch(ctx context.Context, args provider.Args) (io.ReadCloser, error) {
	path := p.path(args)
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("opening local template")

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Errorf("%w: %s", provider.ErrTemplateNotFound, path)
		}
		return nil, errors.Errorf("opening template: %w", err)
	}
	return f, nil
}

// 📝 SourceInfo implements provider.Provider.SourceInfo
func (p *Provider) SourceInfo(args provider.Args) string {
	return p.path(args)
}
