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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/provider"
)

func TestFetch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", "cards.tsx"), []byte("<cards/>"), 0o644))

	tests := []struct {
		name    string
		base    string
		args    provider.Args
		want    string
		wantErr error
	}{
		{
			name: "absolute_path",
			args: provider.Args{Path: filepath.Join(dir, "templates", "cards.tsx")},
			want: "<cards/>",
		},
		{
			name: "base_dir",
			base: dir,
			args: provider.Args{Path: "templates/cards.tsx"},
			want: "<cards/>",
		},
		{
			name: "repo_as_root",
			base: dir,
			args: provider.Args{Repo: "templates", Path: "cards.tsx"},
			want: "<cards/>",
		},
		{
			name:    "missing",
			base:    dir,
			args:    provider.Args{Path: "templates/missing.tsx"},
			wantErr: provider.ErrTemplateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Provider{BaseDir: tt.base}
			rc, err := p.Fetch(context.Background(), tt.args)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestRegistered(t *testing.T) {
	p, err := provider.Get(context.Background(), "local")
	require.NoError(t, err)
	assert.Equal(t, "cards.tsx", p.SourceInfo(provider.Args{Path: "cards.tsx"}))
}
