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

package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/provider"
)

func TestParseRepo(t *testing.T) {
	tests := []struct {
		name        string
		repo        string
		wantOwner   string
		wantName    string
		wantErr     bool
		errContains string
	}{
		{
			name:      "valid_repo",
			repo:      "github.com/walteh/patchrc",
			wantOwner: "walteh",
			wantName:  "patchrc",
		},
		{
			name:      "valid_repo_with_https",
			repo:      "https://github.com/walteh/patchrc.git",
			wantOwner: "walteh",
			wantName:  "patchrc",
		},
		{
			name:      "owner_and_name",
			repo:      "walteh/patchrc",
			wantOwner: "walteh",
			wantName:  "patchrc",
		},
		{
			name:        "invalid_repo",
			repo:        "invalid",
			wantErr:     true,
			errContains: "invalid GitHub repository URL",
		},
		{
			name:        "too_many_parts",
			repo:        "github.com/walteh/patchrc/tree/main",
			wantErr:     true,
			errContains: "invalid GitHub repository URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, name, err := parseRepo(tt.repo)
			if tt.wantErr {
				require.Error(t, err, "parseRepo should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "parseRepo should succeed")
			assert.Equal(t, tt.wantOwner, owner, "owner should match")
			assert.Equal(t, tt.wantName, name, "name should match")
		})
	}
}

func newTestProvider(t *testing.T, handler http.Handler) *Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := github.NewClient(nil)
	base, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	return NewWithClient(client)
}

func TestFetch(t *testing.T) {
	template := "<div className=\"md:hidden space-y-3\">\n  {cards}\n</div>\n"

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/walteh/templates/contents/cards/mobile.tsx", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ref") != "v1" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"type":"file","encoding":"base64","path":"cards/mobile.tsx","content":%q}`,
			base64.StdEncoding.EncodeToString([]byte(template)))
	})
	mux.HandleFunc("/repos/walteh/templates/contents/cards", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"type":"file","name":"mobile.tsx","path":"cards/mobile.tsx"}]`)
	})

	p := newTestProvider(t, mux)
	ctx := zerolog.Nop().WithContext(context.Background())

	tests := []struct {
		name        string
		args        provider.Args
		want        string
		wantErr     error
		errContains string
	}{
		{
			name: "file_at_ref",
			args: provider.Args{Repo: "github.com/walteh/templates", Ref: "v1", Path: "cards/mobile.tsx"},
			want: template,
		},
		{
			name: "leading_slash",
			args: provider.Args{Repo: "github.com/walteh/templates", Ref: "v1", Path: "/cards/mobile.tsx"},
			want: template,
		},
		{
			name:    "missing_ref",
			args:    provider.Args{Repo: "github.com/walteh/templates", Ref: "v2", Path: "cards/mobile.tsx"},
			wantErr: provider.ErrTemplateNotFound,
		},
		{
			name:        "directory",
			args:        provider.Args{Repo: "github.com/walteh/templates", Ref: "v1", Path: "cards"},
			errContains: "is a directory",
		},
		{
			name:        "bad_repo",
			args:        provider.Args{Repo: "templates", Path: "cards/mobile.tsx"},
			errContains: "parsing repo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := p.Fetch(ctx, tt.args)
			if tt.wantErr != nil || tt.errContains != "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
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

func TestNew(t *testing.T) {
	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	t.Setenv("GITHUB_TOKEN", "")
	p, err := New(ctx)
	require.NoError(t, err, "provider should work without a token")
	assert.IsType(t, &Provider{}, p)

	t.Setenv("GITHUB_TOKEN", "mock_token")
	p, err = New(ctx)
	require.NoError(t, err, "provider should accept a token")
	assert.IsType(t, &Provider{}, p)

	registered, err := provider.Get(ctx, "github")
	require.NoError(t, err, "github provider should be registered")
	assert.IsType(t, &Provider{}, registered)
}

func TestSourceInfo(t *testing.T) {
	p := NewWithClient(github.NewClient(nil))

	assert.Equal(t, "github.com/walteh/templates@v1:cards.tsx",
		p.SourceInfo(provider.Args{Repo: "github.com/walteh/templates", Ref: "v1", Path: "cards.tsx"}))
	assert.Equal(t, "github.com/walteh/templates@HEAD:cards.tsx",
		p.SourceInfo(provider.Args{Repo: "github.com/walteh/templates", Path: "cards.tsx"}))
}
