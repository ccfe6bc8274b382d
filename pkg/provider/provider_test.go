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

package provider

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

type staticProvider struct {
	content string
}

func (p *staticProvider) Fetch(ctx context.Context, args Args) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(p.content)), nil
}

func (p *staticProvider) SourceInfo(args Args) string {
	return "static:" + args.Path
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	reg.Register("static", func(ctx context.Context) (Provider, error) {
		return &staticProvider{content: "hello"}, nil
	})
	reg.Register("broken", func(ctx context.Context) (Provider, error) {
		return nil, errors.New("no credentials")
	})

	assert.Equal(t, []string{"broken", "static"}, reg.Names(), "names should be sorted")

	p, err := reg.Get(ctx, "static")
	require.NoError(t, err)
	assert.Equal(t, "static:x", p.SourceInfo(Args{Path: "x"}))

	_, err = reg.Get(ctx, "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = reg.Get(ctx, "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating broken provider: no credentials")
}

func TestDefaultRegistry(t *testing.T) {
	p, err := Get(context.Background(), "http")
	require.NoError(t, err, "http provider should self-register")
	assert.IsType(t, &HTTPProvider{}, p)
	assert.Contains(t, Default().Names(), "http")
}

func TestHTTPProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/templates/cards.tsx":
			io.WriteString(w, "<div>cards</div>\n")
		case "/templates/boom.tsx":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	p := &HTTPProvider{Client: server.Client()}
	ctx := context.Background()

	tests := []struct {
		name        string
		args        Args
		want        string
		wantErr     error
		errContains string
	}{
		{
			name: "full_url",
			args: Args{Path: server.URL + "/templates/cards.tsx"},
			want: "<div>cards</div>\n",
		},
		{
			name: "repo_and_path",
			args: Args{Repo: server.URL + "/templates/", Path: "/cards.tsx"},
			want: "<div>cards</div>\n",
		},
		{
			name:    "not_found",
			args:    Args{Repo: server.URL, Path: "templates/missing.tsx"},
			wantErr: ErrTemplateNotFound,
		},
		{
			name:        "server_error",
			args:        Args{Repo: server.URL, Path: "templates/boom.tsx"},
			errContains: "unexpected status code: 500",
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
