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
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/provider"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/oauth2"
)

func init() {
	provider.Register("github", New)
}

// 🎯 Provider implements the provider interface for GitHub
type Provider struct {
	client *github.Client
}

// 🏭 New creates a new GitHub provider. GITHUB_TOKEN is used when set;
// public repositories work without it.
func New(ctx context.Context) (provider.Provider, error) {
	logger := zerolog.Ctx(ctx)

	var hc *http.Client
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(ctx, ts)
	} else {
		logger.Debug().Msg("GITHUB_TOKEN not set, using unauthenticated client")
	}

	return NewWithClient(github.NewClient(hc)), nil
}

// 🏭 NewWithClient creates a provider around an existing client
func NewWithClient(client *github.Client) *Provider {
	return &Provider{client: client}
}

// 🔍 parseRepo parses a GitHub repository URL
func parseRepo(repo string) (owner, name string, err error) {
	trimmed := strings.TrimSpace(repo)
	trimmed = strings.TrimPrefix(trimmed, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	trimmed = strings.TrimSuffix(trimmed, "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	parts := strings.Split(trimmed, "/")
	if parts[0] == "github.com" {
		parts = parts[1:]
	}
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Errorf("invalid GitHub repository URL: %s", repo)
	}

	return parts[0], parts[1], nil
}

// 📄 Fetch retrieves a single file's contents at args.Ref
func (p *Provider) Fetch(ctx context.Context, args provider.Args) (io.ReadCloser, error) {
	owner, name, err := parseRepo(args.Repo)
	if err != nil {
		return nil, errors.Errorf("parsing repo: %w", err)
	}

	file := strings.TrimPrefix(path.Clean("/"+args.Path), "/")

	zerolog.Ctx(ctx).Debug().
		Str("owner", owner).
		Str("repo", name).
		Str("ref", args.Ref).
		Str("path", file).
		Msg("fetching template from github")

	content, _, resp, err := p.client.Repositories.GetContents(ctx, owner, name, file, &github.RepositoryContentGetOptions{
		Ref: args.Ref,
	})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, errors.Errorf("%w: %s", provider.ErrTemplateNotFound, p.SourceInfo(args))
		}
		return nil, errors.Errorf("getting file content: %w", err)
	}
	if content == nil {
		return nil, errors.Errorf("%s is a directory, not a file", p.SourceInfo(args))
	}

	data, err := content.GetContent()
	if err != nil {
		return nil, errors.Errorf("decoding content: %w", err)
	}

	return io.NopCloser(strings.NewReader(data)), nil
}

// 📝 SourceInfo returns a string describing the source
func (p *Provider) SourceInfo(args provider.Args) string {
	ref := args.Ref
	if ref == "" {
		ref = "HEAD"
	}
	return fmt.Sprintf("%s@%s:%s", args.Repo, ref, args.Path)
}
