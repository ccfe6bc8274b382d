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
	"strings"

	"gitlab.com/tozd/go/errors"
)

func init() {
	Register("http", func(ctx context.Context) (Provider, error) {
		return &HTTPProvider{Client: http.DefaultClient}, nil
	})
}

// 🌐 HTTPProvider fetches templates from plain URLs. Args.Path is either a
// full URL, or a path joined onto Args.Repo.
type HTTPProvider struct {
	Client *http.Client
}

// 📄 Fetch implements Provider.Fetch
func (p *HTTPProvider) Fetch(ctx context.Context, args Args) (io.ReadCloser, error) {
	return DownloadFile(ctx, p.Client, p.url(args))
}

// 📝 SourceInfo implements Provider.SourceInfo
func (p *HTTPProvider) SourceInfo(args Args) string {
	return p.url(args)
}

func (p *HTTPProvider) url(args Args) string {
	if args.Repo == "" {
		return args.Path
	}
	return strings.TrimSuffix(args.Repo, "/") + "/" + strings.TrimPrefix(args.Path, "/")
}

// 📥 DownloadFile downloads a file from a URL
func DownloadFile(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Errorf("making request: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, errors.Errorf("%w: %s", ErrTemplateNotFound, url)
	default:
		resp.Body.Close()
		return nil, errors.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
