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
	"sort"
	"sync"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrTemplateNotFound is returned when a provider has no template at the requested path
	ErrTemplateNotFound = errors.Base("template not found")

	// ErrUnknownProvider is returned when no factory is registered under a name
	ErrUnknownProvider = errors.Base("unknown provider")
)

// 📦 Args locates a template within a provider
type Args struct {
	Repo string // repository or root the template lives in
	Ref  string // branch or tag
	Path string // path within the repository
}

// 🔌 Provider is the interface for replacement template providers
type Provider interface {
	// 📄 Fetch opens the template at args.Path
	Fetch(ctx context.Context, args Args) (io.ReadCloser, error)

	// 📝 SourceInfo returns a string describing where the template comes from
	SourceInfo(args Args) string
}

// 🏭 Factory creates a new provider
type Factory func(ctx context.Context) (Provider, error)

// 🗺️ Registry maps provider names to factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// 🏭 NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// 📝 Register registers a provider factory
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// 🎯 Get creates the provider registered under name
func (r *Registry) Get(ctx context.Context, name string) (Provider, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("%w: %s", ErrUnknownProvider, name)
	}

	p, err := factory(ctx)
	if err != nil {
		return nil, errors.Errorf("creating %s provider: %w", name, err)
	}
	return p, nil
}

// 📋 Names lists the registered provider names
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	// 🗺️ providers holds the factories registered by provider packages
	providers = NewRegistry()
)

// 📝 Register registers a provider factory in the default registry
func Register(name string, factory Factory) {
	providers.Register(name, factory)
}

// 🎯 Get returns a provider from the default registry
func Get(ctx context.Context, name string) (Provider, error) {
	return providers.Get(ctx, name)
}

// 🗺️ Default returns the registry provider packages register into
func Default() *Registry {
	return providers
}
