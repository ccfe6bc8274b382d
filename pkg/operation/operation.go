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

package operation

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/log"
	"github.com/walteh/patchrc/pkg/provider"
	"github.com/walteh/patchrc/pkg/status"
	"github.com/walteh/patchrc/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoMatch is returned when require_match is set and a rule found no region
	ErrNoMatch = errors.Base("no match")

	// ErrTemplateUnavailable is returned when a replacement template cannot be resolved
	ErrTemplateUnavailable = errors.Base("template unavailable")
)

// maxConcurrentFetches bounds template resolution
const maxConcurrentFetches = 4

// 🏃 Operation is a unit of work run by a Runner
type Operation interface {
	Execute(ctx context.Context) error
}

// 🔧 Options contains configuration for a patch operation
type Options struct {
	// Config is the patch definition
	Config *config.Config
	// Files reads and writes the target
	Files status.FileManager
	// Replacer applies the rules, a SpanReplacer when nil
	Replacer text.TextReplacer
	// Providers resolves template sources, the default registry when nil
	Providers *provider.Registry
	// DryRun computes the result and diff without writing
	DryRun bool
	// Logger receives per-rule and per-file console output when set
	Logger *log.Logger
}

// 📋 Report describes the outcome of a patch operation
type Report struct {
	Path           string
	Status         status.FileStatus
	Replacements   int
	Rules          []text.RuleResult
	Skipped        []string
	Diff           string
	BeforeChecksum string
	AfterChecksum  string
}

// 🩹 PatchOperation patches a single target file
type PatchOperation struct {
	opts   Options
	report *Report
}

var _ Operation = (*PatchOperation)(nil)

// 🏭 NewPatchOperation creates a patch operation
func NewPatchOperation(opts Options) (*PatchOperation, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Replacer == nil {
		opts.Replacer = text.NewSpanReplacer()
	}
	if opts.Providers == nil {
		opts.Providers = provider.Default()
	}
	return &PatchOperation{opts: opts}, nil
}

// 📋 Report returns the outcome of the last Execute, nil before it ran
func (op *PatchOperation) Report() *Report {
	return op.report
}

// 🏃 Execute reads the target, applies the rules and writes the result
func (op *PatchOperation) Execute(ctx context.Context) error {
	cfg := op.opts.Config
	logger := zerolog.Ctx(ctx).With().Str("target", cfg.Target).Logger()

	original, err := op.opts.Files.ReadFile(ctx, cfg.Target)
	if err != nil {
		op.logFile(ctx, status.FileInfo{Path: cfg.Target, Error: err})
		return errors.Errorf("reading target: %w", err)
	}

	rules, skipped, err := op.selectRules(ctx)
	if err != nil {
		return err
	}

	if err := op.resolveTemplates(ctx, rules); err != nil {
		return errors.Errorf("resolving templates: %w", err)
	}

	textRules := make([]text.ReplacementRule, len(rules))
	for i, r := range rules {
		textRules[i] = r.ReplacementRule
	}

	result, err := op.opts.Replacer.ReplaceText(ctx, bytes.NewReader(original), textRules)
	if err != nil {
		return errors.Errorf("replacing text: %w", err)
	}

	report := &Report{
		Path:           cfg.Target,
		Status:         status.StatusUnchanged,
		Replacements:   result.ReplacementCount,
		Rules:          result.Rules,
		Skipped:        skipped,
		BeforeChecksum: status.Checksum(original),
		AfterChecksum:  status.Checksum(result.ModifiedContent),
	}
	op.report = report

	for _, rr := range result.Rules {
		if op.opts.Logger != nil {
			op.opts.Logger.LogRule(ctx, rr.Name, rr.Count())
		}
		if cfg.RequireMatch && rr.Count() == 0 {
			return errors.Errorf("%w: rule %q found no region in %s", ErrNoMatch, rr.Name, cfg.Target)
		}
	}

	if result.WasModified {
		report.Diff = UnifiedDiff(cfg.Target, string(original), string(result.ModifiedContent), DefaultContext)
	}

	switch {
	case !result.WasModified:
		logger.Debug().Msg("no region matched, leaving target untouched")
	case op.opts.DryRun:
		report.Status = status.StatusPending
		logger.Debug().Int("replacements", report.Replacements).Msg("dry run, not writing")
		if op.opts.Logger != nil {
			op.opts.Logger.LogDiff(report.Diff)
		}
	default:
		if err := ctx.Err(); err != nil {
			op.logFile(ctx, status.FileInfo{Path: cfg.Target, Replacements: report.Replacements, Error: err})
			return errors.Errorf("not writing target: %w", err)
		}
		if err := op.opts.Files.WriteFile(ctx, cfg.Target, result.ModifiedContent); err != nil {
			op.logFile(ctx, status.FileInfo{Path: cfg.Target, Replacements: report.Replacements, Error: err})
			return errors.Errorf("writing target: %w", err)
		}
		report.Status = status.StatusModified
	}

	op.logFile(ctx, status.FileInfo{
		Path:         cfg.Target,
		Status:       report.Status,
		Size:         int64(len(result.ModifiedContent)),
		Replacements: report.Replacements,
		Checksum:     report.AfterChecksum,
	})

	return nil
}

func (op *PatchOperation) logFile(ctx context.Context, info status.FileInfo) {
	op.opts.Files.TrackFile(ctx, info)
	if op.opts.Logger != nil {
		op.opts.Logger.LogFile(ctx, info)
	}
}

// activeRule is a config rule selected for the target, with its
// replacement filled in once resolved
type activeRule struct {
	text.ReplacementRule
	source config.Rule
	label  string
}

// 🔍 selectRules converts config rules and drops those whose files glob
// does not match the target
func (op *PatchOperation) selectRules(ctx context.Context) ([]*activeRule, []string, error) {
	logger := zerolog.Ctx(ctx)
	target := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(op.opts.Config.RulePath())), "/")

	var rules []*activeRule
	var skipped []string
	for i, rule := range op.opts.Config.Rules {
		label := ruleName(i, rule)

		tr, err := rule.ReplacementRule("")
		if err != nil {
			return nil, nil, errors.Errorf("rule %s: %w", label, err)
		}

		if tr.FileFilterGlob != "" {
			matched, err := doublestar.Match(tr.FileFilterGlob, target)
			if err != nil {
				return nil, nil, errors.Errorf("rule %s: matching files glob: %w", label, err)
			}
			if !matched {
				logger.Debug().Str("rule", label).Str("glob", tr.FileFilterGlob).Msg("rule skipped by files glob")
				skipped = append(skipped, label)
				continue
			}
		}

		tr.Name = label
		rules = append(rules, &activeRule{ReplacementRule: tr, source: rule, label: label})
	}

	return rules, skipped, nil
}

// 📥 resolveTemplates fills in every rule's replacement. Remote templates
// are fetched concurrently.
func (op *PatchOperation) resolveTemplates(ctx context.Context, rules []*activeRule) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, rule := range rules {
		inline, src := rule.source.Template()
		switch {
		case inline != nil:
			rule.Replacement = *inline
		case src == nil:
			g.Go(func() error {
				return &TemplateError{Rule: rule.label, Err: errors.New("rule has no replacement")}
			})
		default:
			g.Go(func() error {
				content, err := op.fetch(gctx, src)
				if err != nil {
					return &TemplateError{Rule: rule.label, Source: src.Provider + ":" + src.Path, Err: err}
				}
				rule.Replacement = content
				return nil
			})
		}
	}

	return g.Wait()
}

func (op *PatchOperation) fetch(ctx context.Context, src *config.SourceArgs) (string, error) {
	p, err := op.opts.Providers.Get(ctx, src.Provider)
	if err != nil {
		return "", err
	}

	args := provider.Args{Repo: src.Repo, Ref: src.Ref, Path: src.Path}
	zerolog.Ctx(ctx).Debug().Str("source", p.SourceInfo(args)).Msg("fetching template")

	rc, err := p.Fetch(ctx, args)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", errors.Errorf("reading template: %w", err)
	}
	return string(data), nil
}

func ruleName(i int, rule config.Rule) string {
	if rule.Name != "" {
		return rule.Name
	}
	return "#" + strconv.Itoa(i)
}
