// Package config resolves the functional options the public jsonschema
// package exposes (SPEC_FULL.md §2.3), the same way the teacher resolves
// CompileOptions/ValidateOptions in engine.go: an Options struct plus an
// Option interface with a private apply method, so
// only this module can construct conforming options.
package config

import (
	"go.uber.org/zap"

	"github.com/amis92/jsonschema/internal/draft"
	"github.com/amis92/jsonschema/internal/registry"
	"github.com/amis92/jsonschema/internal/result"
)

// Options is the resolved set of knobs shared by compilation and
// evaluation (spec.md §6 "Evaluation options (enumerated)").
type Options struct {
	OutputFormat            result.Format
	EvaluateAs              draft.Draft
	ProcessCustomKeywords   bool
	RequireFormatValidation bool
	DefaultBaseURI          string
	Fetcher                 registry.Fetcher
	Logger                  *zap.Logger
}

// Option configures Options. The apply method is unexported so only
// functions in this package can produce one.
type Option interface{ apply(*Options) }

type optionFunc func(*Options)

func (f optionFunc) apply(o *Options) { f(o) }

// WithOutputFormat selects the shape of the evaluation result.
func WithOutputFormat(format result.Format) Option {
	return optionFunc(func(o *Options) { o.OutputFormat = format })
}

// WithDraft overrides the schema's own $schema-declared draft.
func WithDraft(d draft.Draft) Option {
	return optionFunc(func(o *Options) { o.EvaluateAs = d })
}

// WithFetcher installs a lazy remote-schema loader consulted on registry
// lookup misses.
func WithFetcher(fn registry.Fetcher) Option {
	return optionFunc(func(o *Options) { o.Fetcher = fn })
}

// WithDefaultBaseURI sets the base URI used when the root schema declares
// no $id.
func WithDefaultBaseURI(uri string) Option {
	return optionFunc(func(o *Options) { o.DefaultBaseURI = uri })
}

// WithRequireFormatValidation switches "format" from an annotation-only
// keyword to an assertion.
func WithRequireFormatValidation(b bool) Option {
	return optionFunc(func(o *Options) { o.RequireFormatValidation = b })
}

// WithProcessCustomKeywords controls whether keywords the catalog does not
// recognize are preserved as annotations instead of dropped. Recognized
// keywords inactive for the draft or vocabulary set are dropped either way.
func WithProcessCustomKeywords(b bool) Option {
	return optionFunc(func(o *Options) { o.ProcessCustomKeywords = b })
}

// WithLogger installs a zap logger for structured trace output.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *Options) { o.Logger = l })
}

// Resolve applies every option over a zero-value Options in order.
func Resolve(opts []Option) Options {
	return ResolveOver(Options{}, opts)
}

// ResolveOver applies every option over base, letting a per-call Evaluate
// override a subset of the Options a Compile call already resolved.
func ResolveOver(base Options, opts []Option) Options {
	o := base
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&o)
		}
	}
	return o
}
