package jsonschema

import (
	"go.uber.org/zap"

	"github.com/amis92/jsonschema/internal/config"
	"github.com/amis92/jsonschema/internal/draft"
	"github.com/amis92/jsonschema/internal/registry"
	"github.com/amis92/jsonschema/internal/result"
)

// Option configures Compile and/or Evaluate (spec.md §6 "Evaluation
// options"). An Option produced by one of the With* constructors below
// applies to whichever call it is passed to; Compile-time options (draft,
// fetcher, default base URI, process-custom-keywords) carry forward to
// every later Evaluate call on that Schema unless overridden there.
type Option = config.Option

// Format selects the shape of an evaluation Result.
type Format = result.Format

const (
	Flag         = result.Flag
	List         = result.List
	Hierarchical = result.Hierarchical
)

// Draft identifies a JSON Schema specification edition.
type Draft = draft.Draft

const (
	Unspecified  = draft.Unspecified
	Draft6       = draft.Draft6
	Draft7       = draft.Draft7
	Draft2019_09 = draft.Draft2019_09
	Draft2020_12 = draft.Draft2020_12
	DraftNext    = draft.DraftNext
)

// Fetcher lazily loads a schema document for a URI the registry has no
// compiled schema for yet.
type Fetcher = registry.Fetcher

// WithOutputFormat selects Flag, List, or Hierarchical output (default Flag).
func WithOutputFormat(format Format) Option { return config.WithOutputFormat(format) }

// WithDraft overrides the schema's own $schema-declared draft.
func WithDraft(d Draft) Option { return config.WithDraft(d) }

// WithFetcher installs a lazy remote-schema loader. Concurrent lookups of
// the same unresolved URI share one call, and a successfully fetched
// document is compiled and not fetched again; a URI whose fetch failed is
// fetched again on its next lookup (spec.md §5).
func WithFetcher(fn Fetcher) Option { return config.WithFetcher(fn) }

// WithDefaultBaseURI sets the base URI used when the root schema declares
// no $id.
func WithDefaultBaseURI(uri string) Option { return config.WithDefaultBaseURI(uri) }

// WithRequireFormatValidation switches "format" from an annotation-only
// keyword to an assertion (default: annotation-only).
func WithRequireFormatValidation(b bool) Option { return config.WithRequireFormatValidation(b) }

// WithProcessCustomKeywords keeps keywords the engine's catalog does not
// recognize as annotations instead of silently dropping them. Recognized
// keywords that are not active for the schema's draft or vocabulary set
// are dropped whether or not this is set.
func WithProcessCustomKeywords(b bool) Option { return config.WithProcessCustomKeywords(b) }

// WithLogger installs a zap logger for structured per-keyword trace output.
func WithLogger(l *zap.Logger) Option { return config.WithLogger(l) }
