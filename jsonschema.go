// Package jsonschema compiles a JSON Schema document once and evaluates it
// against any number of JSON instances, across Draft 6, Draft 7,
// 2019-09, 2020-12, and a rolling "next" draft. Grounded on jacoelho-xsd's
// top-level engine.go: a compile step that returns a reusable handle, and a
// separate evaluate step taken any number of times against that handle.
package jsonschema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/amis92/jsonschema/internal/compile"
	"github.com/amis92/jsonschema/internal/config"
	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/keywords"
	"github.com/amis92/jsonschema/internal/refresolve"
	"github.com/amis92/jsonschema/internal/registry"
	"github.com/amis92/jsonschema/internal/schema"
	"github.com/amis92/jsonschema/internal/schemaerr"
	"github.com/amis92/jsonschema/internal/telemetry"
)

// Schema is a compiled JSON Schema document, ready to evaluate any number
// of instances against. Safe for concurrent use by multiple goroutines:
// each Evaluate call owns its own evaluation context (spec.md §5).
type Schema struct {
	compiled *schema.Schema
	reg      *registry.Registry
	resolver *refresolve.Resolver
	logger   *telemetry.Logger
	opts     config.Options
}

// Compile builds a Schema from an already-decoded JSON document (a
// map[string]any/[]any/bool tree, e.g. as produced by decodeJSON or built
// directly in tests).
func Compile(raw any, opts ...Option) (*Schema, error) {
	o := config.Resolve(opts)
	reg := registry.New()
	if o.Fetcher != nil {
		reg.SetFetcher(o.Fetcher)
	}
	logger := telemetry.New(o.Logger)

	builder := compile.NewBuilder(reg, compile.Options{
		DefaultBaseURI:        o.DefaultBaseURI,
		EvaluateAs:            o.EvaluateAs,
		ProcessCustomKeywords: o.ProcessCustomKeywords,
	}, logger)

	root, err := builder.Compile(raw, o.DefaultBaseURI)
	if err != nil {
		logger.CompileError(err)
		return nil, err
	}

	return &Schema{
		compiled: root,
		reg:      reg,
		resolver: refresolve.New(reg, builder),
		logger:   logger,
		opts:     o,
	}, nil
}

// CompileJSON decodes data as JSON (numbers kept as json.Number, per
// internal/jsonvalue's exact-arithmetic requirement) and compiles it.
func CompileJSON(data []byte, opts ...Option) (*Schema, error) {
	raw, err := decodeJSON(data)
	if err != nil {
		return nil, schemaerr.Newf(schemaerr.ErrMalformedSchema, "", "decoding schema document: %v", err)
	}
	return Compile(raw, opts...)
}

// Evaluate validates instance against the compiled schema, returning a
// Result in the requested output format. The returned error is non-nil
// only when s was not compiled. A reference that cannot be resolved is not
// returned as an error either: it fails its branch of the Result with a
// RefNotFound message, like an ordinary validation failure.
func (s *Schema) Evaluate(instance any, opts ...Option) (*Result, error) {
	if s == nil || s.compiled == nil {
		return nil, schemaerr.New(schemaerr.ErrMalformedSchema, "", "schema not compiled")
	}
	o := config.ResolveOver(s.opts, opts)

	ctx := evalctx.New(s.reg, evalctx.Options{
		Format:                  o.OutputFormat,
		RequireFormatValidation: o.RequireFormatValidation,
		ProcessCustomKeywords:   o.ProcessCustomKeywords,
	}, s.logger)

	baseURI := o.DefaultBaseURI
	if !s.compiled.IsBoolean && s.compiled.BaseURI != "" {
		baseURI = s.compiled.BaseURI
	}
	ctx.PushInstance("", instance, "#", s.compiled)
	defer ctx.Pop()
	if !s.compiled.IsBoolean {
		exit := ctx.EnterDynamicScope(baseURI)
		defer exit()
	}

	node := keywords.EvaluateSchema(ctx, s.resolver)
	return &Result{node: node, format: o.OutputFormat}, nil
}

// EvaluateJSON decodes data as JSON and evaluates it, mirroring
// CompileJSON's number handling.
func (s *Schema) EvaluateJSON(data []byte, opts ...Option) (*Result, error) {
	instance, err := decodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decoding instance: %w", err)
	}
	return s.Evaluate(instance, opts...)
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

