// Package compile builds the compiled schema model (internal/schema) from
// a raw decoded JSON document (spec.md §4.D). It owns the entire schema
// graph it produces and registers each resource it discovers into the
// supplied registry, grounded on jacoelho-xsd's internal/runtimebuild
// (parsed-document -> immutable runtime schema, resolver.go for base-URI
// handling, build_hash_schema.go for the single-pass compile shape).
package compile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/shopspring/decimal"

	"github.com/amis92/jsonschema/internal/draft"
	"github.com/amis92/jsonschema/internal/keyword"
	"github.com/amis92/jsonschema/internal/registry"
	"github.com/amis92/jsonschema/internal/schema"
	"github.com/amis92/jsonschema/internal/schemaerr"
	"github.com/amis92/jsonschema/internal/telemetry"
	"github.com/amis92/jsonschema/internal/uriutil"
)

// Options configures one compilation.
type Options struct {
	DefaultBaseURI        string
	EvaluateAs            draft.Draft
	ProcessCustomKeywords bool
}

// Builder compiles raw JSON documents against a shared registry.
type Builder struct {
	reg    *registry.Registry
	opts   Options
	logger *telemetry.Logger
}

// NewBuilder creates a Builder. logger may be nil.
func NewBuilder(reg *registry.Registry, opts Options, logger *telemetry.Logger) *Builder {
	if logger == nil {
		logger = telemetry.Nop()
	}
	return &Builder{reg: reg, opts: opts, logger: logger}
}

// Compile compiles raw into a schema tree rooted at defaultBase.
func (b *Builder) Compile(raw any, defaultBase string) (*schema.Schema, error) {
	if defaultBase == "" {
		defaultBase = b.opts.DefaultBaseURI
	}
	ctx := &buildCtx{
		builder:         b,
		baseURI:         defaultBase,
		resourcePointer: "",
		draftVal:        b.opts.EvaluateAs,
	}
	return b.compileNode(raw, ctx, true)
}

// CompileFetched implements refresolve.Compiler: compiles a document
// fetched by the registry's fetcher and registers it under baseURI.
func (b *Builder) CompileFetched(baseURI string, raw any) error {
	if b.reg.Resolved(baseURI) {
		return nil
	}
	_, err := b.Compile(raw, baseURI)
	return err
}

type buildCtx struct {
	builder         *Builder
	baseURI         string
	resourcePointer string
	resourceRoot    *schema.Schema
	pointerIndex    map[string]*schema.Schema
	draftVal        draft.Draft
	vocabs          map[draft.Vocabulary]bool
}

func (c *buildCtx) child(pointerSegment string) *buildCtx {
	nc := *c
	// pointerSegment is either a keyword name or "keyword/key"; only the
	// parts are escaped, not the separator between them.
	kw, key, hasKey := strings.Cut(pointerSegment, "/")
	nc.resourcePointer = c.resourcePointer + "/" + escapePointerSegment(kw)
	if hasKey {
		nc.resourcePointer += "/" + escapePointerSegment(key)
	}
	return &nc
}

func escapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}

func (b *Builder) compileNode(raw any, ctx *buildCtx, isRoot bool) (*schema.Schema, error) {
	if bv, ok := raw.(bool); ok {
		node := schema.Boolean(bv)
		if isRoot {
			b.reg.Register(ctx.baseURI, node, map[string]*schema.Schema{})
		}
		return node, nil
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, schemaerr.Newf(schemaerr.ErrMalformedSchema, ctx.resourcePointer, "schema node must be an object or boolean, got %T", raw)
	}

	nodeDraft := ctx.draftVal
	if sv, ok := obj["$schema"].(string); ok {
		if d, ok := draft.FromSchemaURI(sv); ok {
			nodeDraft = d
		} else {
			return nil, schemaerr.Newf(schemaerr.ErrUnknownMetaSchema, ctx.resourcePointer, "unknown $schema %q", sv)
		}
	}
	if nodeDraft == draft.Unspecified {
		nodeDraft = draft.Draft2020_12
	}

	newResource := isRoot
	base := ctx.baseURI
	if idv, ok := obj["$id"].(string); ok && idv != "" {
		resolved, err := uriutil.Resolve(ctx.baseURI, idv)
		if err != nil {
			return nil, schemaerr.Newf(schemaerr.ErrUnresolvableID, ctx.resourcePointer, "cannot resolve $id %q: %v", idv, err)
		}
		base = resolved
		newResource = true
	}

	vocabs := ctx.vocabs
	if nodeDraft.HasVocabularies() {
		if raw, ok := obj["$vocabulary"].(map[string]any); ok {
			vocabs = parseVocabulary(raw)
		} else if newResource || vocabs == nil {
			vocabs = draft.DefaultVocabularies(nodeDraft)
		}
	}

	node := &schema.Schema{
		BaseURI:       base,
		SchemaPointer: pointerOrRoot(ctx.resourcePointer, newResource),
		DeclaredDraft: nodeDraft,
		Vocabularies:  vocabs,
	}

	childCtx := &buildCtx{
		builder:  b,
		baseURI:  base,
		draftVal: nodeDraft,
		vocabs:   vocabs,
	}
	if newResource {
		node.Anchors = map[string]*schema.Schema{}
		node.DynamicAnchors = map[string]*schema.Schema{}
		childCtx.resourceRoot = node
		childCtx.pointerIndex = map[string]*schema.Schema{}
		childCtx.resourcePointer = ""
		b.reg.Register(base, node, childCtx.pointerIndex)
	} else {
		childCtx.resourceRoot = ctx.resourceRoot
		childCtx.pointerIndex = ctx.pointerIndex
		childCtx.resourcePointer = ctx.resourcePointer
	}
	childCtx.pointerIndex[childCtx.resourcePointer] = node

	if an, ok := obj["$anchor"].(string); ok && an != "" {
		childCtx.resourceRoot.Anchors[an] = node
	}
	if da, ok := obj["$dynamicAnchor"].(string); ok && da != "" {
		childCtx.resourceRoot.DynamicAnchors[da] = node
		childCtx.resourceRoot.Anchors[da] = node
	}
	if ra, ok := obj["$recursiveAnchor"].(bool); ok && ra {
		childCtx.resourceRoot.RecursiveAnchor = true
	}

	suppressSiblings := !nodeDraft.SupportsRefSiblings() && hasAny(obj, "$ref")

	var names []string
	for k := range obj {
		names = append(names, k)
	}
	keyword.SortByPriority(names)

	// Every keyword in this node gets a chance to report its own parse
	// errors: a malformed "pattern" next to a malformed "multipleOf" on
	// the same node surfaces both, joined below, instead of only the one
	// that happened to sort first by priority.
	var diags schemaerr.Diagnostics
	for _, name := range names {
		if name == "$schema" || name == "$id" || name == "$anchor" || name == "$dynamicAnchor" || name == "$recursiveAnchor" || name == "$vocabulary" || name == "$comment" {
			continue
		}
		if suppressSiblings && name != "$ref" {
			continue
		}
		desc, known := keyword.Lookup(name)
		if !known {
			if b.opts.ProcessCustomKeywords {
				node.Keywords = append(node.Keywords, schema.KeywordInstance{
					Name:     name,
					Priority: keyword.PriorityDefault,
					Value:    schema.AnnotationValue{Value: obj[name]},
				})
			}
			continue
		}
		if !keyword.Applicable(name, nodeDraft, vocabs) {
			continue
		}
		value, err := b.parseKeyword(name, obj[name], childCtx)
		if err != nil {
			diags = append(diags, schemaerr.AsDiagnostics(err)...)
			continue
		}
		if value == nil {
			continue
		}
		node.Keywords = append(node.Keywords, schema.KeywordInstance{
			Name:         name,
			Priority:     desc.Priority,
			IsApplicator: desc.IsApplicator,
			Value:        value,
		})
	}
	if len(diags) > 0 {
		return nil, schemaerr.Join(diags)
	}

	return node, nil
}

func pointerOrRoot(p string, newResource bool) string {
	if newResource {
		return ""
	}
	return p
}

func hasAny(obj map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := obj[k]; ok {
			return true
		}
	}
	return false
}

func parseVocabulary(raw map[string]any) map[draft.Vocabulary]bool {
	out := map[draft.Vocabulary]bool{}
	for k, v := range raw {
		enabled, _ := v.(bool)
		if !enabled {
			continue
		}
		idx := strings.LastIndexByte(k, '/')
		name := k
		if idx >= 0 {
			name = k[idx+1:]
		}
		out[draft.Vocabulary(name)] = true
	}
	return out
}

func (b *Builder) compileChild(raw any, ctx *buildCtx, segment string) (*schema.Schema, error) {
	return b.compileNode(raw, ctx.child(segment), false)
}

func asNumber(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case json.Number:
		return decimal.NewFromString(n.String())
	case float64:
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("expected a number, got %T", v)
	}
}

func asInt(v any) (int, error) {
	d, err := asNumber(v)
	if err != nil {
		return 0, err
	}
	return int(d.IntPart()), nil
}

func compilePattern(raw string) (*regexp2.Regexp, error) {
	return regexp2.Compile(raw, regexp2.ECMAScript)
}
