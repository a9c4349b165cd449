package keywords

import (
	"github.com/amis92/jsonschema/internal/draft"
	"github.com/amis92/jsonschema/internal/evalctx"
	"github.com/amis92/jsonschema/internal/format"
	"github.com/amis92/jsonschema/internal/jsonvalue"
	"github.com/amis92/jsonschema/internal/refresolve"
	"github.com/amis92/jsonschema/internal/result"
	"github.com/amis92/jsonschema/internal/schema"
)

// evaluateLength implements minLength/maxLength, counting Unicode code
// points rather than bytes or UTF-16 units (spec.md §4.F).
func evaluateLength(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	lv := kw.Value.(schema.IntLimitValue)
	s, ok := ctx.Current().Instance.(string)
	if !ok {
		return
	}
	n := jsonvalue.CodePointLength(s)
	if kw.Name == "minLength" && n < lv.Limit {
		node.Fail("minLength", "MinLength", map[string]any{"received": n, "limit": lv.Limit})
		return
	}
	if kw.Name == "maxLength" && n > lv.Limit {
		node.Fail("maxLength", "MaxLength", map[string]any{"received": n, "limit": lv.Limit})
	}
}

// evaluatePattern matches the instance against an ECMA-262 regex,
// unanchored (spec.md §4.F "pattern").
func evaluatePattern(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	pv := kw.Value.(schema.PatternValue)
	s, ok := ctx.Current().Instance.(string)
	if !ok {
		return
	}
	matched, err := pv.Re.MatchString(s)
	if err != nil || !matched {
		node.Fail("pattern", "Pattern", map[string]any{"pattern": pv.Raw})
	}
}

// evaluateFormat records the format name as an annotation always, and
// additionally asserts it when RequireFormatValidation is set or the
// active vocabulary set declares format-assertion (spec.md §6 "format:
// acts as assertion, not annotation"). Unknown format names are always
// accepted.
func evaluateFormat(ctx *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	fv := kw.Value.(schema.FormatValue)
	node.Annotate("format", fv.Name)
	frame := ctx.Current()
	instance := frame.Instance
	s, ok := instance.(string)
	if !ok {
		return
	}
	if !ctx.Options().RequireFormatValidation && !frame.Vocabularies[draft.VocabFormatAssertion] {
		return
	}
	checker, known := format.Lookup(fv.Name)
	if !known {
		return
	}
	if !checker(s) {
		node.Fail("format", "Format", map[string]any{"format": fv.Name})
	}
}

// evaluateContentEncoding/evaluateContentMediaType are annotation-only
// (spec.md §6.1 supplemented keywords): the engine never decodes base64
// or parses embedded media itself.
func evaluateContentEncoding(_ *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	sv := kw.Value.(schema.StringValue)
	node.Annotate("contentEncoding", sv.S)
}

func evaluateContentMediaType(_ *evalctx.Context, node *result.Node, kw schema.KeywordInstance) {
	sv := kw.Value.(schema.StringValue)
	node.Annotate("contentMediaType", sv.S)
}

// evaluateContentSchema descends into the declared schema but only as an
// annotation producer: a decode failure or mismatch is never a validation
// failure of the enclosing schema (2019-09+ content vocabulary).
func evaluateContentSchema(ctx *evalctx.Context, resolver *refresolve.Resolver, node *result.Node, kw schema.KeywordInstance) {
	cv := kw.Value.(schema.ContentValue)
	frame := ctx.Current()
	child := pushChildSchema(ctx, resolver, pointerAppend(frame.EvaluationPath, "contentSchema"), cv.Sub)
	child.Suppressed = true
	node.AddChild(child)
	node.Annotate("contentSchema", child.Valid)
}
